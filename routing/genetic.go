package routing

import (
	"math/rand"
	"sort"

	"github.com/graphnet/routesim/core"
)

// Genetic search defaults: population size, per-gene mutation chance
// and the number of (source, destination) pairs sampled per fitness
// evaluation.
const (
	defaultPopulation  = 16
	defaultMutation    = 0.02
	defaultFitSamples  = 32
	arrivalScore       = 1.0 // fitness credit for a delivered sample
	hopPenaltyFraction = 0.5 // up to this much extra credit for short paths
)

// candidate is one next-hop policy: one chosen neighbor per node. A
// gene equal to the node's own id means "drop" (no forwarding choice).
type candidate struct {
	genes   []core.NodeID
	fitness float64
}

// GeneticRouting evolves a population of next-hop tables. Each Step
// scores every candidate by routing a small random sample of pairs
// through its table, then breeds the next generation by elitist
// selection, single-point crossover and per-gene mutation. Route
// follows the best candidate's table deterministically.
type GeneticRouting struct {
	pop  []candidate
	best int
	size int

	popSize    int
	mutation   float64
	fitSamples int
	hopLimit   int
	seed       int64
	rng        *rand.Rand
}

// NewGeneticRouting returns an unconfigured genetic router.
func NewGeneticRouting() *GeneticRouting {
	return &GeneticRouting{
		popSize:    defaultPopulation,
		mutation:   defaultMutation,
		fitSamples: defaultFitSamples,
		hopLimit:   DefaultHopLimit,
		seed:       DefaultSeed,
	}
}

// Name implements Algorithm.
func (gr *GeneticRouting) Name() string { return "genetic" }

// Reset implements Algorithm. Gene initialization needs neighbor lists,
// so the population is seeded on the first Step after Reset; Route
// before any Step reports non-arrived.
func (gr *GeneticRouting) Reset(nodeCount int) {
	gr.size = nodeCount
	gr.pop = nil
	gr.best = 0
	gr.rng = rand.New(rand.NewSource(gr.seed))
}

// Step implements Algorithm: one generation of evaluate-select-breed.
func (gr *GeneticRouting) Step(v core.View) {
	assertSized("genetic", gr.size, v.NodeCount())
	if gr.size < 2 {
		return
	}
	if gr.pop == nil {
		gr.seedPopulation(v)
	}

	// Evaluate.
	for i := range gr.pop {
		gr.pop[i].fitness = gr.evaluate(v, gr.pop[i].genes)
	}

	// Rank by fitness, stable so equal scores keep their order and the
	// generation stays deterministic.
	sort.SliceStable(gr.pop, func(i, j int) bool {
		return gr.pop[i].fitness > gr.pop[j].fitness
	})
	gr.best = 0

	// Breed: the elite half survives unchanged, the rest is replaced by
	// crossover of two random elites plus mutation.
	elite := len(gr.pop) / 2
	if elite < 1 {
		elite = 1
	}
	for i := elite; i < len(gr.pop); i++ {
		a := gr.pop[gr.rng.Intn(elite)].genes
		b := gr.pop[gr.rng.Intn(elite)].genes
		gr.crossover(gr.pop[i].genes, a, b)
		gr.mutate(v, gr.pop[i].genes)
	}
}

// seedPopulation fills every candidate with uniformly random neighbor
// choices (own id for isolated nodes).
func (gr *GeneticRouting) seedPopulation(v core.View) {
	gr.pop = make([]candidate, gr.popSize)
	for i := range gr.pop {
		genes := make([]core.NodeID, gr.size)
		for n := range genes {
			genes[n] = gr.randomGene(v, core.NodeID(n))
		}
		gr.pop[i] = candidate{genes: genes}
	}
}

// randomGene draws a uniform neighbor of n, or n itself when isolated.
func (gr *GeneticRouting) randomGene(v core.View, n core.NodeID) core.NodeID {
	nbrs := v.Neighbors(n)
	if len(nbrs) == 0 {
		return n
	}

	return nbrs[gr.rng.Intn(len(nbrs))]
}

// evaluate scores a next-hop table over fitSamples random pairs: full
// credit per delivered sample plus a bonus shrinking with hop count.
func (gr *GeneticRouting) evaluate(v core.View, genes []core.NodeID) float64 {
	score := 0.0
	for s := 0; s < gr.fitSamples; s++ {
		src := core.NodeID(gr.rng.Intn(gr.size))
		dst := core.NodeID(gr.rng.Intn(gr.size - 1))
		if dst >= src {
			dst++
		}
		res := followTable(genes, PathRequest{Source: src, Dest: dst}, gr.hopLimit)
		if res.Arrived {
			score += arrivalScore + hopPenaltyFraction/float64(1+res.Hops)
		}
	}

	return score
}

// crossover writes a single-point recombination of a and b into dst.
func (gr *GeneticRouting) crossover(dst, a, b []core.NodeID) {
	cut := gr.rng.Intn(len(dst))
	copy(dst[:cut], a[:cut])
	copy(dst[cut:], b[cut:])
}

// mutate rerolls each gene to a random neighbor with the configured
// probability.
func (gr *GeneticRouting) mutate(v core.View, genes []core.NodeID) {
	for n := range genes {
		if gr.rng.Float64() < gr.mutation {
			genes[n] = gr.randomGene(v, core.NodeID(n))
		}
	}
}

// followTable walks a next-hop table from the request source: purely a
// function of the table, so Route stays free of persistent mutation.
func followTable(genes []core.NodeID, req PathRequest, hopLimit int) PathResult {
	path := make([]core.NodeID, 0, hopLimit+1)
	cur := req.Source
	path = append(path, cur)
	for hops := 0; hops < hopLimit; hops++ {
		if cur == req.Dest {
			return arrived(path)
		}
		next := genes[cur]
		if next == cur {
			// Drop gene: this candidate has no forwarding choice here.
			return notArrived(path)
		}
		cur = next
		path = append(path, cur)
	}
	if cur == req.Dest {
		return arrived(path)
	}

	return notArrived(path)
}

// Route implements Algorithm: follows the best candidate's table.
// Before the first Step there is no population yet and every request
// reports non-arrived.
func (gr *GeneticRouting) Route(v core.View, req PathRequest) PathResult {
	assertSized("genetic", gr.size, v.NodeCount())
	if gr.pop == nil {
		return notArrived([]core.NodeID{req.Source})
	}

	return followTable(gr.pop[gr.best].genes, req, gr.hopLimit)
}

// Get implements Algorithm. "fitness" exposes the best candidate's
// score from the last generation.
func (gr *GeneticRouting) Get(key string) (string, error) {
	switch key {
	case "name":
		return gr.Name(), nil
	case "hop_limit":
		return formatInt(gr.hopLimit), nil
	case "population":
		return formatInt(gr.popSize), nil
	case "mutation":
		return formatFloat(gr.mutation), nil
	case "samples":
		return formatInt(gr.fitSamples), nil
	case "seed":
		return formatInt(int(gr.seed)), nil
	case "fitness":
		if gr.pop == nil {
			return formatFloat(0), nil
		}

		return formatFloat(gr.pop[gr.best].fitness), nil
	default:
		return "", ErrUnknownParameter
	}
}

// Set implements Algorithm. Population and seed changes take effect at
// the next Reset.
func (gr *GeneticRouting) Set(key, value string) error {
	switch key {
	case "hop_limit":
		n, err := parseIntParam(key, value)
		if err != nil {
			return err
		}
		gr.hopLimit = n
	case "population":
		n, err := parseIntParam(key, value)
		if err != nil {
			return err
		}
		gr.popSize = n
	case "mutation":
		f, err := parseFloatParam(key, value)
		if err != nil {
			return err
		}
		gr.mutation = f
	case "samples":
		n, err := parseIntParam(key, value)
		if err != nil {
			return err
		}
		gr.fitSamples = n
	case "seed":
		s, err := parseSeedParam(value)
		if err != nil {
			return err
		}
		gr.seed = s
	default:
		return ErrUnknownParameter
	}

	return nil
}
