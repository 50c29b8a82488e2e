package command

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/process"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/graphnet/routesim/builder"
	"github.com/graphnet/routesim/core"
	"github.com/graphnet/routesim/graphio"
	"github.com/graphnet/routesim/routing"
	"github.com/graphnet/routesim/sim"
)

// ErrExit reports that the session should end. It is the only error
// Execute returns; everything else is written to the output.
var ErrExit = errors.New("command: exit")

// maxRunDepth bounds script nesting: a script may not run another
// script.
const maxRunDepth = 1

// Interpreter executes line commands against a shared simulator.
type Interpreter struct {
	st         *sim.State
	rng        *rand.Rand
	exportPath string
	progress   bool
	log        *logrus.Entry
}

// New returns an interpreter over st. seed feeds the topology builders
// that need randomness (tree, rnd_pos).
func New(st *sim.State, log *logrus.Logger, seed int64) *Interpreter {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}

	return &Interpreter{
		st:  st,
		rng: rand.New(rand.NewSource(seed)),
		log: log.WithField("component", "command"),
	}
}

// Execute runs one command line, writing all output to w. Command
// errors are reported to w and swallowed; the returned error is nil or
// ErrExit.
func (in *Interpreter) Execute(w io.Writer, line string) error {
	return in.execute(w, line, 0)
}

type entry struct {
	name  string
	usage string
	fn    func(in *Interpreter, w io.Writer, args []string, depth int) error
}

// table drives both dispatch and help output. Grouped the way help
// prints them: simulation, algorithm state, topology, positions, io.
// Populated in init to break the initialization cycle with cmdHelp.
var table []entry

func init() {
	table = []entry{
		{"help", "help                               Show this help.", (*Interpreter).cmdHelp},
		{"algo", "algo [<algorithm>]                 Get or set the routing algorithm.", (*Interpreter).cmdAlgo},
		{"sim_step", "sim_step [<steps>]                 Run simulation steps. Default is 1.", (*Interpreter).cmdSimStep},
		{"sim_reset", "sim_reset                          Reset the simulation.", (*Interpreter).cmdSimReset},
		{"sim_info", "sim_info                           Show simulator information.", (*Interpreter).cmdSimInfo},
		{"progress", "progress [<true|false>]            Show evaluation progress.", (*Interpreter).cmdProgress},
		{"test", "test [<samples>]                   Evaluate the routing algorithm (arrival, stretch).", (*Interpreter).cmdTest},
		{"debug_init", "debug_init <from> <to>             Trace a path hop by hop.", (*Interpreter).cmdDebugInit},
		{"debug_step", "debug_step [<steps>]               Advance the traced path.", (*Interpreter).cmdDebugStep},
		{"get", "get <key>                          Get an algorithm parameter.", (*Interpreter).cmdGet},
		{"set", "set <key> <value>                  Set an algorithm parameter.", (*Interpreter).cmdSet},
		{"graph_info", "graph_info                         Show graph information.", (*Interpreter).cmdGraphInfo},
		{"graph_clear", "graph_clear                        Remove all nodes and links.", (*Interpreter).cmdGraphClear},
		{"line", "line <node_count> [<create_loop>]  Add a line of nodes, optionally closed to a loop.", (*Interpreter).cmdLine},
		{"star", "star <leaf_count>                  Add a star of nodes.", (*Interpreter).cmdStar},
		{"tree", "tree <node_count> [<inter_count>]  Add a random tree with extra interconnections.", (*Interpreter).cmdTree},
		{"lattice4", "lattice4 <x_count> <y_count>       Add a lattice of squares.", (*Interpreter).cmdLattice4},
		{"lattice8", "lattice8 <x_count> <y_count>       Add a lattice of squares with diagonals.", (*Interpreter).cmdLattice8},
		{"remove_nodes", "remove_nodes <id,id,...>           Remove the listed nodes.", (*Interpreter).cmdRemoveNodes},
		{"connect_nodes", "connect_nodes <id,id,...>          Link consecutive pairs of the listed nodes.", (*Interpreter).cmdConnectNodes},
		{"disconnect_nodes", "disconnect_nodes <id,id,...>       Unlink consecutive pairs of the listed nodes.", (*Interpreter).cmdDisconnectNodes},
		{"remove_unconnected", "remove_unconnected                 Remove nodes without any links.", (*Interpreter).cmdRemoveUnconnected},
		{"positions", "positions <true|false>             Enable or disable geo positions.", (*Interpreter).cmdPositions},
		{"move_node", "move_node <id> <x> <y> <z>         Move a node by x/y/z (in km).", (*Interpreter).cmdMoveNode},
		{"move_nodes", "move_nodes <x> <y> <z>             Move all nodes by x/y/z (in km).", (*Interpreter).cmdMoveNodes},
		{"move_to", "move_to <x> <y> <z>                Move the graph center to x/y/z (in degrees).", (*Interpreter).cmdMoveTo},
		{"rnd_pos", "rnd_pos <range>                    Randomize positions around the center (range in km).", (*Interpreter).cmdRndPos},
		{"connect_in_range", "connect_in_range <range>           Link all node pairs closer than range (in km).", (*Interpreter).cmdConnectInRange},
		{"run", "run <file>                         Run commands from a script file.", (*Interpreter).cmdRun},
		{"import", "import <file>                      Import a graph from a JSON file.", (*Interpreter).cmdImport},
		{"export", "export [<file>]                    Export the graph as JSON, optionally changing the path.", (*Interpreter).cmdExport},
		{"show_mst", "show_mst                           Show the minimum spanning tree.", (*Interpreter).cmdShowMST},
		{"crop_mst", "crop_mst                           Reduce the graph to its minimum spanning tree.", (*Interpreter).cmdCropMST},
		{"exit", "exit                               Exit the simulator.", (*Interpreter).cmdExit},
	}
}

func lookup(name string) (entry, bool) {
	for _, e := range table {
		if e.name == name {
			return e, true
		}
	}

	return entry{}, false
}

func (in *Interpreter) execute(w io.Writer, line string, depth int) error {
	fields := strings.Fields(line)
	// Quotes around arguments are accepted but carry no meaning.
	for i, f := range fields {
		fields[i] = strings.Trim(f, `'"`)
	}
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}

	e, ok := lookup(fields[0])
	if !ok {
		fmt.Fprintf(w, "unknown command: %s\n", fields[0])

		return nil
	}

	in.log.WithField("command", line).Debug("execute")
	err := e.fn(in, w, fields[1:], depth)
	if errors.Is(err, ErrExit) {
		return ErrExit
	}
	if err != nil {
		fmt.Fprintf(w, "error: %v\n", err)
	}

	return nil
}

var errMissingArgs = errors.New("command: missing arguments")

func argCount(tok string) (int, error) {
	n, err := strconv.Atoi(tok)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("command: bad number %q", tok)
	}

	return n, nil
}

func argFloat(tok string) (float64, error) {
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("command: bad number %q", tok)
	}

	return f, nil
}

func argBool(tok string) (bool, error) {
	b, err := strconv.ParseBool(tok)
	if err != nil {
		return false, fmt.Errorf("command: bad boolean %q", tok)
	}

	return b, nil
}

// argIDList parses a comma-separated node id list ("0,4,2").
func argIDList(tok string) ([]core.NodeID, error) {
	parts := strings.Split(tok, ",")
	ids := make([]core.NodeID, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("command: bad node list %q", tok)
		}
		ids = append(ids, core.NodeID(n))
	}

	return ids, nil
}

// argVec parses three km/degree components into a vector.
func argVec(args []string) (r3.Vec, error) {
	if len(args) < 3 {
		return r3.Vec{}, errMissingArgs
	}
	x, err := argFloat(args[0])
	if err != nil {
		return r3.Vec{}, err
	}
	y, err := argFloat(args[1])
	if err != nil {
		return r3.Vec{}, err
	}
	z, err := argFloat(args[2])
	if err != nil {
		return r3.Vec{}, err
	}

	return r3.Vec{X: x, Y: y, Z: z}, nil
}

func (in *Interpreter) cmdHelp(w io.Writer, _ []string, _ int) error {
	for _, e := range table {
		fmt.Fprintln(w, e.usage)
	}

	return nil
}

func (in *Interpreter) cmdAlgo(w io.Writer, args []string, _ int) error {
	if len(args) == 0 {
		fmt.Fprintf(w, "selected: %s\n", in.st.AlgorithmName())
		fmt.Fprintf(w, "available: %s\n", strings.Join(routing.Names(), ", "))

		return nil
	}
	if err := in.st.SetAlgorithm(args[0]); err != nil {
		fmt.Fprintf(w, "unknown algorithm: %s\n", args[0])

		return nil
	}
	fmt.Fprintln(w, "done")

	return nil
}

func (in *Interpreter) cmdSimStep(w io.Writer, args []string, _ int) error {
	count := 1
	if len(args) > 0 {
		var err error
		if count, err = argCount(args[0]); err != nil {
			return err
		}
	}
	done, elapsed := in.st.Advance(count)
	fmt.Fprintf(w, "ran %d simulation steps, duration: %s\n", done, elapsed)

	return nil
}

func (in *Interpreter) cmdSimReset(w io.Writer, _ []string, _ int) error {
	in.st.ResetSim()
	fmt.Fprintln(w, "done")

	return nil
}

func (in *Interpreter) cmdSimInfo(w io.Writer, _ []string, _ int) error {
	info := in.st.Info()
	fmt.Fprintf(w, "algo: %s\n", info.Algorithm)
	fmt.Fprintf(w, "steps: %d\n", info.Steps)
	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if mi, err := proc.MemoryInfo(); err == nil {
			fmt.Fprintf(w, "memory: %.1f MiB\n", float64(mi.RSS)/(1024*1024))
		}
	}

	return nil
}

func (in *Interpreter) cmdProgress(w io.Writer, args []string, _ int) error {
	if len(args) > 0 {
		show, err := argBool(args[0])
		if err != nil {
			return err
		}
		in.progress = show
	}
	state := "disabled"
	if in.progress {
		state = "enabled"
	}
	fmt.Fprintf(w, "show progress: %s\n", state)

	return nil
}

func (in *Interpreter) cmdTest(w io.Writer, args []string, _ int) error {
	samples := 1000
	if len(args) > 0 {
		var err error
		if samples, err = argCount(args[0]); err != nil {
			return err
		}
	}

	if in.progress {
		in.st.SetProgress(func(done, total int) {
			fmt.Fprintf(w, "progress: %d/%d\n", done, total)
		})
		defer in.st.SetProgress(nil)
	}

	in.st.ClearEval()
	in.st.RunEval(samples)
	info := in.st.Info()
	fmt.Fprintf(w, "samples: %d, arrived: %.1f%%, stretch: %.3f, duration: %s\n",
		info.Samples, 100*info.ArrivedFraction, info.MeanStretch, info.EvalDuration)

	return nil
}

func (in *Interpreter) cmdDebugInit(w io.Writer, args []string, _ int) error {
	if len(args) < 2 {
		return errMissingArgs
	}
	from, err := argCount(args[0])
	if err != nil {
		return err
	}
	to, err := argCount(args[1])
	if err != nil {
		return err
	}
	if err := in.st.DebugInit(core.NodeID(from), core.NodeID(to)); err != nil {
		fmt.Fprintf(w, "invalid path: %d => %d\n", from, to)

		return nil
	}
	fmt.Fprintf(w, "init path debugger: %d => %d\n", from, to)

	return nil
}

func (in *Interpreter) cmdDebugStep(w io.Writer, args []string, _ int) error {
	steps := 1
	if len(args) > 0 {
		var err error
		if steps, err = argCount(args[0]); err != nil {
			return err
		}
	}
	for i := 0; i < steps; i++ {
		if err := in.st.DebugStep(w); err != nil {
			return err
		}
	}

	return nil
}

func (in *Interpreter) cmdGet(w io.Writer, args []string, _ int) error {
	if len(args) < 1 {
		return errMissingArgs
	}
	v, err := in.st.GetParam(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(w, v)

	return nil
}

func (in *Interpreter) cmdSet(w io.Writer, args []string, _ int) error {
	if len(args) < 2 {
		return errMissingArgs
	}

	return in.st.SetParam(args[0], args[1])
}

func (in *Interpreter) cmdGraphInfo(w io.Writer, _ []string, _ int) error {
	info := in.st.Info()
	fmt.Fprintf(w, "nodes: %d, links: %d\n", info.Nodes, info.Links)
	fmt.Fprintf(w, "average node degree: %.2f\n", info.AvgDegree)

	return nil
}

func (in *Interpreter) cmdGraphClear(w io.Writer, _ []string, _ int) error {
	err := in.st.Edit(func(g *core.Graph) error {
		g.Clear()

		return nil
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "done")

	return nil
}

func (in *Interpreter) cmdLine(w io.Writer, args []string, _ int) error {
	if len(args) < 1 {
		return errMissingArgs
	}
	count, err := argCount(args[0])
	if err != nil {
		return err
	}
	closeLoop := false
	if len(args) > 1 {
		if closeLoop, err = argBool(args[1]); err != nil {
			return err
		}
	}

	return in.addNodes(w, func(g *core.Graph) ([]core.NodeID, error) {
		return builder.Line(g, count, closeLoop)
	})
}

func (in *Interpreter) cmdStar(w io.Writer, args []string, _ int) error {
	if len(args) < 1 {
		return errMissingArgs
	}
	leaves, err := argCount(args[0])
	if err != nil {
		return err
	}

	return in.addNodes(w, func(g *core.Graph) ([]core.NodeID, error) {
		return builder.Star(g, leaves)
	})
}

func (in *Interpreter) cmdTree(w io.Writer, args []string, _ int) error {
	if len(args) < 1 {
		return errMissingArgs
	}
	count, err := argCount(args[0])
	if err != nil {
		return err
	}
	inter := 0
	if len(args) > 1 {
		if inter, err = argCount(args[1]); err != nil {
			return err
		}
	}

	return in.addNodes(w, func(g *core.Graph) ([]core.NodeID, error) {
		return builder.Tree(g, count, inter, in.rng)
	})
}

func (in *Interpreter) cmdLattice4(w io.Writer, args []string, _ int) error {
	return in.lattice(w, args, builder.Lattice4)
}

func (in *Interpreter) cmdLattice8(w io.Writer, args []string, _ int) error {
	return in.lattice(w, args, builder.Lattice8)
}

func (in *Interpreter) lattice(w io.Writer, args []string, build func(*core.Graph, int, int) ([]core.NodeID, error)) error {
	if len(args) < 2 {
		return errMissingArgs
	}
	x, err := argCount(args[0])
	if err != nil {
		return err
	}
	y, err := argCount(args[1])
	if err != nil {
		return err
	}

	return in.addNodes(w, func(g *core.Graph) ([]core.NodeID, error) {
		return build(g, x, y)
	})
}

// addNodes runs a topology builder inside an Edit and reports the node
// delta.
func (in *Interpreter) addNodes(w io.Writer, build func(g *core.Graph) ([]core.NodeID, error)) error {
	var added int
	err := in.st.Edit(func(g *core.Graph) error {
		ids, err := build(g)
		added = len(ids)

		return err
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "added %d nodes\n", added)

	return nil
}

func (in *Interpreter) cmdRemoveNodes(w io.Writer, args []string, _ int) error {
	if len(args) < 1 {
		return errMissingArgs
	}
	ids, err := argIDList(args[0])
	if err != nil {
		return err
	}

	return in.st.Edit(func(g *core.Graph) error {
		return g.RemoveNodes(ids)
	})
}

func (in *Interpreter) cmdConnectNodes(w io.Writer, args []string, _ int) error {
	if len(args) < 1 {
		return errMissingArgs
	}
	ids, err := argIDList(args[0])
	if err != nil {
		return err
	}

	return in.st.Edit(func(g *core.Graph) error {
		return g.ConnectNodes(ids)
	})
}

func (in *Interpreter) cmdDisconnectNodes(w io.Writer, args []string, _ int) error {
	if len(args) < 1 {
		return errMissingArgs
	}
	ids, err := argIDList(args[0])
	if err != nil {
		return err
	}

	return in.st.Edit(func(g *core.Graph) error {
		return g.DisconnectNodes(ids)
	})
}

func (in *Interpreter) cmdRemoveUnconnected(w io.Writer, _ []string, _ int) error {
	var removed int
	err := in.st.Edit(func(g *core.Graph) error {
		removed = g.RemoveUnconnectedNodes()

		return nil
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "removed %d nodes\n", removed)

	return nil
}

func (in *Interpreter) cmdPositions(w io.Writer, args []string, _ int) error {
	if len(args) < 1 {
		return errMissingArgs
	}
	enable, err := argBool(args[0])
	if err != nil {
		return err
	}
	_ = in.st.Reposition(func(g *core.Graph) error {
		if enable {
			g.EnablePositions()
		} else {
			g.DisablePositions()
		}

		return nil
	})
	state := "disabled"
	if enable {
		state = "enabled"
	}
	fmt.Fprintf(w, "positions: %s\n", state)

	return nil
}

func (in *Interpreter) cmdMoveNode(w io.Writer, args []string, _ int) error {
	if len(args) < 4 {
		return errMissingArgs
	}
	id, err := argCount(args[0])
	if err != nil {
		return err
	}
	delta, err := argVec(args[1:])
	if err != nil {
		return err
	}

	return in.st.Reposition(func(g *core.Graph) error {
		return g.MoveNode(core.NodeID(id), delta)
	})
}

func (in *Interpreter) cmdMoveNodes(w io.Writer, args []string, _ int) error {
	delta, err := argVec(args)
	if err != nil {
		return err
	}

	return in.st.Reposition(func(g *core.Graph) error {
		return g.MoveNodes(delta)
	})
}

func (in *Interpreter) cmdMoveTo(w io.Writer, args []string, _ int) error {
	deg, err := argVec(args)
	if err != nil {
		return err
	}

	return in.st.Reposition(func(g *core.Graph) error {
		return g.MoveAllTo(r3.Scale(core.DegToKm, deg))
	})
}

func (in *Interpreter) cmdRndPos(w io.Writer, args []string, _ int) error {
	if len(args) < 1 {
		return errMissingArgs
	}
	rangeKm, err := argFloat(args[0])
	if err != nil {
		return err
	}

	return in.st.Reposition(func(g *core.Graph) error {
		return builder.RandomizePositions(g, g.GraphCenter(), rangeKm, in.rng)
	})
}

func (in *Interpreter) cmdConnectInRange(w io.Writer, args []string, _ int) error {
	if len(args) < 1 {
		return errMissingArgs
	}
	rangeKm, err := argFloat(args[0])
	if err != nil {
		return err
	}

	var added int
	err = in.st.Edit(func(g *core.Graph) error {
		var err error
		added, err = builder.ConnectInRange(g, rangeKm)

		return err
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "added %d links\n", added)

	return nil
}

func (in *Interpreter) cmdRun(w io.Writer, args []string, depth int) error {
	if len(args) < 1 {
		return errMissingArgs
	}
	path := args[0]
	if depth >= maxRunDepth {
		fmt.Fprintf(w, "nested script call not allowed: %s\n", path)

		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(w, "file not found: %s\n", path)

		return nil
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		if err := in.execute(w, scanner.Text(), depth+1); err != nil {
			// Only ErrExit escapes execute; it ends the script and the
			// session.
			return err
		}
	}

	return scanner.Err()
}

func (in *Interpreter) cmdImport(w io.Writer, args []string, _ int) error {
	if len(args) < 1 {
		return errMissingArgs
	}
	path := args[0]
	err := in.st.Edit(func(g *core.Graph) error {
		return graphio.Import(g, path)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "import done: %s\n", path)

	return nil
}

func (in *Interpreter) cmdExport(w io.Writer, args []string, _ int) error {
	if len(args) > 0 {
		in.exportPath = args[0]
	}
	if in.exportPath == "" {
		fmt.Fprintln(w, "no export path set")

		return nil
	}

	var err error
	in.st.Inspect(func(g *core.Graph) {
		err = graphio.Export(g, in.exportPath)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "export done: %s\n", in.exportPath)

	return nil
}

func (in *Interpreter) cmdShowMST(w io.Writer, _ []string, _ int) error {
	in.st.Inspect(func(g *core.Graph) {
		mst := g.MinimumSpanningTree()
		fmt.Fprintf(w, "spanning forest: %d nodes, %d links\n", mst.NodeCount(), mst.LinkCount())
		mst.EachLink(func(a, b core.NodeID) {
			fmt.Fprintf(w, "%d - %d\n", a, b)
		})
	})

	return nil
}

func (in *Interpreter) cmdCropMST(w io.Writer, _ []string, _ int) error {
	in.st.CropMST()
	fmt.Fprintln(w, "done")

	return nil
}

func (in *Interpreter) cmdExit(_ io.Writer, _ []string, _ int) error {
	in.st.Abort().Store(true)

	return ErrExit
}

// SetExportPath presets the export target, usually from configuration.
func (in *Interpreter) SetExportPath(path string) { in.exportPath = path }

// SetProgressDefault presets the progress toggle from configuration.
func (in *Interpreter) SetProgressDefault(show bool) { in.progress = show }
