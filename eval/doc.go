// Package eval measures routing effectiveness by sampling: it draws
// random source/destination pairs, routes each through the algorithm
// under test, and accumulates the arrived fraction and the mean path
// stretch versus breadth-first shortest-path ground truth.
//
// Stretch is only accumulated for arrived samples; failed attempts
// count against the arrived fraction but never distort the stretch
// average. Sampling is reproducible for a fixed seed.
package eval
