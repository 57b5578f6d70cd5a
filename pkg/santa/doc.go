// Package santa implements the drawing engine: it assigns every
// participant exactly one gift recipient so that the assignments form a
// single closed cycle, honoring per-participant forbidden-recipient
// constraints.
//
// # Overview
//
// A [Santa] holds the participant set and a map of forbidden giftees per
// participant. [Santa.Generate] performs a Monte Carlo search for a
// Hamiltonian cycle avoiding the forbidden edges: each attempt starts from
// the most-constrained participant and randomly extends the chain with a
// permissible candidate until either the chain closes into a valid cycle
// or a dead end forces a full restart. The search is best-effort; it gives
// up after a bounded number of attempts even if a valid cycle exists.
//
// # Basic Usage
//
// Create an engine with [New], passing participant names mapped to their
// forbidden giftees (nil means unconstrained):
//
//	s := santa.New(map[string][]string{
//	    "Alice":   {"Bob"}, // Alice must not give to Bob
//	    "Bob":     nil,
//	    "Charlie": nil,
//	})
//	seq := s.Generate()
//
// A non-empty result has length len(participants)+1, starts and ends with
// the same name, and every adjacent pair (gifter, giftee) respects the
// constraints. An empty result means no cycle was found: either the quick
// [Santa.Feasible] check failed or all attempts were exhausted. Both are
// expected outcomes, not faults.
//
// # Determinism
//
// Pass a seeded random source through [Options] to make draws
// reproducible:
//
//	s := santa.NewWithOptions(candidates, santa.Options{
//	    Rand: rand.New(rand.NewPCG(42, 42)),
//	})
//
// Santa is not safe for concurrent use without external synchronization.
package santa
