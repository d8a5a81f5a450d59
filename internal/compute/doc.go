// Package compute evaluates polynomials over whole grids of points.
//
// The active backend decides how many goroutines share the work:
//
//	vals, err := compute.EvalGrid(compute.GetBackend(), p, p.Variables(), 20, 1<<20, ring.Int)
//
// Polynomials are immutable, so one value is read by every worker. Small
// grids are evaluated serially.
package compute
