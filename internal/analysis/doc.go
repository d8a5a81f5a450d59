// Package analysis checks properties of polynomials and the machines built
// from them.
//
//   - [ModularCheck]: reducing coefficients mod m commutes with evaluation
//   - [Explore]: states reachable from a start state under all 0/1 inputs
//
// # Modular reduction
//
// For p over the integers and q its coefficients reduced mod m,
// p(x) mod m == q(x mod m) for every integer point x:
//
//	report, err := analysis.ModularCheck(p, 10, 20)
//	if err == nil && report.OK() {
//	    // every point agreed
//	}
package analysis
