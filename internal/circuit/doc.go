// Package circuit encodes boolean circuits as polynomials.
//
// A Netlist names state wires, input wires and gates. Compiling it over a
// ring turns every next-state gate into one polynomial in the wire
// variables, and the resulting Machine steps by evaluating them.
package circuit
