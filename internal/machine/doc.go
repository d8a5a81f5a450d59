// Package machine implements a two-bit virtual machine and its polynomial
// encoding.
//
// The machine has one register, AX, holding 0 through 3, and two opcodes:
//
//	check: AX = 0 halts and accepts, anything else continues
//	decr:  AX = 0 halts and rejects, anything else decrements AX
//
// Running off the end of a program rejects, and programs longer than
// MaxProgramLen reject every input. The set of inputs a program accepts is
// its language.
//
// Run is the direct interpreter. The same machine is also described as a
// circuit netlist (vm.yaml) whose next-state functions compile to
// polynomials; RunPolynomial steps that circuit through the simulator and
// must agree with Run on every program and input.
package machine
