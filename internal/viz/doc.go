// Package viz renders polynomials and simulation traces for the terminal.
//
// Styles come from a Theme and are built with lipgloss. Plots of wire
// values over time use asciigraph, and BitTable draws a timing diagram with
// one row per wire and one column per step.
package viz
