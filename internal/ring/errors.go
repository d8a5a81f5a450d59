package ring

// ErrorCategory classifies engine failures. Use errcat.Category(err) to read it.
type ErrorCategory string

const (
	// ErrType marks a value that does not belong to the ring's value type
	// (nil values, polynomials where scalars are required).
	ErrType ErrorCategory = "polysim-error-type"

	// ErrDomain marks a value of the right type outside the legal domain:
	// reserved characters in variable names, non-positive exponents,
	// out-of-range modulus residues.
	ErrDomain ErrorCategory = "polysim-error-domain"

	// ErrMisuse marks a call that is valid Go but algebraically wrong, such as
	// adding unlike terms or mixing polynomials from different rings.
	ErrMisuse ErrorCategory = "polysim-error-misuse"

	// ErrIncomplete marks missing or unexpected variable bindings.
	ErrIncomplete ErrorCategory = "polysim-error-incomplete"
)
