package machine

// NumInputs is the size of the register's value set.
const NumInputs = 4

// NumPrograms is how many program numbers FindSolutions searches.
const NumPrograms = 256

// Assemble numbers a program in bijective base 2 with check = 1 and
// decr = 2, so every natural number names exactly one program.
func Assemble(program []Op) int {
	n := 0
	for _, op := range program {
		n = n*2 + int(op)
	}
	return n
}

// Disassemble inverts Assemble. Negative numbers yield the empty program.
func Disassemble(n int) []Op {
	var rev []Op
	for n > 0 {
		if n%2 == 0 {
			rev = append(rev, Decr)
			n = (n - 2) / 2
		} else {
			rev = append(rev, Check)
			n = (n - 1) / 2
		}
	}
	prog := make([]Op, len(rev))
	for i, op := range rev {
		prog[len(rev)-1-i] = op
	}
	return prog
}

// EncodeLanguage packs a set of inputs into a bitmask.
func EncodeLanguage(lang []int) int {
	code := 0
	for _, n := range lang {
		code |= 1 << n
	}
	return code
}

// Language unpacks a bitmask into ascending inputs.
func Language(code int) []int {
	lang := []int{}
	for i := 0; code > 0; i++ {
		if code&1 == 1 {
			lang = append(lang, i)
		}
		code >>= 1
	}
	return lang
}

// Recognize returns the encoded language of the program numbered code.
func Recognize(code int) int {
	prog := Disassemble(code)
	lang := make([]int, 0, NumInputs)
	for ax := 0; ax < NumInputs; ax++ {
		if Run(ax, prog) {
			lang = append(lang, ax)
		}
	}
	return EncodeLanguage(lang)
}

// FindSolutions groups program numbers 0..NumPrograms-1 by the language
// they recognize. Every one of the 16 languages has an entry, possibly
// empty.
func FindSolutions() map[int][]int {
	solutions := make(map[int][]int, 1<<NumInputs)
	for y := 0; y < 1<<NumInputs; y++ {
		solutions[y] = []int{}
	}
	for x := 0; x < NumPrograms; x++ {
		y := Recognize(x)
		solutions[y] = append(solutions[y], x)
	}
	return solutions
}
