package machine_test

import (
	"context"
	"math/big"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/polysim/internal/circuit"
	"github.com/san-kum/polysim/internal/machine"
	"github.com/san-kum/polysim/internal/ring"
	"github.com/san-kum/polysim/internal/sim"
)

var (
	evenNumbers  = []machine.Op{machine.Check, machine.Decr, machine.Decr, machine.Check}
	oddNumbers   = []machine.Op{machine.Decr, machine.Check, machine.Decr, machine.Decr, machine.Check}
	bigNumbers   = []machine.Op{machine.Decr, machine.Decr, machine.Check, machine.Decr, machine.Check}
	smallNumbers = []machine.Op{machine.Check, machine.Decr, machine.Check}
	justTwo      = []machine.Op{machine.Decr, machine.Decr, machine.Check}
)

func accepted(program []machine.Op) []int {
	var lang []int
	for ax := 0; ax < machine.NumInputs; ax++ {
		if machine.Run(ax, program) {
			lang = append(lang, ax)
		}
	}
	return lang
}

var _ = Describe("Reference interpreter", func() {
	DescribeTable("recognizes the sample languages",
		func(program []machine.Op, want []int) {
			Expect(accepted(program)).To(Equal(want))
		},
		Entry("even", evenNumbers, []int{0, 2}),
		Entry("odd", oddNumbers, []int{1, 3}),
		Entry("big", bigNumbers, []int{2, 3}),
		Entry("small", smallNumbers, []int{0, 1}),
		Entry("just two", justTwo, []int{2}),
		Entry("empty program", []machine.Op{}, []int(nil)),
	)

	It("rejects when the program runs out", func() {
		Expect(machine.Run(3, []machine.Op{machine.Decr})).To(BeFalse())
	})

	It("rejects everything past the length limit", func() {
		long := make([]machine.Op, machine.MaxProgramLen+1)
		for i := range long {
			long[i] = machine.Check
		}
		Expect(machine.Run(0, long)).To(BeFalse())
		Expect(machine.Run(0, long[:machine.MaxProgramLen])).To(BeTrue())
	})

	It("ignores instructions after halting", func() {
		Expect(machine.Run(0, []machine.Op{machine.Decr, machine.Check})).To(BeFalse())
		Expect(machine.Run(0, []machine.Op{machine.Check, machine.Decr})).To(BeTrue())
	})
})

var _ = Describe("Encodings", func() {
	It("numbers programs in bijective base 2", func() {
		Expect(machine.Assemble([]machine.Op{machine.Check, machine.Decr})).To(Equal(4))
		Expect(machine.Disassemble(4)).To(Equal([]machine.Op{machine.Check, machine.Decr}))
		Expect(machine.Disassemble(0)).To(BeEmpty())
	})

	It("round trips every program number", func() {
		for n := 0; n < machine.NumPrograms; n++ {
			Expect(machine.Assemble(machine.Disassemble(n))).To(Equal(n))
		}
	})

	It("packs languages into bitmasks", func() {
		Expect(machine.EncodeLanguage(nil)).To(Equal(0))
		Expect(machine.Language(0)).To(BeEmpty())
		Expect(machine.EncodeLanguage([]int{1, 3})).To(Equal(10))
		Expect(machine.Language(10)).To(Equal([]int{1, 3}))
	})

	It("parses and prints opcodes", func() {
		prog, err := machine.ParseProgram([]string{"check", "DECR"})
		Expect(err).NotTo(HaveOccurred())
		Expect(machine.FormatProgram(prog)).To(Equal("[check decr]"))

		_, err = machine.ParseProgram([]string{"jump"})
		Expect(err).To(MatchError(machine.ErrUnknownOp))
	})
})

var _ = Describe("FindSolutions", func() {
	var solutions map[int][]int

	BeforeEach(func() {
		solutions = machine.FindSolutions()
	})

	It("covers every language and every program", func() {
		Expect(solutions).To(HaveLen(16))
		total := 0
		for _, xs := range solutions {
			total += len(xs)
		}
		Expect(total).To(Equal(machine.NumPrograms))
	})

	It("files programs under the language they recognize", func() {
		Expect(solutions[0]).To(ContainElement(0))
		Expect(solutions[5]).To(ContainElement(machine.Assemble(evenNumbers)))
		Expect(solutions[10]).To(ContainElement(machine.Assemble(oddNumbers)))
		Expect(solutions[4]).To(ContainElement(machine.Assemble(justTwo)))
		Expect(machine.Recognize(machine.Assemble(bigNumbers))).To(Equal(12))
	})
})

var _ = Describe("Polynomial machine", func() {
	var (
		ctx context.Context
		m   *circuit.Machine
	)

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		m, err = machine.Compile(ring.Integers{})
		Expect(err).NotTo(HaveOccurred())
	})

	It("exposes one transition per state wire", func() {
		Expect(m.StateWires()).To(Equal([]string{"hb", "lb", "halted", "accepted"}))
		Expect(m.InputWires()).To(Equal([]string{"decr"}))
		for _, w := range m.StateWires() {
			p, ok := m.Transition(w)
			Expect(ok).To(BeTrue())
			Expect(p.IsZero()).To(BeFalse())
		}
	})

	It("takes single steps like the interpreter", func() {
		x, err := m.Step(machine.InitialState(0), sim.Control{machine.WireDecr: big.NewInt(0)})
		Expect(err).NotTo(HaveOccurred())
		Expect(x.IsSet(machine.WireAccepted)).To(BeTrue())
		Expect(x.IsSet(machine.WireHalted)).To(BeTrue())

		x, err = m.Step(machine.InitialState(3), sim.Control{machine.WireDecr: big.NewInt(1)})
		Expect(err).NotTo(HaveOccurred())
		ax, ok := machine.Register(x)
		Expect(ok).To(BeTrue())
		Expect(ax).To(Equal(2))
		Expect(x.IsSet(machine.WireHalted)).To(BeFalse())
	})

	It("agrees with the interpreter on every program and input", func() {
		for n := 0; n < machine.NumPrograms; n++ {
			prog := machine.Disassemble(n)
			for ax := 0; ax < machine.NumInputs; ax++ {
				got, err := machine.RunPolynomial(ctx, m, ax, prog)
				Expect(err).NotTo(HaveOccurred())
				Expect(got).To(Equal(machine.Run(ax, prog)), "program %d %s, AX=%d", n, machine.FormatProgram(prog), ax)
			}
		}
	})

	It("recognizes languages with an ensemble", func() {
		for _, prog := range [][]machine.Op{evenNumbers, oddNumbers, bigNumbers, smallNumbers, justTwo} {
			code, err := machine.RecognizePolynomial(ctx, m, prog)
			Expect(err).NotTo(HaveOccurred())
			Expect(code).To(Equal(machine.Recognize(machine.Assemble(prog))))
		}
	})

	It("agrees over Z/2 as well", func() {
		m2, err := machine.Compile(ring.MustModulus(2))
		Expect(err).NotTo(HaveOccurred())
		code, err := machine.RecognizePolynomial(ctx, m2, oddNumbers)
		Expect(err).NotTo(HaveOccurred())
		Expect(code).To(Equal(10))
	})

	It("collapses over the zero ring", func() {
		m1, err := machine.Compile(ring.MustModulus(1))
		Expect(err).NotTo(HaveOccurred())
		_, err = machine.RunPolynomial(ctx, m1, 1, evenNumbers)
		Expect(err).To(MatchError(sim.ErrInvalidState))
	})

	It("rejects programs past the length limit without stepping", func() {
		long := make([]machine.Op, machine.MaxProgramLen+1)
		for i := range long {
			long[i] = machine.Check
		}
		ok, err := machine.RunPolynomial(ctx, m, 0, long)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
	})
})
