package symbolic_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/numtrace/internal/symbolic"
)

var _ = Describe("Diff", func() {
	DescribeTable("produces simplified derivatives",
		func(src, variable, want string) {
			d := symbolic.Diff(symbolic.MustParse(src), variable)
			Expect(d.String()).To(Equal(want))
		},
		Entry("quadratic", "x**2 - 4", "x", "2*x"),
		Entry("cubic", "x^3", "x", "3*x**2"),
		Entry("linear", "x - 5", "x", "1"),
		Entry("constant", "1", "x", "0"),
		Entry("sine", "sin(x)", "x", "cos(x)"),
		Entry("cosine", "cos(x)", "x", "-sin(x)"),
		Entry("chain rule", "sin(2*x)", "x", "2*cos(2*x)"),
		Entry("exponential chain", "exp(x^2)", "x", "2*x*exp(x**2)"),
		Entry("natural exponent", "e^x", "x", "E**x"),
		Entry("partial in y", "x*y", "y", "x"),
		Entry("arctangent", "atan(x)", "x", "1/(1 + x**2)"),
		Entry("logarithm", "log(x)", "x", "1/x"),
	)

	DescribeTable("agrees with a central difference",
		func(src string, x float64) {
			e := symbolic.MustParse(src)
			d := symbolic.Diff(e, "x")

			const h = 1e-6
			hi, err := e.Eval(symbolic.Bindings{"x": x + h})
			Expect(err).NotTo(HaveOccurred())
			lo, err := e.Eval(symbolic.Bindings{"x": x - h})
			Expect(err).NotTo(HaveOccurred())
			got, err := d.Eval(symbolic.Bindings{"x": x})
			Expect(err).NotTo(HaveOccurred())

			Expect(got).To(BeNumerically("~", (hi-lo)/(2*h), 1e-5))
		},
		Entry("product and quotient", "sin(x)*exp(x)/(1+x**2)", 0.7),
		Entry("variable exponent", "x**x", 1.3),
		Entry("constant base", "2**x", 0.4),
		Entry("square root", "sqrt(1+x**2)", 2.0),
		Entry("inverse trig", "asin(x/2) + acos(x/3)", 0.5),
		Entry("hyperbolic", "tanh(x) + cosh(x) - sinh(x)", 0.3),
		Entry("tangent", "tan(x)", 0.2),
		Entry("log of polynomial", "log(x**2 + 1)", 1.5),
		Entry("absolute value", "abs(x - 1)", 2.5),
		Entry("nested negation", "-(x - 2)^3", 1.1),
	)

	It("round-trips derivatives through the parser", func() {
		for _, src := range []string{"x**2 - 4", "exp(x^2)*sin(x)", "x/(1+x)", "-x^3 + 2*x"} {
			d := symbolic.Diff(symbolic.MustParse(src), "x")
			again, err := symbolic.Parse(d.String())
			Expect(err).NotTo(HaveOccurred())
			Expect(symbolic.Equal(again, d)).To(BeTrue(), "derivative of %s: %s vs %s", src, d, again)
		}
	})

	Describe("LaTeX", func() {
		DescribeTable("renders",
			func(src, want string) {
				Expect(symbolic.MustParse(src).LaTeX()).To(Equal(want))
			},
			Entry("power", "x**2 - 4", "x^{2} - 4"),
			Entry("coefficient", "2*x", "2 x"),
			Entry("fraction", "sqrt(x)/2", `\frac{\sqrt{x}}{2}`),
			Entry("function", "sin(x)", `\sin{\left(x \right)}`),
			Entry("grouped base", "(x+1)^2", `\left(x + 1\right)^{2}`),
			Entry("pi", "pi*x", `\pi \cdot x`),
		)
	})
})
