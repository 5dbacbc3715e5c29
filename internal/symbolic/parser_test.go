package symbolic_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/numtrace/internal/symbolic"
)

func evalAt(src string, b symbolic.Bindings) float64 {
	e, err := symbolic.Parse(src)
	Expect(err).NotTo(HaveOccurred())
	v, err := e.Eval(b)
	Expect(err).NotTo(HaveOccurred())
	return v
}

var _ = Describe("Parse", func() {
	DescribeTable("renders in canonical form",
		func(src, want string) {
			e, err := symbolic.Parse(src)
			Expect(err).NotTo(HaveOccurred())
			Expect(e.String()).To(Equal(want))
		},
		Entry("difference", "x**2 - 4", "x**2 - 4"),
		Entry("caret power", "x^2-4", "x**2 - 4"),
		Entry("sum", "x+y", "x + y"),
		Entry("grouped difference", "x - (y - 1)", "x - (y - 1)"),
		Entry("quotient of sum", "1/(1+x^2)", "1/(1 + x**2)"),
		Entry("constant folding", "2*3 + x", "6 + x"),
		Entry("negated function", "-sin(x)", "-sin(x)"),
		Entry("ln alias", "ln(x)", "log(x)"),
		Entry("scientific notation", "1e-3*x", "0.001*x"),
		Entry("named constant", "2*pi", "2*pi"),
	)

	DescribeTable("evaluates with the usual precedence",
		func(src string, x, want float64) {
			Expect(evalAt(src, symbolic.Bindings{"x": x, "y": 2})).To(BeNumerically("~", want, 1e-12))
		},
		Entry("power binds tighter than unary minus", "-x^2", 3.0, -9.0),
		Entry("power is right associative", "2^3^2", 0.0, 512.0),
		Entry("double star power", "x**0.5", 4.0, 2.0),
		Entry("negative exponent", "x^-1", 4.0, 0.25),
		Entry("division is left associative", "x/2/2", 8.0, 2.0),
		Entry("subtraction is left associative", "x-1-1", 5.0, 3.0),
		Entry("two variables", "x*y + y", 1.5, 5.0),
		Entry("functions", "exp(0) + cos(x) + sqrt(16)", 0.0, 6.0),
		Entry("euler constant", "log(e)", 0.0, 1.0),
		Entry("pi", "sin(pi/2)", 0.0, 1.0),
	)

	DescribeTable("rejects malformed input",
		func(src string) {
			_, err := symbolic.Parse(src)
			Expect(err).To(MatchError(symbolic.ErrSyntax))

			var serr *symbolic.SyntaxError
			Expect(err).To(BeAssignableToTypeOf(serr))
		},
		Entry("empty", "   "),
		Entry("implicit multiplication", "2x"),
		Entry("unbalanced parenthesis", "(x+1"),
		Entry("dangling operator", "x +"),
		Entry("unknown character", "x $ 1"),
		Entry("unknown function", "foo(x)"),
		Entry("function without call", "sin x"),
		Entry("stray closing parenthesis", "x)"),
	)

	It("reports the failing position", func() {
		_, err := symbolic.Parse("x + $")
		serr, ok := err.(*symbolic.SyntaxError)
		Expect(ok).To(BeTrue())
		Expect(serr.Pos).To(Equal(4))
	})

	It("lists free variables", func() {
		e := symbolic.MustParse("x*y + sin(z) - pi")
		Expect(symbolic.Variables(e)).To(Equal([]string{"x", "y", "z"}))
	})

	It("panics in MustParse on bad input", func() {
		Expect(func() { symbolic.MustParse("2x") }).To(Panic())
	})

	It("keeps the value of a folded expression", func() {
		Expect(evalAt("2^0.5", nil)).To(BeNumerically("~", math.Sqrt2, 1e-15))
	})
})
