package symbolic_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/numtrace/internal/symbolic"
)

var _ = Describe("Eval", func() {
	DescribeTable("reports domain errors",
		func(src string, x float64) {
			e := symbolic.MustParse(src)
			_, err := e.Eval(symbolic.Bindings{"x": x})
			Expect(err).To(MatchError(symbolic.ErrDomain))
		},
		Entry("division by zero", "1/x", 0.0),
		Entry("log of negative", "log(x)", -1.0),
		Entry("log of zero", "ln(x)", 0.0),
		Entry("sqrt of negative", "sqrt(x)", -4.0),
		Entry("asin outside range", "asin(x)", 2.0),
		Entry("fractional power of negative", "x^0.5", -2.0),
		Entry("zero to negative power", "x^-2", 0.0),
		Entry("overflow", "exp(x)", 1000.0),
	)

	It("reports unbound variables", func() {
		_, err := symbolic.MustParse("x + y").Eval(symbolic.Bindings{"x": 1})
		Expect(err).To(MatchError(symbolic.ErrUnbound))
		Expect(err.Error()).To(ContainSubstring("y"))
	})

	Describe("binding to numeric functions", func() {
		It("binds x and y for an ODE", func() {
			f, err := symbolic.ODE(symbolic.MustParse("x + y"))
			Expect(err).NotTo(HaveOccurred())
			v, err := f(1, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal(3.0))
		})

		It("accepts constant right-hand sides", func() {
			f, err := symbolic.ODE(symbolic.MustParse("2"))
			Expect(err).NotTo(HaveOccurred())
			Expect(f(5, 7)).To(Equal(2.0))
		})

		It("rejects foreign variables", func() {
			_, err := symbolic.ODE(symbolic.MustParse("x + t"))
			Expect(err).To(MatchError(symbolic.ErrVariable))

			_, err = symbolic.Scalar(symbolic.MustParse("x*y"), "x")
			Expect(err).To(MatchError(symbolic.ErrVariable))
		})

		It("binds a scalar function", func() {
			f, err := symbolic.Scalar(symbolic.MustParse("x**2 - 4"), "x")
			Expect(err).NotTo(HaveOccurred())
			Expect(f(3)).To(Equal(5.0))
		})

		It("surfaces domain errors from the bound function", func() {
			f, err := symbolic.Scalar(symbolic.MustParse("log(x)"), "x")
			Expect(err).NotTo(HaveOccurred())
			_, err = f(-1)
			Expect(err).To(MatchError(symbolic.ErrDomain))
		})
	})
})
