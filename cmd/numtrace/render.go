package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/numtrace/internal/analysis"
	"github.com/san-kum/numtrace/internal/experiment"
	"github.com/san-kum/numtrace/internal/export"
	"github.com/san-kum/numtrace/internal/numerics"
	"github.com/san-kum/numtrace/internal/symbolic"
	"github.com/san-kum/numtrace/internal/viz"
)

const (
	svgWidth  = 800
	svgHeight = 400
)

func render(w io.Writer, res *experiment.Result) error {
	switch format {
	case "json":
		return export.WriteJSON(w, export.NewReport(res, digits), true)
	case "csv":
		if res.ODE != nil {
			return export.WriteODECSV(w, res.ODE, digits)
		}
		return export.WriteRootCSV(w, res.Root, digits)
	case "svg":
		if res.ODE != nil {
			return export.WriteODESVG(w, res.ODE, svgWidth, svgHeight)
		}
		return export.WriteRootSVG(w, res.Root, svgWidth, svgHeight)
	case "table":
		return renderTable(w, res)
	default:
		return fmt.Errorf("unknown format: %s (available: table, json, csv, svg)", format)
	}
}

func renderTable(w io.Writer, res *experiment.Result) error {
	theme := viz.GetTheme(themeName)

	fmt.Fprintln(w, viz.Title.Render(fmt.Sprintf("%s  f = %s", res.Method, res.Function)))
	if res.Derivative != "" {
		fmt.Fprintln(w, viz.Metric("f'", res.Derivative))
	}

	if res.ODE != nil {
		fmt.Fprintln(w, viz.ODETable(res.ODE, digits, theme))

		s := analysis.Summarize(res.ODE)
		fmt.Fprintf(w, "%s  %s  %s\n",
			viz.Metric("records", fmt.Sprint(s.Records)),
			viz.Metric("x", export.FormatValue(s.FinalX, digits)),
			viz.Metric("y", export.FormatValue(s.FinalY, digits)),
		)
		if exact != "" && res.ODE.Len() > 0 {
			maxErr, err := maxError(res.ODE)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, viz.Metric("max global error", fmt.Sprintf("%.3e", maxErr)))
		}
		if plot {
			fmt.Fprintln(w, viz.PlotODE(res.ODE, "y(x)"))
		}
		return nil
	}

	fmt.Fprintln(w, viz.RootTable(res.Root, digits, theme))
	fmt.Fprintln(w, viz.RootStatus(res.Root, digits))
	if order, ok := analysis.NewtonOrder(res.Root); ok {
		fmt.Fprintln(w, viz.Metric("observed order", fmt.Sprintf("%.2f", order)))
	}
	if plot {
		fmt.Fprintln(w, viz.PlotRootErrors(res.Root))
	}
	return nil
}

func exactSolution() (numerics.ScalarFunc, error) {
	expr, err := symbolic.Parse(exact)
	if err != nil {
		return nil, fmt.Errorf("exact solution: %w", err)
	}
	return symbolic.Scalar(expr, "x")
}

func maxError(t *numerics.ODETrace) (float64, error) {
	fn, err := exactSolution()
	if err != nil {
		return 0, err
	}
	return analysis.MaxGlobalError(t, fn)
}

// compareMethods runs every integrator at h and, when an exact solution is
// known, again at h/2 to estimate each method's order.
func compareMethods(cmd *cobra.Command, args []string) error {
	if err := applyPreset(cmd, "rk4"); err != nil {
		return err
	}
	applyDefaults(cmd)
	if function == "" {
		return fmt.Errorf("missing function: pass --f or --preset")
	}

	reg := experiment.NewRegistry()
	base := experimentConfig("")

	results, err := experiment.Compare(cmd.Context(), reg, base, args...)
	if err != nil {
		return err
	}

	var fine []*experiment.Result
	if exact != "" {
		half := base
		half.H = base.H / 2
		fine, err = experiment.Compare(cmd.Context(), reg, half, args...)
		if err != nil {
			return err
		}
	}

	var fn numerics.ScalarFunc
	if exact != "" {
		if fn, err = exactSolution(); err != nil {
			return err
		}
	}

	fmt.Printf("comparing integrators for y' = %s (h=%g, x in [%g, %g])\n\n", function, h, x0, xn)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := "METHOD\tRECORDS\tFINAL_Y\tTIME"
	if fn != nil {
		header += "\tMAX_ERROR\tORDER"
	}
	fmt.Fprintln(tw, header)

	series := make([][]float64, 0, len(results))
	names := make([]string, 0, len(results))
	for i, res := range results {
		s := analysis.Summarize(res.ODE)
		row := fmt.Sprintf("%s\t%d\t%s\t%s", res.Method, s.Records, export.FormatValue(s.FinalY, digits), res.Elapsed)

		if fn != nil {
			maxErr, err := analysis.MaxGlobalError(res.ODE, fn)
			if err != nil {
				return err
			}
			order, err := analysis.EmpiricalOrder(res.ODE, fine[i].ODE, fn)
			if err != nil {
				logger.Debug("order undefined", zap.String("method", res.Method), zap.Error(err))
				row += fmt.Sprintf("\t%.3e\t-", maxErr)
			} else {
				row += fmt.Sprintf("\t%.3e\t%.2f", maxErr, order)
			}
		}
		fmt.Fprintln(tw, row)

		series = append(series, res.ODE.Ys())
		names = append(names, res.Method)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if plot {
		fmt.Println()
		fmt.Println(viz.PlotCompare(series, strings.Join(names, " / ")))
	}
	return nil
}
