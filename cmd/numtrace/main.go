package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/numtrace/internal/config"
	"github.com/san-kum/numtrace/internal/experiment"
	"github.com/san-kum/numtrace/internal/export"
	"github.com/san-kum/numtrace/internal/logging"
	"github.com/san-kum/numtrace/internal/server"
	"github.com/san-kum/numtrace/internal/storage"
	"github.com/san-kum/numtrace/internal/symbolic"
	"github.com/san-kum/numtrace/internal/tui"
	"github.com/san-kum/numtrace/internal/viz"
)

var (
	dataDir    string
	configFile string
	debug      bool

	function string
	x0       float64
	y0       float64
	h        float64
	xn       float64
	tol      float64
	maxIter  int
	guard    float64

	format    string
	digits    int
	plot      bool
	exact     string
	themeName string
	preset    string
	save      bool

	note      string
	variable  string
	problemID string
	host      string
	port      int
)

var (
	cfg    *config.Config
	logger *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "numtrace",
		Short:         "step-by-step traces of numerical methods",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, err = logging.New(cfg.Debug)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".numtrace", "data directory for saved problems")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging")

	eulerCmd := &cobra.Command{
		Use:     "euler",
		Aliases: []string{"heun"},
		Short:   "solve y' = f(x, y) with the improved Euler method",
		Args:    cobra.NoArgs,
		RunE:    solve("euler"),
	}
	odeFlags(eulerCmd)

	rk4Cmd := &cobra.Command{
		Use:   "rk4",
		Short: "solve y' = f(x, y) with the classical Runge-Kutta method",
		Args:  cobra.NoArgs,
		RunE:  solve("rk4"),
	}
	odeFlags(rk4Cmd)

	newtonCmd := &cobra.Command{
		Use:   "newton",
		Short: "find a root of f(x) with Newton-Raphson",
		Args:  cobra.NoArgs,
		RunE:  solve("newton"),
	}
	newtonCmd.Flags().StringVar(&function, "f", "", "f(x)")
	newtonCmd.Flags().Float64Var(&x0, "x0", 0, "initial guess")
	newtonCmd.Flags().Float64Var(&tol, "tol", config.DefaultTol, "tolerance on |x_next - x|")
	newtonCmd.Flags().IntVar(&maxIter, "max-iter", config.DefaultMaxIter, "maximum iterations")
	newtonCmd.Flags().Float64Var(&guard, "guard", 0, "treat |f'(x)| <= guard as zero")
	outputFlags(newtonCmd)
	problemFlags(newtonCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [method...]",
		Short: "run the same initial value problem through several integrators",
		RunE:  compareMethods,
	}
	compareCmd.Flags().StringVar(&function, "f", "", "f(x, y)")
	compareCmd.Flags().Float64Var(&x0, "x0", 0, "initial x")
	compareCmd.Flags().Float64Var(&y0, "y0", 0, "initial y")
	compareCmd.Flags().Float64Var(&h, "h", config.DefaultH, "step size")
	compareCmd.Flags().Float64Var(&xn, "xn", 1, "final x")
	compareCmd.Flags().StringVar(&exact, "exact", "", "closed-form solution y(x) for error and order estimates")
	compareCmd.Flags().StringVar(&preset, "preset", "", "use preset problem")
	compareCmd.Flags().IntVar(&digits, "digits", export.DefaultDigits, "digits after the decimal point")
	compareCmd.Flags().BoolVar(&plot, "plot", false, "overlay the trajectories")

	deriveCmd := &cobra.Command{
		Use:   "derive [expression]",
		Short: "differentiate an expression symbolically",
		Args:  cobra.ExactArgs(1),
		RunE:  derive,
	}
	deriveCmd.Flags().StringVar(&variable, "var", "x", "variable to differentiate by")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	browseCmd := &cobra.Command{
		Use:   "browse [method]",
		Short: "step through a trace interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE:  browse,
	}
	browseCmd.Flags().StringVar(&function, "f", "", "f(x, y), or f(x) for newton")
	browseCmd.Flags().Float64Var(&x0, "x0", 0, "initial x")
	browseCmd.Flags().Float64Var(&y0, "y0", 0, "initial y")
	browseCmd.Flags().Float64Var(&h, "h", config.DefaultH, "step size")
	browseCmd.Flags().Float64Var(&xn, "xn", 1, "final x")
	browseCmd.Flags().IntVar(&digits, "digits", export.DefaultDigits, "digits after the decimal point")
	browseCmd.Flags().StringVar(&preset, "preset", "", "use preset problem")
	browseCmd.Flags().Float64Var(&tol, "tol", config.DefaultTol, "tolerance (newton)")
	browseCmd.Flags().IntVar(&maxIter, "max-iter", config.DefaultMaxIter, "maximum iterations (newton)")
	browseCmd.Flags().StringVar(&problemID, "problem", "", "browse a saved problem")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the methods over HTTP",
		Args:  cobra.NoArgs,
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&host, "host", config.DefaultHost, "listen host")
	serveCmd.Flags().IntVar(&port, "port", config.DefaultPort, "listen port")

	problemsCmd := &cobra.Command{
		Use:   "problems",
		Short: "list saved problems",
		Args:  cobra.NoArgs,
		RunE:  listProblems,
	}

	showCmd := &cobra.Command{
		Use:   "show [problem_id]",
		Short: "solve a saved problem again",
		Args:  cobra.ExactArgs(1),
		RunE:  showProblem,
	}
	outputFlags(showCmd)

	rmCmd := &cobra.Command{
		Use:   "rm [problem_id]",
		Short: "delete a saved problem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).Delete(args[0])
		},
	}
	problemsCmd.AddCommand(showCmd, rmCmd)

	rootCmd.AddCommand(eulerCmd, rk4Cmd, newtonCmd, compareCmd, deriveCmd, presetsCmd, browseCmd, serveCmd, problemsCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, viz.Failure(err))
		stop()
		os.Exit(1)
	}
}

func odeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&function, "f", "", "f(x, y)")
	cmd.Flags().Float64Var(&x0, "x0", 0, "initial x")
	cmd.Flags().Float64Var(&y0, "y0", 0, "initial y")
	cmd.Flags().Float64Var(&h, "h", config.DefaultH, "step size")
	cmd.Flags().Float64Var(&xn, "xn", 1, "final x")
	cmd.Flags().StringVar(&exact, "exact", "", "closed-form solution y(x) to report the global error")
	outputFlags(cmd)
	problemFlags(cmd)
}

func outputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&format, "format", "table", "output format: table, json, csv or svg")
	cmd.Flags().IntVar(&digits, "digits", export.DefaultDigits, "digits after the decimal point")
	cmd.Flags().BoolVar(&plot, "plot", false, "draw the trace below the table")
	cmd.Flags().StringVar(&themeName, "theme", "", "table theme: "+strings.Join(viz.ThemeNames(), ", "))
}

func problemFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "use preset problem")
	cmd.Flags().BoolVar(&save, "save", false, "save the problem to the data directory")
	cmd.Flags().StringVar(&note, "note", "", "note stored with --save")
}

// loadConfig layers the config file, the environment and --debug.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	c := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		c = loaded
	}
	if err := c.ApplyEnv(); err != nil {
		return nil, err
	}
	if debug {
		c.Debug = true
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// applyPreset fills every problem flag the user did not set.
func applyPreset(cmd *cobra.Command, method string) error {
	if preset == "" {
		return nil
	}
	p := config.GetPreset(preset)
	if p == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}
	if p.IsRoot() != (method == "newton") {
		return fmt.Errorf("preset %s is for %s, not %s", preset, p.Method, method)
	}

	set := func(name string, apply func()) {
		if f := cmd.Flags().Lookup(name); f != nil && !f.Changed {
			apply()
		}
	}
	set("f", func() { function = p.Function })
	set("x0", func() { x0 = p.X0 })
	set("y0", func() { y0 = p.Y0 })
	set("h", func() { h = p.H })
	set("xn", func() { xn = p.Xn })
	set("tol", func() { tol = p.Tol })
	set("max-iter", func() { maxIter = p.MaxIter })
	set("exact", func() { exact = p.Exact })
	return nil
}

// applyDefaults takes unset numeric settings from the config file.
func applyDefaults(cmd *cobra.Command) {
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}
	if !changed("h") && preset == "" {
		h = cfg.ODE.H
	}
	if !changed("tol") && preset == "" {
		tol = cfg.Newton.Tol
	}
	if !changed("max-iter") && preset == "" {
		maxIter = cfg.Newton.MaxIter
	}
	if !changed("guard") {
		guard = cfg.Newton.DerivativeGuard
	}
	if !changed("digits") {
		digits = cfg.Precision
	}
}

func experimentConfig(method string) experiment.Config {
	return experiment.Config{
		Method:          method,
		Function:        function,
		X0:              x0,
		Y0:              y0,
		H:               h,
		Xn:              xn,
		Tol:             tol,
		MaxIter:         maxIter,
		DerivativeGuard: guard,
	}
}

func run(ctx context.Context, expCfg experiment.Config) (*experiment.Result, error) {
	if expCfg.Function == "" {
		return nil, errors.New("missing function: pass --f or --preset")
	}

	exp := experiment.New(expCfg)
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return nil, err
	}

	logger.Debug("running",
		zap.String("method", expCfg.Method),
		zap.String("function", expCfg.Function),
	)
	res, err := exp.Run(ctx)
	if res != nil {
		logger.Debug("run finished",
			zap.String("method", res.Method),
			zap.Duration("elapsed", res.Elapsed),
			zap.Error(err),
		)
	}
	return res, err
}

func solve(method string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := applyPreset(cmd, method); err != nil {
			return err
		}
		applyDefaults(cmd)

		expCfg := experimentConfig(method)
		res, err := run(cmd.Context(), expCfg)
		if res == nil {
			return err
		}

		// A failed run still shows the records computed before the failure.
		if rerr := render(os.Stdout, res); rerr != nil {
			return rerr
		}
		if err != nil {
			return err
		}

		if save {
			st := storage.New(dataDir)
			if err := st.Init(); err != nil {
				return err
			}
			id, err := st.Save(expCfg, note)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "problem id: %s\n", id)
		}
		return nil
	}
}

func derive(cmd *cobra.Command, args []string) error {
	expr, err := symbolic.Parse(args[0])
	if err != nil {
		return err
	}
	d := symbolic.Diff(expr, variable)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "f\t%s\n", expr)
	fmt.Fprintf(w, "f'\t%s\n", d)
	fmt.Fprintf(w, "latex\t%s\n", d.LaTeX())
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMETHOD\tPROBLEM")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, p.Method, p.Description)
	}
	return w.Flush()
}

func browse(cmd *cobra.Command, args []string) error {
	if problemID != "" {
		applyDefaults(cmd)
		p, err := storage.New(dataDir).Load(problemID)
		if err != nil {
			return err
		}
		res, err := run(cmd.Context(), p.Config)
		if res == nil {
			return err
		}
		if berr := tui.RunBrowser(res, digits); berr != nil {
			return berr
		}
		return err
	}

	method := "rk4"
	if len(args) > 0 {
		method = args[0]
	}
	canonical, _, err := experiment.NewRegistry().Resolve(method)
	if err != nil {
		return err
	}
	if err := applyPreset(cmd, canonical); err != nil {
		return err
	}
	applyDefaults(cmd)

	res, err := run(cmd.Context(), experimentConfig(canonical))
	if res == nil {
		return err
	}
	if berr := tui.RunBrowser(res, digits); berr != nil {
		return berr
	}
	return err
}

func serve(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = host
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = port
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	return server.New(cfg, logger).Run(cmd.Context())
}

func listProblems(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	problems, err := st.List()
	if err != nil {
		return err
	}

	if len(problems) == 0 {
		fmt.Println("no problems found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMETHOD\tFUNCTION\tSAVED\tNOTE")

	for _, p := range problems {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			p.ID,
			p.Config.Method,
			p.Config.Function,
			p.Timestamp.Format("2006-01-02 15:04:05"),
			p.Note,
		)
	}

	return w.Flush()
}

func showProblem(cmd *cobra.Command, args []string) error {
	applyDefaults(cmd)

	p, err := storage.New(dataDir).Load(args[0])
	if err != nil {
		return err
	}
	logger.Debug("loaded problem", zap.String("id", p.ID), zap.Time("saved", p.Timestamp))

	res, err := run(cmd.Context(), p.Config)
	if res == nil {
		return err
	}
	if rerr := render(os.Stdout, res); rerr != nil {
		return rerr
	}
	return err
}
