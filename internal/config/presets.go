package config

import "sort"

// Preset is a ready-made problem. Exact, when set, is the closed-form
// solution y(x) of an initial value problem.
type Preset struct {
	Description string  `yaml:"description"`
	Method      string  `yaml:"method"`
	Function    string  `yaml:"function"`
	Exact       string  `yaml:"exact,omitempty"`
	X0          float64 `yaml:"x0"`
	Y0          float64 `yaml:"y0"`
	H           float64 `yaml:"h"`
	Xn          float64 `yaml:"xn"`
	Tol         float64 `yaml:"tol"`
	MaxIter     int     `yaml:"max_iter"`
}

func (p *Preset) IsRoot() bool { return p.Method == "newton" }

var Presets = map[string]*Preset{
	"exponential": {
		Description: "y' = y, y(0) = 1",
		Method:      "rk4", Function: "y", Exact: "exp(x)",
		X0: 0, Y0: 1, H: 0.1, Xn: 1,
	},
	"quadratic": {
		Description: "y' = x + y, y(0) = 1",
		Method:      "euler", Function: "x + y", Exact: "2*exp(x) - x - 1",
		X0: 0, Y0: 1, H: 0.1, Xn: 1,
	},
	"logistic": {
		Description: "y' = y*(1 - y), y(0) = 0.1",
		Method:      "rk4", Function: "y*(1 - y)", Exact: "1/(1 + 9*exp(-x))",
		X0: 0, Y0: 0.1, H: 0.25, Xn: 5,
	},
	"sqrt2": {
		Description: "x^2 - 2 = 0 from x0 = 1",
		Method:      "newton", Function: "x**2 - 2",
		X0: 1, Tol: 1e-10, MaxIter: 50,
	},
	"cubic": {
		Description: "x^3 - 2x - 5 = 0 from x0 = 2",
		Method:      "newton", Function: "x**3 - 2*x - 5",
		X0: 2, Tol: 1e-12, MaxIter: 50,
	},
	"cosine": {
		Description: "cos(x) = x from x0 = 1",
		Method:      "newton", Function: "cos(x) - x",
		X0: 1, Tol: 1e-12, MaxIter: 50,
	},
}

func GetPreset(name string) *Preset {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
