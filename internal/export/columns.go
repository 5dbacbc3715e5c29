package export

import (
	"bytes"
	"encoding/json"

	"github.com/san-kum/numtrace/internal/numerics"
)

// Column is one field of a trace record. Key names the field in JSON and
// CSV output, Legacy in the HTTP API, Title in tables.
type Column[S any] struct {
	Key     string
	Legacy  string
	Title   string
	Integer bool
	Value   func(S) float64
}

type ODEColumn = Column[numerics.ODEStep]

type RootColumn = Column[numerics.RootStep]

var (
	odeIndex = ODEColumn{Key: "index", Legacy: "paso", Title: "Step", Integer: true,
		Value: func(s numerics.ODEStep) float64 { return float64(s.Index) }}
	odeX = ODEColumn{Key: "x", Legacy: "x", Title: "x",
		Value: func(s numerics.ODEStep) float64 { return s.X }}
	odeY = ODEColumn{Key: "y", Legacy: "y", Title: "y",
		Value: func(s numerics.ODEStep) float64 { return s.Y }}
	odeK1 = ODEColumn{Key: "k1", Legacy: "k1", Title: "k1",
		Value: func(s numerics.ODEStep) float64 { return s.K1 }}
	odeYPred = ODEColumn{Key: "y_pred", Legacy: "y_pred", Title: "y pred",
		Value: func(s numerics.ODEStep) float64 { return s.YPred }}
	odeK2 = ODEColumn{Key: "k2", Legacy: "k2", Title: "k2",
		Value: func(s numerics.ODEStep) float64 { return s.K2 }}
	odeK3 = ODEColumn{Key: "k3", Legacy: "k3", Title: "k3",
		Value: func(s numerics.ODEStep) float64 { return s.K3 }}
	odeK4 = ODEColumn{Key: "k4", Legacy: "k4", Title: "k4",
		Value: func(s numerics.ODEStep) float64 { return s.K4 }}
	odeYNext = ODEColumn{Key: "y_next", Legacy: "y_siguiente", Title: "y next",
		Value: func(s numerics.ODEStep) float64 { return s.YNext }}
)

// ODEColumns lists the fields a method fills, in display order.
func ODEColumns(method string) []ODEColumn {
	if method == numerics.MethodRK4 {
		return []ODEColumn{odeIndex, odeX, odeY, odeK1, odeK2, odeK3, odeK4, odeYNext}
	}
	return []ODEColumn{odeIndex, odeX, odeY, odeK1, odeYPred, odeK2, odeYNext}
}

func RootColumns() []RootColumn {
	return []RootColumn{
		{Key: "iteration", Legacy: "iteracion", Title: "Iter", Integer: true,
			Value: func(s numerics.RootStep) float64 { return float64(s.Iteration) }},
		{Key: "x", Legacy: "x", Title: "x",
			Value: func(s numerics.RootStep) float64 { return s.X }},
		{Key: "fx", Legacy: "f(x)", Title: "f(x)",
			Value: func(s numerics.RootStep) float64 { return s.FX }},
		{Key: "fpx", Legacy: "f'(x)", Title: "f'(x)",
			Value: func(s numerics.RootStep) float64 { return s.FPX }},
		{Key: "x_next", Legacy: "x_siguiente", Title: "x next",
			Value: func(s numerics.RootStep) float64 { return s.XNext }},
		{Key: "error", Legacy: "error", Title: "error",
			Value: func(s numerics.RootStep) float64 { return s.Error }},
	}
}

type Field struct {
	Key   string
	Value any
}

// Row is a record whose JSON form keeps the column order.
type Row []Field

func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Get returns the value stored under key.
func (r Row) Get(key string) (any, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

func rows[S any](steps []S, cols []Column[S], digits int, legacy bool) []Row {
	out := make([]Row, len(steps))
	for i, s := range steps {
		row := make(Row, len(cols))
		for j, c := range cols {
			key := c.Key
			if legacy {
				key = c.Legacy
			}
			v := c.Value(s)
			if c.Integer {
				row[j] = Field{Key: key, Value: int(v)}
			} else {
				row[j] = Field{Key: key, Value: Round(v, digits)}
			}
		}
		out[i] = row
	}
	return out
}

// ODERows renders t as ordered records rounded to digits. With legacy set,
// the HTTP API field names are used.
func ODERows(t *numerics.ODETrace, digits int, legacy bool) []Row {
	return rows(t.Steps, ODEColumns(t.Method), digits, legacy)
}

func RootRows(t *numerics.RootTrace, digits int, legacy bool) []Row {
	return rows(t.Steps, RootColumns(), digits, legacy)
}
