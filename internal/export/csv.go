package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/numtrace/internal/numerics"
)

func writeCSV[S any](w io.Writer, steps []S, cols []Column[S], digits int) error {
	cw := csv.NewWriter(w)

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Key
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, s := range steps {
		record := make([]string, len(cols))
		for i, c := range cols {
			v := c.Value(s)
			if c.Integer {
				record[i] = strconv.Itoa(int(v))
			} else {
				record[i] = FormatValue(v, digits)
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func WriteODECSV(w io.Writer, t *numerics.ODETrace, digits int) error {
	return writeCSV(w, t.Steps, ODEColumns(t.Method), digits)
}

func WriteRootCSV(w io.Writer, t *numerics.RootTrace, digits int) error {
	return writeCSV(w, t.Steps, RootColumns(), digits)
}
