package storage

import "sort"

// Series is a table of metric values sampled over time. Rows[i] holds one
// value per column at Times[i].
type Series struct {
	Columns []string    `json:"columns"`
	Times   []float64   `json:"times"`
	Rows    [][]float64 `json:"rows"`
}

func NewSeries(columns []string) *Series {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Series{Columns: cols}
}

// SeriesFor builds an empty series whose columns are the sorted keys of
// metrics.
func SeriesFor(metrics map[string]float64) *Series {
	cols := make([]string, 0, len(metrics))
	for name := range metrics {
		cols = append(cols, name)
	}
	sort.Strings(cols)
	return &Series{Columns: cols}
}

// Append adds a row; columns missing from values are recorded as 0.
func (s *Series) Append(t float64, values map[string]float64) {
	row := make([]float64, len(s.Columns))
	for i, name := range s.Columns {
		row[i] = values[name]
	}
	s.Times = append(s.Times, t)
	s.Rows = append(s.Rows, row)
}

func (s *Series) Len() int { return len(s.Times) }

// Column returns a copy of the named column.
func (s *Series) Column(name string) ([]float64, bool) {
	idx := -1
	for i, c := range s.Columns {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}

	out := make([]float64, len(s.Rows))
	for i, row := range s.Rows {
		out[i] = row[idx]
	}
	return out, true
}
