package logic

import (
	"github.com/puckline/stats-api/internal/models"
)

// Encoder one-hot encodes categorical fields with a dropped baseline.
// The first value seen per field at fit time becomes the baseline and
// encodes to all zeros, so the indicator columns stay linearly
// independent of the intercept. The fitted schema (ordered column
// identifiers) is an explicit artifact: models capture it at fit time
// and inference rows are reindexed against it.
type Encoder struct {
	fields []string
	index  map[string]int // column id -> schema position; baselines excluded
	schema []string
	fitted bool
}

func NewEncoder() *Encoder {
	return &Encoder{}
}

// Fit learns the value universe for each categorical field over the
// given rows. Value order is first-seen, so the schema is deterministic
// for a fixed input ordering.
func (e *Encoder) Fit(rows []models.FeatureRow, fields []string) {
	e.fields = append([]string(nil), fields...)
	e.index = make(map[string]int)
	e.schema = e.schema[:0]

	for _, f := range fields {
		seen := make(map[string]bool)
		first := true
		for _, row := range rows {
			v, ok := row[f]
			if !ok || seen[v] {
				continue
			}
			seen[v] = true
			if first {
				// Dropped baseline: encodes to all zeros.
				first = false
				continue
			}
			col := columnID(f, v)
			e.index[col] = len(e.schema)
			e.schema = append(e.schema, col)
		}
	}
	e.fitted = true
}

// Schema returns the fitted column order. The returned slice is a copy.
func (e *Encoder) Schema() []string {
	e.mustBeFitted()
	out := make([]string, len(e.schema))
	copy(out, e.schema)
	return out
}

// Transform encodes rows against the fitted schema. Values never seen at
// fit time (and baselines) contribute all-zero indicators; the column
// order is exactly the fitted one on every call.
func (e *Encoder) Transform(rows []models.FeatureRow) []models.FeatureVector {
	e.mustBeFitted()
	out := make([]models.FeatureVector, len(rows))
	for i, row := range rows {
		vec := make(models.FeatureVector, len(e.schema))
		for _, f := range e.fields {
			if v, ok := row[f]; ok {
				if pos, ok := e.index[columnID(f, v)]; ok {
					vec[pos] = 1
				}
			}
		}
		out[i] = vec
	}
	return out
}

func (e *Encoder) mustBeFitted() {
	if !e.fitted {
		panic("logic: Encoder used before Fit")
	}
}

func columnID(field, value string) string {
	return field + "_" + value
}
