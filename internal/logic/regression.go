package logic

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/puckline/stats-api/internal/models"
)

// machineEps is the float64 machine epsilon, used as the unit of the
// singular-value rank tolerance.
const machineEps = 2.220446049250313e-16

// StatModel is one fitted ordinary-least-squares regression of a single
// stat on the encoder's indicator columns. It owns a copy of the
// feature-column order it was trained with (the expected schema); every
// inference vector must be reindexed to that schema before Predict.
type StatModel struct {
	stat      models.StatDef
	schema    []string
	index     map[string]int
	intercept float64
	coef      []float64
	rows      int
}

// FitStatModel fits the stat on the given design rows. The xs must all
// be aligned to schema; ys holds the per-row target values. The fit is a
// minimum-norm SVD least-squares solve, so rank-deficient designs
// (fewer games than indicator columns) still fit deterministically.
func FitStatModel(stat models.StatDef, schema []string, xs []models.FeatureVector, ys []float64) (*StatModel, error) {
	n := len(xs)
	if n == 0 {
		return nil, fmt.Errorf("stat %s: no training rows", stat.Column)
	}
	if len(ys) != n {
		return nil, fmt.Errorf("stat %s: %d feature rows vs %d targets", stat.Column, n, len(ys))
	}
	d := len(schema)

	// Design matrix with a leading intercept column.
	x := mat.NewDense(n, d+1, nil)
	for i, vec := range xs {
		if len(vec) != d {
			return nil, fmt.Errorf("stat %s: row %d has %d columns, schema has %d", stat.Column, i, len(vec), d)
		}
		x.Set(i, 0, 1)
		for j, v := range vec {
			x.Set(i, j+1, v)
		}
	}
	y := mat.NewVecDense(n, append([]float64(nil), ys...))

	var svd mat.SVD
	if !svd.Factorize(x, mat.SVDThin) {
		return nil, fmt.Errorf("stat %s: SVD factorization failed", stat.Column)
	}
	values := svd.Values(nil)
	tol := math.SmallestNonzeroFloat64
	if len(values) > 0 {
		tol = machineEps * float64(max(n, d+1)) * values[0]
	}
	rank := 0
	for _, v := range values {
		if v > tol {
			rank++
		}
	}
	if rank == 0 {
		return nil, fmt.Errorf("stat %s: zero-rank design matrix", stat.Column)
	}

	var beta mat.VecDense
	svd.SolveVecTo(&beta, y, rank)

	m := &StatModel{
		stat:      stat,
		schema:    append([]string(nil), schema...),
		index:     make(map[string]int, d),
		intercept: beta.AtVec(0),
		coef:      make([]float64, d),
		rows:      n,
	}
	for j := 0; j < d; j++ {
		m.coef[j] = beta.AtVec(j + 1)
	}
	for j, col := range schema {
		m.index[col] = j
	}
	return m, nil
}

// Stat returns the stat definition this model was fitted for.
func (m *StatModel) Stat() models.StatDef { return m.stat }

// Schema returns a copy of the expected feature-column order.
func (m *StatModel) Schema() []string {
	out := make([]string, len(m.schema))
	copy(out, m.schema)
	return out
}

// Rows reports how many training rows the fit used.
func (m *StatModel) Rows() int { return m.rows }

// Reindex aligns a vector described by vecSchema to the model's expected
// schema: columns the vector lacks are zero-filled, extra columns are
// dropped. Reindexing an already-aligned vector is a no-op.
func (m *StatModel) Reindex(vec models.FeatureVector, vecSchema []string) models.FeatureVector {
	out := make(models.FeatureVector, len(m.schema))
	for i, col := range vecSchema {
		if i >= len(vec) {
			break
		}
		if pos, ok := m.index[col]; ok {
			out[pos] = vec[i]
		}
	}
	return out
}

// Predict evaluates the linear model on a vector already aligned to the
// expected schema. Misaligned input is a caller bug.
func (m *StatModel) Predict(vec models.FeatureVector) float64 {
	if len(vec) != len(m.coef) {
		panic(fmt.Sprintf("logic: StatModel %s given %d columns, expected %d (reindex first)",
			m.stat.Column, len(vec), len(m.coef)))
	}
	sum := m.intercept
	for j, v := range vec {
		sum += m.coef[j] * v
	}
	return sum
}
