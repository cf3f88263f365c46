// Package allocate searches for mean-variance efficient portfolio
// allocations. Expected returns and the return covariance are estimated from
// historical price series; allocations minimize portfolio variance subject
// to full investment, long-only weights and an optional return floor. The
// constrained problem is handed to a nonlinear minimizer through a penalized
// objective.
package allocate

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"
)

// penalty scales the constraint-violation terms added to the variance
// objective.
const penalty = 1e4

// Problem holds the per-asset expected returns and the covariance of
// returns over the same periods.
type Problem struct {
	Returns []float64
	Cov     *mat.SymDense
}

// Allocation is one portfolio on or near the efficient frontier. Weights
// are non-negative and sum to one.
type Allocation struct {
	Weights []float64
	Return  float64
	Risk    float64 // portfolio variance
}

// Statistics estimates a Problem from aligned price series: rows are
// consecutive observations (oldest first), columns are assets. Per-period
// returns are (p[t+1] - p[t]) / p[t].
func Statistics(prices *mat.Dense) (Problem, error) {
	rows, cols := prices.Dims()
	if rows < 3 {
		return Problem{}, errors.New("allocate: need at least three price observations")
	}

	changes := mat.NewDense(rows-1, cols, nil)
	for j := 0; j < cols; j++ {
		for i := 0; i < rows-1; i++ {
			prev := prices.At(i, j)
			if prev == 0 {
				return Problem{}, fmt.Errorf("allocate: zero price for asset %d at observation %d", j, i)
			}
			changes.Set(i, j, (prices.At(i+1, j)-prev)/prev)
		}
	}

	returns := make([]float64, cols)
	for j := 0; j < cols; j++ {
		returns[j] = stat.Mean(mat.Col(nil, j, changes), nil)
	}

	cov := mat.NewSymDense(cols, nil)
	stat.CovarianceMatrix(cov, changes, nil)

	return Problem{Returns: returns, Cov: cov}, nil
}

// MinimumVariance returns the allocation with the least variance.
func MinimumVariance(p Problem) (Allocation, error) {
	return solve(p, nil)
}

// MaximumReturn returns the allocation with the greatest expected return
// (in practice everything in the single best asset).
func MaximumReturn(p Problem) (Allocation, error) {
	best := 0
	for i, r := range p.Returns {
		if r > p.Returns[best] {
			best = i
		}
	}
	w := make([]float64, len(p.Returns))
	w[best] = 1
	return p.describe(w), nil
}

// EfficientFrontier sweeps count return floors between the minimum-variance
// return and the maximum attainable return, solving one constrained
// minimization per floor.
func EfficientFrontier(p Problem, count int) ([]Allocation, error) {
	if count < 2 {
		return nil, errors.New("allocate: frontier needs at least two points")
	}

	minVar, err := MinimumVariance(p)
	if err != nil {
		return nil, err
	}
	maxRet, err := MaximumReturn(p)
	if err != nil {
		return nil, err
	}

	floors := floats.Span(make([]float64, count), minVar.Return, maxRet.Return)
	frontier := make([]Allocation, 0, count)
	for _, floor := range floors {
		floor := floor
		a, err := solve(p, &floor)
		if err != nil {
			return nil, err
		}
		frontier = append(frontier, a)
	}
	return frontier, nil
}

// solve minimizes portfolio variance with the full-investment and long-only
// constraints folded into the objective as quadratic penalties, plus an
// optional return floor.
func solve(p Problem, returnFloor *float64) (Allocation, error) {
	n := len(p.Returns)
	if n == 0 {
		return Allocation{}, errors.New("allocate: empty problem")
	}
	if r, _ := p.Cov.Dims(); r != n {
		return Allocation{}, errors.New("allocate: covariance size does not match returns")
	}

	objective := func(w []float64) float64 {
		v := variance(p.Cov, w)

		sum := floats.Sum(w)
		v += penalty * (sum - 1) * (sum - 1)

		for _, wi := range w {
			if wi < 0 {
				v += penalty * wi * wi
			}
		}

		if returnFloor != nil {
			if shortfall := *returnFloor - floats.Dot(w, p.Returns); shortfall > 0 {
				v += penalty * shortfall * shortfall
			}
		}
		return v
	}

	uniform := make([]float64, n)
	for i := range uniform {
		uniform[i] = 1 / float64(n)
	}

	result, err := optimize.Minimize(optimize.Problem{Func: objective}, uniform, nil, &optimize.NelderMead{})
	if err != nil {
		return Allocation{}, fmt.Errorf("allocate: minimization failed: %w", err)
	}

	return p.describe(clean(result.X)), nil
}

// clean clamps tiny negative weights left by the penalty method and
// renormalizes to an exact full investment.
func clean(w []float64) []float64 {
	out := make([]float64, len(w))
	for i, wi := range w {
		if wi > 0 {
			out[i] = wi
		}
	}
	sum := floats.Sum(out)
	if sum == 0 {
		// degenerate solver output; fall back to uniform
		for i := range out {
			out[i] = 1 / float64(len(out))
		}
		return out
	}
	floats.Scale(1/sum, out)
	return out
}

func (p Problem) describe(w []float64) Allocation {
	return Allocation{
		Weights: w,
		Return:  floats.Dot(w, p.Returns),
		Risk:    variance(p.Cov, w),
	}
}

// variance evaluates w' * Cov * w.
func variance(cov *mat.SymDense, w []float64) float64 {
	v := mat.NewVecDense(len(w), w)
	return mat.Inner(v, cov, v)
}
