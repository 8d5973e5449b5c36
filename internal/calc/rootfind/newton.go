package rootfind

import (
	"errors"
	"fmt"
	"math"
)

const (
	DefaultMaxIterations = 100
	DefaultTolerance     = 0.001
)

var (
	ErrZeroDerivative  = errors.New("derivative is zero")
	ErrNonConvergence  = errors.New("did not converge")
	ErrInvalidArgument = errors.New("invalid argument")
)

type Func func(x float64) float64

type Result struct {
	Root       float64
	Iterations int
}

// Newton finds x with |f(x)| < tol using x <- x - f(x)/df(x).
// Iterations counts the updates applied before convergence.
func Newton(f, df Func, x0, tol float64, maxIter int) (Result, error) {
	if f == nil || df == nil {
		return Result{}, fmt.Errorf("%w: nil function", ErrInvalidArgument)
	}
	if tol <= 0 || maxIter <= 0 {
		return Result{}, fmt.Errorf("%w: tolerance %g, max iterations %d", ErrInvalidArgument, tol, maxIter)
	}

	x := x0
	for i := 0; i < maxIter; i++ {
		fx := f(x)
		if math.Abs(fx) < tol {
			return Result{Root: x, Iterations: i}, nil
		}
		dfx := df(x)
		if dfx == 0 {
			return Result{}, fmt.Errorf("%w at x=%g (iteration %d)", ErrZeroDerivative, x, i+1)
		}
		x = x - fx/dfx
	}
	// the last update still gets its check
	if math.Abs(f(x)) < tol {
		return Result{Root: x, Iterations: maxIter}, nil
	}
	return Result{}, fmt.Errorf("%w after %d iterations (x=%g)", ErrNonConvergence, maxIter, x)
}
