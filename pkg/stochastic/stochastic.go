// Package stochastic simulates Brownian motion and the path functionals the
// Itô article plots: quadratic variation, Itô transforms and local time.
//
// All functions are deterministic for a given seed. Slices are indexed by
// time step; the time grid is built with Linspace.
package stochastic

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Defaults used by the article figure.
const (
	DefaultSeed   uint64  = 42
	DefaultPaths          = 5
	DefaultPoints         = 1000
	DefaultEps    float64 = 0.1
)

// DefaultPartitions are the coarse grids compared against the t limit.
var DefaultPartitions = []int{10, 50, 200}

// DefaultLevels are the levels at which local time is measured.
var DefaultLevels = []float64{-0.5, 0, 0.5}

// Linspace returns n evenly spaced samples over [start, stop], both ends
// included. n < 2 returns just start (or nothing for n < 1).
func Linspace(start, stop float64, n int) []float64 {
	if n < 1 {
		return nil
	}
	if n == 1 {
		return []float64{start}
	}
	out := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}

// NewSource returns the generator used for path simulation.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// BrownianPaths simulates n independent standard Brownian motions on the
// uniform grid t. Every path starts at 0 and has increments drawn from
// N(0, dt).
func BrownianPaths(rng *rand.Rand, t []float64, n int) ([][]float64, error) {
	if len(t) < 2 {
		return nil, fmt.Errorf("brownian paths: need at least 2 time points, got %d", len(t))
	}
	if n < 1 {
		return nil, fmt.Errorf("brownian paths: need at least 1 path, got %d", n)
	}
	dt := t[1] - t[0]
	if dt <= 0 {
		return nil, fmt.Errorf("brownian paths: time grid must increase")
	}
	sd := math.Sqrt(dt)
	paths := make([][]float64, n)
	for p := range paths {
		path := make([]float64, len(t))
		for i := 1; i < len(t); i++ {
			path[i] = path[i-1] + rng.NormFloat64()*sd
		}
		paths[p] = path
	}
	return paths, nil
}

// Interp evaluates the piecewise linear interpolant through (xp, fp) at
// each x. xp must be increasing; values outside the range clamp to the end
// points.
func Interp(x, xp, fp []float64) []float64 {
	out := make([]float64, len(x))
	if len(xp) == 0 || len(xp) != len(fp) {
		return out
	}
	j := 0
	for i, v := range x {
		switch {
		case v <= xp[0]:
			out[i] = fp[0]
			continue
		case v >= xp[len(xp)-1]:
			out[i] = fp[len(fp)-1]
			continue
		}
		if v < xp[j] {
			j = 0
		}
		for j+1 < len(xp) && xp[j+1] < v {
			j++
		}
		x0, x1 := xp[j], xp[j+1]
		w := (v - x0) / (x1 - x0)
		out[i] = fp[j] + w*(fp[j+1]-fp[j])
	}
	return out
}

// Diff returns the first differences of x.
func Diff(x []float64) []float64 {
	if len(x) < 2 {
		return nil
	}
	out := make([]float64, len(x)-1)
	for i := range out {
		out[i] = x[i+1] - x[i]
	}
	return out
}

// CumSum returns the running sums of x.
func CumSum(x []float64) []float64 {
	out := make([]float64, len(x))
	sum := 0.0
	for i, v := range x {
		sum += v
		out[i] = sum
	}
	return out
}

// QuadraticVariation returns the running sum of squared increments of
// path. The result has one entry per increment.
func QuadraticVariation(path []float64) []float64 {
	inc := Diff(path)
	for i, v := range inc {
		inc[i] = v * v
	}
	return CumSum(inc)
}

// Transform is a smooth function together with its derivative.
type Transform struct {
	Name   string
	F      func(float64) float64
	FPrime func(float64) float64
}

// Square is f(x) = x².
var Square = Transform{
	Name:   "x²",
	F:      func(x float64) float64 { return x * x },
	FPrime: func(x float64) float64 { return 2 * x },
}

// Exp is f(x) = exp(x).
var Exp = Transform{
	Name:   "exp(x)",
	F:      math.Exp,
	FPrime: math.Exp,
}

// ItoTransform integrates f(X) along path with the Itô correction:
//
//	f(x_0) + Σ f'(x_i) ΔW_i + ½ f'(f'(x_i)) dt
//
// The correction applies f' twice, which equals f'' for exp but not for
// x², where it yields 4x instead of 2. The first entry is f(0).
func ItoTransform(path []float64, dt float64, tr Transform) []float64 {
	if len(path) == 0 {
		return nil
	}
	out := make([]float64, len(path))
	out[0] = tr.F(0)
	acc := tr.F(path[0])
	for i := 0; i+1 < len(path); i++ {
		x := path[i]
		acc += tr.FPrime(x)*(path[i+1]-x) + 0.5*tr.FPrime(tr.FPrime(x))*dt
		out[i+1] = acc
	}
	return out
}

// Apply maps f over path.
func Apply(path []float64, f func(float64) float64) []float64 {
	out := make([]float64, len(path))
	for i, v := range path {
		out[i] = f(v)
	}
	return out
}

// LocalTime approximates the local time of path at level a as the running
// occupation of the band |x-a| < eps, scaled by dt/(2 eps).
func LocalTime(path []float64, a, eps, dt float64) []float64 {
	out := make([]float64, len(path))
	if eps <= 0 {
		return out
	}
	scale := dt / (2 * eps)
	count := 0
	for i, x := range path {
		if math.Abs(x-a) < eps {
			count++
		}
		out[i] = float64(count) * scale
	}
	return out
}
