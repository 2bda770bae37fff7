package plot

import (
	"math"
	"strconv"
)

// Ticks returns round tick positions covering [lo, hi] with roughly
// target intervals, along with the step between them.
func Ticks(lo, hi float64, target int) ([]float64, float64) {
	if target < 1 {
		target = 1
	}
	if !(hi > lo) || math.IsInf(hi-lo, 0) || math.IsNaN(hi-lo) {
		return []float64{lo}, 0
	}
	step := niceStep((hi - lo) / float64(target))
	start := math.Ceil(lo/step-1e-9) * step
	var ticks []float64
	for i := 0; ; i++ {
		v := start + float64(i)*step
		if v > hi+step*1e-9 {
			break
		}
		ticks = append(ticks, cleanZero(v))
	}
	return ticks, step
}

func niceStep(raw float64) float64 {
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch norm := raw / mag; {
	case norm < 1.5:
		return mag
	case norm < 3:
		return 2 * mag
	case norm < 7:
		return 5 * mag
	default:
		return 10 * mag
	}
}

// FormatTick prints v with as many decimals as step needs.
func FormatTick(v, step float64) string {
	decimals := 0
	if step > 0 && step < 1 {
		decimals = int(math.Ceil(-math.Log10(step) - 1e-9))
	}
	return strconv.FormatFloat(cleanZero(roundTo(v, decimals)), 'f', decimals, 64)
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

func cleanZero(v float64) float64 {
	if math.Abs(v) < 1e-12 {
		return 0
	}
	return v
}
