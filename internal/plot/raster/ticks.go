package raster

import (
	"math"
	"strconv"
)

// valueRange is the visible span of a numeric axis.
type valueRange struct {
	Min, Max float64
}

func (r valueRange) span() float64 { return r.Max - r.Min }

// dataRange returns the finite min/max of the values; ok is false when there are none.
func dataRange(values ...[]float64) (valueRange, bool) {
	r := valueRange{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, vs := range values {
		for _, v := range vs {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			r.Min = math.Min(r.Min, v)
			r.Max = math.Max(r.Max, v)
		}
	}
	if math.IsInf(r.Min, 1) {
		return valueRange{}, false
	}
	return r, true
}

// autorange widens the data range: includeZero pins the axis at zero (bars),
// otherwise 5% padding is added on both sides. The result is finite with Max > Min.
func autorange(r valueRange, ok, includeZero bool) valueRange {
	if !ok {
		return valueRange{Min: -1, Max: 4}
	}
	if includeZero {
		r.Min = math.Min(r.Min, 0)
		r.Max = math.Max(r.Max, 0)
	}
	if r.span() == 0 {
		if r.Min == 0 {
			return valueRange{Min: 0, Max: 1}
		}
		pad := math.Abs(r.Min) * 0.5
		switch {
		case includeZero && r.Min > 0:
			r = valueRange{Min: 0, Max: r.Max + pad}
		case includeZero && r.Max < 0:
			r = valueRange{Min: r.Min - pad, Max: 0}
		default:
			r = valueRange{Min: r.Min - pad, Max: r.Max + pad}
		}
		return r.finite()
	}
	// halves keep the span finite for values near the float64 limits
	pad := (r.Max/2 - r.Min/2) * 0.1
	if includeZero {
		if r.Max > 0 {
			r.Max += pad
		}
		if r.Min < 0 {
			r.Min -= pad
		}
		return r.finite()
	}
	return valueRange{Min: r.Min - pad, Max: r.Max + pad}.finite()
}

// finite clamps the range into float64 and widens it when padding was lost to rounding.
func (r valueRange) finite() valueRange {
	r.Min = math.Max(r.Min, -math.MaxFloat64)
	r.Max = math.Min(r.Max, math.MaxFloat64)
	if !(r.Max > r.Min) {
		r = valueRange{Min: r.Min - 1, Max: r.Max + 1}
	}
	return r
}

// fraction maps v onto 0..1 across the range without overflowing the span.
func (r valueRange) fraction(v float64) float64 {
	return (v/2 - r.Min/2) / (r.Max/2 - r.Min/2)
}

// niceNum rounds x to 1, 2, 5 or 10 times a power of ten.
func niceNum(x float64, round bool) float64 {
	if x <= 0 {
		return 1
	}
	exp := math.Floor(math.Log10(x))
	f := x / math.Pow(10, exp)
	var nf float64
	if round {
		switch {
		case f < 1.5:
			nf = 1
		case f < 3:
			nf = 2
		case f < 7:
			nf = 5
		default:
			nf = 10
		}
	} else {
		switch {
		case f <= 1:
			nf = 1
		case f <= 2:
			nf = 2
		case f <= 5:
			nf = 5
		default:
			nf = 10
		}
	}
	return nf * math.Pow(10, exp)
}

// maxTickCount bounds the tick list whatever the range looks like.
const maxTickCount = 64

// ticks returns evenly spaced round values inside r, about maxTicks of them.
func ticks(r valueRange, maxTicks int) (values []float64, step float64) {
	if maxTicks < 2 {
		maxTicks = 2
	}
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) || math.IsInf(r.Min, 0) || math.IsInf(r.Max, 0) || r.Max <= r.Min {
		return nil, 0
	}

	d := float64(maxTicks - 1)
	if span := r.span(); !math.IsInf(span, 0) {
		step = niceNum(niceNum(span, false)/d, true)
	} else {
		step = niceNum(r.Max/d-r.Min/d, true)
	}
	if step <= 0 || math.IsInf(step, 0) {
		return nil, 0
	}

	// integer tick indices, at most maxTickCount of them
	first := math.Ceil(r.Min / step)
	count := math.Floor(r.Max/step-first+1e-9) + 1
	if count <= 0 {
		return nil, step
	}
	n := maxTickCount
	if count < float64(maxTickCount) {
		n = int(count)
	}

	p := math.Pow(10, float64(stepDecimals(step)))
	values = make([]float64, 0, n)
	for i := 0; i < n; i++ {
		v := (first + float64(i)) * step
		if rounded := math.Round(v*p) / p; !math.IsInf(rounded, 0) && !math.IsNaN(rounded) {
			v = rounded
		}
		if v == 0 {
			// drop the sign of -0
			v = 0
		}
		values = append(values, v)
	}
	return values, step
}

func stepDecimals(step float64) int {
	if step > 0 && step < 1 {
		return int(math.Ceil(-math.Log10(step) - 1e-9))
	}
	return 0
}

// formatTick prints a tick value with as many decimals as the step needs.
func formatTick(v, step float64) string {
	decimals := stepDecimals(step)
	abs := math.Abs(v)
	if abs >= 1e15 {
		return strconv.FormatFloat(v, 'g', 6, 64)
	}
	if decimals == 0 && abs >= 1e6 {
		switch {
		case abs >= 1e9:
			return strconv.FormatFloat(v/1e9, 'f', -1, 64) + "B"
		default:
			return strconv.FormatFloat(v/1e6, 'f', -1, 64) + "M"
		}
	}
	if decimals == 0 && abs >= 1e3 && step >= 1e3 {
		return strconv.FormatFloat(v/1e3, 'f', -1, 64) + "k"
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
