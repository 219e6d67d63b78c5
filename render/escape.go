package render

import (
	"math"
)

// EscapeTime iterates z = z^power + c from z = 0, with c = x + iy, and returns
// the number of iterations performed before |z| reached bound. Points that
// never escape return maxIterations; a c that already lies on or outside the
// bound returns 0.
//
// A non-finite squared magnitude (overflow in r^power, or Inf*0 in the polar
// form) counts as escaped at the iteration that produced it.
func EscapeTime(x, y float64, maxIterations int, bound float64, power int) int {
	bound2 := bound * bound
	if escaped(x*x+y*y, bound2) {
		return 0
	}
	if power == 2 {
		return quadratic(x, y, maxIterations, bound2)
	}
	return polar(x, y, maxIterations, bound2, power)
}

func escaped(mag2, bound2 float64) bool {
	if math.IsNaN(mag2) || math.IsInf(mag2, 0) {
		return true
	}
	return mag2 >= bound2
}

// quadratic is the z^2 + c loop, expanded to avoid trigonometry.
func quadratic(x, y float64, maxIterations int, bound2 float64) int {
	var re, im float64
	i := 0
	for i < maxIterations && !escaped(re*re+im*im, bound2) {
		re, im = re*re-im*im+x, 2*re*im+y
		i++
	}
	return i
}

func polar(x, y float64, maxIterations int, bound2 float64, power int) int {
	var re, im float64
	i := 0
	for i < maxIterations && !escaped(re*re+im*im, bound2) {
		re, im = polarPow(re, im, power)
		re += x
		im += y
		i++
	}
	return i
}

// polarPow raises re + i*im to an integer power through r^p * e^(i*p*θ).
func polarPow(re, im float64, power int) (float64, float64) {
	r := math.Sqrt(re*re + im*im)

	// atan2(0, 0) is an undefined angle
	theta := 0.0
	if r > 0 {
		theta = math.Atan2(im, re)
	}

	rp := math.Pow(r, float64(power))
	t := theta * float64(power)
	return rp * math.Cos(t), rp * math.Sin(t)
}
