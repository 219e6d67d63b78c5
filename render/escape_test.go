package render

import (
	"errors"
	"math"
	"strconv"
	"testing"

	mandel "github.com/marben/mandel_data"
)

func TestEscapeTime(t *testing.T) {
	tests := []struct {
		name          string
		x, y          float64
		maxIterations int
		bound         float64
		power         int
		want          int
	}{
		{"outside bound escapes immediately", 10, 10, 100, 2, 2, 0},
		{"on the bound escapes immediately", 2, 0, 100, 2, 2, 0},
		{"origin never escapes", 0, 0, 100, 2, 2, 100},
		{"period two orbit", -1, 0, 50, 2, 2, 50},
		{"main cardioid", -0.5, 0, 10, 2, 2, 10},
		{"real axis outside set", 0.5, 0, 10, 2, 2, 5},
		{"upper plane", -0.5, 1, 10, 2, 2, 4},
		{"single iteration budget", 0.1, 0.1, 1, 2, 2, 1},
		{"large bound keeps point longer", 0.5, 1, 10, 4, 2, 4},
		{"power one origin", 0, 0, 20, 2, 1, 20},
		{"cubic origin", 0, 0, 100, 2, 3, 100},
		{"cubic outside bound", 3, 0, 100, 2, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EscapeTime(tt.x, tt.y, tt.maxIterations, tt.bound, tt.power)
			if got != tt.want {
				t.Errorf("EscapeTime(%v, %v, %d, %v, %d) = %d, want %d",
					tt.x, tt.y, tt.maxIterations, tt.bound, tt.power, got, tt.want)
			}
		})
	}
}

func TestEscapeTimeOriginAnyPower(t *testing.T) {
	for power := 1; power <= 12; power++ {
		for _, bound := range []float64{0.5, 2, 100} {
			if got := EscapeTime(0, 0, 100, bound, power); got != 100 {
				t.Errorf("power %d bound %v: got %d, want 100", power, bound, got)
			}
		}
	}
}

// Every bound that passes validation keeps the origin inside the set; a bound
// whose square underflows would make the origin escape at iteration 0.
func TestEscapeTimeTinyBound(t *testing.T) {
	for _, bound := range []float64{1e-150, 1e-160, 1e-200, 5e-324} {
		p := mandel.DefaultParameters
		p.Bound = bound
		if err := p.Validate(); err != nil {
			if !errors.Is(err, mandel.ErrInvalidParameter) {
				t.Errorf("bound %v: err = %v", bound, err)
			}
			continue
		}
		for _, power := range []int{1, 2, 3} {
			if got := EscapeTime(0, 0, 100, bound, power); got != 100 {
				t.Errorf("bound %v power %d: origin escaped after %d iterations", bound, power, got)
			}
		}
	}

	p := mandel.DefaultParameters
	p.Bound = 1e-200
	if err := p.Validate(); err == nil {
		t.Error("bound 1e-200 accepted although its square is zero")
	}
}

// The polar form with power 2 must agree with the algebraic form on points
// that clearly escape or clearly stay.
func TestPolarAgreesWithQuadratic(t *testing.T) {
	points := [][2]float64{{10, 10}, {0, 0}, {-0.1, 0.1}, {0.5, 1}, {1, 1}}
	for _, p := range points {
		want := quadratic(p[0], p[1], 30, 4)
		if got := polar(p[0], p[1], 30, 4, 2); got != want {
			t.Errorf("point %v: polar %d, quadratic %d", p, got, want)
		}
	}
}

// Inside the loop the first check sees z = 0, so without the check on c a
// far away point still counts one iteration.
func TestEscapeTimeChecksConstantFirst(t *testing.T) {
	if got := quadratic(10, 10, 100, 4); got != 1 {
		t.Fatalf("quadratic(10, 10) = %d, want 1", got)
	}
	if got := EscapeTime(10, 10, 100, 2, 2); got != 0 {
		t.Errorf("EscapeTime(10, 10) = %d, want 0", got)
	}
}

func TestEscapeTimeNonFiniteMagnitude(t *testing.T) {
	// Second iteration: 1.5^2000 overflows and Inf*sin(0) is NaN.
	if got := EscapeTime(1.5, 0, 100, 2, 2000); got != 2 {
		t.Errorf("NaN magnitude: got %d, want 2", got)
	}

	// bound*bound overflows, so only the non-finite check can stop the loop.
	if got := EscapeTime(1.5, 0, 100, 1e200, 2000); got != 2 {
		t.Errorf("NaN magnitude with infinite bound: got %d, want 2", got)
	}
	if got := EscapeTime(0, 1.5, 100, 1e200, 2000); got != 2 {
		t.Errorf("Inf magnitude with infinite bound: got %d, want 2", got)
	}
}

func TestEscaped(t *testing.T) {
	tests := []struct {
		mag2, bound2 float64
		want         bool
	}{
		{0, 4, false},
		{3.99, 4, false},
		{4, 4, true},
		{math.NaN(), 4, true},
		{math.Inf(1), 4, true},
		{math.Inf(1), math.Inf(1), true},
		{1e300, math.Inf(1), false},
	}
	for _, tt := range tests {
		if got := escaped(tt.mag2, tt.bound2); got != tt.want {
			t.Errorf("escaped(%v, %v) = %v, want %v", tt.mag2, tt.bound2, got, tt.want)
		}
	}
}

func TestPolarPowZero(t *testing.T) {
	re, im := polarPow(0, 0, 5)
	if re != 0 || im != 0 {
		t.Errorf("polarPow(0, 0, 5) = (%v, %v), want (0, 0)", re, im)
	}
}

func BenchmarkEscapeTime(b *testing.B) {
	for _, power := range []int{2, 3} {
		b.Run("power"+strconv.Itoa(power), func(b *testing.B) {
			for range b.N {
				EscapeTime(-0.75, 0.1, 1000, 2, power)
			}
		})
	}
}
