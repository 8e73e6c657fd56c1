package animation

import (
	"math"

	"github.com/tanema/gween/ease"
)

// Easing transforms linear progress in [0, 1] into eased progress.
//
// Timeline entries evaluate as from + (to-from)*easing(progress); [Linear] is
// the identity. Use [CubicBezier] for custom curves matching CSS
// cubic-bezier(), or [EaseTween] to reuse an easing function from the
// gween/ease library.
type Easing func(t float64) float64

// Linear returns progress unchanged.
func Linear(t float64) float64 {
	return t
}

// EaseStandard is a general-purpose curve, equivalent to CSS ease.
var EaseStandard = CubicBezier(0.25, 0.1, 0.25, 1.0)

// EaseIn starts slowly and accelerates, equivalent to CSS ease-in.
var EaseIn = CubicBezier(0.4, 0.0, 1.0, 1.0)

// EaseOut starts quickly and decelerates, equivalent to CSS ease-out.
var EaseOut = CubicBezier(0.0, 0.0, 0.2, 1.0)

// EaseInOut starts and ends slowly, equivalent to CSS ease-in-out.
var EaseInOut = CubicBezier(0.4, 0.0, 0.2, 1.0)

// EaseTween adapts a gween/ease function into an [Easing]. The gween library
// parameterizes easing as (time, begin, change, duration); sampling it over a
// unit interval yields the plain progress-to-progress form used here.
func EaseTween(fn ease.TweenFunc) Easing {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return float64(fn(float32(t), 0, 1, 1))
	}
}

// CubicBezier returns an easing function matching CSS cubic-bezier().
// The parameters are the two control points (x1,y1) and (x2,y2); the curve
// runs from (0,0) to (1,1).
func CubicBezier(x1, y1, x2, y2 float64) Easing {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}

		u := t
		// Newton-Raphson converges quickly for most inputs.
		for n := 0; n < 8; n++ {
			x := bezierSample(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				return bezierSample(y1, y2, clampUnit(u))
			}
			dx := bezierDerivative(x1, x2, u)
			if math.Abs(dx) < 1e-7 {
				break
			}
			u -= x / dx
		}

		// Bisection fallback guarantees a stable solution in [0,1].
		lo, hi := 0.0, 1.0
		u = clampUnit(u)
		for n := 0; n < 12; n++ {
			x := bezierSample(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				break
			}
			if x > 0 {
				hi = u
			} else {
				lo = u
			}
			u = (lo + hi) * 0.5
		}

		return bezierSample(y1, y2, u)
	}
}

func bezierSample(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*t*a + 3*inv*t*t*b + t*t*t
}

func bezierDerivative(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*a + 6*inv*t*(b-a) + 3*t*t*(1-b)
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
