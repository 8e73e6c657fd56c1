package animation

// Tween maps animation progress onto an arbitrary value range or type.
//
// Springs and timeline entries produce scalars; a tween turns a normalized
// progress into whatever the paint layer needs (a width, a color, a custom
// struct) via its Lerp function. This is how consumers like a theme system
// ride one animated progress value: drive a single spring from 0 to 1 and
// evaluate color tweens against it each frame.
type Tween[T any] struct {
	// Begin is the value at progress 0.
	Begin T
	// End is the value at progress 1.
	End T
	// Lerp interpolates between Begin and End at progress t in [0, 1].
	// A nil Lerp evaluates to End.
	Lerp func(a, b T, t float64) T
}

// Evaluate returns the interpolated value at progress t.
func (tw *Tween[T]) Evaluate(t float64) T {
	if tw.Lerp == nil {
		return tw.End
	}
	return tw.Lerp(tw.Begin, tw.End, t)
}

// FromValue evaluates the tween against a spring value's position normalized
// between lo and hi. A spring animating from 0 to 100 with lo=0, hi=100
// sweeps the tween across its full range.
func (tw *Tween[T]) FromValue(v *AnimatedValue, lo, hi float64) T {
	return tw.Evaluate(Norm(v.Get(), lo, hi))
}

// FromEntry evaluates the tween against a timeline entry's progress.
func (tw *Tween[T]) FromEntry(tl *AnimatedTimeline, id uint64) T {
	return tw.Evaluate(tl.Progress(id))
}

// Norm maps x from [lo, hi] into [0, 1], clamped. Degenerate ranges report 1
// so a zero-width sweep reads as finished rather than stuck at its start.
func Norm(x, lo, hi float64) float64 {
	if hi == lo {
		return 1
	}
	return clampUnit((x - lo) / (hi - lo))
}

// LerpFloat64 linearly interpolates between two float64 values.
func LerpFloat64(a, b float64, t float64) float64 {
	return a + (b-a)*t
}

// Color is a 32-bit ARGB color, the interchange format for animated color
// transitions. Channel interpolation happens per component.
type Color uint32

// ARGB builds a Color from individual channels.
func ARGB(a, r, g, b uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGB builds an opaque Color.
func RGB(r, g, b uint8) Color {
	return ARGB(0xFF, r, g, b)
}

// LerpColor linearly interpolates each ARGB channel independently. Progress
// is clamped to [0, 1] first; extrapolating would wrap the channel bytes.
func LerpColor(a, b Color, t float64) Color {
	t = clampUnit(t)
	lerpChan := func(x, y uint32) uint8 {
		return uint8(LerpFloat64(float64(x), float64(y), t))
	}
	return Color(uint32(lerpChan(uint32(a)>>24&0xFF, uint32(b)>>24&0xFF))<<24 |
		uint32(lerpChan(uint32(a)>>16&0xFF, uint32(b)>>16&0xFF))<<16 |
		uint32(lerpChan(uint32(a)>>8&0xFF, uint32(b)>>8&0xFF))<<8 |
		uint32(lerpChan(uint32(a)&0xFF, uint32(b)&0xFF)))
}

// TweenFloat64 creates a tween between two float64 values.
func TweenFloat64(begin, end float64) *Tween[float64] {
	return &Tween[float64]{Begin: begin, End: end, Lerp: LerpFloat64}
}

// TweenColor creates a tween between two colors.
func TweenColor(begin, end Color) *Tween[Color] {
	return &Tween[Color]{Begin: begin, End: end, Lerp: LerpColor}
}
