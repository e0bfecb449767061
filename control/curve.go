package control

import (
	"sort"
)

// CurveKey is one point of a Curve.
type CurveKey struct {
	Frame float64 `json:"frame"`
	Value float64 `json:"value"`
}

// Curve is a piecewise linear function through its keys, held flat past either end.
type Curve struct {
	keys []CurveKey
}

// NewCurve returns a curve through keys, which need not be sorted.
func NewCurve(keys ...CurveKey) Curve {
	sorted := append([]CurveKey(nil), keys...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Frame < sorted[j].Frame })
	return Curve{keys: sorted}
}

// DefaultAccelerationCurve gives full force from standstill, tapering toward top speed.
// Frames are percent of top speed.
func DefaultAccelerationCurve() Curve {
	return NewCurve(
		CurveKey{Frame: 0, Value: 1},
		CurveKey{Frame: 60, Value: 0.7},
		CurveKey{Frame: 100, Value: 0.3},
	)
}

// Keys returns the keys in frame order.
func (c Curve) Keys() []CurveKey {
	return c.keys
}

// Evaluate returns the curve value at frame. An empty curve is 1 everywhere.
func (c Curve) Evaluate(frame float64) float64 {
	if len(c.keys) == 0 {
		return 1
	}
	if frame <= c.keys[0].Frame {
		return c.keys[0].Value
	}
	last := c.keys[len(c.keys)-1]
	if frame >= last.Frame {
		return last.Value
	}
	i := sort.Search(len(c.keys), func(i int) bool { return c.keys[i].Frame > frame })
	a, b := c.keys[i-1], c.keys[i]
	t := (frame - a.Frame) / (b.Frame - a.Frame)
	return a.Value + (b.Value-a.Value)*t
}
