package sim

import "math"

// Vec2 is a 2D point in world units.
type Vec2 struct {
	X, Y float64
}

// Dist returns the Euclidean distance to another point.
func (v Vec2) Dist(o Vec2) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Lerp returns the point at fraction t between v and o.
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{X: v.X + (o.X-v.X)*t, Y: v.Y + (o.Y-v.Y)*t}
}

// SamplePolyline returns the point at fractional progress t (0..1) along a
// polyline, walking cumulative segment lengths. Degenerate (zero-length)
// segments are skipped; a single-point polyline returns that point for any t.
func SamplePolyline(points []Vec2, t float64) Vec2 {
	if len(points) == 0 {
		return Vec2{}
	}
	if len(points) == 1 {
		return points[0]
	}

	total := 0.0
	for i := 1; i < len(points); i++ {
		total += points[i-1].Dist(points[i])
	}
	if total <= 0 {
		return points[0]
	}

	target := clampF(t, 0, 1) * total
	walked := 0.0
	for i := 1; i < len(points); i++ {
		seg := points[i-1].Dist(points[i])
		if seg <= 0 {
			continue
		}
		if walked+seg >= target {
			return points[i-1].Lerp(points[i], (target-walked)/seg)
		}
		walked += seg
	}
	return points[len(points)-1]
}

// PolylineLength returns the total length of a polyline.
func PolylineLength(points []Vec2) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += points[i-1].Dist(points[i])
	}
	return total
}

// PolylineMidpoint returns the point halfway along a polyline by length.
func PolylineMidpoint(points []Vec2) Vec2 {
	return SamplePolyline(points, 0.5)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
