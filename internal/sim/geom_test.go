package sim

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSamplePolylineStraightLine(t *testing.T) {
	points := []Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}}

	tests := []struct {
		t    float64
		want Vec2
	}{
		{0, Vec2{0, 0}},
		{0.5, Vec2{5, 0}},
		{1, Vec2{10, 0}},
	}
	for _, tc := range tests {
		got := SamplePolyline(points, tc.t)
		if !almostEqual(got.X, tc.want.X) || !almostEqual(got.Y, tc.want.Y) {
			t.Errorf("SamplePolyline(t=%v) = %v, want %v", tc.t, got, tc.want)
		}
	}
}

func TestSamplePolylineMultiSegment(t *testing.T) {
	// L-shape: 10 units right, then 10 units up. Halfway is the corner.
	points := []Vec2{{0, 0}, {10, 0}, {10, 10}}

	got := SamplePolyline(points, 0.5)
	if !almostEqual(got.X, 10) || !almostEqual(got.Y, 0) {
		t.Errorf("midpoint = %v, want corner (10,0)", got)
	}

	got = SamplePolyline(points, 0.75)
	if !almostEqual(got.X, 10) || !almostEqual(got.Y, 5) {
		t.Errorf("t=0.75 point = %v, want (10,5)", got)
	}
}

func TestSamplePolylineSkipsDegenerateSegments(t *testing.T) {
	points := []Vec2{{0, 0}, {0, 0}, {10, 0}, {10, 0}}

	got := SamplePolyline(points, 0.5)
	if !almostEqual(got.X, 5) || !almostEqual(got.Y, 0) {
		t.Errorf("midpoint with degenerate segments = %v, want (5,0)", got)
	}
}

func TestSamplePolylineSinglePoint(t *testing.T) {
	points := []Vec2{{3, 4}}
	for _, tc := range []float64{-1, 0, 0.5, 1, 2} {
		got := SamplePolyline(points, tc)
		if got != (Vec2{3, 4}) {
			t.Errorf("single-point polyline at t=%v = %v, want (3,4)", tc, got)
		}
	}
}

func TestSamplePolylineEmpty(t *testing.T) {
	if got := SamplePolyline(nil, 0.5); got != (Vec2{}) {
		t.Errorf("empty polyline = %v, want zero point", got)
	}
}

func TestSamplePolylineClampsProgress(t *testing.T) {
	points := []Vec2{{0, 0}, {10, 0}}
	if got := SamplePolyline(points, -0.5); got != (Vec2{0, 0}) {
		t.Errorf("t=-0.5 = %v, want start", got)
	}
	if got := SamplePolyline(points, 1.5); !almostEqual(got.X, 10) {
		t.Errorf("t=1.5 = %v, want end", got)
	}
}

func TestPolylineMidpoint(t *testing.T) {
	points := []Vec2{{0, 0}, {4, 0}, {4, 4}}
	got := PolylineMidpoint(points)
	if !almostEqual(got.X, 4) || !almostEqual(got.Y, 0) {
		t.Errorf("midpoint = %v, want (4,0)", got)
	}
}
