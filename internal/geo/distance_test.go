package geo

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name                   string
		lngA, latA, lngB, latB float64
		want                   float64
		tolerance              float64
	}{
		{
			name: "same point",
			lngA: 30.5234, latA: 50.4501,
			lngB: 30.5234, latB: 50.4501,
			want: 0, tolerance: 0.001,
		},
		{
			name: "paris to london",
			lngA: 2.3522, latA: 48.8566,
			lngB: -0.1276, latB: 51.5072,
			want: 343500, tolerance: 1500,
		},
		{
			name: "one degree of latitude",
			lngA: 0, latA: 0,
			lngB: 0, latB: 1,
			want: 111195, tolerance: 100,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.lngA, tt.latA, tt.lngB, tt.latB)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("Distance() = %f, want %f±%f", got, tt.want, tt.tolerance)
			}
		})
	}
}

func TestBoundingBox(t *testing.T) {
	minLng, maxLng, minLat, maxLat := BoundingBox(30.5234, 50.4501, 10000)

	// every corner of the box must be at least the radius away
	for _, lng := range []float64{minLng, maxLng} {
		for _, lat := range []float64{minLat, maxLat} {
			if d := Distance(30.5234, 50.4501, lng, lat); d < 10000 {
				t.Errorf("corner (%f, %f) is %f m away, inside the radius", lng, lat, d)
			}
		}
	}
	// the box edges must touch the circle, not run away from it
	if d := Distance(30.5234, 50.4501, 30.5234, maxLat); math.Abs(d-10000) > 50 {
		t.Errorf("north edge is %f m away, want ~10000", d)
	}
}
