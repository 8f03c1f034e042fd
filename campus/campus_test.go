package campus

import "testing"

var boundary = Boundary{CenterLat: 28.6139, CenterLng: 77.209, RadiusMeters: 1200}

func TestContains(t *testing.T) {
	testCases := []struct {
		name string
		lat  float64
		lng  float64
		want bool
	}{
		{name: "center", lat: 28.6139, lng: 77.209, want: true},
		{name: "inside", lat: 28.6180, lng: 77.2110, want: true},
		{name: "far outside", lat: 28.7, lng: 77.3, want: false},
		{name: "just past the radius", lat: 28.6139, lng: 77.2215, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := boundary.Contains(tc.lat, tc.lng); got != tc.want {
				t.Errorf("Contains(%f, %f) = %v, want %v", tc.lat, tc.lng, got, tc.want)
			}
		})
	}
}

func TestBlock(t *testing.T) {
	testCases := []struct {
		name string
		lat  float64
		lng  float64
		want string
	}{
		{name: "center", lat: 28.6139, lng: 77.209, want: "Central Block"},
		{name: "near center", lat: 28.6143, lng: 77.2094, want: "Central Block"},
		{name: "north east", lat: 28.62, lng: 77.215, want: "North-East Block"},
		{name: "south west", lat: 28.61, lng: 77.2, want: "South-West Block"},
		{name: "north west", lat: 28.62, lng: 77.2, want: "North-West Block"},
		{name: "south east", lat: 28.61, lng: 77.215, want: "South-East Block"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := boundary.Block(tc.lat, tc.lng); got != tc.want {
				t.Errorf("Block(%f, %f) = %q, want %q", tc.lat, tc.lng, got, tc.want)
			}
		})
	}
}
