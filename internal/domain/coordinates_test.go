package domain

import (
	"errors"
	"testing"
)

func TestParseCoordinates(t *testing.T) {
	tests := []struct {
		in      string
		want    Coordinates
		wantErr bool
	}{
		{in: "40.758,-73.9855", want: Coordinates{Lat: 40.758, Lon: -73.9855}},
		{in: " 40.758 , -73.9855 ", want: Coordinates{Lat: 40.758, Lon: -73.9855}},
		{in: "0,0", want: Coordinates{}},
		{in: "abc", wantErr: true},
		{in: "", wantErr: true},
		{in: "40.758", wantErr: true},
		{in: "40.758,", wantErr: true},
		{in: ",-73.9", wantErr: true},
		{in: "1,2,3", wantErr: true},
		{in: "north,west", wantErr: true},
		{in: "NaN,1", wantErr: true},
		{in: "1,Inf", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseCoordinates(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseCoordinates(%q) = %v, want error", tt.in, got)
				continue
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("ParseCoordinates(%q) error = %v, want ErrValidation", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCoordinates(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCoordinates(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCoordinatesStringRoundTrip(t *testing.T) {
	c := Coordinates{Lat: 40.71452681, Lon: -74.00447358}
	got, err := ParseCoordinates(c.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != c {
		t.Fatalf("round trip = %v, want %v", got, c)
	}
}
