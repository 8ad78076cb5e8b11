package services

import (
	"testing"
	"trailblazer-service/internal/ports"
)

func str(s string) *string { return &s }

func TestNormalizeRecord(t *testing.T) {
	tests := []struct {
		name      string
		rec       ports.DirectoryRecord
		wantOK    bool
		wantName  string
		wantLoc   bool
		wantLat   float64
		wantLon   float64
		wantDescr string
	}{
		{
			name: "full record",
			rec: ports.DirectoryRecord{
				ParkCode: str("afbg"), FullName: str("African Burial Ground National Monument"),
				Name: str("African Burial Ground"), Latitude: str("40.71452681"), Longitude: str("-74.00447358"),
				Description: str("  Monument  "),
			},
			wantOK: true, wantName: "African Burial Ground National Monument",
			wantLoc: true, wantLat: 40.71452681, wantLon: -74.00447358, wantDescr: "Monument",
		},
		{
			name:   "falls back to short name",
			rec:    ports.DirectoryRecord{ParkCode: str("appa"), FullName: str("  "), Name: str("Appalachian")},
			wantOK: true, wantName: "Appalachian",
		},
		{
			name: "non-numeric latitude drops location",
			rec: ports.DirectoryRecord{
				ParkCode: str("bad1"), FullName: str("Bad Lat"), Latitude: str("abc"), Longitude: str("-74.0"),
			},
			wantOK: true, wantName: "Bad Lat",
		},
		{
			name: "missing longitude drops location",
			rec: ports.DirectoryRecord{
				ParkCode: str("bad2"), FullName: str("No Lon"), Latitude: str("40.0"),
			},
			wantOK: true, wantName: "No Lon",
		},
		{
			name: "empty coordinates drop location",
			rec: ports.DirectoryRecord{
				ParkCode: str("bad3"), FullName: str("Empty"), Latitude: str(""), Longitude: str(""),
			},
			wantOK: true, wantName: "Empty",
		},
		{
			name: "off-globe latitude drops location",
			rec: ports.DirectoryRecord{
				ParkCode: str("bad4"), FullName: str("Far"), Latitude: str("91"), Longitude: str("0"),
			},
			wantOK: true, wantName: "Far",
		},
		{
			name: "NaN drops location",
			rec: ports.DirectoryRecord{
				ParkCode: str("bad5"), FullName: str("NaN"), Latitude: str("NaN"), Longitude: str("1"),
			},
			wantOK: true, wantName: "NaN",
		},
		{
			name: "padded coordinates parse",
			rec: ports.DirectoryRecord{
				ParkCode: str(" ok "), FullName: str("Padded"), Latitude: str(" 38.971601 "), Longitude: str("-76.483355"),
			},
			wantOK: true, wantName: "Padded", wantLoc: true, wantLat: 38.971601, wantLon: -76.483355,
		},
		{
			name:   "missing code is discarded",
			rec:    ports.DirectoryRecord{FullName: str("Nameless Code")},
			wantOK: false,
		},
		{
			name:   "blank code is discarded",
			rec:    ports.DirectoryRecord{ParkCode: str("   "), FullName: str("Blank Code")},
			wantOK: false,
		},
		{
			name:   "missing name is discarded",
			rec:    ports.DirectoryRecord{ParkCode: str("noname")},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := NormalizeRecord(tt.rec, "NY")
			if ok != tt.wantOK {
				t.Fatalf("ok: got %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				if p != nil {
					t.Fatalf("expected nil park for discarded record, got %+v", p)
				}
				return
			}
			if p.Name != tt.wantName {
				t.Fatalf("name: got %q, want %q", p.Name, tt.wantName)
			}
			if p.Region != "NY" {
				t.Fatalf("region: got %q, want NY", p.Region)
			}
			if p.Located() != tt.wantLoc {
				t.Fatalf("located: got %v, want %v", p.Located(), tt.wantLoc)
			}
			if tt.wantLoc && (p.Location.Lat != tt.wantLat || p.Location.Lon != tt.wantLon) {
				t.Fatalf("location: got %v, want %v,%v", *p.Location, tt.wantLat, tt.wantLon)
			}
			if p.Description != tt.wantDescr {
				t.Fatalf("description: got %q, want %q", p.Description, tt.wantDescr)
			}
		})
	}
}

func TestNormalizeRecordTrimsCode(t *testing.T) {
	p, ok := NormalizeRecord(ports.DirectoryRecord{ParkCode: str(" ok "), FullName: str("x")}, "NY")
	if !ok || p.ExternalCode != "ok" {
		t.Fatalf("got %+v ok=%v, want external code %q", p, ok, "ok")
	}
}
