package cmd

import "testing"

func TestParseLatLng(t *testing.T) {
	tests := []struct {
		name     string
		lat, lng string
		wantLat  float64
		wantLng  float64
		wantErr  bool
	}{
		{"valid", "7.2906", "80.6337", 7.2906, 80.6337, false},
		{"negative", "-33.8688", "151.2093", -33.8688, 151.2093, false},
		{"bad latitude", "north", "80", 0, 0, true},
		{"bad longitude", "7", "east", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lat, lng, err := parseLatLng(tt.lat, tt.lng)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if lat != tt.wantLat || lng != tt.wantLng {
				t.Errorf("got %v, %v", lat, lng)
			}
		})
	}
}

func TestNeedsRepo(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"list", true},
		{"create", true},
		{"nearby", true},
		{"search", false},
		{"login", false},
		{"logout", false},
		{"whoami", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{tt.name})
			if err != nil {
				t.Fatalf("Find: %v", err)
			}
			if got := needsRepo(cmd); got != tt.want {
				t.Errorf("needsRepo(%s) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
