package models

import (
	"errors"
	"testing"
)

func TestParseGameMode(t *testing.T) {
	tests := []struct {
		in      string
		want    GameMode
		wantErr bool
	}{
		{"walls", GameModeWalls, false},
		{"pass-through", GameModePassThrough, false},
		{"", GameModeWalls, false},
		{" walls ", GameModeWalls, false},
		{"WALLS", "", true},
		{"pass_through", "", true},
		{"teleport", "", true},
	}

	for _, tc := range tests {
		got, err := ParseGameMode(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrUnknownGameMode) {
				t.Fatalf("ParseGameMode(%q): expected ErrUnknownGameMode, got %v", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseGameMode(%q): unexpected error %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseGameMode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
