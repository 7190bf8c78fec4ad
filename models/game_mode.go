package models

import (
	"errors"
	"fmt"
	"strings"
)

// GameMode is the closed set of snake rule variants.
type GameMode string

const (
	GameModeWalls       GameMode = "walls"
	GameModePassThrough GameMode = "pass-through"
)

// GameModes lists every accepted mode, in display order.
var GameModes = []GameMode{GameModeWalls, GameModePassThrough}

var ErrUnknownGameMode = errors.New("unknown game mode")

// ParseGameMode accepts the wire value of a mode. An empty string yields
// GameModeWalls, which is what clients get when they omit the field.
func ParseGameMode(s string) (GameMode, error) {
	switch GameMode(strings.TrimSpace(s)) {
	case "", GameModeWalls:
		return GameModeWalls, nil
	case GameModePassThrough:
		return GameModePassThrough, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGameMode, s)
}

func (m GameMode) String() string { return string(m) }
