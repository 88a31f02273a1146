package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gorilla/schema"
	"github.com/vancomm/minesweeper-engine/internal/board"
)

const DefaultPreset = "classic"

var Presets = map[string]board.Params{
	"beginner":     {Width: 9, Height: 9, MineCount: 10},
	"intermediate": {Width: 16, Height: 16, MineCount: 40},
	"expert":       {Width: 30, Height: 16, MineCount: 99},
	"classic":      {Width: 32, Height: 16, MineCount: 99},
}

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

// ParseBoard accepts a preset name ("expert"), a seed ("30:16:99") or a
// query string ("width=30&height=16&mine_count=99").
func ParseBoard(s string) (board.Params, error) {
	s = strings.TrimSpace(s)
	if p, ok := Presets[strings.ToLower(s)]; ok {
		return p, nil
	}
	if strings.Contains(s, "=") {
		return parseQuery(s)
	}
	if strings.Contains(s, ":") {
		return board.ParseSeed(s)
	}
	return board.Params{}, fmt.Errorf("unknown board %q", s)
}

func parseQuery(s string) (board.Params, error) {
	values, err := url.ParseQuery(s)
	if err != nil {
		return board.Params{}, fmt.Errorf("unable to parse board query: %w", err)
	}
	var p board.Params
	if err := decoder.Decode(&p, values); err != nil {
		return board.Params{}, fmt.Errorf("unable to decode board query: %w", err)
	}
	return p, nil
}
