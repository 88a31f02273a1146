package config

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/vancomm/minesweeper-engine/internal/board"
)

type Board struct {
	Preset    string `json:"preset"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	MineCount int    `json:"mine_count"`
}

// Seed fixes the PCG state of the mine layout, for reproducible games.
type Seed struct {
	Hi uint64 `json:"hi"`
	Lo uint64 `json:"lo"`
}

type Log struct {
	Level      string `json:"level"`
	File       string `json:"file"`
	MaxSizeMB  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
	MaxAgeDays int    `json:"max_age_days"`
}

type Config struct {
	Mode  string `json:"mode"`
	Board Board  `json:"board"`
	Seed  *Seed  `json:"seed,omitempty"`
	Log   Log    `json:"log"`
}

func Default() Config {
	return Config{
		Mode:  "production",
		Board: Board{Preset: DefaultPreset},
		Log: Log{
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Read overlays the JSON file at path onto config.
func Read(path string, config *Config) error {
	if b, err := os.ReadFile(path); err != nil {
		return err
	} else {
		return json.Unmarshal(b, config)
	}
}

// ApplyEnv overlays the MINES_* and DEVELOPMENT environment variables.
func (c *Config) ApplyEnv() {
	if mode, ok := os.LookupEnv("MINES_MODE"); ok {
		c.Mode = mode
	}
	if development, ok := os.LookupEnv("DEVELOPMENT"); ok && development != "0" {
		c.Mode = "development"
	}
	if preset, ok := os.LookupEnv("MINES_BOARD"); ok {
		c.Board = Board{Preset: preset}
	}
	if level, ok := os.LookupEnv("MINES_LOG_LEVEL"); ok {
		c.Log.Level = level
	}
	if file, ok := os.LookupEnv("MINES_LOG_FILE"); ok {
		c.Log.File = file
	}
}

func (c Config) Production() bool {
	return c.Mode == "production"
}

func (c Config) Development() bool {
	return c.Mode != "production"
}

// Params resolves the board section. Explicit dimensions win over the
// preset.
func (c Config) Params() (board.Params, error) {
	var p board.Params
	if c.Board.Width != 0 || c.Board.Height != 0 || c.Board.MineCount != 0 {
		p = board.Params{
			Width:     c.Board.Width,
			Height:    c.Board.Height,
			MineCount: c.Board.MineCount,
		}
	} else {
		preset := c.Board.Preset
		if preset == "" {
			preset = DefaultPreset
		}
		var err error
		if p, err = ParseBoard(preset); err != nil {
			return board.Params{}, err
		}
	}
	if err := p.Validate(); err != nil {
		return board.Params{}, fmt.Errorf("invalid board config: %w", err)
	}
	return p, nil
}

// Rand returns the random source for mine layouts.
func (c Config) Rand() *rand.Rand {
	if c.Seed == nil {
		return board.NewRand()
	}
	return rand.New(rand.NewPCG(c.Seed.Hi, c.Seed.Lo))
}

func (c Config) Fields() logrus.Fields {
	return logrus.Fields{
		"mode":         c.Mode,
		"board_preset": c.Board.Preset,
		"board_width":  c.Board.Width,
		"board_height": c.Board.Height,
		"board_mines":  c.Board.MineCount,
		"seeded":       c.Seed != nil,
		"log_level":    c.Log.Level,
		"log_file":     c.Log.File,
		"log_max_size": c.Log.MaxSizeMB,
		"log_backups":  c.Log.MaxBackups,
		"log_max_age":  c.Log.MaxAgeDays,
	}
}
