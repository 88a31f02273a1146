package board

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// Cells around the first revealed point that never hold a mine.
	exclusionSize = 9

	// MaxArea caps the number of cells of a board.
	MaxArea = 1 << 24
)

type Params struct {
	Width     int `json:"width" schema:"width,required"`
	Height    int `json:"height" schema:"height,required"`
	MineCount int `json:"mine_count" schema:"mine_count,required"`
}

func (p Params) Unpack() (w int, h int, mc int) {
	return p.Width, p.Height, p.MineCount
}

func maxMines(width, height int) int {
	return width*height - exclusionSize
}

func (p Params) Validate() error {
	if p.Width <= 0 || p.Height <= 0 || p.Width > MaxArea/p.Height ||
		p.MineCount <= 0 || p.MineCount > maxMines(p.Width, p.Height) {
		return &ConfigError{p.Width, p.Height, p.MineCount}
	}
	return nil
}

func (p Params) Contains(x, y int) bool {
	return 0 <= x && x < p.Width && 0 <= y && y < p.Height
}

func (p Params) Seed() string {
	return fmt.Sprintf("%d:%d:%d", p.Width, p.Height, p.MineCount)
}

func ParseSeed(seed string) (Params, error) {
	var (
		p     Params
		parts = strings.Split(seed, ":")
		dims  = [...]*int{&p.Width, &p.Height, &p.MineCount}
	)
	if len(parts) != len(dims) {
		return Params{}, fmt.Errorf(
			`invalid board seed (seed = "%s", parts = %d)`, seed, len(parts),
		)
	}
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return Params{}, fmt.Errorf(
				`invalid board seed (seed = "%s", err = %w)`, seed, err,
			)
		}
		*dims[i] = n
	}
	return p, nil
}
