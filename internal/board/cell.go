package board

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Cell struct {
	Mined     bool `json:"mined"`
	Revealed  bool `json:"revealed"`
	Flagged   bool `json:"flagged"`
	MineCount int  `json:"mine_count"`
}

// reveal opens the cell and reports whether a flag was removed from it.
func (c *Cell) reveal() (unflagged bool) {
	c.Revealed = true
	if c.Flagged {
		c.Flagged = false
		return true
	}
	return false
}

// CellUpdate is a copy of a cell taken right after it changed.
type CellUpdate struct {
	X int `json:"x"`
	Y int `json:"y"`
	Cell
}

type BoardUpdate []CellUpdate

func (u BoardUpdate) Points() []Point {
	points := make([]Point, len(u))
	for i, cu := range u {
		points[i] = Point{cu.X, cu.Y}
	}
	return points
}
