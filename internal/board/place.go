package board

import (
	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

// exclusionZone is the anchor together with its neighbors.
func (b *Board) exclusionZone(anchor Point) mapset.Set[Point] {
	zone := mapset.New[Point]()
	zone.Put(anchor)
	for _, j := range b.neighbors(b.index(anchor.X, anchor.Y)) {
		zone.Put(b.point(j))
	}
	return zone
}

// place scatters the mines uniformly over the cells outside of the anchor's
// exclusion zone. It only ever runs once per board.
func (b *Board) place(anchor Point) error {
	if b.placed {
		return nil
	}

	zone := b.exclusionZone(anchor)

	/*
	 * Write down the list of possible mine locations.
	 */
	candidates := make([]int, 0, len(b.cells))
	for i := range b.cells {
		if !zone.Has(b.point(i)) {
			candidates = append(candidates, i)
		}
	}
	if b.params.MineCount > len(candidates) {
		return &PlacementError{b.params.MineCount, len(candidates)}
	}

	/*
	 * Now pick n off the list at random. The picked candidate is replaced
	 * by the last unpicked one, so no cell is drawn twice.
	 */
	k := len(candidates)
	for range b.params.MineCount {
		i := b.rnd.IntN(k)
		b.cells[candidates[i]].Mined = true
		k--
		candidates[i] = candidates[k]
	}
	b.placed = true

	Log.WithFields(b.fields()).WithFields(logrus.Fields{
		"anchor":     anchor,
		"candidates": len(candidates),
	}).Debug("placed mines")
	return nil
}
