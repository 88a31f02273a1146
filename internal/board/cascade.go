package board

import "github.com/zyedidia/generic/mapset"

// cascade reveals start and floods outwards through cells without mined
// neighbors. Numbered cells are opened but stop the flood, so the result is
// the connected empty region plus its numbered border.
//
// start must be a closed, unflagged, safe cell.
func (b *Board) cascade(start int) (update BoardUpdate) {
	var (
		seen  = mapset.New[int]()
		stack = []int{start}
	)
	seen.Put(start)

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		c := &b.cells[i]
		if c.Revealed {
			continue
		}
		if c.reveal() {
			b.flagged--
		}
		b.revealed++
		update = append(update, b.snapshot(i))

		if c.MineCount > 0 {
			continue
		}
		for _, j := range b.neighbors(i) {
			n := b.cells[j]
			if !n.Revealed && !n.Flagged && !seen.Has(j) {
				seen.Put(j)
				stack = append(stack, j)
			}
		}
	}
	return
}
