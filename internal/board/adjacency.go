package board

// countAdjacent stores the number of mined neighbors on every safe cell.
// Mined cells keep a count of zero.
func (b *Board) countAdjacent() {
	for i := range b.cells {
		if b.cells[i].Mined {
			b.cells[i].MineCount = 0
			continue
		}
		count := 0
		for _, j := range b.neighbors(i) {
			if b.cells[j].Mined {
				count++
			}
		}
		b.cells[i].MineCount = count
	}
}
