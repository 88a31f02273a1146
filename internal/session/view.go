package session

import "github.com/vancomm/minesweeper-engine/internal/board"

// playerView copies update with closed cells stripped of what the player
// cannot know yet. Nothing is hidden once the game is over.
func playerView(update board.BoardUpdate, status board.Status) board.BoardUpdate {
	view := make(board.BoardUpdate, len(update))
	for i, cu := range update {
		if !cu.Revealed && !status.Terminal() {
			cu.Mined, cu.MineCount = false, 0
		}
		view[i] = cu
	}
	return view
}
