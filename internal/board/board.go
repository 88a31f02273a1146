package board

import (
	"hash/maphash"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// NewRand returns a PCG source seeded from runtime entropy.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// Board is a single game of minesweeper. Mines are laid out lazily on the
// first reveal so that the revealed cell and its neighbors are always safe.
//
// A Board is not safe for concurrent use.
type Board struct {
	id       uuid.UUID
	params   Params
	cells    []Cell // row-major, y*width + x
	flagged  int
	revealed int // safe cells opened during play
	placed   bool
	status   Status
	exploded int

	startedAt, endedAt time.Time

	rnd *rand.Rand
	now func() time.Time
}

type Outcome struct {
	Updates        BoardUpdate `json:"updates"`
	Status         Status      `json:"status"`
	RemainingFlags int         `json:"remaining_flags"`
}

// New creates an empty board. A nil r is replaced with [NewRand].
func New(width, height, mineCount int, r *rand.Rand) (*Board, error) {
	return NewFromParams(Params{width, height, mineCount}, r)
}

func NewFromParams(p Params, r *rand.Rand) (*Board, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if r == nil {
		r = NewRand()
	}
	return newBoard(p, r, time.Now), nil
}

func newBoard(p Params, r *rand.Rand, now func() time.Time) *Board {
	b := &Board{
		id:       uuid.New(),
		params:   p,
		cells:    make([]Cell, p.Width*p.Height),
		exploded: -1,
		rnd:      r,
		now:      now,
	}
	Log.WithFields(b.fields()).Debug("created board")
	return b
}

// Reset discards the game and returns a fresh board with the same
// parameters and random source.
func (b *Board) Reset() *Board {
	return newBoard(b.params, b.rnd, b.now)
}

func (b *Board) fields() logrus.Fields {
	return logrus.Fields{
		"board":  b.id,
		"seed":   b.params.Seed(),
		"status": b.status,
	}
}

func (b *Board) ID() uuid.UUID { return b.id }

func (b *Board) Params() Params { return b.params }

func (b *Board) Width() int { return b.params.Width }

func (b *Board) Height() int { return b.params.Height }

func (b *Board) MineCount() int { return b.params.MineCount }

func (b *Board) Flagged() int { return b.flagged }

// Placed reports whether the mines have been laid out.
func (b *Board) Placed() bool { return b.placed }

func (b *Board) Status() Status { return b.status }

func (b *Board) StartedAt() time.Time { return b.startedAt }

// RemainingFlags goes negative when the player places more flags than there
// are mines.
func (b *Board) RemainingFlags() int {
	return b.params.MineCount - b.flagged
}

// Exploded returns the mine that ended the game, if any.
func (b *Board) Exploded() (Point, bool) {
	if b.exploded < 0 {
		return Point{}, false
	}
	return b.point(b.exploded), true
}

// Elapsed is the game clock: zero until the first reveal, stopped once the
// game is over.
func (b *Board) Elapsed(now time.Time) time.Duration {
	switch {
	case b.startedAt.IsZero():
		return 0
	case b.status.Terminal():
		return b.endedAt.Sub(b.startedAt)
	default:
		return now.Sub(b.startedAt)
	}
}

func (b *Board) CellAt(x, y int) (Cell, error) {
	if err := b.check(x, y); err != nil {
		return Cell{}, err
	}
	return b.cells[b.index(x, y)], nil
}

// Snapshot returns every cell in row-major order.
func (b *Board) Snapshot() BoardUpdate {
	update := make(BoardUpdate, len(b.cells))
	for i := range b.cells {
		update[i] = b.snapshot(i)
	}
	return update
}

func (b *Board) Reveal(x, y int) (Outcome, error) {
	if err := b.check(x, y); err != nil {
		return b.outcome(nil), err
	}
	i := b.index(x, y)
	if b.status.Terminal() || b.cells[i].Flagged || b.cells[i].Revealed {
		return b.outcome(nil), nil
	}
	if !b.placed {
		if err := b.place(Point{x, y}); err != nil {
			return b.outcome(nil), err
		}
		b.countAdjacent()
	}
	if b.status == Pending {
		b.start()
	}
	return b.outcome(b.open(i)), nil
}

func (b *Board) ToggleFlag(x, y int) (Outcome, error) {
	if err := b.check(x, y); err != nil {
		return b.outcome(nil), err
	}
	i := b.index(x, y)
	c := &b.cells[i]
	if b.status.Terminal() || c.Revealed {
		return b.outcome(nil), nil
	}
	c.Flagged = !c.Flagged
	if c.Flagged {
		b.flagged++
	} else {
		b.flagged--
	}
	return b.outcome(BoardUpdate{b.snapshot(i)}), nil
}

// Chord opens every unflagged neighbor of a revealed number once the number
// of flags around it matches its mine count.
func (b *Board) Chord(x, y int) (Outcome, error) {
	if err := b.check(x, y); err != nil {
		return b.outcome(nil), err
	}
	i := b.index(x, y)
	c := b.cells[i]
	if b.status.Terminal() || !c.Revealed || c.MineCount == 0 {
		return b.outcome(nil), nil
	}
	var (
		flags   int
		targets []int
	)
	for _, j := range b.neighbors(i) {
		if b.cells[j].Flagged {
			flags++
		} else if !b.cells[j].Revealed {
			targets = append(targets, j)
		}
	}
	if flags != c.MineCount {
		return b.outcome(nil), nil
	}
	var update BoardUpdate
	for _, j := range targets {
		if b.status.Terminal() {
			break
		}
		if !b.cells[j].Revealed {
			update = append(update, b.open(j)...)
		}
	}
	return b.outcome(update), nil
}

// open reveals a cell that is known to be closed and unflagged and settles
// the game status.
func (b *Board) open(i int) BoardUpdate {
	if b.cells[i].Mined {
		return b.explode(i)
	}
	update := b.cascade(i)
	if b.revealed == len(b.cells)-b.params.MineCount {
		b.finish(Won)
	}
	return update
}

// explode reveals the whole board. Flags stay in place so that they can be
// checked against the mines.
func (b *Board) explode(i int) BoardUpdate {
	b.exploded = i
	b.cells[i].Revealed = true
	update := BoardUpdate{b.snapshot(i)}
	for j := range b.cells {
		if !b.cells[j].Revealed {
			b.cells[j].Revealed = true
			update = append(update, b.snapshot(j))
		}
	}
	b.finish(Lost)
	return update
}

func (b *Board) start() {
	b.status = InProgress
	b.startedAt = b.now()
	Log.WithFields(b.fields()).Debug("game started")
}

func (b *Board) finish(s Status) {
	b.status = s
	b.endedAt = b.now()
	Log.WithFields(b.fields()).
		WithField("elapsed", b.Elapsed(b.endedAt)).
		Debugf("game over\n%s", b)
}

func (b *Board) outcome(update BoardUpdate) Outcome {
	if update == nil {
		update = BoardUpdate{}
	}
	return Outcome{
		Updates:        update,
		Status:         b.status,
		RemainingFlags: b.RemainingFlags(),
	}
}

func (b *Board) check(x, y int) error {
	if !b.params.Contains(x, y) {
		return &OutOfBoundsError{x, y, b.params.Width, b.params.Height}
	}
	return nil
}

func (b *Board) index(x, y int) int {
	return y*b.params.Width + x
}

func (b *Board) point(i int) Point {
	return Point{i % b.params.Width, i / b.params.Width}
}

func (b *Board) snapshot(i int) CellUpdate {
	p := b.point(i)
	return CellUpdate{X: p.X, Y: p.Y, Cell: b.cells[i]}
}

// neighbors returns the indices of the up to 8 cells touching i.
func (b *Board) neighbors(i int) []int {
	var (
		p          = b.point(i)
		fromX, toX = max(0, p.X-1), min(p.X+1, b.params.Width-1)
		fromY, toY = max(0, p.Y-1), min(p.Y+1, b.params.Height-1)
		indices    = make([]int, 0, 8)
	)
	for y := fromY; y <= toY; y++ {
		for x := fromX; x <= toX; x++ {
			if j := b.index(x, y); j != i {
				indices = append(indices, j)
			}
		}
	}
	return indices
}

// [Board] implements [fmt.Stringer]
//
//	# closed  F flag  * mine  . empty  1-8 mine count
func (b *Board) String() string {
	var s strings.Builder
	for i, c := range b.cells {
		switch {
		case !c.Revealed && c.Flagged:
			s.WriteByte('F')
		case !c.Revealed:
			s.WriteByte('#')
		case c.Mined:
			s.WriteByte('*')
		case c.MineCount == 0:
			s.WriteByte('.')
		default:
			s.WriteString(strconv.Itoa(c.MineCount))
		}
		if (i+1)%b.params.Width == 0 {
			s.WriteByte('\n')
		}
	}
	return s.String()
}
