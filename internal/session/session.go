package session

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vancomm/minesweeper-engine/internal/board"
	"github.com/vancomm/minesweeper-engine/internal/commands"
)

var Log = logrus.New()

// Response is sent back for every command: the cells to redraw and the
// state of the game after the command ran. Closed cells never carry their
// mine or mine count while the game is in play.
type Response struct {
	Board          uuid.UUID         `json:"board"`
	Command        string            `json:"command"`
	Updates        board.BoardUpdate `json:"updates"`
	Status         board.Status      `json:"status"`
	RemainingFlags int               `json:"remaining_flags"`
	ElapsedMs      int64             `json:"elapsed_ms"`
	Error          string            `json:"error,omitempty"`
}

// Session owns a board and serializes every command sent to it, so it may
// be shared between goroutines.
type Session struct {
	mu    sync.Mutex
	board *board.Board
	now   func() time.Time
}

func New(p board.Params, r *rand.Rand) (*Session, error) {
	b, err := board.NewFromParams(p, r)
	if err != nil {
		return nil, err
	}
	s := &Session{board: b, now: time.Now}
	s.log().WithField("seed", p.Seed()).Info("session created")
	return s, nil
}

func (s *Session) log() *logrus.Entry {
	return Log.WithField("board", s.board.ID())
}

func (s *Session) ID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.ID()
}

func (s *Session) Status() board.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Status()
}

// CellAt returns the cell as the engine sees it, hidden mines included.
func (s *Session) CellAt(x, y int) (board.Cell, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.CellAt(x, y)
}

func (s *Session) snapshot() board.Outcome {
	return board.Outcome{
		Updates:        s.board.Snapshot(),
		Status:         s.board.Status(),
		RemainingFlags: s.board.RemainingFlags(),
	}
}

func (s *Session) Execute(cmd commands.Command) Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		out board.Outcome
		err error
	)
	switch cmd.Kind {
	case commands.Get:
		out = s.snapshot()
	case commands.Open:
		out, err = s.board.Reveal(cmd.X, cmd.Y)
	case commands.Flag:
		out, err = s.board.ToggleFlag(cmd.X, cmd.Y)
	case commands.Chord:
		out, err = s.board.Chord(cmd.X, cmd.Y)
	case commands.Reset:
		prev := s.board.ID()
		s.board = s.board.Reset()
		s.log().WithField("previous", prev).Info("board reset")
		out = s.snapshot()
	default:
		err = fmt.Errorf("unsupported command %s", cmd.Kind)
		out = board.Outcome{Status: s.board.Status(), RemainingFlags: s.board.RemainingFlags()}
	}

	resp := s.respond(cmd.String(), out)
	log := s.log().WithField("command", cmd.String())
	if err != nil {
		log.WithError(err).Warn("command failed")
		resp.Error = err.Error()
		return resp
	}
	log.WithFields(logrus.Fields{
		"updates": len(out.Updates),
		"status":  out.Status,
	}).Debug("command executed")
	return resp
}

// fail reports a command that could not be parsed.
func (s *Session) fail(raw string, err error) Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log().WithError(err).WithField("command", raw).Warn("invalid command")
	resp := s.respond(raw, board.Outcome{
		Updates:        board.BoardUpdate{},
		Status:         s.board.Status(),
		RemainingFlags: s.board.RemainingFlags(),
	})
	resp.Error = err.Error()
	return resp
}

func (s *Session) respond(command string, out board.Outcome) Response {
	return Response{
		Board:          s.board.ID(),
		Command:        command,
		Updates:        playerView(out.Updates, out.Status),
		Status:         out.Status,
		RemainingFlags: out.RemainingFlags,
		ElapsedMs:      s.board.Elapsed(s.now()).Milliseconds(),
	}
}
