package session

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"math/rand/v2"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vancomm/minesweeper-engine/internal/board"
	"github.com/vancomm/minesweeper-engine/internal/commands"
)

func TestMain(m *testing.M) {
	Log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	Log.SetLevel(logrus.WarnLevel)
	os.Exit(m.Run())
}

var beginner = board.Params{Width: 9, Height: 9, MineCount: 10}

func newSession(t *testing.T) *Session {
	t.Helper()
	s, err := New(beginner, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	return s
}

func findMine(t *testing.T, s *Session) board.Point {
	t.Helper()
	for y := range beginner.Height {
		for x := range beginner.Width {
			c, err := s.CellAt(x, y)
			require.NoError(t, err)
			if c.Mined && !c.Revealed {
				return board.Point{X: x, Y: y}
			}
		}
	}
	t.Fatal("no hidden mine on the board")
	return board.Point{}
}

func assertHidden(t *testing.T, updates board.BoardUpdate) {
	t.Helper()
	for _, u := range updates {
		if !u.Revealed {
			assert.False(t, u.Mined, "cell %d:%d", u.X, u.Y)
			assert.Zero(t, u.MineCount, "cell %d:%d", u.X, u.Y)
		}
	}
}

func TestNew(t *testing.T) {
	_, err := New(board.Params{Width: 3, Height: 3, MineCount: 1}, nil)
	var cfgErr *board.ConfigError
	assert.ErrorAs(t, err, &cfgErr)

	s, err := New(beginner, nil)
	require.NoError(t, err)
	assert.Equal(t, board.Pending, s.Status())
}

func TestExecuteGet(t *testing.T) {
	s := newSession(t)
	resp := s.Execute(commands.Command{Kind: commands.Get})

	assert.Empty(t, resp.Error)
	assert.Equal(t, "g", resp.Command)
	assert.Equal(t, s.ID(), resp.Board)
	assert.Len(t, resp.Updates, 81)
	assert.Equal(t, board.Pending, resp.Status)
	assert.Equal(t, 10, resp.RemainingFlags)
	assert.Zero(t, resp.ElapsedMs)
}

func TestExecuteOpen(t *testing.T) {
	s := newSession(t)
	resp := s.Execute(commands.Command{Kind: commands.Open, X: 4, Y: 4})

	assert.Empty(t, resp.Error)
	assert.Equal(t, "o 4 4", resp.Command)
	assert.NotEmpty(t, resp.Updates)
	assert.Contains(t, []board.Status{board.InProgress, board.Won}, resp.Status)

	cell, err := s.CellAt(4, 4)
	require.NoError(t, err)
	assert.True(t, cell.Revealed)
	assert.False(t, cell.Mined)
	assert.Zero(t, cell.MineCount)
}

func TestExecuteFlag(t *testing.T) {
	s := newSession(t)
	resp := s.Execute(commands.Command{Kind: commands.Flag, X: 0, Y: 0})
	require.Len(t, resp.Updates, 1)
	assert.True(t, resp.Updates[0].Flagged)
	assert.Equal(t, 9, resp.RemainingFlags)

	resp = s.Execute(commands.Command{Kind: commands.Flag, X: 0, Y: 0})
	require.Len(t, resp.Updates, 1)
	assert.False(t, resp.Updates[0].Flagged)
	assert.Equal(t, 10, resp.RemainingFlags)
}

func TestExecuteLoseAndReset(t *testing.T) {
	s := newSession(t)
	s.Execute(commands.Command{Kind: commands.Open, X: 4, Y: 4})
	if s.Status() == board.Won {
		t.Skip("first click cleared the board")
	}
	mine := findMine(t, s)

	resp := s.Execute(commands.Command{Kind: commands.Open, X: mine.X, Y: mine.Y})
	assert.Equal(t, board.Lost, resp.Status)
	assert.NotEmpty(t, resp.Updates)

	resp = s.Execute(commands.Command{Kind: commands.Open, X: 0, Y: 0})
	assert.Equal(t, board.Lost, resp.Status)
	assert.Empty(t, resp.Updates)

	prev := s.ID()
	resp = s.Execute(commands.Command{Kind: commands.Reset})
	assert.Empty(t, resp.Error)
	assert.NotEqual(t, prev, resp.Board)
	assert.Equal(t, board.Pending, resp.Status)
	assert.Len(t, resp.Updates, 81)
	for _, u := range resp.Updates {
		assert.False(t, u.Revealed)
		assert.False(t, u.Flagged)
	}
}

func TestExecuteHidesMines(t *testing.T) {
	s := newSession(t)
	s.Execute(commands.Command{Kind: commands.Open, X: 4, Y: 4})
	if s.Status() == board.Won {
		t.Skip("first click cleared the board")
	}

	resp := s.Execute(commands.Command{Kind: commands.Get})
	assert.Len(t, resp.Updates, 81)
	assertHidden(t, resp.Updates)

	mine := findMine(t, s)
	resp = s.Execute(commands.Command{Kind: commands.Flag, X: mine.X, Y: mine.Y})
	require.Len(t, resp.Updates, 1)
	assert.True(t, resp.Updates[0].Flagged)
	assert.False(t, resp.Updates[0].Mined)

	s.Execute(commands.Command{Kind: commands.Flag, X: mine.X, Y: mine.Y})
	resp = s.Execute(commands.Command{Kind: commands.Open, X: mine.X, Y: mine.Y})
	require.Equal(t, board.Lost, resp.Status)

	mines := 0
	for _, u := range s.Execute(commands.Command{Kind: commands.Get}).Updates {
		if u.Mined {
			mines++
		}
	}
	assert.Equal(t, beginner.MineCount, mines)
}

func TestPlayerView(t *testing.T) {
	update := board.BoardUpdate{
		{X: 0, Y: 0, Cell: board.Cell{Mined: true, Flagged: true}},
		{X: 1, Y: 0, Cell: board.Cell{MineCount: 2}},
		{X: 2, Y: 0, Cell: board.Cell{Revealed: true, MineCount: 1}},
	}

	view := playerView(update, board.InProgress)
	assert.Equal(t, board.BoardUpdate{
		{X: 0, Y: 0, Cell: board.Cell{Flagged: true}},
		{X: 1, Y: 0, Cell: board.Cell{}},
		{X: 2, Y: 0, Cell: board.Cell{Revealed: true, MineCount: 1}},
	}, view)
	assert.True(t, update[0].Mined, "input must not be modified")

	assert.Equal(t, update, playerView(update, board.Won))
	assert.Equal(t, update, playerView(update, board.Lost))

	assert.NotNil(t, playerView(nil, board.Pending))
	assert.Empty(t, playerView(nil, board.Pending))
}

func TestExecuteOutOfBounds(t *testing.T) {
	s := newSession(t)
	resp := s.Execute(commands.Command{Kind: commands.Open, X: 9, Y: 0})
	assert.NotEmpty(t, resp.Error)
	assert.NotNil(t, resp.Updates)
	assert.Empty(t, resp.Updates)
	assert.Equal(t, board.Pending, resp.Status)
}

func TestExecuteConcurrent(t *testing.T) {
	s := newSession(t)
	var wg sync.WaitGroup
	for y := range beginner.Height {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for x := range beginner.Width {
				s.Execute(commands.Command{Kind: commands.Flag, X: x, Y: y})
			}
		}()
	}
	wg.Wait()

	resp := s.Execute(commands.Command{Kind: commands.Get})
	assert.Equal(t, 10-81, resp.RemainingFlags)
	for _, u := range resp.Updates {
		assert.True(t, u.Flagged)
	}
}

func TestElapsed(t *testing.T) {
	s := newSession(t)
	start := time.Now()
	s.now = func() time.Time { return start.Add(1500 * time.Millisecond) }

	resp := s.Execute(commands.Command{Kind: commands.Open, X: 4, Y: 4})
	if resp.Status.Terminal() {
		t.Skip("first click cleared the board")
	}
	assert.GreaterOrEqual(t, resp.ElapsedMs, int64(1000))
}

func decode(t *testing.T, out string) []Response {
	t.Helper()
	var resps []Response
	scanner := bufio.NewScanner(strings.NewReader(out))
	scanner.Buffer(nil, 1<<20)
	for scanner.Scan() {
		var r Response
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &r))
		resps = append(resps, r)
	}
	require.NoError(t, scanner.Err())
	return resps
}

func TestServe(t *testing.T) {
	s := newSession(t)
	in := strings.NewReader("g\no 4 4; f 0 0\n\nx 1 1\no 1\no 99 0\n")
	var out strings.Builder

	require.NoError(t, s.Serve(context.Background(), in, &out))

	resps := decode(t, out.String())
	require.Len(t, resps, 6)

	assert.Equal(t, "g", resps[0].Command)
	assert.Len(t, resps[0].Updates, 81)

	assert.Equal(t, "o 4 4", resps[1].Command)
	assert.Empty(t, resps[1].Error)
	assert.NotEqual(t, board.Pending, resps[1].Status)

	assert.Equal(t, "f 0 0", resps[2].Command)

	assert.Equal(t, "x 1 1", resps[3].Command)
	assert.Contains(t, resps[3].Error, "unknown command")

	assert.Equal(t, "o 1", resps[4].Command)
	assert.Contains(t, resps[4].Error, "invalid number of arguments")

	for _, r := range resps[:3] {
		assertHidden(t, r.Updates)
	}

	assert.Equal(t, "o 99 0", resps[5].Command)
	assert.NotEmpty(t, resps[5].Error)
	for _, r := range resps {
		assert.Equal(t, s.ID(), r.Board)
	}
}

func TestServeCancel(t *testing.T) {
	s := newSession(t)
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, pr, io.Discard) }()

	_, err := pw.Write([]byte("g\n"))
	require.NoError(t, err)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("serve did not return after cancel")
	}

	// the reader was closed, so nothing is left waiting on it
	_, err = pw.Write([]byte("g\n"))
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestServeWriteError(t *testing.T) {
	s := newSession(t)
	err := s.Serve(context.Background(), strings.NewReader("g\n"), failingWriter{})
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}
