package session

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vancomm/minesweeper-engine/internal/commands"
)

// CommandSeparator splits several commands sent on one line.
const CommandSeparator = ";"

// Serve reads newline delimited commands from r and writes one JSON encoded
// [Response] per command to w. It returns when r is exhausted, ctx is done
// or a response cannot be written. Bad commands are answered with an error
// response and do not stop the loop.
//
// Reads happen on a separate goroutine. When ctx is done and r is an
// [io.Closer], r is closed to release a pending read; any other r keeps
// that goroutine blocked until its Read returns.
func (s *Session) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	var (
		lines   = make(chan string)
		scanErr = make(chan error, 1)
		enc     = json.NewEncoder(w)
	)
	defer func() {
		if c, ok := r.(io.Closer); ok && ctx.Err() != nil {
			c.Close()
		}
	}()

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				scanErr <- ctx.Err()
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return <-scanErr
			}
			for _, piece := range commands.Split(line, CommandSeparator) {
				piece = strings.TrimSpace(piece)
				if piece == "" {
					continue
				}
				var resp Response
				if cmd, err := commands.Parse(piece); err != nil {
					resp = s.fail(piece, err)
				} else {
					resp = s.Execute(cmd)
				}
				if err := enc.Encode(resp); err != nil {
					return fmt.Errorf("unable to write response: %w", err)
				}
			}
		}
	}
}
