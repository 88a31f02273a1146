// Package commands parses the line protocol used to drive a board:
//
//	g       get the whole board
//	o X Y   open (reveal) a cell
//	f X Y   toggle a flag
//	c X Y   chord around a revealed number
//	r       reset the board
package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type Kind int

const (
	Get Kind = iota
	Open
	Flag
	Chord
	Reset
)

var (
	ErrEmpty          = errors.New("empty command")
	ErrUnknownCommand = errors.New("unknown command")
	ErrArgumentCount  = errors.New("invalid number of arguments")
)

type ArgumentError struct {
	Position int
	Value    string
}

// [ArgumentError] implements [error]
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("argument %d must be an int, got %q", e.Position, e.Value)
}

type verb struct {
	kind  Kind
	name  string
	nargs int
}

var verbs = map[string]verb{
	"g": {Get, "get", 0},
	"o": {Open, "open", 2},
	"f": {Flag, "flag", 2},
	"c": {Chord, "chord", 2},
	"r": {Reset, "reset", 0},
}

// [Kind] implements [fmt.Stringer]
func (k Kind) String() string {
	for _, v := range verbs {
		if v.kind == k {
			return v.name
		}
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// [Kind] implements [encoding.TextMarshaler]
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

type Command struct {
	Kind Kind
	X, Y int
}

// [Command] implements [fmt.Stringer]
func (c Command) String() string {
	for letter, v := range verbs {
		if v.kind != c.Kind {
			continue
		}
		if v.nargs == 0 {
			return letter
		}
		return fmt.Sprintf("%s %d %d", letter, c.X, c.Y)
	}
	return c.Kind.String()
}

func parseXY(twoStrings []string) (x int, y int, err error) {
	if x, err = strconv.Atoi(twoStrings[0]); err != nil {
		return 0, 0, &ArgumentError{1, twoStrings[0]}
	}
	if y, err = strconv.Atoi(twoStrings[1]); err != nil {
		return 0, 0, &ArgumentError{2, twoStrings[1]}
	}
	return
}

func Parse(line string) (Command, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return Command{}, ErrEmpty
	}
	v, ok := verbs[parts[0]]
	if !ok {
		return Command{}, fmt.Errorf("%w %q", ErrUnknownCommand, parts[0])
	}
	if v.nargs != len(parts)-1 {
		return Command{}, fmt.Errorf("%w: %s takes %d, got %d",
			ErrArgumentCount, v.name, v.nargs, len(parts)-1)
	}
	cmd := Command{Kind: v.kind}
	if v.nargs == 2 {
		x, y, err := parseXY(parts[1:])
		if err != nil {
			return Command{}, err
		}
		cmd.X, cmd.Y = x, y
	}
	return cmd, nil
}
