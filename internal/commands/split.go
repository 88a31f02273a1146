package commands

import (
	"iter"
	"strings"
)

// Split yields the pieces of s separated by sep together with their
// position, so that one message may carry several commands.
func Split(s string, sep string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, sep)
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}
