package retrieve

import (
	"strings"

	"github.com/fwojciec/eldin"
)

const (
	answerHeader  = "Key findings:"
	answerTrailer = "\n\nSee citations for exact passages."
)

// Synthesize builds a purely extractive answer from the collected sources:
// the first up-to-two non-empty lines of each excerpt, trimmed and joined
// with a single space, become one bullet. The same sources always produce
// the same answer text.
func Synthesize(sources []eldin.Source) string {
	bullets := make([]string, 0, len(sources))
	for _, s := range sources {
		bullets = append(bullets, " - "+strings.Join(firstLines(s.Excerpt, 2), " "))
	}
	return answerHeader + "\n" + strings.Join(bullets, "\n") + answerTrailer
}

// firstLines returns up to n non-empty, whitespace-trimmed lines of s.
func firstLines(s string, n int) []string {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == n {
			break
		}
	}
	return lines
}
