package render

import (
	"strings"

	"github.com/rezi-tui/rezi/text"
)

// wrapLines splits content into the same line breaks the layout
// engine's measurement used (hard breaks on \n, greedy word-wrap
// within maxW), so the rendered glyphs land inside the rect the
// layout phase measured for them.
func wrapLines(content string, maxW int32) []string {
	if maxW <= 0 {
		return []string{content}
	}
	var out []string
	for _, line := range strings.Split(content, "\n") {
		out = append(out, wrapLine(line, int(maxW))...)
	}
	return out
}

func wrapLine(line string, maxW int) []string {
	if maxW <= 0 || text.StringWidth(line) <= maxW {
		return []string{line}
	}
	words := strings.Fields(line)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	cur := words[0]
	curW := text.StringWidth(cur)
	for _, w := range words[1:] {
		ww := text.StringWidth(w)
		if curW+1+ww > maxW {
			lines = append(lines, cur)
			cur = w
			curW = ww
			continue
		}
		cur += " " + w
		curW += 1 + ww
	}
	lines = append(lines, cur)
	return lines
}
