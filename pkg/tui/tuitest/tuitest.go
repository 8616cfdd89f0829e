// Package tuitest holds helpers for asserting on rendered Bubble Tea views.
package tuitest

import (
	"strings"

	"github.com/muesli/reflow/ansi"
)

// StripANSI removes terminal escape sequences from s.
func StripANSI(s string) string {
	var b strings.Builder
	inSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			inSeq = true
			continue
		}
		if inSeq {
			if ansi.IsTerminator(r) {
				inSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// LineWith returns the first line of view containing marker, or "".
func LineWith(view, marker string) string {
	for _, line := range strings.Split(view, "\n") {
		if strings.Contains(line, marker) {
			return line
		}
	}
	return ""
}

// Column is the display column marker starts at in line, or -1.
func Column(line, marker string) int {
	i := strings.Index(line, marker)
	if i < 0 {
		return -1
	}
	return ansi.PrintableRuneWidth(line[:i])
}
