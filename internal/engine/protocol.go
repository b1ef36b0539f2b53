package engine

import (
	"regexp"
	"strconv"
	"strings"
)

// Line is one parsed line of engine output: either a ProgressEvent or a
// RawStatus.
type Line interface {
	isLine()
}

// ProgressEvent is a PROGRESS:<percent>:<message> line. Percent is passed
// through unclamped; keeping it in 0-100 is the display's job.
type ProgressEvent struct {
	Percent int
	Message string
}

// RawStatus is any other line, shown verbatim.
type RawStatus string

func (ProgressEvent) isLine() {}
func (RawStatus) isLine()     {}

var progressRE = regexp.MustCompile(`^PROGRESS:([+-]?\d+):(.*)$`)

// ParseLine classifies a single line of engine stdout. A malformed PROGRESS
// line (for example an out-of-range integer) degrades to RawStatus.
func ParseLine(line string) Line {
	line = strings.TrimRight(line, "\r\n")
	m := progressRE.FindStringSubmatch(line)
	if m == nil {
		return RawStatus(line)
	}
	pct, err := strconv.Atoi(m[1])
	if err != nil {
		return RawStatus(line)
	}
	return ProgressEvent{Percent: pct, Message: m[2]}
}

// ClampPercent bounds a reported percentage to the 0-100 display range.
func ClampPercent(p int) int {
	return min(max(p, 0), 100)
}
