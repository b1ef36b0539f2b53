package engine

import "strings"

// ResultSentinel marks the start of an assistant result on engine stdout.
const ResultSentinel = "AI_RESULT:"

// Result is the payload of an assistant request.
type Result struct {
	Text        string   // the value returned to the caller, whitespace trimmed
	Tagged      bool     // whether the engine marked it with ResultSentinel
	Diagnostics []string // non-empty lines printed before the tagged result
}

// ParseResult splits buffered assistant output into diagnostics and result.
// The first line that starts with ResultSentinel opens the result, which runs
// to the end of the output; later occurrences of the sentinel text belong to
// the payload. Output without a tagged line is returned whole, untagged.
func ParseResult(output string) Result {
	lines := strings.Split(output, "\n")
	for i, line := range lines {
		if !strings.HasPrefix(line, ResultSentinel) {
			continue
		}
		var diag []string
		for _, d := range lines[:i] {
			if d = strings.TrimSpace(d); d != "" {
				diag = append(diag, d)
			}
		}
		rest := append([]string{strings.TrimPrefix(line, ResultSentinel)}, lines[i+1:]...)
		return Result{
			Text:        strings.TrimSpace(strings.Join(rest, "\n")),
			Tagged:      true,
			Diagnostics: diag,
		}
	}
	return Result{Text: strings.TrimSpace(output)}
}
