package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		line string
		want Line
	}{
		{"PROGRESS:42:Embedding frame 10/20", ProgressEvent{Percent: 42, Message: "Embedding frame 10/20"}},
		{"PROGRESS:0:", ProgressEvent{Percent: 0, Message: ""}},
		{"PROGRESS:100:Done: 3 files", ProgressEvent{Percent: 100, Message: "Done: 3 files"}},
		{"PROGRESS:150:over", ProgressEvent{Percent: 150, Message: "over"}},
		{"PROGRESS:-5:under", ProgressEvent{Percent: -5, Message: "under"}},
		{"PROGRESS:7:trailing newline\r\n", ProgressEvent{Percent: 7, Message: "trailing newline"}},
		{"Loading model...", RawStatus("Loading model...")},
		{"ERROR: Decoding requires exactly one input video file.", RawStatus("ERROR: Decoding requires exactly one input video file.")},
		{"  PROGRESS:10:not anchored", RawStatus("  PROGRESS:10:not anchored")},
		{"PROGRESS:abc:bad number", RawStatus("PROGRESS:abc:bad number")},
		{"PROGRESS:10", RawStatus("PROGRESS:10")},
		{"PROGRESS:99999999999999999999999:overflow", RawStatus("PROGRESS:99999999999999999999999:overflow")},
		{"", RawStatus("")},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLine(tt.line))
		})
	}
}

func TestClampPercent(t *testing.T) {
	assert.Equal(t, 0, ClampPercent(-5))
	assert.Equal(t, 50, ClampPercent(50))
	assert.Equal(t, 100, ClampPercent(150))
}

func TestParseResult(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   Result
	}{
		{
			name:   "tagged password",
			output: "AI_RESULT:Tr0ub4dor&3\n",
			want:   Result{Text: "Tr0ub4dor&3", Tagged: true},
		},
		{
			name:   "untagged output",
			output: "  plain manifest text \n",
			want:   Result{Text: "plain manifest text"},
		},
		{
			name:   "diagnostics before result",
			output: "loading model\n\nwarming up\nAI_RESULT:Contains notes.\n",
			want:   Result{Text: "Contains notes.", Tagged: true, Diagnostics: []string{"loading model", "warming up"}},
		},
		{
			name:   "payload containing sentinel",
			output: "AI_RESULT:line one\nAI_RESULT: is literal here\n",
			want:   Result{Text: "line one\nAI_RESULT: is literal here", Tagged: true},
		},
		{
			name:   "windows line endings",
			output: "AI_RESULT:abc\r\n",
			want:   Result{Text: "abc", Tagged: true},
		},
		{
			name:   "empty",
			output: "",
			want:   Result{Text: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseResult(tt.output))
		})
	}
}
