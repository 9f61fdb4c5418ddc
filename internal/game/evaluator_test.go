package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		guess   string
		want    [WordLen]Verdict
		wantWin bool
	}{
		{
			name:    "exact match",
			target:  "HELLO",
			guess:   "HELLO",
			want:    [WordLen]Verdict{Correct, Correct, Correct, Correct, Correct},
			wantWin: true,
		},
		{
			name:   "partial match",
			target: "HELLO",
			guess:  "WORLD",
			want:   [WordLen]Verdict{Absent, Present, Absent, Correct, Absent},
		},
		{
			name:   "duplicate guess letters consume target budget",
			target: "HELLO",
			guess:  "LLAMA",
			want:   [WordLen]Verdict{Present, Present, Absent, Absent, Absent},
		},
		{
			name:   "trace against crane",
			target: "CRANE",
			guess:  "TRACE",
			want:   [WordLen]Verdict{Absent, Correct, Correct, Present, Correct},
		},
		{
			name:   "repeated letters in both words",
			target: "SPEED",
			guess:  "ERASE",
			want:   [WordLen]Verdict{Present, Absent, Absent, Present, Present},
		},
		{
			name:   "guess repeats beyond target count",
			target: "CRANE",
			guess:  "EERIE",
			// The exact match at position 4 consumes the target's
			// only E, so the two leading Es get nothing.
			want: [WordLen]Verdict{Absent, Absent, Present, Absent, Correct},
		},
		{
			name:   "nothing shared",
			target: "CRANE",
			guess:  "FUZZY",
			want:   [WordLen]Verdict{Absent, Absent, Absent, Absent, Absent},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := Evaluate(tt.target, tt.guess)
			assert.Equal(t, tt.want, ev.Verdicts)
			assert.Equal(t, tt.wantWin, ev.IsWin)
		})
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	assert.Equal(t, Evaluate("CRANE", "TRACE"), Evaluate("CRANE", "TRACE"))
}

func TestEvaluateLengthMismatchPanics(t *testing.T) {
	assert.Panics(t, func() { Evaluate("CRANE", "CAT") })
	assert.Panics(t, func() { Evaluate("CAT", "CRANE") })
}
