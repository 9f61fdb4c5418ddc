package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quintle/internal/daily"
	"quintle/internal/words"
)

func testDict(t *testing.T) *words.Dictionary {
	t.Helper()
	d, err := words.New(
		[]string{"CRANE", "HELLO", "SLATE"},
		[]string{"TRACE", "IRATE", "ERASE", "EVENT", "WORLD", "LLAMA", "STARE", "SNARE", "SHARE", "SPARE"},
	)
	require.NoError(t, err)
	return d
}

func testSession(t *testing.T, target string) *Session {
	t.Helper()
	return New(testDict(t), daily.Puzzle{Word: target, DayIndex: 42, Date: "2021-07-31"})
}

// typeWord presses each letter of w in order, requiring success.
func typeWord(t *testing.T, s *Session, w string) {
	t.Helper()
	for i := 0; i < len(w); i++ {
		res := s.ProcessInput(string(w[i]))
		require.True(t, res.OK, "placing %q", w[i])
		require.Equal(t, LetterPlaced, res.Action)
	}
}

// submit types w and presses ENTER.
func submit(t *testing.T, s *Session, w string) Result {
	t.Helper()
	typeWord(t, s, w)
	return s.ProcessInput(KeyEnter)
}

func TestTypingMovesCursor(t *testing.T) {
	s := testSession(t, "CRANE")

	typeWord(t, s, "TRA")
	row, col := s.Cursor()
	assert.Equal(t, 0, row)
	assert.Equal(t, 3, col)
	assert.Equal(t, "TRA", s.Current())

	res := s.ProcessInput(KeyBackspace)
	assert.True(t, res.OK)
	assert.Equal(t, LetterCleared, res.Action)
	assert.Equal(t, "TR", s.Current())
}

func TestLowercaseKeysAccepted(t *testing.T) {
	s := testSession(t, "CRANE")
	res := s.ProcessInput("t")
	assert.True(t, res.OK)
	assert.Equal(t, "T", s.Current())
}

func TestRejections(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T, s *Session)
		key    string
		reason Reason
	}{
		{
			name:   "invalid key digit",
			setup:  func(t *testing.T, s *Session) {},
			key:    "1",
			reason: InvalidKey,
		},
		{
			name:   "invalid key multi-letter",
			setup:  func(t *testing.T, s *Session) {},
			key:    "AB",
			reason: InvalidKey,
		},
		{
			name:   "invalid key empty",
			setup:  func(t *testing.T, s *Session) {},
			key:    "",
			reason: InvalidKey,
		},
		{
			name:   "row full",
			setup:  func(t *testing.T, s *Session) { typeWord(t, s, "TRACE") },
			key:    "X",
			reason: RowFull,
		},
		{
			name:   "nothing to delete",
			setup:  func(t *testing.T, s *Session) {},
			key:    KeyBackspace,
			reason: NothingToDelete,
		},
		{
			name:   "row incomplete",
			setup:  func(t *testing.T, s *Session) { typeWord(t, s, "TRA") },
			key:    KeyEnter,
			reason: RowIncomplete,
		},
		{
			name:   "word not recognized",
			setup:  func(t *testing.T, s *Session) { typeWord(t, s, "XXXXX") },
			key:    KeyEnter,
			reason: WordNotRecognized,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSession(t, "CRANE")
			tt.setup(t, s)
			before := s.Snapshot()

			res := s.ProcessInput(tt.key)
			assert.False(t, res.OK)
			assert.Equal(t, tt.reason, res.Reason)
			// Rejections never mutate.
			assert.Equal(t, before, s.Snapshot())
		})
	}
}

func TestWinFlow(t *testing.T) {
	s := testSession(t, "CRANE")

	res := submit(t, s, "TRACE")
	require.True(t, res.OK)
	assert.Equal(t, GuessContinue, res.Action)
	require.NotNil(t, res.Row)
	assert.Equal(t, "TRACE", res.Row.Word)
	assert.Equal(t, [WordLen]Verdict{Absent, Correct, Correct, Present, Correct}, res.Row.Verdicts)

	row, col := s.Cursor()
	assert.Equal(t, 1, row)
	assert.Equal(t, 0, col)

	res = submit(t, s, "CRANE")
	require.True(t, res.OK)
	assert.Equal(t, GuessWin, res.Action)
	assert.Equal(t, 2, res.Attempts)
	assert.Equal(t, Won, s.Status())
	assert.Len(t, s.Rows(), 2)
}

func TestLossFlow(t *testing.T) {
	s := testSession(t, "CRANE")

	for i := 0; i < MaxRows-1; i++ {
		res := submit(t, s, "SLATE")
		require.True(t, res.OK)
		require.Equal(t, GuessContinue, res.Action, "attempt %d", i+1)
	}
	res := submit(t, s, "SLATE")
	require.True(t, res.OK)
	assert.Equal(t, GuessLose, res.Action)
	assert.Equal(t, MaxRows, res.Attempts)
	assert.Equal(t, "CRANE", res.Answer)
	assert.Equal(t, Lost, s.Status())

	// Cursor stays in bounds on the final row.
	row, col := s.Cursor()
	assert.Equal(t, MaxRows-1, row)
	assert.LessOrEqual(t, col, WordLen)
}

func TestGameOverIsTerminal(t *testing.T) {
	s := testSession(t, "CRANE")
	res := submit(t, s, "CRANE")
	require.Equal(t, GuessWin, res.Action)

	after := s.Snapshot()
	for _, key := range []string{"A", KeyEnter, KeyBackspace, "?"} {
		res := s.ProcessInput(key)
		assert.False(t, res.OK, "key %q", key)
		assert.Equal(t, GameOver, res.Reason, "key %q", key)
	}
	assert.Equal(t, Won, s.Status())
	assert.Equal(t, after, s.Snapshot())
}

func TestHintMonotonicity(t *testing.T) {
	s := testSession(t, "CRANE")

	// ERASE lands R, A and the final E exactly: hint(E) = Correct
	// even though its leading E scores Absent in the same row.
	res := submit(t, s, "ERASE")
	require.True(t, res.OK)
	hints := s.Hints()
	assert.Equal(t, Correct, hints['E'-'A'])
	assert.Equal(t, Correct, hints['R'-'A'])
	assert.Equal(t, Correct, hints['A'-'A'])
	assert.Equal(t, Absent, hints['S'-'A'])

	// EVENT scores its E as Present; the hint must not downgrade.
	res = submit(t, s, "EVENT")
	require.True(t, res.OK)
	hints = s.Hints()
	assert.Equal(t, Correct, hints['E'-'A'])
	assert.Equal(t, Correct, hints['N'-'A'])
	assert.Equal(t, Unused, hints['Z'-'A'])
}

func TestCursorBoundsNeverExceeded(t *testing.T) {
	s := testSession(t, "CRANE")
	keys := []string{
		"A", "B", "C", "D", "E", "F", "G", // overflow attempts
		KeyBackspace, KeyBackspace, KeyBackspace, KeyBackspace,
		KeyBackspace, KeyBackspace, KeyBackspace, // underflow attempts
		KeyEnter, "S", "L", "A", "T", "E", KeyEnter,
	}
	for _, k := range keys {
		s.ProcessInput(k)
		row, col := s.Cursor()
		require.GreaterOrEqual(t, row, 0)
		require.Less(t, row, MaxRows)
		require.GreaterOrEqual(t, col, 0)
		require.LessOrEqual(t, col, WordLen)
	}
	assert.Len(t, s.Rows(), 1)
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := testSession(t, "CRANE")
	submit(t, s, "TRACE")
	typeWord(t, s, "SL")

	snap := s.Snapshot()
	restored, err := Restore(testDict(t), snap)
	require.NoError(t, err)
	assert.Equal(t, snap, restored.Snapshot())

	// Restored session keeps playing normally.
	typeWord(t, restored, "ATE")
	res := restored.ProcessInput(KeyEnter)
	require.True(t, res.OK)
	assert.Equal(t, GuessContinue, res.Action)
}

func TestSnapshotRoundTripFinished(t *testing.T) {
	s := testSession(t, "CRANE")
	submit(t, s, "CRANE")

	restored, err := Restore(testDict(t), s.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, Won, restored.Status())

	res := restored.ProcessInput("A")
	assert.Equal(t, GameOver, res.Reason)
}

func TestRestoreRejectsMalformedSnapshots(t *testing.T) {
	base := func() Snapshot { return testSession(t, "CRANE").Snapshot() }
	tests := []struct {
		name   string
		mutate func(*Snapshot)
	}{
		{name: "bad target", mutate: func(s *Snapshot) { s.Target = "XY" }},
		{name: "row too high", mutate: func(s *Snapshot) { s.Row = MaxRows }},
		{name: "row negative", mutate: func(s *Snapshot) { s.Row = -1 }},
		{name: "col too high", mutate: func(s *Snapshot) { s.Col = WordLen + 1 }},
		{name: "cursor mismatch", mutate: func(s *Snapshot) { s.Col = 2 }},
		{name: "junk current", mutate: func(s *Snapshot) { s.Current = "a!"; s.Col = 2 }},
		{name: "too many rows", mutate: func(s *Snapshot) {
			s.Rows = make([]GuessRecord, MaxRows+1)
		}},
		{name: "bad row word", mutate: func(s *Snapshot) {
			s.Rows = []GuessRecord{{Word: "??"}}
		}},
		{name: "unknown status", mutate: func(s *Snapshot) { s.Status = Status(9) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := base()
			tt.mutate(&snap)
			_, err := Restore(testDict(t), snap)
			assert.Error(t, err)
		})
	}
}

func TestVerdictAndTagStrings(t *testing.T) {
	assert.Equal(t, "unused", Unused.String())
	assert.Equal(t, "correct", Correct.String())
	assert.Equal(t, "guess_win", GuessWin.String())
	assert.Equal(t, "word_not_recognized", WordNotRecognized.String())
	assert.Equal(t, "playing", Playing.String())
	assert.Equal(t, "lost", Lost.String())
}
