// Core type definitions for the game engine: verdicts, input keys,
// and the tagged results ProcessInput reports to callers.

package game

// Verdict classifies one letter. The numeric order is load-bearing:
// keyboard hints only ever move up along
// Unused < Absent < Present < Correct.
type Verdict int8

const (
	Unused Verdict = iota
	Absent
	Present
	Correct
)

func (v Verdict) String() string {
	switch v {
	case Absent:
		return "absent"
	case Present:
		return "present"
	case Correct:
		return "correct"
	default:
		return "unused"
	}
}

// Non-letter input keys. Everything else must be a single letter A-Z.
const (
	KeyEnter     = "ENTER"
	KeyBackspace = "BACKSPACE"
)

// Action tags a successful ProcessInput outcome.
type Action int8

const (
	ActionNone Action = iota
	LetterPlaced
	LetterCleared
	GuessContinue
	GuessWin
	GuessLose
)

func (a Action) String() string {
	switch a {
	case LetterPlaced:
		return "letter_placed"
	case LetterCleared:
		return "letter_cleared"
	case GuessContinue:
		return "guess_continue"
	case GuessWin:
		return "guess_win"
	case GuessLose:
		return "guess_lose"
	default:
		return ""
	}
}

// Reason tags a rejected ProcessInput call. Rejections are ordinary
// outcomes, not errors: the session is left untouched and the caller
// decides how to surface them (shake, toast, nothing).
type Reason int8

const (
	ReasonNone Reason = iota
	GameOver
	InvalidKey
	RowFull
	NothingToDelete
	RowIncomplete
	WordNotRecognized
)

func (r Reason) String() string {
	switch r {
	case GameOver:
		return "game_over"
	case InvalidKey:
		return "invalid_key"
	case RowFull:
		return "row_full"
	case NothingToDelete:
		return "nothing_to_delete"
	case RowIncomplete:
		return "row_incomplete"
	case WordNotRecognized:
		return "word_not_recognized"
	default:
		return ""
	}
}

// GuessRecord is one submitted row: the word and its verdicts.
// Immutable once created.
type GuessRecord struct {
	Word     string           `json:"word"`
	Verdicts [WordLen]Verdict `json:"verdicts"`
}

// Result is the tagged outcome of a single ProcessInput call.
// OK selects between Action (success) and Reason (rejection).
type Result struct {
	OK     bool
	Action Action
	Reason Reason

	// Row is the completed row on any accepted guess.
	Row *GuessRecord
	// Attempts is the number of rows used, reported on win and loss.
	Attempts int
	// Answer is the revealed target, reported on loss.
	Answer string
}
