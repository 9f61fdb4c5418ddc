package game

// WordLen is the fixed word length; every row is WordLen letters and
// the grid is MaxRows rows tall.
const (
	WordLen = 5
	MaxRows = 6
)

// Evaluation is the scored outcome of one guess.
type Evaluation struct {
	Verdicts [WordLen]Verdict
	IsWin    bool
}

// Evaluate scores guess against target with the two-pass algorithm.
//
// Pass 1: mark exact matches Correct and count the remaining target
// letters. Pass 2, left to right over the rest: Present while the
// letter still has remaining count, Absent otherwise. The ordering
// guarantees a repeated guess letter is credited Present at most as
// many times as it remains in the target, earliest occurrences first.
//
// Both words must be WordLen uppercase letters; ProcessInput
// validates before calling, so a violation here is a programmer
// error.
func Evaluate(target, guess string) Evaluation {
	if len(target) != WordLen || len(guess) != WordLen {
		panic("game: Evaluate called with mismatched word lengths")
	}

	var ev Evaluation
	var counts [26]int

	for i := 0; i < WordLen; i++ {
		if guess[i] == target[i] {
			ev.Verdicts[i] = Correct
		} else {
			counts[target[i]-'A']++
		}
	}

	win := true
	for i := 0; i < WordLen; i++ {
		if ev.Verdicts[i] == Correct {
			continue
		}
		win = false
		if j := int(guess[i] - 'A'); j >= 0 && j < 26 && counts[j] > 0 {
			ev.Verdicts[i] = Present
			counts[j]--
		} else {
			ev.Verdicts[i] = Absent
		}
	}
	ev.IsWin = win
	return ev
}
