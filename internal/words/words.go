// Package words holds the word lists the game is played against.
//
// Two lists with distinct roles:
//   - answers: curated words eligible as daily puzzle targets.
//   - allowed: every word accepted as a guess (always ⊇ answers).
//
// A Dictionary is an immutable value constructed once at startup and
// injected into whatever needs it, so tests can play against a
// three-word list without touching globals or the filesystem.
// Words are normalized to uppercase and filtered to exactly five
// ASCII letters.
package words

import (
	"bufio"
	"errors"
	"os"
	"strings"

	"quintle/assets"
)

// Length is the fixed word length for every list entry.
const Length = 5

// Dictionary is the answer list plus the guess-acceptance set.
type Dictionary struct {
	answers    []string
	answerSet  map[string]struct{}
	allowedSet map[string]struct{} // answers ∪ extra guesses
}

// New builds a Dictionary from an answer list and extra allowed
// guesses. Entries are normalized and invalid ones dropped; answers
// are always included in the acceptance set. Errors if no valid
// answers remain.
func New(answers, extraAllowed []string) (*Dictionary, error) {
	d := &Dictionary{
		answerSet:  make(map[string]struct{}, len(answers)),
		allowedSet: make(map[string]struct{}, len(answers)+len(extraAllowed)),
	}
	for _, w := range answers {
		w, ok := Normalize(w)
		if !ok {
			continue
		}
		if _, dup := d.answerSet[w]; dup {
			continue
		}
		d.answers = append(d.answers, w)
		d.answerSet[w] = struct{}{}
		d.allowedSet[w] = struct{}{}
	}
	for _, w := range extraAllowed {
		if w, ok := Normalize(w); ok {
			d.allowedSet[w] = struct{}{}
		}
	}
	if len(d.answers) == 0 {
		return nil, errors.New("words: answers list is empty")
	}
	return d, nil
}

// Load reads an answers file and an allowed-guesses file, one word
// per line. If allowedPath is empty the answers double as the allowed
// list.
func Load(answersPath, allowedPath string) (*Dictionary, error) {
	answers, err := readWordFile(answersPath)
	if err != nil {
		return nil, err
	}
	var allowed []string
	if allowedPath != "" {
		if allowed, err = readWordFile(allowedPath); err != nil {
			return nil, err
		}
	}
	return New(answers, allowed)
}

// Default builds the Dictionary from the embedded word lists.
func Default() (*Dictionary, error) {
	answers, err := assets.AnswersList()
	if err != nil {
		return nil, err
	}
	allowed, err := assets.AllowedList()
	if err != nil {
		return nil, err
	}
	return New(answers, allowed)
}

// Answers returns the ordered answer list. Callers must not mutate it.
func (d *Dictionary) Answers() []string { return d.answers }

// IsAllowed reports whether w is an acceptable guess.
func (d *Dictionary) IsAllowed(w string) bool {
	w, ok := Normalize(w)
	if !ok {
		return false
	}
	_, ok = d.allowedSet[w]
	return ok
}

// IsAnswer reports whether w is in the answer list.
func (d *Dictionary) IsAnswer(w string) bool {
	w, ok := Normalize(w)
	if !ok {
		return false
	}
	_, ok = d.answerSet[w]
	return ok
}

// Stats returns the loaded counts: (answers, allowed).
func (d *Dictionary) Stats() (answersCount, allowedCount int) {
	return len(d.answers), len(d.allowedSet)
}

// Normalize uppercases and trims w, reporting whether the result is a
// valid list entry (exactly Length letters A-Z).
func Normalize(w string) (string, bool) {
	w = strings.ToUpper(strings.TrimSpace(w))
	if len(w) != Length {
		return "", false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'A' || w[i] > 'Z' {
			return "", false
		}
	}
	return w, true
}

// readWordFile loads one word per line, skipping blanks and comments.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}
