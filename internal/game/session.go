// Session is the state machine for one day's play: it owns the grid
// cursor, the submitted rows, the aggregate keyboard hints, and the
// playing/won/lost status, and mutates exclusively through
// ProcessInput. All rejections come back as structured Results, never
// errors, and a rejected call leaves the session untouched.

package game

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"quintle/internal/daily"
	"quintle/internal/words"
)

// Status is the session lifecycle state. Transitions are monotonic:
// Playing → Won or Playing → Lost, both terminal.
type Status int8

const (
	Playing Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "playing"
	}
}

// Session holds one player's puzzle for one day.
type Session struct {
	mu sync.Mutex // serializes ProcessInput; keystrokes are order-dependent

	dict     *words.Dictionary
	target   string
	dayIndex int
	date     string
	started  time.Time

	rows   []GuessRecord
	buf    [WordLen]byte // letters typed into the active row
	row    int           // 0..MaxRows-1
	col    int           // 0..WordLen
	status Status
	hints  [26]Verdict
}

// New starts a fresh session for the given puzzle.
func New(dict *words.Dictionary, p daily.Puzzle) *Session {
	return &Session{
		dict:     dict,
		target:   p.Word,
		dayIndex: p.DayIndex,
		date:     p.Date,
		started:  time.Now().UTC(),
	}
}

// ProcessInput applies a single key: a letter A-Z, ENTER, or
// BACKSPACE. Calls are serialized; concurrent invocation is safe but
// the outcome order follows lock acquisition order.
func (s *Session) ProcessInput(key string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != Playing {
		return Result{Reason: GameOver}
	}

	switch k := strings.ToUpper(strings.TrimSpace(key)); k {
	case KeyEnter:
		return s.submitRow()
	case KeyBackspace:
		if s.col == 0 {
			return Result{Reason: NothingToDelete}
		}
		s.col--
		s.buf[s.col] = 0
		return Result{OK: true, Action: LetterCleared}
	default:
		if len(k) != 1 || k[0] < 'A' || k[0] > 'Z' {
			return Result{Reason: InvalidKey}
		}
		if s.col == WordLen {
			return Result{Reason: RowFull}
		}
		s.buf[s.col] = k[0]
		s.col++
		return Result{OK: true, Action: LetterPlaced}
	}
}

// submitRow resolves an ENTER press. Caller holds the lock.
func (s *Session) submitRow() Result {
	if s.col < WordLen {
		return Result{Reason: RowIncomplete}
	}
	word := string(s.buf[:])
	if !s.dict.IsAllowed(word) {
		return Result{Reason: WordNotRecognized}
	}

	ev := Evaluate(s.target, word)
	rec := GuessRecord{Word: word, Verdicts: ev.Verdicts}
	s.rows = append(s.rows, rec)
	for i := 0; i < WordLen; i++ {
		if j := word[i] - 'A'; ev.Verdicts[i] > s.hints[j] {
			s.hints[j] = ev.Verdicts[i]
		}
	}

	switch {
	case ev.IsWin:
		s.status = Won
		return Result{OK: true, Action: GuessWin, Row: &rec, Attempts: s.row + 1}
	case s.row == MaxRows-1:
		s.status = Lost
		return Result{OK: true, Action: GuessLose, Row: &rec, Attempts: MaxRows, Answer: s.target}
	default:
		s.row++
		s.col = 0
		s.buf = [WordLen]byte{}
		return Result{OK: true, Action: GuessContinue, Row: &rec}
	}
}

// Status returns the lifecycle state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Finished reports whether the session left Playing.
func (s *Session) Finished() bool { return s.Status() != Playing }

// Cursor returns the active row and column.
func (s *Session) Cursor() (row, col int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.row, s.col
}

// Current returns the letters typed into the active row so far.
func (s *Session) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.buf[:s.col])
}

// Rows returns a copy of the submitted rows.
func (s *Session) Rows() []GuessRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]GuessRecord, len(s.rows))
	copy(out, s.rows)
	return out
}

// Hints returns the aggregate keyboard hint for every letter A-Z,
// indexed by letter - 'A'.
func (s *Session) Hints() [26]Verdict {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hints
}

// Date returns the session's calendar date key (YYYY-MM-DD).
func (s *Session) Date() string { return s.date }

// DayIndex returns the puzzle's day index.
func (s *Session) DayIndex() int { return s.dayIndex }

// Answer returns the target word. Callers decide when revealing it is
// appropriate (normally only after the session is finished).
func (s *Session) Answer() string { return s.target }

// Started returns when the session was created.
func (s *Session) Started() time.Time { return s.started }

// Snapshot is a serializable copy of the whole session, sufficient to
// reconstruct it exactly.
type Snapshot struct {
	Target    string        `json:"target"`
	DayIndex  int           `json:"dayIndex"`
	Date      string        `json:"date"`
	StartedAt time.Time     `json:"startedAt"`
	Rows      []GuessRecord `json:"rows"`
	Current   string        `json:"current"`
	Row       int           `json:"row"`
	Col       int           `json:"col"`
	Status    Status        `json:"status"`
	Hints     [26]Verdict   `json:"hints"`
}

// Snapshot captures the session state for persistence.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := make([]GuessRecord, len(s.rows))
	copy(rows, s.rows)
	return Snapshot{
		Target:    s.target,
		DayIndex:  s.dayIndex,
		Date:      s.date,
		StartedAt: s.started,
		Rows:      rows,
		Current:   string(s.buf[:s.col]),
		Row:       s.row,
		Col:       s.col,
		Status:    s.status,
		Hints:     s.hints,
	}
}

// Restore rebuilds a session from a snapshot. The snapshot is
// validated; a malformed one (out-of-range cursor, bad words) is
// rejected rather than producing a session that could violate the
// grid invariants. Deciding whether a snapshot is stale (its Date no
// longer "today") is the caller's job.
func Restore(dict *words.Dictionary, snap Snapshot) (*Session, error) {
	if _, ok := words.Normalize(snap.Target); !ok {
		return nil, fmt.Errorf("restore: invalid target %q", snap.Target)
	}
	if snap.Row < 0 || snap.Row >= MaxRows {
		return nil, fmt.Errorf("restore: row %d out of range", snap.Row)
	}
	if snap.Col < 0 || snap.Col > WordLen {
		return nil, fmt.Errorf("restore: col %d out of range", snap.Col)
	}
	if len(snap.Rows) > MaxRows {
		return nil, fmt.Errorf("restore: %d rows exceeds grid", len(snap.Rows))
	}
	if len(snap.Current) != snap.Col {
		return nil, errors.New("restore: current row does not match cursor")
	}
	for i := 0; i < len(snap.Current); i++ {
		if snap.Current[i] < 'A' || snap.Current[i] > 'Z' {
			return nil, errors.New("restore: current row has non-letter characters")
		}
	}
	if snap.Status < Playing || snap.Status > Lost {
		return nil, fmt.Errorf("restore: unknown status %d", snap.Status)
	}

	s := &Session{
		dict:     dict,
		target:   snap.Target,
		dayIndex: snap.DayIndex,
		date:     snap.Date,
		started:  snap.StartedAt,
		row:      snap.Row,
		col:      snap.Col,
		status:   snap.Status,
		hints:    snap.Hints,
	}
	s.rows = make([]GuessRecord, len(snap.Rows))
	copy(s.rows, snap.Rows)
	for i, rec := range s.rows {
		if _, ok := words.Normalize(rec.Word); !ok {
			return nil, fmt.Errorf("restore: invalid word in row %d", i)
		}
	}
	copy(s.buf[:], snap.Current)
	return s, nil
}
