// HTTP routes for the daily puzzle.
// Endpoints under /daily:
//   - POST /daily/new         → create or restore today's session
//   - POST /daily/key         → feed one key press into the session
//   - GET  /daily/state       → current board snapshot
//   - GET  /daily/today       → date, day index, countdown to next puzzle
//   - GET  /daily/leaderboard → top results for today (or ?date=)
//
// One session per owner (user or anon cookie) per calendar day. Live
// sessions sit in the in-memory registry; every accepted key press is
// snapshotted to the database so a restart or second device restores
// mid-game state. The target word never appears in a response until
// the game is over.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"quintle/internal/game"
	"quintle/internal/store"
)

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	d := &dailyServer{srv: s}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", d.handleNew)
		r.Post("/key", d.handleKey)
		r.Get("/state", d.handleState)
		r.Get("/today", d.handleToday)
		r.Get("/leaderboard", d.handleLeaderboard)
	})
}

// dailyServer wraps Server for the /daily endpoints.
type dailyServer struct {
	srv *Server
}

// ownerID returns the authenticated user ID if logged in, otherwise
// the anonymous cookie ID.
func (d *dailyServer) ownerID(w http.ResponseWriter, r *http.Request) string {
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		return me.ID
	}
	return d.srv.ensureAnonID(w, r)
}

// session returns the owner's session for today, restoring a
// persisted snapshot or starting a fresh game as needed. Snapshots
// whose date is not today are simply ignored; a new day means a new
// session.
func (d *dailyServer) session(w http.ResponseWriter, r *http.Request) (string, *game.Session, error) {
	owner := d.ownerID(w, r)
	today := d.srv.selector.TodaysWord()

	if sess, ok := d.srv.registry.Get(owner, today.Date); ok {
		return owner, sess, nil
	}

	snap, err := d.srv.db.LoadSnapshot(r.Context(), owner, today.Date)
	if err == nil {
		sess, rerr := game.Restore(d.srv.dict, snap)
		if rerr == nil {
			d.srv.registry.Put(owner, today.Date, sess)
			return owner, sess, nil
		}
		log.Warn().Err(rerr).Str("owner", owner).Str("date", today.Date).Msg("discarding bad snapshot")
	} else if !errors.Is(err, store.ErrNotFound) {
		return "", nil, err
	}

	sess := game.New(d.srv.dict, today)
	d.srv.registry.Put(owner, today.Date, sess)
	if err := d.srv.db.SaveSnapshot(r.Context(), owner, sess.Snapshot()); err != nil {
		log.Warn().Err(err).Str("owner", owner).Msg("save initial snapshot")
	}
	return owner, sess, nil
}

/* --------------------------------- board --------------------------------- */

type rowRes struct {
	Word     string   `json:"word"`
	Verdicts []string `json:"verdicts"`
}

type boardRes struct {
	Date     string            `json:"date"`
	DayIndex int               `json:"dayIndex"`
	Rows     []rowRes          `json:"rows"`
	Current  string            `json:"current"`
	Row      int               `json:"row"`
	Col      int               `json:"col"`
	Status   string            `json:"status"`
	Hints    map[string]string `json:"hints"`
	Answer   string            `json:"answer,omitempty"` // only once finished
}

func verdictStrings(vs [game.WordLen]game.Verdict) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.String()
	}
	return out
}

func boardFrom(sess *game.Session) boardRes {
	snap := sess.Snapshot()
	rows := make([]rowRes, len(snap.Rows))
	for i, rec := range snap.Rows {
		rows[i] = rowRes{Word: rec.Word, Verdicts: verdictStrings(rec.Verdicts)}
	}
	hints := make(map[string]string)
	for i, v := range snap.Hints {
		if v != game.Unused {
			hints[string(rune('A'+i))] = v.String()
		}
	}
	b := boardRes{
		Date:     snap.Date,
		DayIndex: snap.DayIndex,
		Rows:     rows,
		Current:  snap.Current,
		Row:      snap.Row,
		Col:      snap.Col,
		Status:   snap.Status.String(),
		Hints:    hints,
	}
	if snap.Status != game.Playing {
		b.Answer = snap.Target
	}
	return b
}

/* ------------------------------ /daily/new ------------------------------- */

// handleNew creates or restores today's session and returns the board.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	_, sess, err := d.session(w, r)
	if err != nil {
		http.Error(w, `{"error":"server_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(boardFrom(sess))
}

/* ------------------------------ /daily/key ------------------------------- */

type keyReq struct {
	Key string `json:"key"`
}

type keyRes struct {
	OK       bool     `json:"ok"`
	Action   string   `json:"action,omitempty"`
	Reason   string   `json:"reason,omitempty"`
	Row      *rowRes  `json:"row,omitempty"`
	Attempts int      `json:"attempts,omitempty"`
	Answer   string   `json:"answer,omitempty"`
	Board    boardRes `json:"board"`
}

// handleKey feeds one key press into today's session, persists the
// new state, and records the result when the game ends.
func (d *dailyServer) handleKey(w http.ResponseWriter, r *http.Request) {
	var req keyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	owner, sess, err := d.session(w, r)
	if err != nil {
		http.Error(w, `{"error":"server_error"}`, http.StatusInternalServerError)
		return
	}

	res := sess.ProcessInput(req.Key)

	out := keyRes{OK: res.OK, Board: boardFrom(sess)}
	if res.OK {
		out.Action = res.Action.String()
		if res.Row != nil {
			out.Row = &rowRes{Word: res.Row.Word, Verdicts: verdictStrings(res.Row.Verdicts)}
		}
		out.Attempts = res.Attempts
		out.Answer = res.Answer

		// Persist progress; non-fatal if it fails.
		if err := d.srv.db.SaveSnapshot(r.Context(), owner, sess.Snapshot()); err != nil {
			log.Warn().Err(err).Str("owner", owner).Msg("save snapshot")
		}
		if res.Action == game.GuessWin || res.Action == game.GuessLose {
			d.recordCompletion(r, owner, sess, res)
		}
	} else {
		out.Reason = res.Reason.String()
	}

	_ = json.NewEncoder(w).Encode(out)
}

// recordCompletion appends the finished game to the results log and
// bumps account stats for registered users. Best effort.
func (d *dailyServer) recordCompletion(r *http.Request, owner string, sess *game.Session, res game.Result) {
	elapsed := int(time.Since(sess.Started()).Milliseconds())
	if err := d.srv.db.InsertResult(r.Context(), store.Result{
		OwnerID:   owner,
		Date:      sess.Date(),
		DayIndex:  sess.DayIndex(),
		Won:       res.Action == game.GuessWin,
		Guesses:   res.Attempts,
		ElapsedMs: elapsed,
	}); err != nil {
		log.Warn().Err(err).Str("owner", owner).Msg("insert result")
	}
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		if err := d.srv.db.BumpStats(r.Context(), me.ID, res.Action == game.GuessWin); err != nil {
			log.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
		}
	}
}

/* ----------------------------- /daily/state ------------------------------ */

// handleState returns the current board without mutating anything.
func (d *dailyServer) handleState(w http.ResponseWriter, r *http.Request) {
	_, sess, err := d.session(w, r)
	if err != nil {
		http.Error(w, `{"error":"server_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(boardFrom(sess))
}

/* ----------------------------- /daily/today ------------------------------ */

type todayRes struct {
	Date     string `json:"date"`
	DayIndex int    `json:"dayIndex"`
	NextIn   struct {
		Hours   int   `json:"hours"`
		Minutes int   `json:"minutes"`
		Millis  int64 `json:"millis"`
	} `json:"nextIn"`
}

// handleToday reports the current puzzle date and the countdown to
// the next one. The word itself is never included.
func (d *dailyServer) handleToday(w http.ResponseWriter, r *http.Request) {
	st := d.srv.selector.DayStats()
	var out todayRes
	out.Date = st.Date
	out.DayIndex = st.DayIndex
	out.NextIn.Hours = st.NextIn.Hours
	out.NextIn.Minutes = st.NextIn.Minutes
	out.NextIn.Millis = st.NextIn.Millis
	_ = json.NewEncoder(w).Encode(out)
}

/* -------------------------- /daily/leaderboard --------------------------- */

type lbRes struct {
	Date string        `json:"date"`
	Top  []store.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date
// (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = d.srv.selector.TodaysWord().Date
	}
	rows, err := d.srv.db.Leaderboard(r.Context(), date, 20)
	if err != nil {
		http.Error(w, `{"error":"server_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
