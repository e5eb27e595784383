package availability

import (
	"sync"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/booking"
)

type Result struct {
	ServiceVariationID string
	Availability       booking.AvailabilityMap
	FetchedAt          time.Time
}

type sessionState struct {
	gen     uint64
	result  *Result
	touched time.Time
}

// Tracker keeps the latest availability per booking session and discards
// results of fetches that were superseded before they finished.
type Tracker struct {
	mu       sync.Mutex
	sessions map[string]*sessionState
	now      func() time.Time
}

func NewTracker() *Tracker {
	return &Tracker{
		sessions: map[string]*sessionState{},
		now:      time.Now,
	}
}

// Begin starts a fetch for session and returns its generation.
func (t *Tracker) Begin(session string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	st := t.state(session)
	st.gen++
	return st.gen
}

// Publish stores r unless a newer fetch began after gen.
func (t *Tracker) Publish(session string, gen uint64, r Result) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	st := t.state(session)
	if st.gen != gen {
		return false
	}
	st.result = &r
	return true
}

// Fail clears the session's availability so the calendar shows nothing
// rather than an older result.
func (t *Tracker) Fail(session string, gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	st := t.state(session)
	if st.gen != gen {
		return false
	}
	st.result = nil
	return true
}

func (t *Tracker) Current(session string) (Result, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st, ok := t.sessions[session]
	if !ok || st.result == nil {
		return Result{}, false
	}
	st.touched = t.now()
	return *st.result, true
}

// Sweep drops sessions idle since before cutoff.
func (t *Tracker) Sweep(cutoff time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0
	for id, st := range t.sessions {
		if st.touched.Before(cutoff) {
			delete(t.sessions, id)
			n++
		}
	}
	return n
}

func (t *Tracker) state(session string) *sessionState {
	st, ok := t.sessions[session]
	if !ok {
		st = &sessionState{}
		t.sessions[session] = st
	}
	st.touched = t.now()
	return st
}
