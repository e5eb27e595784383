package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/booking"
)

const StorageKeyPrefix = "booking_cart"

const DefaultTTL = 24 * time.Hour

func StorageKey(session string) string {
	return StorageKeyPrefix + ":" + session
}

type sessionCart struct {
	mu      sync.Mutex
	loaded  bool
	cart    *Cart
	touched time.Time
}

// Manager owns one cart per booking session. A cart is loaded from the
// store the first time its session is touched and written back after
// every mutation.
type Manager struct {
	store  booking.KeyValueStore
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time

	mu       sync.Mutex
	sessions map[string]*sessionCart
}

func NewManager(
	store booking.KeyValueStore,
	ttl time.Duration,
	logger *slog.Logger,
) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		store:    store,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
		sessions: map[string]*sessionCart{},
	}
}

// Get returns a copy of the session's cart.
func (m *Manager) Get(ctx context.Context, session string) *Cart {
	var out *Cart
	m.with(ctx, session, func(c *Cart) bool {
		out = c.Clone()
		return false
	})
	return out
}

func (m *Manager) Add(
	ctx context.Context,
	session string,
	service booking.Service,
	barber booking.TeamMember,
) (*Cart, error) {

	var (
		out *Cart
		err error
	)
	m.with(ctx, session, func(c *Cart) bool {
		err = c.Add(service, barber)
		out = c.Clone()
		return err == nil
	})
	return out, err
}

// SwitchBarber empties the cart and adds service with barber. It is the
// confirmed answer to a barber mismatch.
func (m *Manager) SwitchBarber(
	ctx context.Context,
	session string,
	service booking.Service,
	barber booking.TeamMember,
) (*Cart, error) {

	var (
		out *Cart
		err error
	)
	m.with(ctx, session, func(c *Cart) bool {
		c.Clear()
		err = c.Add(service, barber)
		out = c.Clone()
		return true
	})
	return out, err
}

func (m *Manager) Remove(ctx context.Context, session, serviceID string) (*Cart, bool) {
	var (
		out     *Cart
		removed bool
	)
	m.with(ctx, session, func(c *Cart) bool {
		removed = c.Remove(serviceID)
		out = c.Clone()
		return removed
	})
	return out, removed
}

func (m *Manager) Clear(ctx context.Context, session string) {
	m.with(ctx, session, func(c *Cart) bool {
		c.Clear()
		return true
	})
}

// Sweep forgets in-memory carts idle since before cutoff. Their stored
// copy stays and is reloaded if the session comes back.
func (m *Manager) Sweep(cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for id, sc := range m.sessions {
		if sc.mu.TryLock() {
			if sc.touched.Before(cutoff) {
				delete(m.sessions, id)
				n++
			}
			sc.mu.Unlock()
		}
	}
	return n
}

// with runs fn on the session's cart under its lock. fn reports whether it
// changed the cart; changed carts are persisted.
func (m *Manager) with(ctx context.Context, session string, fn func(*Cart) bool) {
	sc := m.session(session)

	sc.mu.Lock()
	defer sc.mu.Unlock()

	if !sc.loaded {
		sc.cart = m.load(ctx, session)
		sc.loaded = true
	}
	sc.touched = m.now()

	if fn(sc.cart) {
		m.persist(ctx, session, sc.cart)
	}
}

func (m *Manager) session(session string) *sessionCart {
	m.mu.Lock()
	defer m.mu.Unlock()

	sc, ok := m.sessions[session]
	if !ok {
		sc = &sessionCart{}
		m.sessions[session] = sc
	}
	return sc
}

func (m *Manager) load(ctx context.Context, session string) *Cart {
	data, err := m.store.Get(ctx, StorageKey(session))
	if err != nil {
		if !errors.Is(err, booking.ErrNotFound) {
			m.logger.Warn("cart load failed", "session", session, "err", err)
		}
		return New()
	}

	c := New()
	if err := json.Unmarshal(data, c); err != nil {
		m.logger.Warn("discarding unreadable cart", "session", session, "err", err)
		return New()
	}
	return c
}

// persist never fails the caller; the in-memory cart stays authoritative
// for the session.
func (m *Manager) persist(ctx context.Context, session string, c *Cart) {
	key := StorageKey(session)

	if c.Empty() {
		if err := m.store.Delete(ctx, key); err != nil {
			m.logger.Warn("cart delete failed", "session", session, "err", err)
		}
		return
	}

	data, err := json.Marshal(c)
	if err != nil {
		m.logger.Error("cart encode failed", "session", session, "err", err)
		return
	}
	if err := m.store.Set(ctx, key, data, m.ttl); err != nil {
		m.logger.Warn("cart persist failed", "session", session, "err", err)
	}
}
