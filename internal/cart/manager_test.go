package cart

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/infra/repository"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type failingStore struct {
	booking.KeyValueStore
	setCalls int
}

func (s *failingStore) Set(context.Context, string, []byte, time.Duration) error {
	s.setCalls++
	return errors.New("store down")
}

func TestManager_PersistsEveryMutation(t *testing.T) {
	ctx := context.Background()
	store := repository.NewKVMemoryRepository()
	m := NewManager(store, time.Hour, discardLogger())

	if _, err := m.Add(ctx, "s1", haircut(), alice); err != nil {
		t.Fatalf("add: %v", err)
	}

	data, err := store.Get(ctx, StorageKey("s1"))
	if err != nil {
		t.Fatalf("cart not persisted: %v", err)
	}
	stored := New()
	if err := json.Unmarshal(data, stored); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !stored.IsSelected("SV_HAIRCUT") {
		t.Fatal("stored cart lacks the added service")
	}

	m.Remove(ctx, "s1", "SV_HAIRCUT")
	if _, err := store.Get(ctx, StorageKey("s1")); !errors.Is(err, booking.ErrNotFound) {
		t.Fatalf("empty cart should not stay stored, got %v", err)
	}
}

func TestManager_RehydratesOnce(t *testing.T) {
	ctx := context.Background()
	store := repository.NewKVMemoryRepository()

	first := NewManager(store, time.Hour, discardLogger())
	_, _ = first.Add(ctx, "s1", haircut(), alice)
	_, _ = first.Add(ctx, "s1", beard(), alice)

	// A fresh manager stands in for a restarted process.
	second := NewManager(store, time.Hour, discardLogger())
	c := second.Get(ctx, "s1")
	if len(c.Items()) != 2 {
		t.Fatalf("expected 2 rehydrated items, got %d", len(c.Items()))
	}

	// Later store writes are not re-read.
	_ = store.Delete(ctx, StorageKey("s1"))
	if len(second.Get(ctx, "s1").Items()) != 2 {
		t.Fatal("cart reloaded after the first touch")
	}
}

func TestManager_MismatchAndSwitch(t *testing.T) {
	ctx := context.Background()
	m := NewManager(repository.NewKVMemoryRepository(), time.Hour, discardLogger())

	_, _ = m.Add(ctx, "s1", haircut(), alice)

	c, err := m.Add(ctx, "s1", beard(), bob)
	if !errors.Is(err, booking.ErrBarberMismatch) {
		t.Fatalf("expected mismatch, got %v", err)
	}
	if len(c.Items()) != 1 {
		t.Fatal("mismatch changed the cart")
	}

	c, err = m.SwitchBarber(ctx, "s1", beard(), bob)
	if err != nil {
		t.Fatalf("switch: %v", err)
	}
	if b, _ := c.Barber(); b.ID != bob.ID || len(c.Items()) != 1 || !c.IsSelected("SV_BEARD") {
		t.Fatalf("unexpected cart after switch %+v", c.Items())
	}
}

func TestManager_SessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	m := NewManager(repository.NewKVMemoryRepository(), time.Hour, discardLogger())

	_, _ = m.Add(ctx, "s1", haircut(), alice)
	if _, err := m.Add(ctx, "s2", beard(), bob); err != nil {
		t.Fatalf("other session must not be locked to Alice: %v", err)
	}
}

func TestManager_StoreFailureKeepsCart(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{KeyValueStore: repository.NewKVMemoryRepository()}
	m := NewManager(store, time.Hour, discardLogger())

	if _, err := m.Add(ctx, "s1", haircut(), alice); err != nil {
		t.Fatalf("persist failure must not fail the add: %v", err)
	}
	if store.setCalls != 1 {
		t.Fatalf("expected one persist attempt, got %d", store.setCalls)
	}
	if !m.Get(ctx, "s1").IsSelected("SV_HAIRCUT") {
		t.Fatal("in-memory cart lost after persist failure")
	}
}

func TestManager_ConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	m := NewManager(repository.NewKVMemoryRepository(), time.Hour, discardLogger())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			svc := haircut()
			if i%2 == 1 {
				svc = beard()
			}
			_, _ = m.Add(ctx, "s1", svc, alice)
		}(i)
	}
	wg.Wait()

	if got := len(m.Get(ctx, "s1").Items()); got != 2 {
		t.Fatalf("expected 2 items, got %d", got)
	}
}

func TestManager_Sweep(t *testing.T) {
	ctx := context.Background()
	store := repository.NewKVMemoryRepository()
	m := NewManager(store, time.Hour, discardLogger())

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return base }
	_, _ = m.Add(ctx, "s1", haircut(), alice)

	if n := m.Sweep(base.Add(time.Minute)); n != 1 {
		t.Fatalf("expected 1 swept cart, got %d", n)
	}

	// Swept carts come back from the store.
	if !m.Get(ctx, "s1").IsSelected("SV_HAIRCUT") {
		t.Fatal("swept cart was not reloaded")
	}
}
