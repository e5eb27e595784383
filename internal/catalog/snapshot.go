package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/BruksfildServices01/barber-booking/internal/domain/booking"
)

// Snapshot caches the provider catalog, the team and the grouped barber
// view. Readers always see a complete snapshot; a failed refresh keeps the
// previous one.
type Snapshot struct {
	provider  booking.Provider
	overrides booking.MemberOverrideRepository
	logger    *slog.Logger
	now       func() time.Time

	mu          sync.RWMutex
	services    []booking.Service
	members     []booking.TeamMember
	barbers     []BarberWithServices
	refreshedAt time.Time
}

func NewSnapshot(
	provider booking.Provider,
	overrides booking.MemberOverrideRepository,
	logger *slog.Logger,
) *Snapshot {
	if logger == nil {
		logger = slog.Default()
	}
	return &Snapshot{
		provider:  provider,
		overrides: overrides,
		logger:    logger,
		now:       time.Now,
	}
}

// Refresh reloads services, team members and overrides from their sources.
func (s *Snapshot) Refresh(ctx context.Context) error {
	services, err := s.provider.ListServices(ctx)
	if err != nil {
		return fmt.Errorf("list services: %w", err)
	}

	members, err := s.provider.SearchTeamMembers(ctx)
	if err != nil {
		return fmt.Errorf("search team members: %w", err)
	}

	if s.overrides != nil {
		overrides, err := s.overrides.ListOverrides(ctx)
		if err != nil {
			return fmt.Errorf("list member overrides: %w", err)
		}
		services = ApplyOverrides(services, overrides)
	}

	barbers := GroupByBarber(services, members)

	s.mu.Lock()
	s.services = services
	s.members = members
	s.barbers = barbers
	s.refreshedAt = s.now()
	s.mu.Unlock()

	s.logger.Info("catalog refreshed",
		"services", len(services),
		"team_members", len(members),
		"barbers", len(barbers),
	)
	return nil
}

// Schedule registers a refresh on c using the cron expression.
func (s *Snapshot) Schedule(c *cron.Cron, expr string, timeout time.Duration) (cron.EntryID, error) {
	return c.AddFunc(expr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := s.Refresh(ctx); err != nil {
			s.logger.Warn("catalog refresh failed", "err", err)
		}
	})
}

func (s *Snapshot) Services() []booking.Service {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]booking.Service(nil), s.services...)
}

func (s *Snapshot) TeamMembers() []booking.TeamMember {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]booking.TeamMember(nil), s.members...)
}

func (s *Snapshot) Barbers() []BarberWithServices {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]BarberWithServices(nil), s.barbers...)
}

func (s *Snapshot) RefreshedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshedAt
}

func (s *Snapshot) Service(id string) (booking.Service, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, svc := range s.services {
		if svc.ID == id {
			return svc, true
		}
	}
	return booking.Service{}, false
}

func (s *Snapshot) TeamMember(id string) (booking.TeamMember, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.members {
		if m.ID == id {
			return m, true
		}
	}
	return booking.TeamMember{}, false
}

// Offer resolves serviceID as sold by memberID. It fails when the member
// is not bookable or not eligible for the service.
func (s *Snapshot) Offer(serviceID, memberID string) (ServiceOffer, booking.TeamMember, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := FindBarber(s.barbers, memberID)
	if !ok {
		return ServiceOffer{}, booking.TeamMember{}, false
	}
	for _, o := range g.Services {
		if o.Service.ID == serviceID {
			return o, g.Barber, true
		}
	}
	return ServiceOffer{}, booking.TeamMember{}, false
}
