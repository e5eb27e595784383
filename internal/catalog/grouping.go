package catalog

import (
	"sort"
	"strings"

	"github.com/BruksfildServices01/barber-booking/internal/domain/booking"
)

// ServiceOffer is a service as one barber sells it.
type ServiceOffer struct {
	Service booking.Service `json:"service"`
	Price   int64           `json:"price"`
}

type BarberWithServices struct {
	Barber     booking.TeamMember `json:"barber"`
	Services   []ServiceOffer     `json:"services"`
	Categories []CategoryGroup    `json:"categories"`
}

// GroupByBarber turns the service catalog into a per barber view. Only
// bookable members appear, each with the services they are eligible for
// priced for them. Barbers without services are dropped. The result is
// sorted by display name, case-insensitive, then by id.
func GroupByBarber(
	services []booking.Service,
	members []booking.TeamMember,
) []BarberWithServices {

	out := make([]BarberWithServices, 0, len(members))

	for _, m := range members {
		if !m.Bookable() {
			continue
		}

		var offers []ServiceOffer
		for _, s := range services {
			if !s.EligibleFor(m.ID) {
				continue
			}
			offers = append(offers, ServiceOffer{
				Service: s,
				Price:   s.PriceFor(m.ID),
			})
		}

		if len(offers) == 0 {
			continue
		}

		out = append(out, BarberWithServices{
			Barber:     m,
			Services:   offers,
			Categories: Categorize(offers),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a := strings.ToLower(out[i].Barber.DisplayName())
		b := strings.ToLower(out[j].Barber.DisplayName())
		if a != b {
			return a < b
		}
		return out[i].Barber.ID < out[j].Barber.ID
	})

	return out
}

// FindBarber looks a barber up in a grouped view.
func FindBarber(groups []BarberWithServices, memberID string) (BarberWithServices, bool) {
	for _, g := range groups {
		if g.Barber.ID == memberID {
			return g, true
		}
	}
	return BarberWithServices{}, false
}

// ApplyOverrides merges stored per member overrides into the catalog.
// A stored override replaces the provider's price or availability flag for
// that member; overrides for members the provider does not list add a new
// assignment.
func ApplyOverrides(
	services []booking.Service,
	overrides map[string][]booking.MemberAssignment,
) []booking.Service {

	out := make([]booking.Service, len(services))
	for i, s := range services {
		extra := overrides[s.ID]
		if len(extra) == 0 {
			out[i] = s
			continue
		}

		members := make([]booking.MemberAssignment, len(s.Members))
		copy(members, s.Members)

		for _, o := range extra {
			found := false
			for j := range members {
				if members[j].TeamMemberID != o.TeamMemberID {
					continue
				}
				found = true
				if o.PriceOverride != nil {
					members[j].PriceOverride = o.PriceOverride
				}
				if o.Available != nil {
					members[j].Available = o.Available
				}
			}
			if !found {
				members = append(members, o)
			}
		}

		s.Members = members
		out[i] = s
	}
	return out
}
