package catalog

import (
	"testing"

	"github.com/BruksfildServices01/barber-booking/internal/domain/booking"
)

func int64p(v int64) *int64 { return &v }
func boolp(v bool) *bool    { return &v }

func member(id, given, family string) booking.TeamMember {
	return booking.TeamMember{ID: id, GivenName: given, FamilyName: family, Status: "ACTIVE"}
}

func TestGroupByBarber(t *testing.T) {
	services := []booking.Service{
		{
			ID: "SV_CUT", Name: "Haircut", PriceAmount: 4000,
			Members: []booking.MemberAssignment{
				{TeamMemberID: "TM_B", PriceOverride: int64p(5500)},
				{TeamMemberID: "TM_A"},
				{TeamMemberID: "TM_OWNER"},
			},
		},
		{
			ID: "SV_BEARD", Name: "Beard Trim", PriceAmount: 2500,
			Members: []booking.MemberAssignment{
				{TeamMemberID: "TM_A", Available: boolp(true)},
				{TeamMemberID: "TM_C", Available: boolp(false)},
			},
		},
		{ID: "SV_ORPHAN", Name: "Hot Towel", PriceAmount: 1000},
	}

	owner := member("TM_OWNER", "Olive", "Owner")
	owner.IsOwner = true
	inactive := member("TM_GONE", "Gone", "Away")
	inactive.Status = "INACTIVE"

	members := []booking.TeamMember{
		member("TM_B", "bob", "Stone"),
		member("TM_A", "Alice", "Zed"),
		member("TM_C", "Carl", "Only-Beard"),
		owner,
		inactive,
	}

	got := GroupByBarber(services, members)

	if len(got) != 2 {
		t.Fatalf("expected 2 barbers, got %d", len(got))
	}
	if got[0].Barber.ID != "TM_A" || got[1].Barber.ID != "TM_B" {
		t.Fatalf("expected Alice then bob, got %s, %s", got[0].Barber.ID, got[1].Barber.ID)
	}

	alice := got[0]
	if len(alice.Services) != 2 {
		t.Fatalf("expected Alice to offer 2 services, got %d", len(alice.Services))
	}
	if alice.Services[0].Price != 4000 || alice.Services[1].Price != 2500 {
		t.Fatalf("unexpected Alice prices %+v", alice.Services)
	}
	if len(alice.Categories) != 2 || alice.Categories[0].Category != CategoryHair {
		t.Fatalf("unexpected categories %+v", alice.Categories)
	}

	bob := got[1]
	if len(bob.Services) != 1 || bob.Services[0].Price != 5500 {
		t.Fatalf("expected bob's override price, got %+v", bob.Services)
	}

	for _, g := range got {
		for _, o := range g.Services {
			if o.Service.ID == "SV_ORPHAN" {
				t.Fatal("service without team members must not appear")
			}
		}
	}
	if _, ok := FindBarber(got, "TM_C"); ok {
		t.Fatal("barber with only ineligible services must be absent")
	}
	if _, ok := FindBarber(got, "TM_OWNER"); ok {
		t.Fatal("owner must not be offered as a barber")
	}
}

func TestGroupByBarber_TiesSortByID(t *testing.T) {
	services := []booking.Service{{
		ID: "SV", Name: "Cut",
		Members: []booking.MemberAssignment{{TeamMemberID: "TM_2"}, {TeamMemberID: "TM_1"}},
	}}
	members := []booking.TeamMember{member("TM_2", "Sam", ""), member("TM_1", "sam", "")}

	got := GroupByBarber(services, members)
	if len(got) != 2 || got[0].Barber.ID != "TM_1" {
		t.Fatalf("expected TM_1 first, got %+v", got)
	}
}

func TestApplyOverrides(t *testing.T) {
	services := []booking.Service{{
		ID: "SV", PriceAmount: 4000,
		Members: []booking.MemberAssignment{
			{TeamMemberID: "TM_A"},
			{TeamMemberID: "TM_B", PriceOverride: int64p(4200)},
		},
	}}
	overrides := map[string][]booking.MemberAssignment{
		"SV": {
			{TeamMemberID: "TM_A", PriceOverride: int64p(6000)},
			{TeamMemberID: "TM_B", Available: boolp(false)},
			{TeamMemberID: "TM_C", PriceOverride: int64p(3000)},
		},
	}

	got := ApplyOverrides(services, overrides)[0]

	if got.PriceFor("TM_A") != 6000 {
		t.Fatalf("expected override for TM_A, got %d", got.PriceFor("TM_A"))
	}
	if got.EligibleFor("TM_B") {
		t.Fatal("TM_B should be disabled")
	}
	if got.PriceFor("TM_B") != 4200 {
		t.Fatal("provider price for TM_B should survive an availability only override")
	}
	if !got.EligibleFor("TM_C") || got.PriceFor("TM_C") != 3000 {
		t.Fatal("override for an unlisted member should add an assignment")
	}
	if len(services[0].Members) != 2 || services[0].Members[0].PriceOverride != nil {
		t.Fatal("input catalog was mutated")
	}
}
