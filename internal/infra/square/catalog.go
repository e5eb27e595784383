package square

import (
	"context"
	"net/http"
	"net/url"

	"github.com/BruksfildServices01/barber-booking/internal/domain/booking"
)

const (
	productTypeAppointmentsService = "APPOINTMENTS_SERVICE"
	teamMemberPageSize             = 100
	maxPages                       = 50
)

// ListServices pages through the catalog and returns one Service per
// bookable item variation.
func (c *Client) ListServices(ctx context.Context) ([]booking.Service, error) {
	var (
		out    []booking.Service
		cursor string
	)

	for page := 0; page < maxPages; page++ {
		q := url.Values{"types": {"ITEM"}}
		if cursor != "" {
			q.Set("cursor", cursor)
		}

		var resp listCatalogResponse
		if err := c.do(ctx, "list catalog", http.MethodGet, "/v2/catalog/list", q, nil, &resp); err != nil {
			return nil, err
		}

		for _, obj := range resp.Objects {
			out = append(out, servicesFromItem(obj)...)
		}

		if resp.Cursor == "" {
			break
		}
		cursor = resp.Cursor
	}

	return out, nil
}

// SearchTeamMembers returns the active team members of the location.
func (c *Client) SearchTeamMembers(ctx context.Context) ([]booking.TeamMember, error) {
	var out []booking.TeamMember

	req := searchTeamMembersRequest{Limit: teamMemberPageSize}
	req.Query.Filter.Status = booking.TeamMemberStatusActive
	if c.cfg.LocationID != "" {
		req.Query.Filter.LocationIDs = []string{c.cfg.LocationID}
	}

	for page := 0; page < maxPages; page++ {
		var resp searchTeamMembersResponse
		if err := c.do(ctx, "search team members", http.MethodPost, "/v2/team-members/search", nil, req, &resp); err != nil {
			return nil, err
		}

		for _, m := range resp.TeamMembers {
			if tm, ok := teamMemberFromWire(m); ok {
				out = append(out, tm)
			}
		}

		if resp.Cursor == "" {
			break
		}
		req.Cursor = resp.Cursor
	}

	return out, nil
}
