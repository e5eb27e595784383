package square

import (
	"context"
	"net/http"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/booking"
)

// SearchAvailability runs one availability query. The caller keeps the
// range inside the provider's per request window.
func (c *Client) SearchAvailability(
	ctx context.Context,
	q booking.AvailabilityQuery,
) ([]booking.Slot, error) {

	locationID := q.LocationID
	if locationID == "" {
		locationID = c.cfg.LocationID
	}

	var req searchAvailabilityRequest
	req.Query.Filter.StartAtRange = timeRange{
		StartAt: q.StartAt.UTC().Format(time.RFC3339),
		EndAt:   q.EndAt.UTC().Format(time.RFC3339),
	}
	req.Query.Filter.LocationID = locationID

	filter := segmentFilter{ServiceVariationID: q.ServiceVariationID}
	if len(q.TeamMemberIDs) > 0 {
		filter.TeamMemberIDFilter = &teamMemberFilter{Any: q.TeamMemberIDs}
	}
	req.Query.Filter.SegmentFilters = []segmentFilter{filter}

	var resp searchAvailabilityResponse
	if err := c.do(ctx, "search availability", http.MethodPost, "/v2/bookings/availability/search", nil, req, &resp); err != nil {
		return nil, err
	}

	out := make([]booking.Slot, 0, len(resp.Availabilities))
	for _, a := range resp.Availabilities {
		slot, ok := slotFromWire(a)
		if !ok {
			c.logger.Warn("skipping availability without start time", "location_id", a.LocationID)
			continue
		}
		out = append(out, slot)
	}
	return out, nil
}
