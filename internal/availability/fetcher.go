package availability

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/BruksfildServices01/barber-booking/internal/domain/booking"
)

const defaultConcurrency = 4

type FetcherConfig struct {
	Location    *time.Location
	LocationID  string
	WindowDays  int
	Concurrency int
}

// Fetcher answers availability searches wider than the provider window by
// issuing one provider query per sub-range.
type Fetcher struct {
	provider booking.Provider
	cfg      FetcherConfig
	logger   *slog.Logger
}

func NewFetcher(
	provider booking.Provider,
	cfg FetcherConfig,
	logger *slog.Logger,
) *Fetcher {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = DefaultWindowDays
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{provider: provider, cfg: cfg, logger: logger}
}

func (f *Fetcher) Location() *time.Location {
	return f.cfg.Location
}

// Fetch returns every slot for serviceVariationID in [start, end), keyed by
// business date, optionally limited to teamMemberIDs. It fails as a whole
// when any sub-range fails.
func (f *Fetcher) Fetch(
	ctx context.Context,
	serviceVariationID string,
	start time.Time,
	end time.Time,
	teamMemberIDs ...string,
) (booking.AvailabilityMap, error) {

	if strings.TrimSpace(serviceVariationID) == "" {
		return nil, booking.ErrMissingService
	}

	ranges, err := SplitRange(start, end, f.cfg.Location, f.cfg.WindowDays)
	if err != nil {
		return nil, err
	}

	batches := make([]booking.AvailabilityMap, len(ranges))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.cfg.Concurrency)

	for i, r := range ranges {
		g.Go(func() error {
			slots, err := f.provider.SearchAvailability(gctx, booking.AvailabilityQuery{
				ServiceVariationID: serviceVariationID,
				StartAt:            r.Start,
				EndAt:              r.End,
				LocationID:         f.cfg.LocationID,
				TeamMemberIDs:      teamMemberIDs,
			})
			if err != nil {
				return fmt.Errorf(
					"availability batch %d (%s..%s): %w",
					i,
					r.Start.Format(time.RFC3339),
					r.End.Format(time.RFC3339),
					err,
				)
			}
			batches[i] = GroupByDate(slots, f.cfg.Location)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		f.logger.Warn("availability search failed",
			"service_variation_id", serviceVariationID,
			"batches", len(ranges),
			"err", err,
		)
		return nil, err
	}

	merged := Merge(batches...)

	f.logger.Debug("availability search done",
		"service_variation_id", serviceVariationID,
		"batches", len(ranges),
		"dates", len(merged),
		"slots", merged.Len(),
	)

	return merged, nil
}
