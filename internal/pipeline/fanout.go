package pipeline

import (
	"context"

	"github.com/couchcryptid/clima-metrics-etl/internal/domain"
)

// FanoutLoader loads each batch into every loader in order. The first error
// fails the whole batch so the pipeline retries it; reading IDs are
// deterministic, so a repeated write replaces rather than duplicates.
type FanoutLoader []BatchLoader

func (f FanoutLoader) LoadBatch(ctx context.Context, readings []domain.DashboardReading) error {
	for _, l := range f {
		if err := l.LoadBatch(ctx, readings); err != nil {
			return err
		}
	}
	return nil
}
