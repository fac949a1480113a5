package outbox

import (
	"context"
	"fmt"
)

type BacklogCounter interface {
	CountUnpublished(ctx context.Context) (int64, error)
}

// BacklogCheck is a readiness probe that fails once more than limit events
// wait to be published. A limit <= 0 only checks the query.
func BacklogCheck(counter BacklogCounter, limit int64) func(context.Context) error {
	return func(ctx context.Context) error {
		n, err := counter.CountUnpublished(ctx)
		if err != nil {
			return err
		}
		if limit > 0 && n > limit {
			return fmt.Errorf("outbox backlog %d above limit %d", n, limit)
		}
		return nil
	}
}
