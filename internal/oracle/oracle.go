package oracle

import (
	"context"
	"time"

	"github.com/rcliao/cosmic-whispers/internal/model"
)

// DefaultDelay is how long MockOracle pretends to consult the stars.
const DefaultDelay = 3 * time.Second

// Oracle produces reading sections for a set of birth details. Implementations
// may block and must return early when ctx is done.
type Oracle interface {
	Divine(ctx context.Context, d model.UserDetails) ([]model.ReadingSection, error)
}

// MockOracle serves the built-in templates after a fixed delay, standing in
// for a remote text generation service.
type MockOracle struct {
	Delay time.Duration
}

// NewMockOracle returns a MockOracle. A non-positive delay disables waiting.
func NewMockOracle(delay time.Duration) *MockOracle {
	return &MockOracle{Delay: delay}
}

func (o *MockOracle) Divine(ctx context.Context, d model.UserDetails) ([]model.ReadingSection, error) {
	if o.Delay > 0 {
		t := time.NewTimer(o.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Generate(d), nil
}
