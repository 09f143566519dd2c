package analysis

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Pruner applies the retention window on a fixed interval until its context ends.
type Pruner struct {
	Service  *Service
	Interval time.Duration
}

// Run prunes once immediately, then on every tick. It returns nil when ctx is done.
func (p *Pruner) Run(ctx context.Context) error {
	if p.Service.Retention <= 0 {
		p.Service.Logger.Info("Pruner.Run(): history retention disabled")
		return nil
	}
	interval := p.Interval
	if interval <= 0 {
		interval = time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := p.Service.Prune(ctx); err != nil && ctx.Err() == nil {
			p.Service.Logger.Warn("Pruner.Run(): prune failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
