package repository

import (
	"context"
	"time"

	"github.com/bagdasarian/vrm-monitor/internal/domain"
)

type StatsRepository interface {
	GetStats(ctx context.Context, now time.Time) (*domain.Stats, error)
}
