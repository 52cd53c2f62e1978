package service

import (
	"context"

	"github.com/bagdasarian/vrm-monitor/internal/domain"
)

type StatsService interface {
	GetStats(ctx context.Context) (*domain.Stats, error)
}
