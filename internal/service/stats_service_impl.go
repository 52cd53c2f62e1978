package service

import (
	"context"

	"github.com/bagdasarian/vrm-monitor/internal/domain"
	"github.com/bagdasarian/vrm-monitor/internal/repository"
)

type statsService struct {
	statsRepo repository.StatsRepository
	opts      Options
}

func NewStatsService(statsRepo repository.StatsRepository, opts Options) StatsService {
	return &statsService{statsRepo: statsRepo, opts: opts}
}

func (s *statsService) GetStats(ctx context.Context) (*domain.Stats, error) {
	return s.statsRepo.GetStats(ctx, s.opts.now())
}
