package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Refresher перезагружает данные врачей
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Scheduler периодически обновляет кэш врачей, чтобы занятые слоты не устаревали
type Scheduler struct {
	doctors  Refresher
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(doctors Refresher, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		doctors:  doctors,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler", zap.Duration("interval", s.interval))

	go s.runRefreshTask(ctx)
}

// Stop останавливает фоновые задачи и ждёт их завершения
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopChan)
	})
	<-s.done
}

func (s *Scheduler) runRefreshTask(ctx context.Context) {
	defer close(s.done)

	// Первый запуск сразу при старте
	s.refresh(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.refresh(ctx)
		case <-s.stopChan:
			s.logger.Info("Doctors refresh task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Doctors refresh task cancelled")
			return
		}
	}
}

func (s *Scheduler) refresh(ctx context.Context) {
	if err := s.doctors.Refresh(ctx); err != nil {
		s.logger.Error("Failed to refresh doctors", zap.Error(err))
	}
}
