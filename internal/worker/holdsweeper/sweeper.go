package holdsweeper

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
)

// HoldRepository интерфейс репозитория временных броней
type HoldRepository interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Sweeper фоновая зачистка истёкших временных броней
// Корректность не зависит от него: все выборки игнорируют истёкшие брони,
// sweeper лишь не даёт таблице расти.
type Sweeper struct {
	holdRepo HoldRepository
	cron     *cron.Cron
	schedule string
	logger   Logger
}

// NewSweeper создает новый экземпляр sweeper с cron-расписанием запуска
func NewSweeper(holdRepo HoldRepository, schedule string, logger Logger) *Sweeper {
	return &Sweeper{
		holdRepo: holdRepo,
		cron:     cron.New(),
		schedule: schedule,
		logger:   logger,
	}
}

// Start регистрирует задачу и запускает планировщик
func (s *Sweeper) Start() error {
	_, err := s.cron.AddFunc(s.schedule, s.sweep)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("HoldSweeper: started with schedule %q", s.schedule)

	return nil
}

// Stop останавливает планировщик и дожидается завершения текущей задачи
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("HoldSweeper: stopped")
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := s.holdRepo.DeleteExpired(ctx, time.Now())
	if err != nil {
		s.logger.Error("HoldSweeper: failed to delete expired holds: %v", err)
		return
	}

	if deleted > 0 {
		s.logger.Info("HoldSweeper: deleted %d expired holds", deleted)
	}
}
