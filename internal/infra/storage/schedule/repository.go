package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/vkarpovs/CBP-BookingService/internal/domain"
	"github.com/vkarpovs/CBP-BookingService/pkg/dbmetrics"
	"github.com/vkarpovs/CBP-BookingService/pkg/psqlbuilder"
)

// DBExecutor интерфейс доступа к БД, переиспользуем из dbmetrics
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий расписаний консультантов
// Одна строка на консультанта: недельное расписание в JSONB плюс параметры
// сессий отдельными колонками.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByConsultantID получает расписание консультанта
// Устаревшая форма недельного расписания нормализуется при чтении
func (r *Repository) GetByConsultantID(ctx context.Context, consultantID int64) (*domain.ConsultantSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"consultant_id",
		"week_config",
		"default_duration_minutes",
		"buffer_minutes",
		"max_sessions_per_day",
		"created_at",
		"updated_at",
	).
		From("consultant_schedules").
		Where(squirrel.Eq{"consultant_id": consultantID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByConsultantID - build select query: %v", ErrBuildQuery, err)
	}

	var schedule domain.ConsultantSchedule
	var weekConfig []byte
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&schedule.ConsultantID,
		&weekConfig,
		&schedule.Settings.DefaultDurationMinutes,
		&schedule.Settings.BufferMinutes,
		&schedule.Settings.MaxSessionsPerDay,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByConsultantID - scan schedule: %v", ErrScanRow, err)
	}

	schedule.Week, err = decodeWeekConfig(weekConfig)
	if err != nil {
		return nil, err
	}

	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return &schedule, nil
}

// Upsert полностью заменяет расписание консультанта
// Запись всегда выполняется в текущей форме недельного расписания,
// так что устаревшие строки вымываются при первом же сохранении.
func (r *Repository) Upsert(ctx context.Context, schedule *domain.ConsultantSchedule) (*domain.ConsultantSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	weekConfig, err := encodeWeekConfig(schedule.Week)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Insert("consultant_schedules").
		Columns(
			"consultant_id",
			"week_config",
			"default_duration_minutes",
			"buffer_minutes",
			"max_sessions_per_day",
		).
		Values(
			schedule.ConsultantID,
			weekConfig,
			schedule.Settings.DefaultDurationMinutes,
			schedule.Settings.BufferMinutes,
			schedule.Settings.MaxSessionsPerDay,
		).
		Suffix(`ON CONFLICT (consultant_id) DO UPDATE SET
			week_config = EXCLUDED.week_config,
			default_duration_minutes = EXCLUDED.default_duration_minutes,
			buffer_minutes = EXCLUDED.buffer_minutes,
			max_sessions_per_day = EXCLUDED.max_sessions_per_day,
			updated_at = NOW()
		RETURNING created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return schedule, nil
}

// Delete удаляет расписание консультанта
func (r *Repository) Delete(ctx context.Context, consultantID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("consultant_schedules").
		Where(squirrel.Eq{"consultant_id": consultantID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrScheduleNotFound
	}

	return nil
}
