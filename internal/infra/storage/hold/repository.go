package hold

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/vkarpovs/CBP-BookingService/internal/domain"
	"github.com/vkarpovs/CBP-BookingService/pkg/dbmetrics"
	"github.com/vkarpovs/CBP-BookingService/pkg/psqlbuilder"
)

// DBExecutor интерфейс доступа к БД, переиспользуем из dbmetrics
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий временных броней слотов
// Бронь с истекшим expires_at считается несуществующей для всех выборок:
// ленивое истечение обеспечивает корректность, фоновая зачистка - гигиену.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория временных броней
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает временную бронь слота
// Должен вызываться в той же сериализуемой транзакции, что и проверка
// конфликтов, иначе два клиента могут захолдировать один интервал.
func (r *Repository) Create(ctx context.Context, h *domain.SlotHold) (*domain.SlotHold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slot_holds").
		Columns(
			"consultant_id",
			"hold_date",
			"start_time",
			"duration_minutes",
			"holder_token",
			"expires_at",
		).
		Values(
			h.ConsultantID,
			h.Date,
			h.StartTime,
			h.DurationMinutes,
			h.HolderToken,
			h.ExpiresAt,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&h.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	h.CreatedAt = createdAt.Time

	return h, nil
}

// GetActiveByConsultantAndDate получает неистёкшие брони консультанта на дату
// Внутри транзакции выборка блокируется FOR UPDATE
func (r *Repository) GetActiveByConsultantAndDate(ctx context.Context, consultantID int64, date time.Time, now time.Time) ([]*domain.SlotHold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"consultant_id",
		"hold_date",
		"start_time",
		"duration_minutes",
		"holder_token",
		"expires_at",
		"created_at",
	).
		From("slot_holds").
		Where(squirrel.Eq{"consultant_id": consultantID}).
		Where(squirrel.Eq{"hold_date": date}).
		Where(squirrel.Gt{"expires_at": now}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByConsultantAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByConsultantAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	holds := make([]*domain.SlotHold, 0)
	for rows.Next() {
		var h domain.SlotHold
		var createdAt sql.NullTime

		err := rows.Scan(
			&h.ID,
			&h.ConsultantID,
			&h.Date,
			&h.StartTime,
			&h.DurationMinutes,
			&h.HolderToken,
			&h.ExpiresAt,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetActiveByConsultantAndDate - scan row: %v", ErrScanRow, err)
		}

		h.CreatedAt = createdAt.Time
		holds = append(holds, &h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveByConsultantAndDate - rows error: %v", ErrScanRow, err)
	}

	return holds, nil
}

// DeleteByToken удаляет бронь по токену держателя
// Вызывается при подтверждении встречи, занявшей захолдированный слот
func (r *Repository) DeleteByToken(ctx context.Context, holderToken string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slot_holds").
		Where(squirrel.Eq{"holder_token": holderToken}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByToken - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByToken - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteExpired удаляет все брони с истекшим expires_at
// Возвращает количество удалённых строк
func (r *Repository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slot_holds").
		Where(squirrel.LtOrEq{"expires_at": now}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}
