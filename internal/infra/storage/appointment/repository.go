package appointment

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/pablobarber/booking-service/internal/domain"
	"github.com/pablobarber/booking-service/pkg/dbmetrics"
	"github.com/pablobarber/booking-service/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"user_id",
	"customer_name",
	"customer_email",
	"staff_id",
	"start_time",
	"end_time",
	"status",
	"services",
	"notes",
	"confirmation_token",
	"google_event_id",
	"created_at",
}

// insertColumns колонки, заполняемые при создании записи
// (id и created_at выдает база)
var insertColumns = []string{
	"user_id",
	"customer_name",
	"customer_email",
	"staff_id",
	"start_time",
	"end_time",
	"status",
	"services",
	"notes",
	"confirmation_token",
	"google_event_id",
}

// Repository репозиторий для работы с записями (appointments)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись со статусом pending.
// Если в контексте передана активная транзакция (через context.Value), использует её.
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	services, err := json.Marshal(appt.ServiceNames)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal services: %v", ErrEncodeServices, err)
	}

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(insertColumns...).
		Values(
			appt.UserID,
			appt.CustomerName,
			appt.CustomerEmail,
			appt.StaffID,
			appt.StartTime,
			appt.EndTime,
			appt.Status,
			string(services),
			appt.Notes,
			appt.ConfirmationToken,
			appt.GoogleEventID,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&appt.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time

	return appt, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointmentRow(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// GetByToken получает запись по одноразовому токену подтверждения
func (r *Repository) GetByToken(ctx context.Context, token string) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("appointments").
		Where(squirrel.Eq{"confirmation_token": token}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByToken - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointmentRow(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByToken - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// ListByCustomerEmail получает все записи клиента по email, новые первыми.
// Используется гостевым кабинетом "мои записи".
func (r *Repository) ListByCustomerEmail(ctx context.Context, email string) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("appointments").
		Where(squirrel.Eq{"customer_email": email}).
		OrderBy("start_time DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByCustomerEmail - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCustomerEmail - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// ListHolding получает записи, пересекающиеся с интервалом [from, to),
// которые всё ещё считаются занятыми: confirmed, либо pending с created_at
// позже pendingSince (граница окна холда, вычисленная вызывающей стороной).
// Просроченные pending строки в выборку не попадают, хотя физически
// остаются в таблице до ленивого удаления.
//
// staffID опционально сужает выборку до одного сотрудника.
//
// Внутри транзакции добавляет FOR UPDATE, чтобы check-then-insert сценарий
// создания записи не гонялся с параллельными запросами.
func (r *Repository) ListHolding(ctx context.Context, from, to time.Time, pendingSince time.Time, staffID *int64) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("appointments").
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.Gt{"end_time": from}).
		Where(squirrel.Or{
			squirrel.Eq{"status": domain.StatusConfirmed},
			squirrel.And{
				squirrel.Eq{"status": domain.StatusPending},
				squirrel.Gt{"created_at": pendingSince},
			},
		}).
		OrderBy("start_time ASC")

	if staffID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": *staffID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListHolding - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListHolding - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// Confirm переводит запись в confirmed и сохраняет ID события календаря.
// Токен подтверждения не очищается: повторный переход по ссылке из письма
// должен находить ту же строку и отвечать "уже подтверждено"
func (r *Repository) Confirm(ctx context.Context, id int64, googleEventID *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusConfirmed).
		Set("google_event_id", googleEventID).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Confirm - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Confirm - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Confirm - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// Delete физически удаляет запись (отмена = удаление строки)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// scanAppointmentRow сканирует одну строку результата
func scanAppointmentRow(row *sql.Row) (*domain.Appointment, error) {
	var appt domain.Appointment
	var services string
	var createdAt sql.NullTime

	err := row.Scan(
		&appt.ID,
		&appt.UserID,
		&appt.CustomerName,
		&appt.CustomerEmail,
		&appt.StaffID,
		&appt.StartTime,
		&appt.EndTime,
		&appt.Status,
		&services,
		&appt.Notes,
		&appt.ConfirmationToken,
		&appt.GoogleEventID,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(services), &appt.ServiceNames); err != nil {
		return nil, fmt.Errorf("unmarshal services: %v", err)
	}
	appt.CreatedAt = createdAt.Time

	return &appt, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		var appt domain.Appointment
		var services string
		var createdAt sql.NullTime

		err := rows.Scan(
			&appt.ID,
			&appt.UserID,
			&appt.CustomerName,
			&appt.CustomerEmail,
			&appt.StaffID,
			&appt.StartTime,
			&appt.EndTime,
			&appt.Status,
			&services,
			&appt.Notes,
			&appt.ConfirmationToken,
			&appt.GoogleEventID,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}

		if err := json.Unmarshal([]byte(services), &appt.ServiceNames); err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - unmarshal services: %v", ErrScanRow, err)
		}
		appt.CreatedAt = createdAt.Time

		appointments = append(appointments, &appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %w", ErrScanRow, err)
	}

	return appointments, nil
}
