package staff

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/pablobarber/booking-service/internal/domain"
	"github.com/pablobarber/booking-service/pkg/dbmetrics"
	"github.com/pablobarber/booking-service/pkg/psqlbuilder"
)

// Repository репозиторий справочника сотрудников
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория сотрудников
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListReal возвращает реальных сотрудников по возрастанию ID.
// Legacy-строки с sentinel-именем ("any"/"cualquiera") отфильтровываются:
// они обозначают "без предпочтения" и не являются ресурсами.
func (r *Repository) ListReal(ctx context.Context) ([]*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "avatar_url").
		From("staff").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListReal - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListReal - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	staffList := make([]*domain.Staff, 0)
	for rows.Next() {
		var s domain.Staff
		if err := rows.Scan(&s.ID, &s.Name, &s.AvatarURL); err != nil {
			return nil, fmt.Errorf("%w: ListReal - scan row: %v", ErrScanRow, err)
		}
		if s.IsSentinel() {
			continue
		}
		staffList = append(staffList, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListReal - rows error: %v", ErrScanRow, err)
	}

	return staffList, nil
}

// GetByID получает сотрудника по ID. Sentinel-строка не считается
// сотрудником и возвращает ErrStaffNotFound.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "avatar_url").
		From("staff").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Staff
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.Name, &s.AvatarURL)
	if err == sql.ErrNoRows {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan row: %v", ErrScanRow, err)
	}

	if s.IsSentinel() {
		return nil, ErrStaffNotFound
	}

	return &s, nil
}

// GetByName получает сотрудника по имени без учета регистра
func (r *Repository) GetByName(ctx context.Context, name string) (*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "avatar_url").
		From("staff").
		Where("LOWER(name) = ?", strings.ToLower(name)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByName - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Staff
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.Name, &s.AvatarURL)
	if err == sql.ErrNoRows {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByName - scan row: %v", ErrScanRow, err)
	}

	if s.IsSentinel() {
		return nil, ErrStaffNotFound
	}

	return &s, nil
}
