package catalog

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/pablobarber/booking-service/internal/domain"
	"github.com/pablobarber/booking-service/pkg/dbmetrics"
	"github.com/pablobarber/booking-service/pkg/psqlbuilder"
)

// Repository репозиторий каталога услуг
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// List возвращает все услуги каталога по категории и имени
func (r *Repository) List(ctx context.Context) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "price_cents", "duration_minutes", "category").
		From("services").
		OrderBy("category ASC, name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		var s domain.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.PriceCents, &s.DurationMinutes, &s.Category); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		services = append(services, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

// GetByNames возвращает услуги с указанными именами.
// Если хотя бы одно имя не найдено — ErrServiceNotFound с этим именем.
func (r *Repository) GetByNames(ctx context.Context, names []string) ([]*domain.Service, error) {
	if len(names) == 0 {
		return []*domain.Service{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "price_cents", "duration_minutes", "category").
		From("services").
		Where(squirrel.Eq{"name": names}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByNames - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByNames - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	byName := make(map[string]*domain.Service, len(names))
	for rows.Next() {
		var s domain.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.PriceCents, &s.DurationMinutes, &s.Category); err != nil {
			return nil, fmt.Errorf("%w: GetByNames - scan row: %v", ErrScanRow, err)
		}
		byName[s.Name] = &s
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByNames - rows error: %v", ErrScanRow, err)
	}

	// Сохраняем порядок запрошенных имён
	services := make([]*domain.Service, 0, len(names))
	for _, name := range names {
		s, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrServiceNotFound, name)
		}
		services = append(services, s)
	}

	return services, nil
}
