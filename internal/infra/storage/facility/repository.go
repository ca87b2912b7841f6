package facility

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/CMS-FacilityService/internal/domain"
	"github.com/m04kA/CMS-FacilityService/pkg/dbmetrics"
	"github.com/m04kA/CMS-FacilityService/pkg/psqlbuilder"
)

// facilityColumns колонки таблицы facilities в порядке сканирования
var facilityColumns = []string{
	"id",
	"category_id",
	"name",
	"description",
	"hourly_price",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с объектами клуба
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория объектов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает объект по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(facilityColumns...).
		From("facilities").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var f domain.Facility
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&f.ID,
		&f.CategoryID,
		&f.Name,
		&f.Description,
		&f.HourlyPrice,
		&f.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrFacilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan facility: %v", ErrScanRow, err)
	}

	f.CreatedAt = createdAt.Time
	f.UpdatedAt = updatedAt.Time

	return &f, nil
}

// List получает объекты клуба с опциональным фильтром по категории
func (r *Repository) List(ctx context.Context, categoryID *int64) ([]*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(facilityColumns...).
		From("facilities").
		OrderBy("name ASC")

	if categoryID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"category_id": *categoryID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	facilities := make([]*domain.Facility, 0)

	for rows.Next() {
		var f domain.Facility
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&f.ID,
			&f.CategoryID,
			&f.Name,
			&f.Description,
			&f.HourlyPrice,
			&f.IsActive,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}

		f.CreatedAt = createdAt.Time
		f.UpdatedAt = updatedAt.Time

		facilities = append(facilities, &f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return facilities, nil
}
