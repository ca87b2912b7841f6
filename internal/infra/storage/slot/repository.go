package slot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/CMS-FacilityService/internal/domain"
	"github.com/m04kA/CMS-FacilityService/pkg/dbmetrics"
	"github.com/m04kA/CMS-FacilityService/pkg/psqlbuilder"
	"github.com/m04kA/CMS-FacilityService/pkg/types"
)

// slotColumns колонки таблицы facility_slots в порядке сканирования
var slotColumns = []string{
	"id",
	"facility_id",
	"slot_date",
	"start_time",
	"end_time",
	"initial_capacity",
	"remaining_capacity",
	"is_class",
	"created_at",
	"updated_at",
}

// Repository репозиторий учёта ёмкости слотов
// Строки слотов создаются пакетно генератором и далее никогда не удаляются;
// мутируется только remaining_capacity в пределах [0, initial_capacity]
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// BulkCreate пакетно создает слоты, пропуская уже существующие
// Существующие строки (facility_id, slot_date, start_time) не трогаются:
// ON CONFLICT DO NOTHING, ёмкость не перезаписывается.
// Возвращает количество реально созданных строк.
func (r *Repository) BulkCreate(ctx context.Context, slots []*domain.Slot) (int64, error) {
	if len(slots) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("facility_slots").
		Columns(
			"facility_id",
			"slot_date",
			"start_time",
			"end_time",
			"initial_capacity",
			"remaining_capacity",
			"is_class",
		)

	for _, s := range slots {
		insertBuilder = insertBuilder.Values(
			s.FacilityID,
			s.SlotDate,
			s.StartTime,
			s.EndTime,
			s.InitialCapacity,
			s.RemainingCapacity,
			s.IsClass,
		)
	}

	query, args, err := insertBuilder.
		Suffix("ON CONFLICT (facility_id, slot_date, start_time) DO NOTHING").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: BulkCreate - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: BulkCreate - execute insert: %v", ErrExecQuery, err)
	}

	created, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: BulkCreate - get rows affected: %v", ErrExecQuery, err)
	}

	return created, nil
}

// LatestSlotDate возвращает дату последнего существующего слота объекта
// Если слотов нет, возвращает nil (генерация начнётся с сегодняшнего дня)
func (r *Repository) LatestSlotDate(ctx context.Context, facilityID int64) (*time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("slot_date").
		From("facility_slots").
		Where(squirrel.Eq{"facility_id": facilityID}).
		OrderBy("slot_date DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: LatestSlotDate - build select query: %v", ErrBuildQuery, err)
	}

	var latest time.Time
	err = executor.QueryRowContext(ctx, query, args...).Scan(&latest)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: LatestSlotDate - scan date: %v", ErrScanRow, err)
	}

	return &latest, nil
}

// GetRange получает слоты объекта на дату, чьё start_time попадает в [start, end)
// Внутри транзакции строки блокируются (FOR UPDATE) - так проверка ёмкости
// и последующее списание не гоняются с параллельными бронированиями
func (r *Repository) GetRange(ctx context.Context, facilityID int64, date time.Time, start, end types.TimeString) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("facility_slots").
		Where(squirrel.Eq{"facility_id": facilityID, "slot_date": date}).
		Where(squirrel.GtOrEq{"start_time": start}).
		Where(squirrel.Lt{"start_time": end}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// DecrementRange атомарно списывает одну единицу ёмкости с каждого слота диапазона
// Условие remaining_capacity > 0 в самом UPDATE - слот с исчерпанной ёмкостью
// не изменяется и не попадает в счётчик затронутых строк
func (r *Repository) DecrementRange(ctx context.Context, facilityID int64, date time.Time, start, end types.TimeString) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("facility_slots").
		Set("remaining_capacity", squirrel.Expr("remaining_capacity - 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"facility_id": facilityID, "slot_date": date}).
		Where(squirrel.GtOrEq{"start_time": start}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"remaining_capacity": 0}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DecrementRange - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DecrementRange - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DecrementRange - get rows affected: %v", ErrExecQuery, err)
	}

	return affected, nil
}

// ZeroRange обнуляет оставшуюся ёмкость слотов диапазона
// Используется для бронирований тренера: такой слот монополизируется целиком
func (r *Repository) ZeroRange(ctx context.Context, facilityID int64, date time.Time, start, end types.TimeString) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("facility_slots").
		Set("remaining_capacity", 0).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"facility_id": facilityID, "slot_date": date}).
		Where(squirrel.GtOrEq{"start_time": start}).
		Where(squirrel.Lt{"start_time": end}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: ZeroRange - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ZeroRange - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ZeroRange - get rows affected: %v", ErrExecQuery, err)
	}

	return affected, nil
}

// ReleaseRange возвращает одну единицу ёмкости каждому слоту диапазона
// LEAST с initial_capacity гарантирует, что ёмкость никогда не превысит
// значение, заданное при создании слота
func (r *Repository) ReleaseRange(ctx context.Context, facilityID int64, date time.Time, start, end types.TimeString) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("facility_slots").
		Set("remaining_capacity", squirrel.Expr("LEAST(remaining_capacity + 1, initial_capacity)")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"facility_id": facilityID, "slot_date": date}).
		Where(squirrel.GtOrEq{"start_time": start}).
		Where(squirrel.Lt{"start_time": end}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseRange - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseRange - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseRange - get rows affected: %v", ErrExecQuery, err)
	}

	return affected, nil
}

// FindOverlapping ищет слот объекта, пересекающийся с окном [start, end) на дату
// Пересечение по строгим неравенствам: граничащие интервалы не пересекаются.
// Если пересечений нет, возвращает ErrSlotNotFound
func (r *Repository) FindOverlapping(ctx context.Context, facilityID int64, date time.Time, start, end types.TimeString) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("facility_slots").
		Where(squirrel.Eq{"facility_id": facilityID, "slot_date": date}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		OrderBy("start_time ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots, err := r.scanSlots(rows)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, ErrSlotNotFound
	}

	return slots[0], nil
}

// OverlayClass перезаписывает слот расписанием занятий
// Ёмкость заменяется (а не уменьшается), слот помечается is_class
func (r *Repository) OverlayClass(ctx context.Context, id int64, capacity int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("facility_slots").
		Set("initial_capacity", capacity).
		Set("remaining_capacity", capacity).
		Set("is_class", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: OverlayClass - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: OverlayClass - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: OverlayClass - get rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// ListByDate получает все слоты на дату (по всем объектам)
// Используется для построения сводки доступности на день
func (r *Repository) ListByDate(ctx context.Context, date time.Time) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("facility_slots").
		Where(squirrel.Eq{"slot_date": date}).
		OrderBy("facility_id ASC, start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// scanSlots сканирует результаты запроса в слайс слотов
func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)

	for rows.Next() {
		var s domain.Slot
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&s.ID,
			&s.FacilityID,
			&s.SlotDate,
			&s.StartTime,
			&s.EndTime,
			&s.InitialCapacity,
			&s.RemainingCapacity,
			&s.IsClass,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}

		s.CreatedAt = createdAt.Time
		s.UpdatedAt = updatedAt.Time

		slots = append(slots, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
