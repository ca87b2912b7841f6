package domain

import (
	"time"

	"github.com/m04kA/CMS-FacilityService/pkg/types"
)

// Slot represents one bookable unit of facility time with a capacity counter
// Уникален в пределах (facility_id, slot_date, start_time).
// Слоты никогда не удаляются: единственное изменение состояния -
// remaining_capacity в пределах [0, initial_capacity].
type Slot struct {
	ID         int64
	FacilityID int64
	SlotDate   time.Time
	StartTime  types.TimeString
	EndTime    types.TimeString

	InitialCapacity   int
	RemainingCapacity int

	// IsClass помечает слот, созданный наложением расписания занятий
	IsClass bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsExhausted returns true if the slot has no remaining capacity
func (s *Slot) IsExhausted() bool {
	return s.RemainingCapacity <= 0
}

// HasCapacity returns true if at least one booking can still be accepted
func (s *Slot) HasCapacity() bool {
	return s.RemainingCapacity > 0
}
