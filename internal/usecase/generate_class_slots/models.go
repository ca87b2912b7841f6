package generate_class_slots

import (
	"time"

	"github.com/m04kA/CMS-FacilityService/pkg/types"
)

// Request модель запроса на генерацию слотов занятий
// Окно [StartTime, EndTime) произвольное, не обязательно почасовое
type Request struct {
	FacilityID int64            // ID объекта
	Months     int              // Горизонт генерации в месяцах [1, 12]
	Capacity   int              // Ёмкость слота занятия [1, 500]
	DayOfWeek  time.Weekday     // День недели занятия
	StartTime  types.TimeString // Начало занятия
	EndTime    types.TimeString // Конец занятия
}

// Response модель ответа генератора слотов занятий
type Response struct {
	CreatedCount     int64       // Новые слоты занятий
	OverwrittenCount int64       // Существующие слоты, перезаписанные расписанием
	SkippedDays      []time.Time // Дни, пропущенные из-за существующих бронирований
}
