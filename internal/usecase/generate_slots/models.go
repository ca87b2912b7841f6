package generate_slots

import "time"

// Request модель запроса на генерацию слотов
type Request struct {
	FacilityID int64 // ID объекта
	Months     int   // Горизонт генерации в месяцах [1, 12]
	Capacity   int   // Ёмкость каждого слота [1, 500]
}

// Response модель ответа генератора
type Response struct {
	CreatedCount int64     // Количество реально созданных слотов
	FromDate     time.Time // Первый день сгенерированного диапазона
	ToDate       time.Time // Последний день сгенерированного диапазона
}
