package domain

// Рабочее окно объектов: почасовые слоты создаются
// с 08:00 до 22:00 включительно (последний слот 22:00-23:00)
const (
	OpeningHour = 8
	ClosingHour = 22
)

// Ограничения генерации слотов
const (
	MinGenerateMonths = 1
	MaxGenerateMonths = 12
	MinSlotCapacity   = 1
	MaxSlotCapacity   = 500
)

// Ограничения данных заказчика
const (
	MaxCustomerNameLength  = 100
	MaxCustomerPhoneLength = 15
)

// MinutesPerSlot длительность одного почасового слота
const MinutesPerSlot = 60

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
