package fees

import (
	"math"

	"github.com/m04kA/CMS-FacilityService/internal/domain"
	"github.com/m04kA/CMS-FacilityService/pkg/types"
)

// adminSelfServiceMultiplier скидка 20% администратору при бронировании для себя
const adminSelfServiceMultiplier = 0.8

// feeMultipliers табличные коэффициенты стоимости по ролям
// Роли, отсутствующие в таблице, обрабатываются отдельно в Compute
var feeMultipliers = map[domain.Role]float64{
	domain.RoleMember:  1.0,
	domain.RoleGuest:   1.0,
	domain.RolePremium: 0.0,
	domain.RoleCoach:   0.0,
}

// Compute вычисляет стоимость бронирования
// Чистая функция от (цена за час, длительность, роль, self-service признак):
// base = часы * цена; member и guest платят base, premium и coach - 0,
// admin получает 20% скидку только на self-service пути, иначе бронирование
// для admin/staff/superadmin запрещено
func Compute(hourlyPrice float64, start, end types.TimeString, role domain.Role, selfService bool) (float64, error) {
	minutes, err := start.MinutesUntil(end)
	if err != nil {
		return 0, ErrInvalidTimeRange
	}
	if minutes <= 0 {
		return 0, ErrInvalidTimeRange
	}

	base := hourlyPrice * float64(minutes) / 60

	if multiplier, ok := feeMultipliers[role]; ok {
		return round(base * multiplier), nil
	}

	switch role {
	case domain.RoleAdmin:
		if selfService {
			return round(base * adminSelfServiceMultiplier), nil
		}
		return 0, ErrRoleNotAllowed
	case domain.RoleStaff, domain.RoleSuperAdmin:
		return 0, ErrRoleNotAllowed
	default:
		return 0, ErrUnknownRole
	}
}

// Match сравнивает стоимость, заявленную клиентом, с вычисленной сервером
// Сравнение с допуском на представление денег в float64
func Match(submitted, computed float64) bool {
	return math.Abs(submitted-computed) < 0.005
}

// round округляет сумму до копеек
func round(v float64) float64 {
	return math.Round(v*100) / 100
}
