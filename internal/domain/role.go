package domain

import (
	"errors"
	"strings"
)

// Role роль заказчика бронирования
// Закрытое перечисление: любое другое значение отклоняется при парсинге
type Role string

const (
	RoleMember     Role = "member"
	RolePremium    Role = "premium"
	RoleCoach      Role = "coach"
	RoleStaff      Role = "staff"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
	RoleGuest      Role = "guest"
)

// ErrUnknownRole возвращается при попытке распарсить неизвестную роль
var ErrUnknownRole = errors.New("unknown role")

// roles все допустимые роли
var roles = []Role{
	RoleMember,
	RolePremium,
	RoleCoach,
	RoleStaff,
	RoleAdmin,
	RoleSuperAdmin,
	RoleGuest,
}

// ParseRole парсит роль из строки без учёта регистра
func ParseRole(s string) (Role, error) {
	normalized := Role(strings.ToLower(strings.TrimSpace(s)))
	for _, r := range roles {
		if normalized == r {
			return r, nil
		}
	}
	return "", ErrUnknownRole
}

// IsExclusive возвращает true для ролей, чьё бронирование монополизирует слот
// Бронирование тренера обнуляет оставшуюся ёмкость слота вместо уменьшения на 1
func (r Role) IsExclusive() bool {
	return r == RoleCoach
}
