package userdirectory

// User данные пользователя из справочника
type User struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"` // member, premium, coach, staff, admin, superadmin
}

// ErrorResponse модель ошибки от справочника пользователей
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
