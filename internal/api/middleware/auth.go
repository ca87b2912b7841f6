package middleware

import (
	"context"
	"net/http"

	"github.com/m04kA/CMS-FacilityService/internal/api/handlers"
)

const msgMissingUserEmail = "отсутствует заголовок X-User-Email"

type ctxKey string

const userEmailKey ctxKey = "userEmail"

// Auth проверяет наличие заголовка X-User-Email и кладет email в контекст
// Аутентификация выполняется внешним шлюзом, сервис доверяет заголовку
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email := r.Header.Get("X-User-Email")
		if email == "" {
			handlers.RespondUnauthorized(w, msgMissingUserEmail)
			return
		}

		ctx := context.WithValue(r.Context(), userEmailKey, email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserEmail возвращает email аутентифицированного пользователя из контекста
func GetUserEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(userEmailKey).(string)
	return email, ok
}
