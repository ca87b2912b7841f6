package fees

import (
	"context"

	"github.com/m04kA/CMS-FacilityService/internal/domain"
	"github.com/m04kA/CMS-FacilityService/internal/integrations/userdirectory"
)

// FacilityRepository интерфейс репозитория объектов
type FacilityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
}

// UserDirectoryClient интерфейс клиента справочника пользователей
type UserDirectoryClient interface {
	FindByEmail(ctx context.Context, email string) (*userdirectory.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
