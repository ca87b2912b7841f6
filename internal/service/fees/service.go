package fees

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/CMS-FacilityService/internal/domain"
	facilityRepo "github.com/m04kA/CMS-FacilityService/internal/infra/storage/facility"
	"github.com/m04kA/CMS-FacilityService/internal/integrations/userdirectory"
)

// Service сервис расчёта стоимости бронирований
// Роль заказчика определяется по email через справочник пользователей;
// незарегистрированный email тарифицируется как гость
type Service struct {
	facilityRepo FacilityRepository
	userDir      UserDirectoryClient
	logger       Logger
}

// NewService создает новый экземпляр сервиса расчёта стоимости
func NewService(facilityRepo FacilityRepository, userDir UserDirectoryClient, logger Logger) *Service {
	return &Service{
		facilityRepo: facilityRepo,
		userDir:      userDir,
		logger:       logger,
	}
}

// Quote рассчитывает стоимость бронирования объекта
// Сервер всегда считает стоимость сам: клиентская сумма никогда не принимается
// на веру, вызывающий код сравнивает её с результатом Quote
func (s *Service) Quote(ctx context.Context, req *QuoteRequest) (*QuoteResponse, error) {
	s.logger.Info("Quote: facility=%d, start=%s, end=%s, email=%s",
		req.FacilityID, req.StartTime, req.EndTime, req.CustomerEmail)

	facility, err := s.facilityRepo.GetByID(ctx, req.FacilityID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			s.logger.Warn("Quote: facility id=%d not found", req.FacilityID)
			return nil, ErrFacilityNotFound
		}
		s.logger.Error("Quote: failed to get facility id=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}

	role, err := s.ResolveRole(ctx, req.CustomerEmail)
	if err != nil {
		return nil, err
	}

	fee, err := Compute(facility.HourlyPrice, req.StartTime, req.EndTime, role, s.isSelfService(req))
	if err != nil {
		s.logger.Warn("Quote: fee computation rejected: facility=%d, role=%s: %v", req.FacilityID, role, err)
		return nil, err
	}

	minutes, err := req.StartTime.MinutesUntil(req.EndTime)
	if err != nil {
		return nil, ErrInvalidTimeRange
	}

	s.logger.Info("Quote: facility=%d, role=%s, fee=%.2f", req.FacilityID, role, fee)

	return &QuoteResponse{
		Fee:             fee,
		Role:            role,
		DurationMinutes: minutes,
	}, nil
}

// ResolveRole определяет роль заказчика по email
// Пустой или незарегистрированный email означает гостя - это обычный
// сценарий (бронирование без аккаунта), а не ошибка
func (s *Service) ResolveRole(ctx context.Context, email string) (domain.Role, error) {
	if strings.TrimSpace(email) == "" {
		return domain.RoleGuest, nil
	}

	user, err := s.userDir.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userdirectory.ErrUserNotFound) {
			s.logger.Info("ResolveRole: email=%s not registered, treating as guest", email)
			return domain.RoleGuest, nil
		}
		s.logger.Error("ResolveRole: user directory lookup failed for email=%s: %v", email, err)
		return "", fmt.Errorf("%w: user directory lookup: %v", ErrInternal, err)
	}

	role, err := domain.ParseRole(user.Role)
	if err != nil {
		s.logger.Warn("ResolveRole: directory returned unknown role=%q for email=%s", user.Role, email)
		return "", ErrUnknownRole
	}

	return role, nil
}

// isSelfService возвращает true, когда аутентифицированный пользователь
// бронирует для себя (email заказчика совпадает с email запрашивающего)
// Только на этом пути admin получает скидку вместо отказа
func (s *Service) isSelfService(req *QuoteRequest) bool {
	return req.RequesterEmail != "" &&
		strings.EqualFold(strings.TrimSpace(req.RequesterEmail), strings.TrimSpace(req.CustomerEmail))
}
