package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/DRSN-tech/lignum-storefront/internal/domain"
	"github.com/DRSN-tech/lignum-storefront/pkg/e"
	"github.com/DRSN-tech/lignum-storefront/pkg/logger"
)

// SettingsUseCase отдаёт и изменяет настройки магазина, влияющие на расчёт итогов.
type SettingsUseCase struct {
	repo     SettingsRepository
	defaults domain.StoreSettings
	logger   logger.Logger
}

func NewSettingsUC(repo SettingsRepository, defaults domain.StoreSettings, logger logger.Logger) *SettingsUseCase {
	return &SettingsUseCase{
		repo:     repo,
		defaults: defaults,
		logger:   logger,
	}
}

// GetSettings возвращает сохранённые настройки, а если их нет, значения из окружения.
func (s *SettingsUseCase) GetSettings(ctx context.Context) (*domain.StoreSettings, error) {
	const op = "SettingsUseCase.GetSettings"

	settings, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, e.ErrSettingsNotFound) {
			d := s.defaults
			return &d, nil
		}
		return nil, e.Wrap(op, err)
	}

	return settings, nil
}

// PricingContext возвращает контекст расчёта. Процент вне [1,100] не исправляется, только логируется.
func (s *SettingsUseCase) PricingContext(ctx context.Context) (domain.PricingContext, error) {
	const op = "SettingsUseCase.PricingContext"

	settings, err := s.GetSettings(ctx)
	if err != nil {
		return domain.PricingContext{}, e.Wrap(op, err)
	}

	pc := settings.PricingContext()
	s.warnPercentage(op, pc)

	return pc, nil
}

func (s *SettingsUseCase) UpdateSettings(ctx context.Context, req *UpdateSettingsReq) (*domain.StoreSettings, error) {
	const op = "SettingsUseCase.UpdateSettings"

	current, err := s.GetSettings(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	next := *current
	if req.Currency != nil {
		if c := strings.TrimSpace(*req.Currency); c != "" {
			next.Currency = c
		}
	}
	if req.B2BPartialPaymentPercentage != nil {
		next.B2BPartialPaymentPercentage = *req.B2BPartialPaymentPercentage
	}
	s.warnPercentage(op, next.PricingContext())

	saved, err := s.repo.Upsert(ctx, &next)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return saved, nil
}

func (s *SettingsUseCase) warnPercentage(op string, pc domain.PricingContext) {
	if !pc.PercentageInRange() {
		s.logger.Warnf("%s: b2b partial payment percentage %d is outside [1,100], using it as configured", op, pc.PartialPercentage)
	}
}
