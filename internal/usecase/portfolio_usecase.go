package usecase

import (
	"context"

	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/pkg/apperror"
	"go-portfolio-backend/pkg/logger"
	"go-portfolio-backend/pkg/slug"
)

type portfolioUsecase struct {
	repo  domain.ProfileRepository
	cache domain.PortfolioCache
}

func NewPortfolioUsecase(repo domain.ProfileRepository, cache domain.PortfolioCache) domain.PortfolioUsecase {
	return &portfolioUsecase{repo: repo, cache: cache}
}

// GetPublic serves a published portfolio. A profile is published once a
// template has been selected.
func (u *portfolioUsecase) GetPublic(ctx context.Context, username string) (*domain.PublicPortfolio, error) {
	if !slug.Valid(username) {
		return nil, apperror.NotFound("Portfolio not found")
	}

	cached, err := u.cache.Get(ctx, username)
	if err != nil {
		logger.Log.Warn("Portfolio cache unavailable", "username", username, "error", err)
	}
	if cached != nil {
		return cached, nil
	}

	stored, err := u.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if stored == nil || stored.TemplateID == "" {
		return nil, apperror.NotFound("Portfolio not found")
	}

	portfolio := toPublic(stored)
	if err := u.cache.Set(ctx, portfolio); err != nil {
		logger.Log.Warn("Failed to cache portfolio", "username", username, "error", err)
	}
	return portfolio, nil
}
