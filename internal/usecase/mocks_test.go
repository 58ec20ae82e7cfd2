package usecase_test

import (
	"context"

	"go-portfolio-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// Mock Repositories
type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.PortfolioProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PortfolioProfile), args.Error(1)
}

func (m *MockProfileRepo) GetByUsername(ctx context.Context, username string) (*domain.PortfolioProfile, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PortfolioProfile), args.Error(1)
}

func (m *MockProfileRepo) SaveSection(ctx context.Context, p *domain.PortfolioProfile, section domain.Section) error {
	return m.Called(ctx, p, section).Error(0)
}

func (m *MockProfileRepo) SaveAll(ctx context.Context, p *domain.PortfolioProfile) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProfileRepo) SetUsername(ctx context.Context, userID, username string) error {
	return m.Called(ctx, userID, username).Error(0)
}

func (m *MockProfileRepo) SetTemplate(ctx context.Context, userID, templateID string) error {
	return m.Called(ctx, userID, templateID).Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, username string) (*domain.PublicPortfolio, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PublicPortfolio), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, portfolio *domain.PublicPortfolio) error {
	return m.Called(ctx, portfolio).Error(0)
}

func (m *MockCache) Invalidate(ctx context.Context, username string) error {
	return m.Called(ctx, username).Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, portfolio *domain.PublicPortfolio) error {
	return m.Called(ctx, portfolio).Error(0)
}

func validProfile() domain.Profile {
	return domain.Profile{
		PersonalInfo: domain.PersonalInfo{
			Phone:    "9988776655",
			Location: "Lisbon, Portugal",
			SocialLinks: domain.SocialLinks{
				LinkedIn: "https://www.linkedin.com/in/ana-silva",
				GitHub:   "https://github.com/anasilva",
			},
		},
		Professional: domain.Professional{
			Title:   "Backend Engineer",
			Summary: "Backend engineer with eight years of experience building payment and logistics platforms.",
			Skills:  []string{"Go", "PostgreSQL", "Kubernetes"},
		},
		Experience: []domain.Experience{{
			Title:     "Senior Engineer",
			Company:   "Acme Logistics",
			StartDate: "2020-01",
			Current:   true,
		}},
	}
}

func userCtx(userID string) context.Context {
	ctx := context.WithValue(context.Background(), domain.KeyUserID, userID)
	return context.WithValue(ctx, domain.KeyRequestID, "req-test")
}
