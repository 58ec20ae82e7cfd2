package sqlite

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "portfolio.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpen(t *testing.T) {
	t.Run("Should require path", func(t *testing.T) {
		_, err := Open("  ")
		assert.Error(t, err)
	})

	t.Run("Should ping until closed", func(t *testing.T) {
		store, err := Open(filepath.Join(t.TempDir(), "portfolio.db"))
		require.NoError(t, err)

		assert.NoError(t, store.Ping(context.Background()))
		require.NoError(t, store.Close())
		assert.Error(t, store.Ping(context.Background()))
	})
}

func TestStore_SaveSection(t *testing.T) {
	ctx := context.Background()

	t.Run("Should create row on first save and return nil for unknown users", func(t *testing.T) {
		store := openTestStore(t)

		got, err := store.GetByUserID(ctx, "user-1")
		require.NoError(t, err)
		assert.Nil(t, got)

		p := &domain.PortfolioProfile{
			UserID:     "user-1",
			Completion: 20,
			Profile: domain.Profile{
				PersonalInfo: domain.PersonalInfo{Phone: "5551234567", Location: "Lisbon"},
			},
		}
		require.NoError(t, store.SaveSection(ctx, p, domain.SectionPersonal))

		got, err = store.GetByUserID(ctx, "user-1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "5551234567", got.Profile.PersonalInfo.Phone)
		assert.Equal(t, 20, got.Completion)
		assert.NotEmpty(t, got.ID)
		assert.False(t, got.CreatedAt.IsZero())
	})

	t.Run("Should only write the given section", func(t *testing.T) {
		store := openTestStore(t)

		first := &domain.PortfolioProfile{
			UserID:     "user-1",
			Completion: 20,
			Profile: domain.Profile{
				Professional: domain.Professional{Title: "Engineer", Skills: []string{"Go", "SQL", "Docker"}},
			},
		}
		require.NoError(t, store.SaveSection(ctx, first, domain.SectionProfessional))

		second := &domain.PortfolioProfile{
			UserID:     "user-1",
			Completion: 40,
			Profile: domain.Profile{
				Experience: []domain.Experience{{Title: "Dev", Company: "Acme", StartDate: "2020-01", Current: true}},
			},
		}
		require.NoError(t, store.SaveSection(ctx, second, domain.SectionExperience))

		got, err := store.GetByUserID(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, "Engineer", got.Profile.Professional.Title)
		assert.Equal(t, []string{"Go", "SQL", "Docker"}, got.Profile.Professional.Skills)
		require.Len(t, got.Profile.Experience, 1)
		assert.True(t, got.Profile.Experience[0].Current)
		assert.Equal(t, 40, got.Completion)
	})

	t.Run("Should score completion from the stored row", func(t *testing.T) {
		store := openTestStore(t)

		personal := &domain.PortfolioProfile{
			UserID:  "user-1",
			Profile: domain.Profile{PersonalInfo: domain.PersonalInfo{Phone: "9988776655"}},
		}
		require.NoError(t, store.SaveSection(ctx, personal, domain.SectionPersonal))
		assert.Equal(t, 20, personal.Completion)

		// Built from a read taken before the personal save landed
		stale := &domain.PortfolioProfile{
			UserID:     "user-1",
			Completion: 20,
			Profile:    domain.Profile{Professional: domain.Professional{Title: "Engineer"}},
		}
		require.NoError(t, store.SaveSection(ctx, stale, domain.SectionProfessional))

		assert.Equal(t, 40, stale.Completion)
		assert.Equal(t, "9988776655", stale.Profile.PersonalInfo.Phone)

		got, err := store.GetByUserID(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, 40, got.Completion)
	})

	t.Run("Should reject unknown section", func(t *testing.T) {
		store := openTestStore(t)
		err := store.SaveSection(ctx, &domain.PortfolioProfile{UserID: "u"}, domain.Section("hobbies"))
		assert.Error(t, err)
	})
}

func TestStore_SaveAll(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	p := &domain.PortfolioProfile{
		UserID:     "user-1",
		Completion: 60,
		Profile: domain.Profile{
			PersonalInfo: domain.PersonalInfo{SocialLinks: domain.SocialLinks{GitHub: "https://github.com/ana"}},
			Education:    []domain.Education{{Degree: "BSc", School: "IST", StartDate: "2015-09"}},
			Projects:     []domain.Project{{Title: "CLI", Description: "A command line tool", Skills: []string{"Go"}}},
		},
	}
	require.NoError(t, store.SaveAll(ctx, p))

	got, err := store.GetByUserID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/ana", got.Profile.PersonalInfo.SocialLinks.GitHub)
	assert.Len(t, got.Profile.Education, 1)
	assert.Len(t, got.Profile.Projects, 1)
	assert.Empty(t, got.Profile.Experience)
	assert.Empty(t, got.Profile.Professional.Skills)
	assert.Equal(t, 60, got.Completion)
}

func TestStore_SetUsername(t *testing.T) {
	ctx := context.Background()

	t.Run("Should claim username and look up by it", func(t *testing.T) {
		store := openTestStore(t)
		require.NoError(t, store.SetUsername(ctx, "user-1", "ana-silva"))

		got, err := store.GetByUsername(ctx, "ana-silva")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "user-1", got.UserID)
	})

	t.Run("Should return conflict for taken username", func(t *testing.T) {
		store := openTestStore(t)
		require.NoError(t, store.SetUsername(ctx, "user-1", "ana-silva"))

		err := store.SetUsername(ctx, "user-2", "ana-silva")
		require.Error(t, err)

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusConflict, appErr.Code)
	})
}

func TestStore_SetTemplate(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	t.Run("Should return not found without profile", func(t *testing.T) {
		err := store.SetTemplate(ctx, "ghost", "minimal")
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusNotFound, appErr.Code)
	})

	t.Run("Should store template id", func(t *testing.T) {
		require.NoError(t, store.SetUsername(ctx, "user-1", "ana"))
		require.NoError(t, store.SetTemplate(ctx, "user-1", "dev-dark"))

		got, err := store.GetByUserID(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, "dev-dark", got.TemplateID)
	})
}
