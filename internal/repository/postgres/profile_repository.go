package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/internal/profilecheck"
	"go-portfolio-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const pgUniqueViolation = "23505"

type profileRepository struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) domain.ProfileRepository {
	return &profileRepository{db: db}
}

const selectProfile = `
	SELECT
		id, user_id, COALESCE(username, ''), template_id,
		phone, location, linkedin, github,
		title, summary, skills,
		experience, education, projects,
		completion, created_at, updated_at
	FROM portfolio_profiles`

// rowQuerier is satisfied by both *pgxpool.Pool and pgx.Tx.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.PortfolioProfile, error) {
	return getOne(ctx, r.db, selectProfile+` WHERE user_id = $1`, userID)
}

func (r *profileRepository) GetByUsername(ctx context.Context, username string) (*domain.PortfolioProfile, error) {
	return getOne(ctx, r.db, selectProfile+` WHERE username = $1`, username)
}

func getOne(ctx context.Context, q rowQuerier, query string, arg string) (*domain.PortfolioProfile, error) {
	var (
		p                               domain.PortfolioProfile
		skills                          []string
		experience, education, projects []byte
	)

	err := q.QueryRow(ctx, query, arg).Scan(
		&p.ID, &p.UserID, &p.Username, &p.TemplateID,
		&p.Profile.PersonalInfo.Phone, &p.Profile.PersonalInfo.Location,
		&p.Profile.PersonalInfo.SocialLinks.LinkedIn, &p.Profile.PersonalInfo.SocialLinks.GitHub,
		&p.Profile.Professional.Title, &p.Profile.Professional.Summary, pq.Array(&skills),
		&experience, &education, &projects,
		&p.Completion, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	p.Profile.Professional.Skills = skills

	if err := json.Unmarshal(experience, &p.Profile.Experience); err != nil {
		return nil, fmt.Errorf("failed to decode experience: %w", err)
	}
	if err := json.Unmarshal(education, &p.Profile.Education); err != nil {
		return nil, fmt.Errorf("failed to decode education: %w", err)
	}
	if err := json.Unmarshal(projects, &p.Profile.Projects); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %w", err)
	}
	return &p, nil
}

// ensureRow inserts an empty profile row for the user when none exists.
func ensureRow(ctx context.Context, tx pgx.Tx, userID string) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO portfolio_profiles (id, user_id, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (user_id) DO NOTHING`, uuid.New(), userID)
	if err != nil {
		return fmt.Errorf("failed to create profile row: %w", err)
	}
	return nil
}

func (r *profileRepository) SaveSection(ctx context.Context, p *domain.PortfolioProfile, section domain.Section) error {
	if p.UserID == "" {
		return errors.New("user_id is required")
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := ensureRow(ctx, tx, p.UserID); err != nil {
		return err
	}

	var (
		query string
		args  []any
	)
	prof := p.Profile

	switch section {
	case domain.SectionPersonal:
		query = `UPDATE portfolio_profiles SET phone = $1, location = $2, linkedin = $3, github = $4, updated_at = NOW() WHERE user_id = $5`
		info := prof.PersonalInfo
		args = []any{info.Phone, info.Location, info.SocialLinks.LinkedIn, info.SocialLinks.GitHub, p.UserID}
	case domain.SectionProfessional:
		query = `UPDATE portfolio_profiles SET title = $1, summary = $2, skills = $3, updated_at = NOW() WHERE user_id = $4`
		args = []any{prof.Professional.Title, prof.Professional.Summary, pq.Array(nonNilStrings(prof.Professional.Skills)), p.UserID}
	case domain.SectionExperience, domain.SectionEducation, domain.SectionProjects:
		column, payload, err := entriesColumn(prof, section)
		if err != nil {
			return err
		}
		query = fmt.Sprintf(`UPDATE portfolio_profiles SET %s = $1::jsonb, updated_at = NOW() WHERE user_id = $2`, column)
		args = []any{payload, p.UserID}
	default:
		return fmt.Errorf("unknown section %q", section)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update %s: %w", section, err)
	}

	return scoreAndCommit(ctx, tx, p)
}

// scoreAndCommit recomputes completion from the locked row, so a concurrent
// save of another section is counted, and refreshes p with the stored profile.
func scoreAndCommit(ctx context.Context, tx pgx.Tx, p *domain.PortfolioProfile) error {
	stored, err := getOne(ctx, tx, selectProfile+` WHERE user_id = $1 FOR UPDATE`, p.UserID)
	if err != nil {
		return err
	}
	if stored == nil {
		return fmt.Errorf("profile row for %q vanished", p.UserID)
	}
	stored.Completion = profilecheck.CalculateCompletionPercentage(stored.Profile)

	if _, err := tx.Exec(ctx, `UPDATE portfolio_profiles SET completion = $1 WHERE user_id = $2`, stored.Completion, p.UserID); err != nil {
		return fmt.Errorf("failed to update completion: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}

	*p = *stored
	return nil
}

func (r *profileRepository) SaveAll(ctx context.Context, p *domain.PortfolioProfile) error {
	if p.UserID == "" {
		return errors.New("user_id is required")
	}

	experience, err := encodeEntries(p.Profile.Experience)
	if err != nil {
		return err
	}
	education, err := encodeEntries(p.Profile.Education)
	if err != nil {
		return err
	}
	projects, err := encodeEntries(p.Profile.Projects)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := ensureRow(ctx, tx, p.UserID); err != nil {
		return err
	}

	info := p.Profile.PersonalInfo
	prof := p.Profile.Professional
	_, err = tx.Exec(ctx, `
		UPDATE portfolio_profiles SET
			phone = $1, location = $2, linkedin = $3, github = $4,
			title = $5, summary = $6, skills = $7,
			experience = $8::jsonb, education = $9::jsonb, projects = $10::jsonb,
			updated_at = NOW()
		WHERE user_id = $11`,
		info.Phone, info.Location, info.SocialLinks.LinkedIn, info.SocialLinks.GitHub,
		prof.Title, prof.Summary, pq.Array(nonNilStrings(prof.Skills)),
		experience, education, projects,
		p.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	return scoreAndCommit(ctx, tx, p)
}

func (r *profileRepository) SetUsername(ctx context.Context, userID, username string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := ensureRow(ctx, tx, userID); err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `UPDATE portfolio_profiles SET username = $1, updated_at = NOW() WHERE user_id = $2`, username, userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.Conflict("Username is already taken")
		}
		return fmt.Errorf("failed to set username: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *profileRepository) SetTemplate(ctx context.Context, userID, templateID string) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE portfolio_profiles SET template_id = $1, updated_at = NOW() WHERE user_id = $2`, templateID, userID)
	if err != nil {
		return fmt.Errorf("failed to set template: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NotFound("Profile not found")
	}
	return nil
}

func entriesColumn(p domain.Profile, section domain.Section) (string, string, error) {
	var (
		payload string
		err     error
	)
	switch section {
	case domain.SectionExperience:
		payload, err = encodeEntries(p.Experience)
	case domain.SectionEducation:
		payload, err = encodeEntries(p.Education)
	case domain.SectionProjects:
		payload, err = encodeEntries(p.Projects)
	}
	return string(section), payload, err
}

// encodeEntries marshals a section array; nil is stored as "[]".
func encodeEntries[T any](entries []T) (string, error) {
	if entries == nil {
		entries = []T{}
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("failed to encode entries: %w", err)
	}
	return string(b), nil
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
