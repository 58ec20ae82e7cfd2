// Package sqlite provides a SQLite-backed profile store for local runs
// without Postgres.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/internal/profilecheck"
	"go-portfolio-backend/pkg/apperror"

	"github.com/google/uuid"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

//go:embed schema.sql
var schema string

// Store persists portfolio profiles in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite store and creates the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	// Immediate transactions take the write lock up front so concurrent
	// section saves serialize instead of failing on a stale snapshot.
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_txlock=immediate"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Ping checks the database handle.
func (s *Store) Ping(ctx context.Context) error {
	return s.sqlDB.PingContext(ctx)
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

const selectProfile = `
	SELECT id, user_id, COALESCE(username, ''), template_id,
		phone, location, linkedin, github,
		title, summary, skills,
		experience, education, projects,
		completion, created_at, updated_at
	FROM portfolio_profiles`

// rowQuerier is satisfied by both *sql.DB and *sql.Tx.
type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) GetByUserID(ctx context.Context, userID string) (*domain.PortfolioProfile, error) {
	return getOne(ctx, s.sqlDB, selectProfile+` WHERE user_id = ?`, userID)
}

func (s *Store) GetByUsername(ctx context.Context, username string) (*domain.PortfolioProfile, error) {
	return getOne(ctx, s.sqlDB, selectProfile+` WHERE username = ?`, username)
}

func getOne(ctx context.Context, q rowQuerier, query, arg string) (*domain.PortfolioProfile, error) {
	var (
		p                                       domain.PortfolioProfile
		id                                      string
		skills, experience, education, projects string
		createdAt, updatedAt                    int64
	)
	err := q.QueryRowContext(ctx, query, arg).Scan(
		&id, &p.UserID, &p.Username, &p.TemplateID,
		&p.Profile.PersonalInfo.Phone, &p.Profile.PersonalInfo.Location,
		&p.Profile.PersonalInfo.SocialLinks.LinkedIn, &p.Profile.PersonalInfo.SocialLinks.GitHub,
		&p.Profile.Professional.Title, &p.Profile.Professional.Summary, &skills,
		&experience, &education, &projects,
		&p.Completion, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query profile: %w", err)
	}

	if p.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse profile id: %w", err)
	}
	p.CreatedAt = fromMillis(createdAt)
	p.UpdatedAt = fromMillis(updatedAt)

	decoders := []struct {
		raw    string
		target any
	}{
		{skills, &p.Profile.Professional.Skills},
		{experience, &p.Profile.Experience},
		{education, &p.Profile.Education},
		{projects, &p.Profile.Projects},
	}
	for _, d := range decoders {
		if err := json.Unmarshal([]byte(d.raw), d.target); err != nil {
			return nil, fmt.Errorf("decode profile column: %w", err)
		}
	}
	return &p, nil
}

func (s *Store) ensureRow(ctx context.Context, tx *sql.Tx, userID string) error {
	now := toMillis(s.now())
	_, err := tx.ExecContext(ctx, `
		INSERT INTO portfolio_profiles (id, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id) DO NOTHING`, uuid.NewString(), userID, now, now)
	if err != nil {
		return fmt.Errorf("create profile row: %w", err)
	}
	return nil
}

func (s *Store) SaveSection(ctx context.Context, p *domain.PortfolioProfile, section domain.Section) error {
	if p.UserID == "" {
		return errors.New("user_id is required")
	}

	var (
		sets []string
		args []any
	)
	prof := p.Profile

	switch section {
	case domain.SectionPersonal:
		info := prof.PersonalInfo
		sets = []string{"phone", "location", "linkedin", "github"}
		args = []any{info.Phone, info.Location, info.SocialLinks.LinkedIn, info.SocialLinks.GitHub}
	case domain.SectionProfessional:
		skills, err := encode(prof.Professional.Skills)
		if err != nil {
			return err
		}
		sets = []string{"title", "summary", "skills"}
		args = []any{prof.Professional.Title, prof.Professional.Summary, skills}
	case domain.SectionExperience:
		payload, err := encode(prof.Experience)
		if err != nil {
			return err
		}
		sets, args = []string{"experience"}, []any{payload}
	case domain.SectionEducation:
		payload, err := encode(prof.Education)
		if err != nil {
			return err
		}
		sets, args = []string{"education"}, []any{payload}
	case domain.SectionProjects:
		payload, err := encode(prof.Projects)
		if err != nil {
			return err
		}
		sets, args = []string{"projects"}, []any{payload}
	default:
		return fmt.Errorf("unknown section %q", section)
	}

	return s.saveAndScore(ctx, p, sets, args)
}

func (s *Store) SaveAll(ctx context.Context, p *domain.PortfolioProfile) error {
	if p.UserID == "" {
		return errors.New("user_id is required")
	}

	prof := p.Profile
	encoded := make([]any, 0, 4)
	for _, v := range []any{nonNilStrings(prof.Professional.Skills), prof.Experience, prof.Education, prof.Projects} {
		payload, err := encode(v)
		if err != nil {
			return err
		}
		encoded = append(encoded, payload)
	}

	sets := []string{"phone", "location", "linkedin", "github", "title", "summary", "skills", "experience", "education", "projects"}
	args := []any{
		prof.PersonalInfo.Phone, prof.PersonalInfo.Location,
		prof.PersonalInfo.SocialLinks.LinkedIn, prof.PersonalInfo.SocialLinks.GitHub,
		prof.Professional.Title, prof.Professional.Summary,
		encoded[0], encoded[1], encoded[2], encoded[3],
	}
	return s.saveAndScore(ctx, p, sets, args)
}

// saveAndScore writes the given columns, then recomputes completion from the
// stored row inside the same transaction. p is refreshed with the stored
// profile so callers see sections written by concurrent saves.
func (s *Store) saveAndScore(ctx context.Context, p *domain.PortfolioProfile, columns []string, args []any) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := s.ensureRow(ctx, tx, p.UserID); err != nil {
		return err
	}
	if err := s.set(ctx, tx, p.UserID, columns, args); err != nil {
		return err
	}

	stored, err := getOne(ctx, tx, selectProfile+` WHERE user_id = ?`, p.UserID)
	if err != nil {
		return err
	}
	if stored == nil {
		return fmt.Errorf("profile row for %q vanished", p.UserID)
	}
	stored.Completion = profilecheck.CalculateCompletionPercentage(stored.Profile)
	if err := s.set(ctx, tx, p.UserID, []string{"completion"}, []any{stored.Completion}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	*p = *stored
	return nil
}

func (s *Store) SetUsername(ctx context.Context, userID, username string) error {
	err := s.update(ctx, userID, []string{"username"}, []any{username})
	if isUniqueViolation(err) {
		return apperror.Conflict("Username is already taken")
	}
	return err
}

func (s *Store) SetTemplate(ctx context.Context, userID, templateID string) error {
	res, err := s.sqlDB.ExecContext(ctx,
		`UPDATE portfolio_profiles SET template_id = ?, updated_at = ? WHERE user_id = ?`,
		templateID, toMillis(s.now()), userID)
	if err != nil {
		return fmt.Errorf("set template: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NotFound("Profile not found")
	}
	return nil
}

// update ensures the row exists and sets the given columns in one transaction.
func (s *Store) update(ctx context.Context, userID string, columns []string, args []any) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := s.ensureRow(ctx, tx, userID); err != nil {
		return err
	}
	if err := s.set(ctx, tx, userID, columns, args); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) set(ctx context.Context, tx *sql.Tx, userID string, columns []string, args []any) error {
	assignments := make([]string, 0, len(columns)+1)
	for _, c := range columns {
		assignments = append(assignments, c+" = ?")
	}
	assignments = append(assignments, "updated_at = ?")
	args = append(append([]any(nil), args...), toMillis(s.now()), userID)

	query := "UPDATE portfolio_profiles SET " + strings.Join(assignments, ", ") + " WHERE user_id = ?"
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

func encode(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode profile column: %w", err)
	}
	if string(b) == "null" {
		return "[]", nil
	}
	return string(b), nil
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

var _ domain.ProfileRepository = (*Store)(nil)
