package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ============================================================================
// Profile Sections
// ============================================================================

// Section identifies a top-level profile division with its own save lifecycle
type Section string

const (
	SectionPersonal     Section = "personal"
	SectionProfessional Section = "professional"
	SectionExperience   Section = "experience"
	SectionEducation    Section = "education"
	SectionProjects     Section = "projects"
)

// AllSections returns every section in display order
func AllSections() []Section {
	return []Section{SectionPersonal, SectionProfessional, SectionExperience, SectionEducation, SectionProjects}
}

// IsValid checks if the section name is known
func (s Section) IsValid() bool {
	for _, valid := range AllSections() {
		if s == valid {
			return true
		}
	}
	return false
}

type SocialLinks struct {
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
}

type PersonalInfo struct {
	Phone       string      `json:"phone"`
	Location    string      `json:"location"`
	SocialLinks SocialLinks `json:"socialLinks"`
}

type Professional struct {
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Skills  []string `json:"skills"`
}

// Experience is one work history entry. Current=true means EndDate is not required.
type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"` // YYYY-MM
	EndDate     string `json:"endDate"`   // YYYY-MM
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type Education struct {
	Degree      string `json:"degree"`
	School      string `json:"school"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

type Project struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	URL         string   `json:"url"`
	GitHubURL   string   `json:"githubUrl"`
	Featured    bool     `json:"featured"`
}

// Profile is the in-memory document validated by the profile engine
type Profile struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Professional Professional `json:"professional"`
	Experience   []Experience `json:"experience"`
	Education    []Education  `json:"education"`
	Projects     []Project    `json:"projects"`
}

// ValidationErrors maps a field key (e.g. "experience_0_title") to its messages.
// Only the first message is meant for display but all are retained.
type ValidationErrors map[string][]string

// ============================================================================
// Wire Shape
// ============================================================================

// ProfileDocument is the flat REST representation of a profile
type ProfileDocument struct {
	Phone       string       `json:"phone"`
	Location    string       `json:"location"`
	SocialLinks SocialLinks  `json:"socialLinks"`
	Title       string       `json:"title"`
	Summary     string       `json:"summary"`
	Skills      []string     `json:"skills"`
	Experience  []Experience `json:"experience"`
	Education   []Education  `json:"education"`
	Projects    []Project    `json:"projects"`
}

// NewProfileDocument flattens a profile into its REST shape.
// Nil slices become empty so clients always receive arrays.
func NewProfileDocument(p Profile) ProfileDocument {
	return ProfileDocument{
		Phone:       p.PersonalInfo.Phone,
		Location:    p.PersonalInfo.Location,
		SocialLinks: p.PersonalInfo.SocialLinks,
		Title:       p.Professional.Title,
		Summary:     p.Professional.Summary,
		Skills:      nonNil(p.Professional.Skills),
		Experience:  nonNil(p.Experience),
		Education:   nonNil(p.Education),
		Projects:    nonNil(p.Projects),
	}
}

// ToProfile maps the REST shape back into a profile
func (d ProfileDocument) ToProfile() Profile {
	return Profile{
		PersonalInfo: PersonalInfo{
			Phone:       d.Phone,
			Location:    d.Location,
			SocialLinks: d.SocialLinks,
		},
		Professional: Professional{
			Title:   d.Title,
			Summary: d.Summary,
			Skills:  d.Skills,
		},
		Experience: d.Experience,
		Education:  d.Education,
		Projects:   d.Projects,
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// ============================================================================
// Persisted Portfolio
// ============================================================================

// PortfolioProfile is the stored profile of one user
type PortfolioProfile struct {
	ID         uuid.UUID `json:"id"`
	UserID     string    `json:"user_id"`
	Username   string    `json:"username,omitempty"`
	TemplateID string    `json:"template_id,omitempty"`
	Profile    Profile   `json:"profile"`
	Completion int       `json:"completion"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PublicPortfolio is what the username route serves
type PublicPortfolio struct {
	Username   string          `json:"username"`
	TemplateID string          `json:"template_id"`
	Profile    ProfileDocument `json:"profile"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// SectionValidity is the boolean-per-section map used to gate saves and "Continue"
type SectionValidity struct {
	Personal     bool `json:"personal"`
	Professional bool `json:"professional"`
	Experience   bool `json:"experience"`
	Education    bool `json:"education"`
	Projects     bool `json:"projects"`
}

// All reports whether every section is valid
func (v SectionValidity) All() bool {
	return v.Personal && v.Professional && v.Experience && v.Education && v.Projects
}

// ============================================================================
// Request / Response DTOs
// ============================================================================

type ExperienceSectionRequest struct {
	Experience []Experience `json:"experience"`
}

type EducationSectionRequest struct {
	Education []Education `json:"education"`
}

type ProjectsSectionRequest struct {
	Projects []Project `json:"projects"`
}

// ValidateRequest carries a document plus the UI display state used to pick visible errors
type ValidateRequest struct {
	Profile       ProfileDocument `json:"profile"`
	Touched       []string        `json:"touched"`
	SaveAttempted bool            `json:"saveAttempted"`
}

type ValidateResponse struct {
	Errors            ValidationErrors            `json:"errors"`
	IsValid           bool                        `json:"isValid"`
	SectionValidation map[Section]SectionSnapshot `json:"sectionValidation"`
	SectionValidity   SectionValidity             `json:"sectionValidity"`
	Completion        int                         `json:"completion"`
	VisibleErrors     map[string]string           `json:"visibleErrors"`
}

// SectionSnapshot is the serialisable form of one section's validation result
type SectionSnapshot struct {
	Errors  ValidationErrors `json:"errors"`
	IsValid bool             `json:"isValid"`
	HasData bool             `json:"hasData"`
}

// SectionSaveResult is returned after a section save; Completion is authoritative for clients
type SectionSaveResult struct {
	Section         Section         `json:"section"`
	Completion      int             `json:"completion"`
	SectionValidity SectionValidity `json:"sectionValidity"`
	Unchanged       bool            `json:"unchanged"`
}

type ProfileView struct {
	Username          string          `json:"username,omitempty"`
	TemplateID        string          `json:"templateId,omitempty"`
	Profile           ProfileDocument `json:"profile"`
	Completion        int             `json:"completion"`
	SectionValidity   SectionValidity `json:"sectionValidity"`
	ReadyForTemplates bool            `json:"readyForTemplates"`
}

type UsernameRequest struct {
	Username string `json:"username" validate:"required,min=3,max=40,username_slug"`
}

type TemplateSelectRequest struct {
	// Empty selects the catalog default
	TemplateID string `json:"templateId" validate:"template_id"`
}

// ============================================================================
// Repository Interface
// ============================================================================

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*PortfolioProfile, error)
	GetByUsername(ctx context.Context, username string) (*PortfolioProfile, error)

	// SaveSection creates the row if needed and writes only the given section.
	// Completion is recomputed from the stored row in the same transaction and
	// p is refreshed with the stored state.
	SaveSection(ctx context.Context, p *PortfolioProfile, section Section) error

	// SaveAll writes every section (document import). p is refreshed like SaveSection.
	SaveAll(ctx context.Context, p *PortfolioProfile) error

	SetUsername(ctx context.Context, userID, username string) error
	SetTemplate(ctx context.Context, userID, templateID string) error
}

// PortfolioCache caches public portfolios by username
type PortfolioCache interface {
	Get(ctx context.Context, username string) (*PublicPortfolio, error)
	Set(ctx context.Context, portfolio *PublicPortfolio) error
	Invalidate(ctx context.Context, username string) error
}

// SnapshotPublisher archives a public portfolio snapshot (e.g. to object storage)
type SnapshotPublisher interface {
	Publish(ctx context.Context, portfolio *PublicPortfolio) error
}

// ============================================================================
// Usecase Interface
// ============================================================================

type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID string) (*ProfileView, error)
	Validate(ctx context.Context, req *ValidateRequest) (*ValidateResponse, error)

	SavePersonal(ctx context.Context, userID string, info PersonalInfo) (*SectionSaveResult, error)
	SaveProfessional(ctx context.Context, userID string, prof Professional) (*SectionSaveResult, error)
	SaveExperience(ctx context.Context, userID string, entries []Experience) (*SectionSaveResult, error)
	SaveEducation(ctx context.Context, userID string, entries []Education) (*SectionSaveResult, error)
	SaveProjects(ctx context.Context, userID string, entries []Project) (*SectionSaveResult, error)

	// ImportDocument checks a raw JSON document against the profile schema, validates and stores it
	ImportDocument(ctx context.Context, userID string, raw []byte) (*ProfileView, error)

	ClaimUsername(ctx context.Context, userID string, req *UsernameRequest) (string, error)
	SelectTemplate(ctx context.Context, userID string, req *TemplateSelectRequest) (*PublicPortfolio, error)

	ExportWorkbook(ctx context.Context, userID string) ([]byte, string, error)
}

type PortfolioUsecase interface {
	GetPublic(ctx context.Context, username string) (*PublicPortfolio, error)
}
