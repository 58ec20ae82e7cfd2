package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/internal/profilecheck"
	"go-portfolio-backend/pkg/apperror"
	"go-portfolio-backend/pkg/dirty"
	"go-portfolio-backend/pkg/logger"
	"go-portfolio-backend/pkg/security"
	"go-portfolio-backend/pkg/slug"
	"go-portfolio-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type profileUsecase struct {
	repo      domain.ProfileRepository
	cache     domain.PortfolioCache
	publisher domain.SnapshotPublisher
	catalog   domain.TemplateCatalog
	audit     *security.SecurityLogger
	validate  *validator.Validate
}

// NewProfileUsecase wires the profile flows. publisher may be nil when
// snapshot archiving is not configured.
func NewProfileUsecase(
	repo domain.ProfileRepository,
	cache domain.PortfolioCache,
	publisher domain.SnapshotPublisher,
	catalog domain.TemplateCatalog,
	audit *security.SecurityLogger,
	validate *validator.Validate,
) domain.ProfileUsecase {
	return &profileUsecase{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		catalog:   catalog,
		audit:     audit,
		validate:  validate,
	}
}

// authorize enforces that the caller only acts on their own profile.
func authorize(ctx context.Context, userID string) error {
	ctxUserID, ok := ctx.Value(domain.KeyUserID).(string)
	if !ok || ctxUserID == "" {
		return apperror.Unauthorized("User not authenticated")
	}
	if ctxUserID != userID {
		return apperror.Forbidden("You can only access your own profile")
	}
	return nil
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(domain.KeyRequestID).(string)
	return id
}

func newView(p *domain.PortfolioProfile) *domain.ProfileView {
	result := profilecheck.ValidateCompleteProfile(p.Profile)
	validity := profilecheck.CheckSectionValidity(result.SectionValidation)
	completion := profilecheck.CalculateCompletionPercentage(p.Profile)

	return &domain.ProfileView{
		Username:          p.Username,
		TemplateID:        p.TemplateID,
		Profile:           domain.NewProfileDocument(p.Profile),
		Completion:        completion,
		SectionValidity:   validity,
		ReadyForTemplates: profilecheck.IsReady(validity, completion),
	}
}

func (u *profileUsecase) load(ctx context.Context, userID string) (*domain.PortfolioProfile, error) {
	p, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if p == nil {
		// First visit: an empty profile, created on first save
		p = &domain.PortfolioProfile{UserID: userID}
	}
	return p, nil
}

func (u *profileUsecase) GetProfile(ctx context.Context, userID string) (*domain.ProfileView, error) {
	if err := authorize(ctx, userID); err != nil {
		return nil, err
	}
	p, err := u.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return newView(p), nil
}

// Validate runs the engine on an unsaved draft. Nothing is persisted.
func (u *profileUsecase) Validate(ctx context.Context, req *domain.ValidateRequest) (*domain.ValidateResponse, error) {
	profile := req.Profile.ToProfile()
	result := profilecheck.ValidateCompleteProfile(profile)

	touched := make(map[string]bool, len(req.Touched))
	for _, key := range req.Touched {
		touched[key] = true
	}

	return &domain.ValidateResponse{
		Errors:            result.Errors,
		IsValid:           result.IsValid,
		SectionValidation: result.SectionValidation.Snapshot(),
		SectionValidity:   profilecheck.CheckSectionValidity(result.SectionValidation),
		Completion:        profilecheck.CalculateCompletionPercentage(profile),
		VisibleErrors:     profilecheck.VisibleErrors(result.Errors, touched, req.SaveAttempted),
	}, nil
}

func (u *profileUsecase) SavePersonal(ctx context.Context, userID string, info domain.PersonalInfo) (*domain.SectionSaveResult, error) {
	return u.saveSection(ctx, userID, domain.SectionPersonal, func(p *domain.Profile) { p.PersonalInfo = info })
}

func (u *profileUsecase) SaveProfessional(ctx context.Context, userID string, prof domain.Professional) (*domain.SectionSaveResult, error) {
	return u.saveSection(ctx, userID, domain.SectionProfessional, func(p *domain.Profile) { p.Professional = prof })
}

func (u *profileUsecase) SaveExperience(ctx context.Context, userID string, entries []domain.Experience) (*domain.SectionSaveResult, error) {
	return u.saveSection(ctx, userID, domain.SectionExperience, func(p *domain.Profile) { p.Experience = entries })
}

func (u *profileUsecase) SaveEducation(ctx context.Context, userID string, entries []domain.Education) (*domain.SectionSaveResult, error) {
	return u.saveSection(ctx, userID, domain.SectionEducation, func(p *domain.Profile) { p.Education = entries })
}

func (u *profileUsecase) SaveProjects(ctx context.Context, userID string, entries []domain.Project) (*domain.SectionSaveResult, error) {
	return u.saveSection(ctx, userID, domain.SectionProjects, func(p *domain.Profile) { p.Projects = entries })
}

// saveSection validates one section of the merged draft and persists it.
// A section with data must be valid; an empty section is always saved so
// users can clear it.
func (u *profileUsecase) saveSection(ctx context.Context, userID string, section domain.Section, apply func(*domain.Profile)) (*domain.SectionSaveResult, error) {
	if err := authorize(ctx, userID); err != nil {
		return nil, err
	}

	stored, err := u.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	draft := stored.Profile
	apply(&draft)

	result, err := profilecheck.ValidateSection(draft, section)
	if err != nil {
		return nil, apperror.BadRequest(err.Error())
	}
	if result.HasData && !result.IsValid {
		u.audit.LogValidationFailed(ctx, userID, string(section), requestID(ctx), errorKeys(result.Errors))
		return nil, apperror.Unprocessable("Validation failed", result.Errors)
	}

	full := profilecheck.ValidateCompleteProfile(draft)
	out := &domain.SectionSaveResult{
		Section:         section,
		Completion:      profilecheck.CalculateCompletionPercentage(draft),
		SectionValidity: profilecheck.CheckSectionValidity(full.SectionValidation),
	}

	if !stored.CreatedAt.IsZero() && dirty.Equal(sectionData(stored.Profile, section), sectionData(draft, section)) {
		out.Unchanged = true
		return out, nil
	}

	stored.Profile = draft
	stored.Completion = out.Completion
	if err := u.repo.SaveSection(ctx, stored, section); err != nil {
		return nil, apperror.Internal(err)
	}

	// The repository scores the stored row, which may include sections saved
	// concurrently by another request.
	out.Completion = stored.Completion
	out.SectionValidity = profilecheck.CheckSectionValidity(profilecheck.ValidateCompleteProfile(stored.Profile).SectionValidation)

	u.invalidate(ctx, stored.Username)
	u.audit.LogProfileSaved(ctx, userID, string(section), requestID(ctx), out.Completion)
	return out, nil
}

func (u *profileUsecase) ImportDocument(ctx context.Context, userID string, raw []byte) (*domain.ProfileView, error) {
	if err := authorize(ctx, userID); err != nil {
		return nil, err
	}

	violations, err := profilecheck.CheckDocumentShape(raw)
	if err != nil {
		return nil, apperror.BadRequest("Request body is not valid JSON")
	}
	if len(violations) > 0 {
		return nil, apperror.Unprocessable("Document does not match the profile schema", violations)
	}

	var doc domain.ProfileDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, apperror.BadRequest("Request body is not valid JSON")
	}
	profile := doc.ToProfile()

	result := profilecheck.ValidateCompleteProfile(profile)
	if !result.IsValid {
		u.audit.LogValidationFailed(ctx, userID, "import", requestID(ctx), errorKeys(result.Errors))
		return nil, apperror.Unprocessable("Validation failed", result.Errors)
	}

	stored, err := u.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	stored.Profile = profile
	stored.Completion = profilecheck.CalculateCompletionPercentage(profile)

	if err := u.repo.SaveAll(ctx, stored); err != nil {
		return nil, apperror.Internal(err)
	}

	u.invalidate(ctx, stored.Username)
	u.audit.LogProfileImported(ctx, userID, requestID(ctx), stored.Completion)
	return newView(stored), nil
}

func (u *profileUsecase) ClaimUsername(ctx context.Context, userID string, req *domain.UsernameRequest) (string, error) {
	if err := authorize(ctx, userID); err != nil {
		return "", err
	}

	req.Username = slug.Make(req.Username)
	if err := u.validate.Struct(req); err != nil {
		return "", apperror.Unprocessable("Invalid username", validation.FormatValidationErrors(err))
	}

	stored, err := u.load(ctx, userID)
	if err != nil {
		return "", err
	}
	if stored.Username == req.Username {
		return req.Username, nil
	}

	// Conflict errors from the repository pass through unchanged
	if err := u.repo.SetUsername(ctx, userID, req.Username); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return "", err
		}
		return "", apperror.Internal(err)
	}

	u.invalidate(ctx, stored.Username)
	u.audit.LogUsernameClaimed(ctx, userID, req.Username, requestID(ctx))
	return req.Username, nil
}

// SelectTemplate is the step after "Continue": it requires every section to
// be valid, at least one category filled in and a claimed username.
func (u *profileUsecase) SelectTemplate(ctx context.Context, userID string, req *domain.TemplateSelectRequest) (*domain.PublicPortfolio, error) {
	if err := authorize(ctx, userID); err != nil {
		return nil, err
	}
	if req.TemplateID == "" {
		req.TemplateID = u.catalog.Default().ID
	}
	if err := u.validate.Struct(req); err != nil {
		return nil, apperror.Unprocessable("Invalid template", validation.FormatValidationErrors(err))
	}
	if _, ok := u.catalog.Get(req.TemplateID); !ok {
		return nil, apperror.NotFound("Template not found")
	}

	stored, err := u.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := newView(stored)
	if !view.ReadyForTemplates {
		return nil, apperror.Unprocessable("Profile is not ready for templates", view.SectionValidity)
	}
	if stored.Username == "" {
		return nil, apperror.Unprocessable("Claim a username before selecting a template", nil)
	}

	if err := u.repo.SetTemplate(ctx, userID, req.TemplateID); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperror.Internal(err)
	}
	stored.TemplateID = req.TemplateID
	stored.UpdatedAt = time.Now().UTC()

	portfolio := toPublic(stored)
	if err := u.cache.Set(ctx, portfolio); err != nil {
		logger.Log.Warn("Failed to cache portfolio", "username", stored.Username, "error", err)
	}
	if u.publisher != nil {
		if err := u.publisher.Publish(ctx, portfolio); err != nil {
			logger.Log.Warn("Failed to publish portfolio snapshot", "username", stored.Username, "error", err)
		}
	}

	u.audit.LogTemplateSelected(ctx, userID, req.TemplateID, requestID(ctx))
	return portfolio, nil
}

func (u *profileUsecase) ExportWorkbook(ctx context.Context, userID string) ([]byte, string, error) {
	if err := authorize(ctx, userID); err != nil {
		return nil, "", err
	}

	stored, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}
	if stored == nil {
		return nil, "", apperror.NotFound("Profile not found")
	}

	data, err := buildWorkbook(stored)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	u.audit.LogDataExport(ctx, userID, requestID(ctx), len(data))
	return data, exportFilename(stored.Username), nil
}

func (u *profileUsecase) invalidate(ctx context.Context, username string) {
	if username == "" {
		return
	}
	if err := u.cache.Invalidate(ctx, username); err != nil {
		logger.Log.Warn("Failed to invalidate portfolio cache", "username", username, "error", err)
	}
}

func toPublic(p *domain.PortfolioProfile) *domain.PublicPortfolio {
	return &domain.PublicPortfolio{
		Username:   p.Username,
		TemplateID: p.TemplateID,
		Profile:    domain.NewProfileDocument(p.Profile),
		UpdatedAt:  p.UpdatedAt,
	}
}

func sectionData(p domain.Profile, section domain.Section) any {
	switch section {
	case domain.SectionPersonal:
		return p.PersonalInfo
	case domain.SectionProfessional:
		return p.Professional
	case domain.SectionExperience:
		return p.Experience
	case domain.SectionEducation:
		return p.Education
	case domain.SectionProjects:
		return p.Projects
	}
	return nil
}

func errorKeys(errs domain.ValidationErrors) []string {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
