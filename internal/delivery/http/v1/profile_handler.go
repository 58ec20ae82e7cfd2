package v1

import (
	"io"
	"net/http"

	"go-portfolio-backend/internal/delivery/http/response"
	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// maxDocumentBytes bounds imported profile documents.
const maxDocumentBytes = 1 << 20

type ProfileHandler struct {
	profileUC domain.ProfileUsecase
}

// NewProfileHandler registers the profile routes. importQuota and
// exportQuota guard the two expensive operations.
func NewProfileHandler(r *gin.RouterGroup, profileUC domain.ProfileUsecase, importQuota, exportQuota gin.HandlerFunc) {
	handler := &ProfileHandler{profileUC: profileUC}

	profile := r.Group("/profile")
	{
		profile.GET("", handler.GetProfile)
		profile.POST("/validate", handler.Validate)
		profile.PUT("/personal", handler.SavePersonal)
		profile.PUT("/professional", handler.SaveProfessional)
		profile.PUT("/experience", handler.SaveExperience)
		profile.PUT("/education", handler.SaveEducation)
		profile.PUT("/projects", handler.SaveProjects)
		profile.POST("/import", importQuota, handler.Import)
		profile.PUT("/username", handler.ClaimUsername)
		profile.PUT("/template", handler.SelectTemplate)
		profile.GET("/export", exportQuota, handler.Export)
	}
}

// GetProfile godoc
// @Summary      Get own profile
// @Description  Returns the stored profile with completion, per-section validity and the template gate
// @Tags         profile
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.ProfileView}
// @Failure      401  {object}  response.Response
// @Router       /profile [get]
// @Security     BearerAuth
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	view, err := h.profileUC.GetProfile(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile", view)
}

// Validate godoc
// @Summary      Validate a draft
// @Description  Runs every section validator on an unsaved profile document. Nothing is stored.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        request  body      domain.ValidateRequest  true  "Draft and display state"
// @Success      200      {object}  response.Response{data=domain.ValidateResponse}
// @Failure      400      {object}  response.Response
// @Router       /profile/validate [post]
// @Security     BearerAuth
func (h *ProfileHandler) Validate(c *gin.Context) {
	var req domain.ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	res, err := h.profileUC.Validate(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Validation result", res)
}

// SavePersonal godoc
// @Summary      Save personal information
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        request  body      domain.PersonalInfo  true  "Personal section"
// @Success      200      {object}  response.Response{data=domain.SectionSaveResult}
// @Failure      422      {object}  response.Response{error=domain.ValidationErrors}
// @Router       /profile/personal [put]
// @Security     BearerAuth
func (h *ProfileHandler) SavePersonal(c *gin.Context) {
	var req domain.PersonalInfo
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	res, err := h.profileUC.SavePersonal(c.Request.Context(), c.GetString(string(domain.KeyUserID)), req)
	h.respondSave(c, res, err)
}

// SaveProfessional godoc
// @Summary      Save professional summary
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        request  body      domain.Professional  true  "Professional section"
// @Success      200      {object}  response.Response{data=domain.SectionSaveResult}
// @Failure      422      {object}  response.Response{error=domain.ValidationErrors}
// @Router       /profile/professional [put]
// @Security     BearerAuth
func (h *ProfileHandler) SaveProfessional(c *gin.Context) {
	var req domain.Professional
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	res, err := h.profileUC.SaveProfessional(c.Request.Context(), c.GetString(string(domain.KeyUserID)), req)
	h.respondSave(c, res, err)
}

// SaveExperience godoc
// @Summary      Save work experience
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        request  body      domain.ExperienceSectionRequest  true  "Experience entries"
// @Success      200      {object}  response.Response{data=domain.SectionSaveResult}
// @Failure      422      {object}  response.Response{error=domain.ValidationErrors}
// @Router       /profile/experience [put]
// @Security     BearerAuth
func (h *ProfileHandler) SaveExperience(c *gin.Context) {
	var req domain.ExperienceSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	res, err := h.profileUC.SaveExperience(c.Request.Context(), c.GetString(string(domain.KeyUserID)), req.Experience)
	h.respondSave(c, res, err)
}

// SaveEducation godoc
// @Summary      Save education
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        request  body      domain.EducationSectionRequest  true  "Education entries"
// @Success      200      {object}  response.Response{data=domain.SectionSaveResult}
// @Failure      422      {object}  response.Response{error=domain.ValidationErrors}
// @Router       /profile/education [put]
// @Security     BearerAuth
func (h *ProfileHandler) SaveEducation(c *gin.Context) {
	var req domain.EducationSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	res, err := h.profileUC.SaveEducation(c.Request.Context(), c.GetString(string(domain.KeyUserID)), req.Education)
	h.respondSave(c, res, err)
}

// SaveProjects godoc
// @Summary      Save projects
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        request  body      domain.ProjectsSectionRequest  true  "Project entries"
// @Success      200      {object}  response.Response{data=domain.SectionSaveResult}
// @Failure      422      {object}  response.Response{error=domain.ValidationErrors}
// @Router       /profile/projects [put]
// @Security     BearerAuth
func (h *ProfileHandler) SaveProjects(c *gin.Context) {
	var req domain.ProjectsSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	res, err := h.profileUC.SaveProjects(c.Request.Context(), c.GetString(string(domain.KeyUserID)), req.Projects)
	h.respondSave(c, res, err)
}

func (h *ProfileHandler) respondSave(c *gin.Context, res *domain.SectionSaveResult, err error) {
	if err != nil {
		c.Error(err)
		return
	}
	if res.Unchanged {
		response.Success(c, http.StatusOK, "No changes to save", res)
		return
	}
	response.Success(c, http.StatusOK, "Section saved", res)
}

// Import godoc
// @Summary      Import a full profile document
// @Description  Checks the document shape against the profile JSON schema, validates every section and stores it
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        request  body      domain.ProfileDocument  true  "Profile document"
// @Success      200      {object}  response.Response{data=domain.ProfileView}
// @Failure      400      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /profile/import [post]
// @Security     BearerAuth
func (h *ProfileHandler) Import(c *gin.Context) {
	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxDocumentBytes))
	if err != nil {
		c.Error(apperror.BadRequest("Request body is too large or unreadable"))
		return
	}

	view, err := h.profileUC.ImportDocument(c.Request.Context(), c.GetString(string(domain.KeyUserID)), raw)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile imported", view)
}

// ClaimUsername godoc
// @Summary      Claim a public username
// @Description  The username is normalized to a lowercase slug and must be unique
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        request  body      domain.UsernameRequest  true  "Username"
// @Success      200      {object}  response.Response{data=map[string]string}
// @Failure      409      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /profile/username [put]
// @Security     BearerAuth
func (h *ProfileHandler) ClaimUsername(c *gin.Context) {
	var req domain.UsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	username, err := h.profileUC.ClaimUsername(c.Request.Context(), c.GetString(string(domain.KeyUserID)), &req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Username claimed", gin.H{"username": username})
}

// SelectTemplate godoc
// @Summary      Select a portfolio template
// @Description  Requires every section to be valid, at least one section filled in and a claimed username
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        request  body      domain.TemplateSelectRequest  true  "Template"
// @Success      200      {object}  response.Response{data=domain.PublicPortfolio}
// @Failure      404      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /profile/template [put]
// @Security     BearerAuth
func (h *ProfileHandler) SelectTemplate(c *gin.Context) {
	var req domain.TemplateSelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	portfolio, err := h.profileUC.SelectTemplate(c.Request.Context(), c.GetString(string(domain.KeyUserID)), &req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Template selected", portfolio)
}

// Export godoc
// @Summary      Export profile to Excel
// @Description  Downloads the stored profile as an .xlsx workbook
// @Tags         profile
// @Produce      application/octet-stream
// @Success      200  {file}    binary
// @Failure      404  {object}  response.Response
// @Router       /profile/export [get]
// @Security     BearerAuth
func (h *ProfileHandler) Export(c *gin.Context) {
	data, filename, err := h.profileUC.ExportWorkbook(c.Request.Context(), c.GetString(string(domain.KeyUserID)))
	if err != nil {
		c.Error(err)
		return
	}

	response.Attachment(c, filename, response.MIMEXLSX, data)
}
