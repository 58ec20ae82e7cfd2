package v1

import (
	"net/http"

	"go-portfolio-backend/internal/delivery/http/response"
	"go-portfolio-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type TemplateHandler struct {
	catalog domain.TemplateCatalog
}

func NewTemplateHandler(r *gin.RouterGroup, catalog domain.TemplateCatalog) {
	handler := &TemplateHandler{catalog: catalog}

	r.GET("/templates", handler.List)
}

// List godoc
// @Summary      List portfolio templates
// @Tags         templates
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Template}
// @Router       /templates [get]
func (h *TemplateHandler) List(c *gin.Context) {
	response.Success(c, http.StatusOK, "Templates", h.catalog.List())
}
