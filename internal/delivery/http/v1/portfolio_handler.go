package v1

import (
	"net/http"

	"go-portfolio-backend/internal/delivery/http/response"
	"go-portfolio-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type PortfolioHandler struct {
	portfolioUC domain.PortfolioUsecase
}

func NewPortfolioHandler(r *gin.RouterGroup, portfolioUC domain.PortfolioUsecase, limit gin.HandlerFunc) {
	handler := &PortfolioHandler{portfolioUC: portfolioUC}

	r.GET("/portfolios/:username", limit, handler.GetPublic)
}

// GetPublic godoc
// @Summary      Get a published portfolio
// @Description  Public portfolio data for template rendering. Only profiles with a selected template are published.
// @Tags         portfolios
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  response.Response{data=domain.PublicPortfolio}
// @Failure      404       {object}  response.Response
// @Failure      429       {object}  response.Response
// @Router       /portfolios/{username} [get]
func (h *PortfolioHandler) GetPublic(c *gin.Context) {
	portfolio, err := h.portfolioUC.GetPublic(c.Request.Context(), c.Param("username"))
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Cache-Control", "public, max-age=60")
	response.Success(c, http.StatusOK, "Portfolio", portfolio)
}
