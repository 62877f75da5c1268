package causes

import (
	"errors"
	"log/slog"
	"net/http"

	httperr "github.com/delta-line/line-metrics/internal/core/errors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers GET /api/causes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/api/causes", s.HandleList)
}

// HandleList handles GET /api/causes
// Query parameters: search, category, affectTRS, sortBy, sortDir, page, limit
func (s *Service) HandleList(c *gin.Context) {
	var query struct {
		Search     string `form:"search"`
		Category   string `form:"category"`
		AffectsTRS string `form:"affectTRS"`
		SortBy     string `form:"sortBy"`
		SortDir    string `form:"sortDir"`
		Page       int    `form:"page"`
		Limit      int    `form:"limit"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return
	}

	resp, err := s.List(c.Request.Context(), ListRequest{
		Search:     query.Search,
		Category:   query.Category,
		AffectsTRS: query.AffectsTRS,
		SortBy:     query.SortBy,
		SortDir:    query.SortDir,
		Page:       query.Page,
		Limit:      query.Limit,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidQuery) {
			c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
				ErrorType: httperr.HttpInvalidQueryError,
				Message:   "Invalid causes query",
				Details:   err.Error(),
			})
			return
		}

		slog.ErrorContext(c.Request.Context(), "Failed to list causes", "error", err)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to list causes",
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}
