package production

import (
	"context"
	"errors"
	"net/http"

	"github.com/delta-line/line-metrics/internal/core/aggregation"
	httperr "github.com/delta-line/line-metrics/internal/core/errors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the footage endpoints under /api/metrage.
func (s *FootageService) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/api/metrage")
	g.GET("/summary", handle(s.GetSummary))
	g.GET("/timeseries", handle(s.GetTimeseries))
	g.GET("/overview", handle(s.GetOverview))
	g.GET("/export", handleExport("metrage", "Métrage", s.GetTimeseries))
}

// RegisterRoutes registers the speed endpoints under /api/vitesse.
func (s *SpeedService) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/api/vitesse")
	g.GET("/summary", handle(s.GetSummary))
	g.GET("/timeseries", handle(s.GetTimeseries))
	g.GET("/overview", handle(s.GetOverview))
	g.GET("/export", handleExport("vitesse", "Vitesse moyenne", s.GetTimeseries))
}

// handle binds the shared filter query string, runs fn and maps its error to a status.
func handle[T any](fn func(context.Context, aggregation.FilterSpec) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var query FilterQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
				ErrorType: httperr.HttpInvalidQueryError,
				Message:   "Invalid query parameters",
				Details:   err.Error(),
			})
			return
		}

		f, err := query.FilterSpec()
		if err != nil {
			c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
				ErrorType: httperr.HttpInvalidQueryError,
				Message:   "Invalid query parameters",
				Details:   err.Error(),
			})
			return
		}

		resp, err := fn(c.Request.Context(), f)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, aggregation.ErrInvalidFilter):
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
	case errors.Is(err, ErrAggregationFailed):
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpAggregationFailedError,
			Message:   "Failed to aggregate production metrics",
		})
	default:
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Internal server error",
		})
	}
}
