package production

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/delta-line/line-metrics/internal/core/aggregation"
	httperr "github.com/delta-line/line-metrics/internal/core/errors"
	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const (
	exportSheet       = "Daily"
	xlsxContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportColumnWidth = 18
)

// SeriesWorkbook renders a daily series as an XLSX workbook: a header row of
// "Date" and the metric label, then one row per day.
func SeriesWorkbook(label string, series *TimeseriesResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	header := []string{"Date", fmt.Sprintf("%s (%s)", label, series.Unit)}
	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(exportSheet, "A1", "B1", headerStyle); err != nil {
		return nil, err
	}

	for i, p := range series.Points {
		row := i + 2
		if err := f.SetCellValue(exportSheet, fmt.Sprintf("A%d", row), p.Date); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheet, fmt.Sprintf("B%d", row), p.Value); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(exportSheet, "A", "B", exportColumnWidth); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// handleExport serves the daily series of a metric as an XLSX attachment.
func handleExport(name, label string, series func(context.Context, aggregation.FilterSpec) (*TimeseriesResponse, error)) gin.HandlerFunc {
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
			writeError(c, err)
			return
		}

		resp, err := series(c.Request.Context(), f)
		if err != nil {
			writeError(c, err)
			return
		}

		body, err := SeriesWorkbook(label, resp)
		if err != nil {
			slog.ErrorContext(c.Request.Context(), "Failed to render export", "metric", name, "error", err)
			c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
				ErrorType: httperr.HttpInternalError,
				Message:   "Failed to render export",
			})
			return
		}

		filename := fmt.Sprintf("%s_%s_%s_team-%s.xlsx", name, f.StartString(), f.EndString(), f.Team)
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		c.DataFromReader(http.StatusOK, int64(len(body)), xlsxContentType, bytes.NewReader(body), nil)
	}
}
