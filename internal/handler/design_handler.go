package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cablecheck/internal/csvexport"
	"cablecheck/internal/service"
)

// DesignHandler handles cable-design validation endpoints.
type DesignHandler struct {
	designService service.DesignService
}

// NewDesignHandler creates a new DesignHandler.
func NewDesignHandler(designService service.DesignService) *DesignHandler {
	return &DesignHandler{designService: designService}
}

// Validate handles POST /api/v1/designs/validate
// @Summary Validate a cable design
// @Description Validate a cable design supplied as a stored design id, a structured field set, or free text (exactly one)
// @Tags designs
// @Accept json
// @Produce json
// @Param request body service.ValidateDesignInput true "Exactly one of designId, structuredInput, freeText"
// @Success 200 {object} APIResponse{data=domain.ValidationReport} "Validation report"
// @Failure 400 {object} APIResponse "Zero or multiple input channels supplied"
// @Failure 404 {object} APIResponse "Design id not found"
// @Failure 502 {object} APIResponse "Text extraction failed or oracle reply malformed"
// @Failure 503 {object} APIResponse "Validation oracle unreachable"
// @Router /designs/validate [post]
func (h *DesignHandler) Validate(c *gin.Context) {
	var input service.ValidateDesignInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "request body must be a JSON object")
		return
	}

	report, err := h.designService.Validate(c.Request.Context(), &input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, report)
}

// Export handles POST /api/v1/designs/validate/export
// @Summary Validate a cable design and download the report as CSV
// @Tags designs
// @Accept json
// @Produce text/csv
// @Param request body service.ValidateDesignInput true "Exactly one of designId, structuredInput, freeText"
// @Success 200 {string} string "CSV report"
// @Failure 400 {object} APIResponse "Zero or multiple input channels supplied"
// @Router /designs/validate/export [post]
func (h *DesignHandler) Export(c *gin.Context) {
	var input service.ValidateDesignInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "request body must be a JSON object")
		return
	}

	report, err := h.designService.Validate(c.Request.Context(), &input)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="validation_report.csv"`)
	c.Status(http.StatusOK)

	if _, err := c.Writer.Write(csvexport.BOM); err != nil {
		return
	}
	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		return
	}
	if err := w.WriteReport(report); err != nil {
		return
	}
	_ = w.Flush()
}

// RecentAudits handles GET /api/v1/audits
// @Summary List recent validation audit entries
// @Tags audits
// @Produce json
// @Param limit query int false "Maximum entries to return (default 50)"
// @Success 200 {object} APIResponse{data=[]domain.ValidationAudit} "Audit entries"
// @Router /audits [get]
func (h *DesignHandler) RecentAudits(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	entries, err := h.designService.RecentAudits(c.Request.Context(), limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, entries)
}
