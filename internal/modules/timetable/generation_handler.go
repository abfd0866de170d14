package timetable

import (
	"net/http"
	"strconv"

	"msls-backend/internal/middleware"
	apperr "msls-backend/internal/pkg/errors"
	"msls-backend/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GenerationHandler handles HTTP requests for weekly timetable generation.
type GenerationHandler struct {
	service *GenerationService
}

// NewGenerationHandler creates a new generation handler.
func NewGenerationHandler(service *GenerationService) *GenerationHandler {
	return &GenerationHandler{service: service}
}

// RegisterRoutes registers generation routes.
func (h *GenerationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	gen := rg.Group("/timetables/generate")
	gen.Use(middleware.PermissionRequired("timetables:generate"))
	{
		gen.POST("", h.Generate)
		gen.GET("/runs", h.ListRuns)
	}

	export := rg.Group("/timetables")
	export.Use(middleware.PermissionRequired("timetables:read"))
	{
		export.GET("/:id/export.xlsx", h.ExportXLSX)
	}
}

// Generate runs the constraint-satisfaction engine for a branch's
// academic year and persists the resulting timetable.
func (h *GenerationHandler) Generate(c *gin.Context) {
	tenantID, ok := middleware.GetCurrentTenantID(c)
	if !ok {
		apperr.Abort(c, apperr.BadRequest("Tenant ID is required"))
		return
	}
	userID, _ := middleware.GetCurrentUserID(c)

	var req GenerateTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Abort(c, apperr.BadRequest(err.Error()))
		return
	}

	result, teachers, err := h.service.Generate(c.Request.Context(), GenerateRequest{
		TenantID:       tenantID,
		BranchID:       req.BranchID,
		AcademicYearID: req.AcademicYearID,
		TriggeredBy:    userID,
		Scope:          req.toEngineScope(),
		Incremental:    req.Incremental,
		Regenerate:     req.Regenerate,
	})
	if err != nil {
		apperr.Abort(c, apperr.InternalError("Failed to generate timetable"))
		return
	}

	response.OK(c, GenerateResultToResponse(result, teachers))
}

// ListRuns returns the branch's generation audit trail.
func (h *GenerationHandler) ListRuns(c *gin.Context) {
	tenantID, ok := middleware.GetCurrentTenantID(c)
	if !ok {
		apperr.Abort(c, apperr.BadRequest("Tenant ID is required"))
		return
	}

	branchID, err := uuid.Parse(c.Query("branch_id"))
	if err != nil {
		apperr.Abort(c, apperr.BadRequest("branch_id is required"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if perPage < 1 {
		perPage = 20
	}

	runs, total, err := h.service.ListGenerationRuns(c.Request.Context(), tenantID, branchID, page, perPage)
	if err != nil {
		apperr.Abort(c, apperr.InternalError("Failed to list generation runs"))
		return
	}

	response.OKWithMeta(c, runs, &response.Meta{Page: page, PerPage: perPage, Total: total})
}

// ExportXLSX renders a timetable's entries as a downloadable grid workbook.
func (h *GenerationHandler) ExportXLSX(c *gin.Context) {
	tenantID, ok := middleware.GetCurrentTenantID(c)
	if !ok {
		apperr.Abort(c, apperr.BadRequest("Tenant ID is required"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperr.Abort(c, apperr.BadRequest("Invalid timetable ID"))
		return
	}

	data, name, err := h.service.ExportTimetableXLSX(c.Request.Context(), tenantID, id)
	if err != nil {
		apperr.Abort(c, apperr.NotFound("Timetable not found"))
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+name+".xlsx")
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
