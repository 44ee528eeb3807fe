package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"compass.app/intake/internal/http/dto"
	"compass.app/intake/internal/model"
	"compass.app/intake/internal/service"
	"compass.app/intake/internal/store"
)

// serviceCatalog is what GET /api/v1/intake/services returns. The ids use
// the hyphenated form clients key on.
var serviceCatalog = []dto.ServiceEntry{
	{ID: "amazon-opensearch-service", Name: "Amazon OpenSearch Service"},
	{ID: "opensearch-project", Name: "OpenSearch Project"},
	{ID: "cloudwatch", Name: "CloudWatch"},
	{ID: "cloudtrail", Name: "CloudTrail"},
	{ID: "security-hub", Name: "Security Hub"},
	{ID: "security-lake", Name: "Security Lake"},
	{ID: "other", Name: "Other"},
}

type IntakeHandler struct {
	service service.IntakeService
}

func NewIntakeHandler(service service.IntakeService) *IntakeHandler {
	return &IntakeHandler{service: service}
}

func (h *IntakeHandler) ListServices(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ListServicesResponse{
		Success:  true,
		Services: serviceCatalog,
	})
}

func (h *IntakeHandler) Submit(c *gin.Context) {
	ctx := c.Request.Context()

	// Field-level validation (including a missing problem statement) is the
	// service's job; binding only fails on a malformed body.
	var req dto.SubmitIntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid submit request", "error", err)
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.service.Submit(ctx, service.SubmitParams{
		CustomerProblem:   req.CustomerProblem,
		FeatureType:       req.FeatureType,
		EnhancingFeature:  req.EnhancingFeature,
		Service:           req.Service,
		Stakeholder:       req.Stakeholder,
		AdditionalContext: req.AdditionalContext,
		SubmittedBy:       req.SubmittedBy,
		Timeline:          req.Timeline,
		HasResearch:       req.HasResearch,
		ResearchLinks:     req.ResearchLinks,
	})
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			fields := make([]dto.FieldErrorResponse, 0, len(vErr.Fields))
			for _, f := range vErr.Fields {
				fields = append(fields, dto.FieldErrorResponse{Field: f.Field, Message: f.Message})
			}
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Errors: fields})
			return
		}
		slog.ErrorContext(ctx, "failed to submit intake", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to submit intake"})
		return
	}

	c.JSON(http.StatusCreated, dto.SubmitIntakeResponse{
		Success:         true,
		ReferenceNumber: result.ReferenceNumber,
		SubmittedAt:     result.SubmittedAt,
	})
}

func (h *IntakeHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	records, err := h.service.List(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list intakes", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to list intakes"})
		return
	}

	if records == nil {
		records = []model.IntakeRecord{}
	}
	c.JSON(http.StatusOK, dto.ListIntakesResponse{Success: true, Items: records})
}

func (h *IntakeHandler) GetByReference(c *gin.Context) {
	ctx := c.Request.Context()
	referenceNumber := c.Param("referenceNumber")

	record, err := h.service.GetByReferenceNumber(ctx, referenceNumber)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "intake not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to fetch intake", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to fetch intake"})
		return
	}

	c.JSON(http.StatusOK, dto.GetIntakeResponse{Success: true, Item: *record})
}

func (h *IntakeHandler) SaveDraft(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SaveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid draft request", "error", err)
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "sessionId and state are required"})
		return
	}

	if err := h.service.SaveDraft(ctx, strings.TrimSpace(req.SessionID), req.State); err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			fields := make([]dto.FieldErrorResponse, 0, len(vErr.Fields))
			for _, f := range vErr.Fields {
				fields = append(fields, dto.FieldErrorResponse{Field: f.Field, Message: f.Message})
			}
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Errors: fields})
			return
		}
		slog.ErrorContext(ctx, "failed to save draft", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to save draft"})
		return
	}

	c.JSON(http.StatusOK, dto.SaveDraftResponse{Success: true, SessionID: strings.TrimSpace(req.SessionID)})
}

func (h *IntakeHandler) DeleteDraft(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := c.Param("sessionId")

	if err := h.service.DeleteDraft(ctx, sessionID); err != nil {
		slog.ErrorContext(ctx, "failed to delete draft", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to delete draft"})
		return
	}

	c.JSON(http.StatusOK, dto.SaveDraftResponse{Success: true, SessionID: sessionID})
}

func (h *IntakeHandler) GetDraft(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := c.Param("sessionId")

	draft, err := h.service.GetDraft(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "draft not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to fetch draft", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to fetch draft"})
		return
	}

	c.JSON(http.StatusOK, dto.GetDraftResponse{
		Success:   true,
		SessionID: draft.SessionID,
		State:     draft.State,
		UpdatedAt: draft.UpdatedAt,
	})
}
