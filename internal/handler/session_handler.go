package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "estudos/backend/internal/errors"
	"estudos/backend/internal/middleware"
	"estudos/backend/internal/service"
)

type SessionHandler struct {
	sessionService   *service.SessionService
	dashboardService *service.DashboardService
}

type startSessionRequest struct {
	SubjectID string  `json:"materiaId"`
	TopicID   *string `json:"topicoId"`
}

func NewSessionHandler(sessionService *service.SessionService, dashboardService *service.DashboardService) *SessionHandler {
	return &SessionHandler{
		sessionService:   sessionService,
		dashboardService: dashboardService,
	}
}

func (h *SessionHandler) Start(c *gin.Context) {
	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	userID := middleware.UserID(c)
	view, apiErr := h.sessionService.Start(c.Request.Context(), userID, service.StartSessionInput{
		SubjectID: req.SubjectID,
		TopicID:   req.TopicID,
	})
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *SessionHandler) Pause(c *gin.Context) {
	userID := middleware.UserID(c)
	view, apiErr := h.sessionService.Pause(c.Request.Context(), userID, c.Param("id"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *SessionHandler) Resume(c *gin.Context) {
	userID := middleware.UserID(c)
	view, apiErr := h.sessionService.Resume(c.Request.Context(), userID, c.Param("id"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *SessionHandler) Complete(c *gin.Context) {
	userID := middleware.UserID(c)
	view, apiErr := h.sessionService.Complete(c.Request.Context(), userID, c.Param("id"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *SessionHandler) Get(c *gin.Context) {
	userID := middleware.UserID(c)
	view, apiErr := h.sessionService.Get(c.Request.Context(), userID, c.Param("id"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *SessionHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)

	limit := 50
	if rawLimit := c.Query("limit"); rawLimit != "" {
		if parsed, err := strconv.Atoi(rawLimit); err == nil {
			limit = parsed
		}
	}

	views, apiErr := h.sessionService.List(c.Request.Context(), userID, limit)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessoes": views})
}

func (h *SessionHandler) Delete(c *gin.Context) {
	userID := middleware.UserID(c)
	if apiErr := h.sessionService.Delete(c.Request.Context(), userID, c.Param("id")); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SessionHandler) Dashboard(c *gin.Context) {
	userID := middleware.UserID(c)

	period := c.DefaultQuery("periodo", service.PeriodWeek)

	referenceDate := time.Now().UTC()
	if rawDate := c.Query("data"); rawDate != "" {
		parsed, err := parseDate(rawDate)
		if err != nil {
			writeError(c, apperrors.BadRequest("data inválida: use o formato AAAA-MM-DD"))
			return
		}
		referenceDate = parsed
	}

	view, apiErr := h.dashboardService.Summarize(c.Request.Context(), userID, period, referenceDate)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, view)
}
