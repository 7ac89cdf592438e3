package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "estudos/backend/internal/errors"
	"estudos/backend/internal/middleware"
	"estudos/backend/internal/service"
)

type GoalHandler struct {
	goalService *service.GoalService
}

type goalRequest struct {
	SubjectID      *string `json:"materiaId"`
	TopicID        *string `json:"topicoId"`
	Title          string  `json:"titulo"`
	Type           string  `json:"tipo"`
	TargetQuantity float64 `json:"quantidadeAlvo"`
	Unit           string  `json:"unidade"`
	Frequency      *string `json:"frequencia"`
	StartsAt       string  `json:"dataInicio"`
	EndsAt         *string `json:"dataFim"`
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

func (h *GoalHandler) Create(c *gin.Context) {
	input, ok := h.decode(c)
	if !ok {
		return
	}

	userID := middleware.UserID(c)
	view, apiErr := h.goalService.Create(c.Request.Context(), userID, *input)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *GoalHandler) Get(c *gin.Context) {
	userID := middleware.UserID(c)
	view, apiErr := h.goalService.Get(c.Request.Context(), userID, c.Param("id"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *GoalHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)
	views, apiErr := h.goalService.List(c.Request.Context(), userID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"metas": views})
}

func (h *GoalHandler) Update(c *gin.Context) {
	input, ok := h.decode(c)
	if !ok {
		return
	}

	userID := middleware.UserID(c)
	view, apiErr := h.goalService.Update(c.Request.Context(), userID, c.Param("id"), *input)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *GoalHandler) Delete(c *gin.Context) {
	userID := middleware.UserID(c)
	if apiErr := h.goalService.Delete(c.Request.Context(), userID, c.Param("id")); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *GoalHandler) decode(c *gin.Context) (*service.GoalInput, bool) {
	var req goalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return nil, false
	}

	startsAt, err := parseDate(req.StartsAt)
	if err != nil {
		writeError(c, apperrors.Validation("meta inválida", map[string]string{
			"dataInicio": "data inválida: use o formato AAAA-MM-DD",
		}))
		return nil, false
	}
	endsAt, err := parseDatePtr(req.EndsAt)
	if err != nil {
		writeError(c, apperrors.Validation("meta inválida", map[string]string{
			"dataFim": "data inválida: use o formato AAAA-MM-DD",
		}))
		return nil, false
	}

	return &service.GoalInput{
		SubjectID:      req.SubjectID,
		TopicID:        req.TopicID,
		Title:          req.Title,
		Type:           req.Type,
		TargetQuantity: req.TargetQuantity,
		Unit:           req.Unit,
		Frequency:      req.Frequency,
		StartsAt:       startsAt,
		EndsAt:         endsAt,
	}, true
}
