package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"estudos/backend/internal/middleware"
	"estudos/backend/internal/service"
)

type AnnotationHandler struct {
	annotationService *service.AnnotationService
}

type annotationRequest struct {
	SessionID string `json:"sessaoId"`
	Content   string `json:"conteudo"`
}

type annotationUpdateRequest struct {
	Content string `json:"conteudo"`
}

func NewAnnotationHandler(annotationService *service.AnnotationService) *AnnotationHandler {
	return &AnnotationHandler{annotationService: annotationService}
}

func (h *AnnotationHandler) Create(c *gin.Context) {
	var req annotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	userID := middleware.UserID(c)
	annotation, apiErr := h.annotationService.Create(c.Request.Context(), userID, req.SessionID, req.Content)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, annotation)
}

func (h *AnnotationHandler) Get(c *gin.Context) {
	userID := middleware.UserID(c)
	annotation, apiErr := h.annotationService.Get(c.Request.Context(), userID, c.Param("id"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, annotation)
}

func (h *AnnotationHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)
	annotations, apiErr := h.annotationService.ListBySession(c.Request.Context(), userID, c.Query("sessaoId"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"anotacoes": annotations})
}

func (h *AnnotationHandler) Update(c *gin.Context) {
	var req annotationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	userID := middleware.UserID(c)
	annotation, apiErr := h.annotationService.Update(c.Request.Context(), userID, c.Param("id"), req.Content)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, annotation)
}

func (h *AnnotationHandler) Delete(c *gin.Context) {
	userID := middleware.UserID(c)
	if apiErr := h.annotationService.Delete(c.Request.Context(), userID, c.Param("id")); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.Status(http.StatusNoContent)
}
