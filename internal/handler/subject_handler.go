package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"estudos/backend/internal/middleware"
	"estudos/backend/internal/service"
)

type SubjectHandler struct {
	subjectService *service.SubjectService
}

type subjectRequest struct {
	Name       string  `json:"nome"`
	CategoryID *string `json:"categoriaId"`
}

func NewSubjectHandler(subjectService *service.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjectService: subjectService}
}

func (h *SubjectHandler) Create(c *gin.Context) {
	var req subjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	userID := middleware.UserID(c)
	subject, apiErr := h.subjectService.Create(c.Request.Context(), userID, service.SubjectInput{
		Name:       req.Name,
		CategoryID: req.CategoryID,
	})
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, subject)
}

func (h *SubjectHandler) Get(c *gin.Context) {
	userID := middleware.UserID(c)
	subject, apiErr := h.subjectService.Get(c.Request.Context(), userID, c.Param("id"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, subject)
}

func (h *SubjectHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)
	subjects, apiErr := h.subjectService.List(c.Request.Context(), userID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"materias": subjects})
}

func (h *SubjectHandler) Update(c *gin.Context) {
	var req subjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	userID := middleware.UserID(c)
	subject, apiErr := h.subjectService.Update(c.Request.Context(), userID, c.Param("id"), service.SubjectInput{
		Name:       req.Name,
		CategoryID: req.CategoryID,
	})
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, subject)
}

func (h *SubjectHandler) Delete(c *gin.Context) {
	userID := middleware.UserID(c)
	if apiErr := h.subjectService.Delete(c.Request.Context(), userID, c.Param("id")); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.Status(http.StatusNoContent)
}
