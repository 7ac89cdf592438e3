package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"estudos/backend/internal/middleware"
	"estudos/backend/internal/service"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
}

type categoryRequest struct {
	Name string `json:"nome"`
}

func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	userID := middleware.UserID(c)
	category, apiErr := h.categoryService.Create(c.Request.Context(), userID, req.Name)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	userID := middleware.UserID(c)
	category, apiErr := h.categoryService.Get(c.Request.Context(), userID, c.Param("id"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)
	categories, apiErr := h.categoryService.List(c.Request.Context(), userID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categorias": categories})
}

func (h *CategoryHandler) Update(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	userID := middleware.UserID(c)
	category, apiErr := h.categoryService.Update(c.Request.Context(), userID, c.Param("id"), req.Name)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	userID := middleware.UserID(c)
	if apiErr := h.categoryService.Delete(c.Request.Context(), userID, c.Param("id")); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.Status(http.StatusNoContent)
}
