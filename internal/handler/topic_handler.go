package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"estudos/backend/internal/middleware"
	"estudos/backend/internal/service"
)

type TopicHandler struct {
	topicService *service.TopicService
}

type topicRequest struct {
	SubjectID string `json:"materiaId"`
	Name      string `json:"nome"`
}

type topicUpdateRequest struct {
	Name string `json:"nome"`
}

func NewTopicHandler(topicService *service.TopicService) *TopicHandler {
	return &TopicHandler{topicService: topicService}
}

func (h *TopicHandler) Create(c *gin.Context) {
	var req topicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	userID := middleware.UserID(c)
	topic, apiErr := h.topicService.Create(c.Request.Context(), userID, service.TopicInput{
		SubjectID: req.SubjectID,
		Name:      req.Name,
	})
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, topic)
}

func (h *TopicHandler) Get(c *gin.Context) {
	userID := middleware.UserID(c)
	topic, apiErr := h.topicService.Get(c.Request.Context(), userID, c.Param("id"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, topic)
}

func (h *TopicHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)
	topics, apiErr := h.topicService.ListBySubject(c.Request.Context(), userID, c.Query("materiaId"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"topicos": topics})
}

func (h *TopicHandler) Update(c *gin.Context) {
	var req topicUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	userID := middleware.UserID(c)
	topic, apiErr := h.topicService.Update(c.Request.Context(), userID, c.Param("id"), req.Name)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, topic)
}

func (h *TopicHandler) Delete(c *gin.Context) {
	userID := middleware.UserID(c)
	if apiErr := h.topicService.Delete(c.Request.Context(), userID, c.Param("id")); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.Status(http.StatusNoContent)
}
