package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/airops/internal/domain"
	"github.com/Domenick1991/airops/internal/service/notifications"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EventHandler struct {
	service notifications.NotificationUseCase
}

func NewEventHandler(service notifications.NotificationUseCase) *EventHandler {
	return &EventHandler{service: service}
}

func (h *EventHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:id", h.get)
}

// list serves the recent events, newest first, optionally filtered by
// ?type=.
func (h *EventHandler) list(c *gin.Context) {
	events, err := h.service.List(c.Request.Context(), domain.EventType(c.Query("type")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	event, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, notifications.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, event)
}

// Health answers liveness checks.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
