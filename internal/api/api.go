// Package api exposes the activity registry over HTTP.
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/celerix-dev/mergington-activities/internal/engine"
	"github.com/celerix-dev/mergington-activities/internal/metrics"
)

type Handler struct {
	Store  engine.ActivityStore
	Logger *zap.Logger
}

// membershipQuery is the query string accepted by signup and unregister.
type membershipQuery struct {
	Email string `form:"email" binding:"required"`
}

// Register mounts the activity routes on r.
func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/activities", h.ListActivities)
	r.POST("/activities/:name/signup", h.Signup)
	r.DELETE("/activities/:name/unregister", h.Unregister)
}

func (h *Handler) ListActivities(c *gin.Context) {
	activities, err := h.Store.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, activities)
}

func (h *Handler) Signup(c *gin.Context) {
	name := c.Param("name")

	var q membershipQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email query parameter is required"})
		return
	}

	if err := h.Store.Signup(name, q.Email); err != nil {
		h.fail(c, metrics.OpSignup, name, q.Email, err)
		return
	}

	h.recorded(metrics.OpSignup, name)
	h.log().Info("participant signed up", zap.String("activity", name), zap.String("email", q.Email))
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Signed up %s for %s", q.Email, name)})
}

func (h *Handler) Unregister(c *gin.Context) {
	name := c.Param("name")

	var q membershipQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email query parameter is required"})
		return
	}

	if err := h.Store.Unregister(name, q.Email); err != nil {
		h.fail(c, metrics.OpUnregister, name, q.Email, err)
		return
	}

	h.recorded(metrics.OpUnregister, name)
	h.log().Info("participant unregistered", zap.String("activity", name), zap.String("email", q.Email))
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Unregistered %s from %s", q.Email, name)})
}

// fail maps store errors onto status codes and user-facing messages.
func (h *Handler) fail(c *gin.Context, op, name, email string, err error) {
	switch {
	case errors.Is(err, engine.ErrActivityNotFound):
		metrics.RecordMembership(name, op, metrics.OutcomeNotFound)
		c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
	case errors.Is(err, engine.ErrAlreadySignedUp):
		metrics.RecordMembership(name, op, metrics.OutcomeRejected)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Student is already signed up"})
	case errors.Is(err, engine.ErrNotSignedUp):
		metrics.RecordMembership(name, op, metrics.OutcomeRejected)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Student is not signed up for this activity"})
	default:
		h.log().Error("membership change failed",
			zap.String("operation", op),
			zap.String("activity", name),
			zap.String("email", email),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (h *Handler) recorded(op, name string) {
	metrics.RecordMembership(name, op, metrics.OutcomeOK)
	if a, err := h.Store.Get(name); err == nil {
		metrics.SetParticipants(name, len(a.Participants))
	}
}

func (h *Handler) log() *zap.Logger {
	if h.Logger == nil {
		return zap.NewNop()
	}
	return h.Logger
}
