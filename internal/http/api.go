package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Sayanabha/snowConnect/internal/domain"
	"github.com/Sayanabha/snowConnect/internal/service"
)

// Handler wires HTTP routes to the user service.
type Handler struct {
	users        service.UserService
	logger       logrus.FieldLogger
	errorDetails bool
}

func NewHandler(users service.UserService, logger logrus.FieldLogger, errorDetails bool) *Handler {
	return &Handler{
		users:        users,
		logger:       logger,
		errorDetails: errorDetails,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(requestLogger(h.logger), corsMiddleware())

	api := router.Group("/api")
	{
		api.GET("/users", h.listUsers)
		api.GET("/users/:id", h.getUser)
		api.POST("/users", h.createUser)
		api.PUT("/users/:id", h.updateUser)
		api.DELETE("/users/:id", h.deleteUser)
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})
	}
}

type userRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// UserResponse is the JSON shape of a user.
type UserResponse struct {
	ID        int32  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}

func userToResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format(time.RFC3339Nano),
	}
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		h.fail(c, err, "error fetching users", nil)
		return
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = userToResponse(users[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, found, err := h.users.GetUser(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "error fetching user", logrus.Fields{"user_id": id})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	c.JSON(http.StatusOK, userToResponse(user))
}

func (h *Handler) createUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.logger.WithFields(logrus.Fields{"name": req.Name, "email": req.Email}).Info("creating user")
	user, affected, err := h.users.CreateUser(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		h.fail(c, err, "error creating user", nil)
		return
	}

	resp := gin.H{"message": "User created successfully", "rows_affected": affected}
	if user.ID != 0 {
		resp["id"] = user.ID
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) updateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := logrus.Fields{"user_id": id}
	h.logger.WithFields(fields).WithFields(logrus.Fields{"name": req.Name, "email": req.Email}).Info("updating user")
	updated, err := h.users.UpdateUser(c.Request.Context(), id, req.Name, req.Email)
	if err != nil {
		h.fail(c, err, "error updating user", fields)
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully"})
}

func (h *Handler) deleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	fields := logrus.Fields{"user_id": id}
	h.logger.WithFields(fields).Info("deleting user")
	deleted, err := h.users.DeleteUser(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "error deleting user", fields)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func parseID(c *gin.Context) (int32, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return 0, false
	}
	return int32(id), true
}

// fail maps service errors to responses. Validation errors are the caller's
// fault, everything else is a warehouse failure.
func (h *Handler) fail(c *gin.Context, err error, msg string, fields logrus.Fields) {
	if errors.Is(err, service.ErrInvalidUser) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.logger.WithFields(fields).WithError(err).Error(msg)
	resp := gin.H{"error": err.Error()}
	if h.errorDetails {
		resp["details"] = errorChain(err)
	}
	c.JSON(http.StatusInternalServerError, resp)
}

func errorChain(err error) []string {
	var chain []string
	for ; err != nil; err = errors.Unwrap(err) {
		chain = append(chain, fmt.Sprintf("%T: %v", err, err))
	}
	return chain
}
