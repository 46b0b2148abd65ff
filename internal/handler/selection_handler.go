package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edu-enroll-api/internal/middleware"
	"github.com/noah-isme/edu-enroll-api/internal/models"
	"github.com/noah-isme/edu-enroll-api/internal/service"
	appErrors "github.com/noah-isme/edu-enroll-api/pkg/errors"
	"github.com/noah-isme/edu-enroll-api/pkg/response"
)

// SelectionHandler exposes the per-session selection tracker.
type SelectionHandler struct {
	selection *service.SelectionService
}

// NewSelectionHandler constructs SelectionHandler.
func NewSelectionHandler(selection *service.SelectionService) *SelectionHandler {
	return &SelectionHandler{selection: selection}
}

type userTypeRequest struct {
	UserType models.UserType `json:"userType"`
}

type courseIDRequest struct {
	CourseID string `json:"courseId"`
}

// Get godoc
// @Summary Current selection
// @Tags Selection
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /selection [get]
func (h *SelectionHandler) Get(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.selection.Get(middleware.SessionID(c)))
}

// SetUserType godoc
// @Summary Switch workflow mode
// @Tags Selection
// @Accept json
// @Produce json
// @Param payload body userTypeRequest true "Mode payload"
// @Success 200 {object} response.Envelope
// @Router /selection/user-type [put]
func (h *SelectionHandler) SetUserType(c *gin.Context) {
	var req userTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	selection, err := h.selection.SetUserType(middleware.SessionID(c), req.UserType)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, selection)
}

// Select godoc
// @Summary Individual-mode course pick
// @Tags Selection
// @Accept json
// @Produce json
// @Param payload body courseIDRequest true "Course payload"
// @Success 200 {object} response.Envelope
// @Router /selection/select [post]
func (h *SelectionHandler) Select(c *gin.Context) {
	var req courseIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	target, err := h.selection.Select(middleware.SessionID(c), req.CourseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, target)
}

// Toggle godoc
// @Summary Toggle a course in the institution selection
// @Tags Selection
// @Accept json
// @Produce json
// @Param payload body courseIDRequest true "Course payload"
// @Success 200 {object} response.Envelope
// @Router /selection/toggle [post]
func (h *SelectionHandler) Toggle(c *gin.Context) {
	var req courseIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	selection, err := h.selection.Toggle(middleware.SessionID(c), req.CourseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, selection)
}

// Remove godoc
// @Summary Remove a course from the selection
// @Tags Selection
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /selection/{courseId} [delete]
func (h *SelectionHandler) Remove(c *gin.Context) {
	selection := h.selection.Remove(middleware.SessionID(c), c.Param("courseId"))
	response.JSON(c, http.StatusOK, selection)
}

// Clear godoc
// @Summary Clear the selection
// @Tags Selection
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /selection [delete]
func (h *SelectionHandler) Clear(c *gin.Context) {
	selection := h.selection.Clear(middleware.SessionID(c))
	response.JSON(c, http.StatusOK, selection)
}
