package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edu-enroll-api/internal/service"
	"github.com/noah-isme/edu-enroll-api/pkg/response"
)

// BreadcrumbHandler derives wayfinding trails for informational pages.
type BreadcrumbHandler struct{}

// NewBreadcrumbHandler constructs BreadcrumbHandler.
func NewBreadcrumbHandler() *BreadcrumbHandler {
	return &BreadcrumbHandler{}
}

// Derive godoc
// @Summary Derive a breadcrumb trail for a path
// @Tags Navigation
// @Produce json
// @Param path query string false "URL path, e.g. /about-us/introduction"
// @Success 200 {object} response.Envelope
// @Router /breadcrumbs [get]
func (h *BreadcrumbHandler) Derive(c *gin.Context) {
	response.JSON(c, http.StatusOK, service.DeriveBreadcrumbs(c.Query("path")))
}
