package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edu-enroll-api/internal/models"
	"github.com/noah-isme/edu-enroll-api/internal/service"
	"github.com/noah-isme/edu-enroll-api/pkg/response"
)

// CatalogHandler exposes the course catalog endpoints.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// List godoc
// @Summary List visible courses
// @Tags Catalog
// @Produce json
// @Param category query string false "Category filter, 'all' for none"
// @Param q query string false "Free-text search"
// @Param userType query string false "individual or institution"
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CatalogHandler) List(c *gin.Context) {
	filter := models.FilterState{
		ActiveCategory: c.DefaultQuery("category", models.CategoryAll),
		SearchQuery:    c.Query("q"),
		UserType:       models.UserType(c.DefaultQuery("userType", string(models.UserTypeIndividual))),
	}

	courses, err := h.catalog.Visible(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	// "no courses" and "no courses match" are both valid, non-error states;
	// the client tells them apart via the echoed query.
	response.JSON(c, http.StatusOK, courses, map[string]interface{}{
		"count":  len(courses),
		"filter": filter,
		"state":  h.catalog.State(),
	})
}

// Get godoc
// @Summary Get one course
// @Tags Catalog
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id} [get]
func (h *CatalogHandler) Get(c *gin.Context) {
	course, err := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course)
}

// ReferredBy godoc
// @Summary List referral source options
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /courses/referred-by [get]
func (h *CatalogHandler) ReferredBy(c *gin.Context) {
	options, err := h.catalog.ReferredBy(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, options)
}
