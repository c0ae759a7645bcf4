package api

import (
	"net/http"

	"github.com/samueldk12/trainer/internal/service"

	"github.com/gin-gonic/gin"
)

// MiscHandler serves health, the current identity and demo data.
type MiscHandler struct {
	healthService service.HealthService
	seedService   service.SeedService
}

func NewMiscHandler(healthService service.HealthService, seedService service.SeedService) *MiscHandler {
	return &MiscHandler{healthService: healthService, seedService: seedService}
}

func (h *MiscHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// Health godoc
// @Summary API and database health
// @Tags Misc
// @Produce json
// @Success 200 {object} service.HealthReport
// @Failure 500 {object} service.HealthReport
// @Router /health [get]
func (h *MiscHandler) Health(c *gin.Context) {
	report := h.healthService.Check(c.Request.Context())
	status := http.StatusOK
	if report.Status != service.HealthStatusOK {
		status = http.StatusInternalServerError
	}
	c.JSON(status, report)
}

func (h *MiscHandler) Me(c *gin.Context) {
	identity, ok := mustIdentity(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, identity)
}

// Seed godoc
// @Summary Create demo exercises and workouts for the caller
// @Tags Misc
// @Produce json
// @Success 200 {object} service.SeedResult
// @Router /seed [post]
func (h *MiscHandler) Seed(c *gin.Context) {
	identity, ok := mustIdentity(c)
	if !ok {
		return
	}

	result, err := h.seedService.Seed(c.Request.Context(), identity)
	if err != nil {
		respondServiceError(c, err, "Failed to create demo data.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Demo data created", "data": result})
}
