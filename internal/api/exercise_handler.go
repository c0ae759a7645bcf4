package api

import (
	"net/http"

	"github.com/samueldk12/trainer/internal/domain"
	"github.com/samueldk12/trainer/internal/service"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// ListExercises godoc
// @Summary List exercises
// @Description Returns the caller's exercises, or the built-in catalog when there are none.
// @Tags Exercises
// @Produce json
// @Param q query string false "Text contained in name or description"
// @Param category query string false "Category, or all"
// @Success 200 {array} domain.Exercise
// @Router /exercises [get]
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	identity, ok := mustIdentity(c)
	if !ok {
		return
	}

	exercises, err := h.exerciseService.List(c.Request.Context(), identity, c.Query("q"), c.Query("category"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve exercises.")
		return
	}
	if exercises == nil {
		exercises = []domain.Exercise{} // Return empty JSON array, not null
	}
	c.JSON(http.StatusOK, exercises)
}

// CreateExercise godoc
// @Summary Create a new exercise
// @Tags Exercises
// @Accept json
// @Produce json
// @Param exercise body ExerciseRequest true "Exercise details"
// @Success 201 {object} domain.Exercise
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Router /exercises [post]
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	identity, ok := mustIdentity(c)
	if !ok {
		return
	}
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercise, err := h.exerciseService.Create(c.Request.Context(), identity, req.toInput())
	if err != nil {
		respondServiceError(c, err, "Failed to create exercise.")
		return
	}
	c.JSON(http.StatusCreated, exercise)
}

// GetExercise godoc
// @Summary Get an exercise
// @Tags Exercises
// @Produce json
// @Param id path string true "Exercise ID"
// @Success 200 {object} domain.Exercise
// @Failure 404 {object} gin.H "Exercise not found"
// @Router /exercises/{id} [get]
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	identity, ok := mustIdentity(c)
	if !ok {
		return
	}

	exercise, err := h.exerciseService.Get(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve exercise.")
		return
	}
	c.JSON(http.StatusOK, exercise)
}

// UpdateExercise godoc
// @Summary Update an exercise
// @Tags Exercises
// @Accept json
// @Produce json
// @Param id path string true "Exercise ID"
// @Param exercise body ExerciseRequest true "Exercise details"
// @Success 200 {object} domain.Exercise
// @Failure 400 {object} gin.H "Invalid input or built-in exercise"
// @Failure 404 {object} gin.H "Exercise not found"
// @Router /exercises/{id} [put]
func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	identity, ok := mustIdentity(c)
	if !ok {
		return
	}
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercise, err := h.exerciseService.Update(c.Request.Context(), identity, c.Param("id"), req.toInput())
	if err != nil {
		respondServiceError(c, err, "Failed to update exercise.")
		return
	}
	c.JSON(http.StatusOK, exercise)
}

// DeleteExercise godoc
// @Summary Delete an exercise
// @Tags Exercises
// @Produce json
// @Param id path string true "Exercise ID"
// @Success 200 {object} gin.H "Exercise deleted"
// @Failure 400 {object} gin.H "Built-in exercise or still used by a workout"
// @Failure 404 {object} gin.H "Exercise not found"
// @Router /exercises/{id} [delete]
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	identity, ok := mustIdentity(c)
	if !ok {
		return
	}

	if err := h.exerciseService.Delete(c.Request.Context(), identity, c.Param("id")); err != nil {
		respondServiceError(c, err, "Failed to delete exercise.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Exercise deleted"})
}

// RequestImageUpload godoc
// @Summary Get a presigned URL to upload an exercise image
// @Tags Exercises
// @Accept json
// @Produce json
// @Param id path string true "Exercise ID"
// @Param request body ImageUploadRequest true "Image content type"
// @Success 200 {object} service.ImageUpload
// @Failure 503 {object} gin.H "Object storage not configured"
// @Router /exercises/{id}/image [post]
func (h *ExerciseHandler) RequestImageUpload(c *gin.Context) {
	identity, ok := mustIdentity(c)
	if !ok {
		return
	}
	var req ImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	upload, err := h.exerciseService.RequestImageUpload(c.Request.Context(), identity, c.Param("id"), req.ContentType)
	if err != nil {
		respondServiceError(c, err, "Failed to prepare image upload.")
		return
	}
	c.JSON(http.StatusOK, upload)
}
