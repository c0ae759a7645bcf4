package api

import (
	"net/http"

	"github.com/samueldk12/trainer/internal/domain"
	"github.com/samueldk12/trainer/internal/service"

	"github.com/gin-gonic/gin"
)

// WorkoutHandler serves workouts, their exercises and their sessions.
type WorkoutHandler struct {
	workoutService service.WorkoutService
	sessionService service.SessionService
}

func NewWorkoutHandler(workoutService service.WorkoutService, sessionService service.SessionService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService, sessionService: sessionService}
}

// ListWorkouts godoc
// @Summary List the caller's workouts, newest first
// @Tags Workouts
// @Produce json
// @Param q query string false "Text contained in name or description"
// @Param difficulty query string false "Difficulty, or all"
// @Success 200 {array} WorkoutResponse
// @Router /workouts [get]
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	identity, ok := mustIdentity(c)
	if !ok {
		return
	}

	workouts, err := h.workoutService.List(c.Request.Context(), identity, c.Query("q"), c.Query("difficulty"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve workouts.")
		return
	}
	c.JSON(http.StatusOK, MapWorkoutsToResponse(workouts))
}

// CreateWorkout godoc
// @Summary Create a workout with its exercises
// @Tags Workouts
// @Accept json
// @Produce json
// @Param workout body WorkoutRequest true "Workout details"
// @Success 201 {object} WorkoutResponse
// @Failure 400 {object} gin.H "Missing name or difficulty"
// @Router /workouts [post]
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	identity, ok := mustIdentity(c)
	if !ok {
		return
	}
	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	workout, err := h.workoutService.Create(c.Request.Context(), identity, req.toInput())
	if err != nil {
		respondServiceError(c, err, "Failed to create workout.")
		return
	}
	c.JSON(http.StatusCreated, MapWorkoutToResponse(workout))
}

// GetWorkout godoc
// @Summary Get a workout with its exercises
// @Tags Workouts
// @Produce json
// @Param id path string true "Workout ID"
// @Success 200 {object} WorkoutResponse
// @Failure 404 {object} gin.H "Workout not found"
// @Router /workouts/{id} [get]
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	identity, ok := mustIdentity(c)
	if !ok {
		return
	}

	workout, err := h.workoutService.Get(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve workout.")
		return
	}
	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

// UpdateWorkout godoc
// @Summary Update a workout, replacing all of its exercises
// @Tags Workouts
// @Accept json
// @Produce json
// @Param id path string true "Workout ID"
// @Param workout body WorkoutRequest true "Workout details"
// @Success 200 {object} WorkoutResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 404 {object} gin.H "Workout not found"
// @Router /workouts/{id} [put]
func (h *WorkoutHandler) UpdateWorkout(c *gin.Context) {
	identity, ok := mustIdentity(c)
	if !ok {
		return
	}
	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	workout, err := h.workoutService.Update(c.Request.Context(), identity, c.Param("id"), req.toInput())
	if err != nil {
		respondServiceError(c, err, "Failed to update workout.")
		return
	}
	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

// DeleteWorkout godoc
// @Summary Delete a workout and its exercises
// @Tags Workouts
// @Produce json
// @Param id path string true "Workout ID"
// @Success 200 {object} gin.H "Workout deleted"
// @Failure 404 {object} gin.H "Workout not found"
// @Router /workouts/{id} [delete]
func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	identity, ok := mustIdentity(c)
	if !ok {
		return
	}

	if err := h.workoutService.Delete(c.Request.Context(), identity, c.Param("id")); err != nil {
		respondServiceError(c, err, "Failed to delete workout.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Workout deleted"})
}

// AddExercises godoc
// @Summary Append exercises to a workout
// @Tags Workouts
// @Accept json
// @Produce json
// @Param id path string true "Workout ID"
// @Param request body AddExercisesRequest true "Exercises to add"
// @Success 200 {object} WorkoutResponse
// @Failure 400 {object} gin.H "Empty or missing exercises"
// @Failure 404 {object} gin.H "Workout not found"
// @Router /workouts/{id}/exercises [post]
func (h *WorkoutHandler) AddExercises(c *gin.Context) {
	identity, ok := mustIdentity(c)
	if !ok {
		return
	}
	var req AddExercisesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	if len(req.Exercises) == 0 {
		abortWithError(c, http.StatusBadRequest, "At least one exercise must be provided")
		return
	}

	workout, err := h.workoutService.AddExercises(c.Request.Context(), identity, c.Param("id"), toChoices(req.Exercises))
	if err != nil {
		respondServiceError(c, err, "Failed to add exercises to workout.")
		return
	}
	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

// GetCandidates godoc
// @Summary List catalog exercises not yet in the workout
// @Tags Workouts
// @Produce json
// @Param id path string true "Workout ID"
// @Param q query string false "Text contained in name or description"
// @Param category query string false "Category, or all"
// @Success 200 {array} domain.Exercise
// @Router /workouts/{id}/candidates [get]
func (h *WorkoutHandler) GetCandidates(c *gin.Context) {
	identity, ok := mustIdentity(c)
	if !ok {
		return
	}

	candidates, err := h.workoutService.Candidates(c.Request.Context(), identity, c.Param("id"), c.Query("q"), c.Query("category"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve exercises.")
		return
	}
	if candidates == nil {
		candidates = []domain.Exercise{}
	}
	c.JSON(http.StatusOK, candidates)
}

// GetStats godoc
// @Summary Summary of a workout
// @Tags Workouts
// @Produce json
// @Param id path string true "Workout ID"
// @Success 200 {object} composer.Summary
// @Router /workouts/{id}/stats [get]
func (h *WorkoutHandler) GetStats(c *gin.Context) {
	identity, ok := mustIdentity(c)
	if !ok {
		return
	}

	stats, err := h.workoutService.Stats(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to compute workout stats.")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// SaveSession godoc
// @Summary Record a performed run of the workout
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Workout ID"
// @Param session body SessionRequest true "Session result"
// @Success 201 {object} domain.SessionRecord
// @Router /workouts/{id}/sessions [post]
func (h *WorkoutHandler) SaveSession(c *gin.Context) {
	identity, ok := mustIdentity(c)
	if !ok {
		return
	}
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	record, err := h.sessionService.Save(c.Request.Context(), identity, c.Param("id"), req.toInput())
	if err != nil {
		respondServiceError(c, err, "Failed to save session.")
		return
	}
	c.JSON(http.StatusCreated, record)
}

// ListSessions godoc
// @Summary List the recorded runs of a workout
// @Tags Sessions
// @Produce json
// @Param id path string true "Workout ID"
// @Success 200 {array} domain.SessionRecord
// @Router /workouts/{id}/sessions [get]
func (h *WorkoutHandler) ListSessions(c *gin.Context) {
	identity, ok := mustIdentity(c)
	if !ok {
		return
	}

	sessions, err := h.sessionService.List(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve sessions.")
		return
	}
	if sessions == nil {
		sessions = []domain.SessionRecord{}
	}
	c.JSON(http.StatusOK, sessions)
}

// GetProgress godoc
// @Summary Aggregated progress over all sessions
// @Tags Sessions
// @Produce json
// @Success 200 {object} service.Progress
// @Router /progress [get]
func (h *WorkoutHandler) GetProgress(c *gin.Context) {
	identity, ok := mustIdentity(c)
	if !ok {
		return
	}

	progress, err := h.sessionService.Progress(c.Request.Context(), identity)
	if err != nil {
		respondServiceError(c, err, "Failed to compute progress.")
		return
	}
	c.JSON(http.StatusOK, progress)
}
