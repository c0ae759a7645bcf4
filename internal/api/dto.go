package api

import (
	"encoding/json"
	"time"

	"github.com/samueldk12/trainer/internal/domain"
	"github.com/samueldk12/trainer/internal/service"
)

// Request bodies accept the English field names plus the Portuguese names
// sent by the original web client. The English name wins when both are set.

func pick(value string, alias *string) string {
	if value == "" && alias != nil {
		return *alias
	}
	return value
}

func pickPtr[T any](value, alias *T) *T {
	if value == nil {
		return alias
	}
	return value
}

// ExerciseRequest is the body of POST and PUT /exercises.
type ExerciseRequest struct {
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Category          string   `json:"category"`
	Image             string   `json:"image"`
	CaloriesPerMinute *float64 `json:"caloriesPerMinute"`
	Intensity         *int     `json:"intensity"`
}

func (r *ExerciseRequest) UnmarshalJSON(data []byte) error {
	type plain ExerciseRequest
	var aux struct {
		plain
		Nome              *string  `json:"nome"`
		Descricao         *string  `json:"descricao"`
		TipoExercicio     *string  `json:"tipoExercicio"`
		Imagem            *string  `json:"imagem"`
		CaloriasPorMinuto *float64 `json:"caloriasPorMinuto"`
		NivelForca        *int     `json:"nivelForca"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = ExerciseRequest(aux.plain)
	r.Name = pick(r.Name, aux.Nome)
	r.Description = pick(r.Description, aux.Descricao)
	r.Category = pick(r.Category, aux.TipoExercicio)
	r.Image = pick(r.Image, aux.Imagem)
	r.CaloriesPerMinute = pickPtr(r.CaloriesPerMinute, aux.CaloriasPorMinuto)
	r.Intensity = pickPtr(r.Intensity, aux.NivelForca)
	return nil
}

func (r ExerciseRequest) toInput() service.ExerciseInput {
	return service.ExerciseInput{
		Name:              r.Name,
		Description:       r.Description,
		Category:          r.Category,
		Image:             r.Image,
		CaloriesPerMinute: r.CaloriesPerMinute,
		Intensity:         r.Intensity,
	}
}

// ExerciseChoiceRequest is one exercise placed into a workout. It accepts
// the shape returned by GET /workouts/:id, so a workout can be sent back as
// read: ExerciseID is the catalog back-reference and ID is the instance id.
// An ID without ExerciseID is tried as a catalog id, as older clients sent it.
// SourceWorkoutID and InstanceID copy an exercise of another workout.
type ExerciseChoiceRequest struct {
	ID                string   `json:"id"`
	ExerciseID        string   `json:"exerciseId"`
	SourceWorkoutID   string   `json:"sourceWorkoutId"`
	InstanceID        string   `json:"instanceId"`
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Category          string   `json:"category"`
	Image             string   `json:"image"`
	CaloriesPerMinute *float64 `json:"caloriesPerMinute"`
	Duration          *int     `json:"duration"`
	Series            *int     `json:"series"`
	Repetitions       *int     `json:"repetitions"`
}

func (r *ExerciseChoiceRequest) UnmarshalJSON(data []byte) error {
	type plain ExerciseChoiceRequest
	var aux struct {
		plain
		ExercicioBaseID   *string  `json:"exercicioBaseId"`
		Nome              *string  `json:"nome"`
		Descricao         *string  `json:"descricao"`
		TipoExercicio     *string  `json:"tipoExercicio"`
		Imagem            *string  `json:"imagem"`
		CaloriasPorMinuto *float64 `json:"caloriasPorMinuto"`
		Duracao           *int     `json:"duracao"`
		Repeticoes        *int     `json:"repeticoes"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = ExerciseChoiceRequest(aux.plain)
	r.ExerciseID = pick(r.ExerciseID, aux.ExercicioBaseID)
	r.Name = pick(r.Name, aux.Nome)
	r.Description = pick(r.Description, aux.Descricao)
	r.Category = pick(r.Category, aux.TipoExercicio)
	r.Image = pick(r.Image, aux.Imagem)
	r.CaloriesPerMinute = pickPtr(r.CaloriesPerMinute, aux.CaloriasPorMinuto)
	r.Duration = pickPtr(r.Duration, aux.Duracao)
	r.Repetitions = pickPtr(r.Repetitions, aux.Repeticoes)
	return nil
}

func toChoices(in []ExerciseChoiceRequest) []service.ExerciseChoice {
	out := make([]service.ExerciseChoice, len(in))
	for i, r := range in {
		out[i] = service.ExerciseChoice{
			ExerciseID:        r.ExerciseID,
			SourceWorkoutID:   r.SourceWorkoutID,
			InstanceID:        r.InstanceID,
			Name:              r.Name,
			Description:       r.Description,
			Category:          r.Category,
			Image:             r.Image,
			CaloriesPerMinute: r.CaloriesPerMinute,
			Duration:          r.Duration,
			Series:            r.Series,
			Repetitions:       r.Repetitions,
		}
		if r.ExerciseID == "" {
			out[i].LegacyID = r.ID
		}
	}
	return out
}

// WorkoutRequest is the body of POST and PUT /workouts.
type WorkoutRequest struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Difficulty  string                  `json:"difficulty"`
	Exercises   []ExerciseChoiceRequest `json:"exercises"`
}

func (r *WorkoutRequest) UnmarshalJSON(data []byte) error {
	type plain WorkoutRequest
	var aux struct {
		plain
		Nome             *string                 `json:"nome"`
		Descricao        *string                 `json:"descricao"`
		NivelDificuldade *string                 `json:"nivelDificuldade"`
		Exercicios       []ExerciseChoiceRequest `json:"exercicios"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = WorkoutRequest(aux.plain)
	r.Name = pick(r.Name, aux.Nome)
	r.Description = pick(r.Description, aux.Descricao)
	r.Difficulty = pick(r.Difficulty, aux.NivelDificuldade)
	if r.Exercises == nil {
		r.Exercises = aux.Exercicios
	}
	return nil
}

func (r WorkoutRequest) toInput() service.WorkoutInput {
	return service.WorkoutInput{
		Name:        r.Name,
		Description: r.Description,
		Difficulty:  r.Difficulty,
		Exercises:   toChoices(r.Exercises),
	}
}

// AddExercisesRequest is the body of POST /workouts/:id/exercises.
type AddExercisesRequest struct {
	Exercises []ExerciseChoiceRequest `json:"exercises"`
}

func (r *AddExercisesRequest) UnmarshalJSON(data []byte) error {
	var aux struct {
		Exercises  []ExerciseChoiceRequest `json:"exercises"`
		Exercicios []ExerciseChoiceRequest `json:"exercicios"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.Exercises = aux.Exercises
	if r.Exercises == nil {
		r.Exercises = aux.Exercicios
	}
	return nil
}

// SessionExerciseRequest is the result of one exercise of a run.
type SessionExerciseRequest struct {
	ExerciseID     string `json:"exerciseId"`
	ElapsedSeconds *int   `json:"elapsedSeconds"`
}

// SessionRequest is the body of POST /workouts/:id/sessions.
// CompletedExerciseIDs is shorthand for exercises that ran their planned duration.
type SessionRequest struct {
	Exercises            []SessionExerciseRequest `json:"exercises"`
	CompletedExerciseIDs []string                 `json:"completedExerciseIds"`
	PerformedAt          *time.Time               `json:"performedAt"`
}

func (r SessionRequest) toInput() service.SessionInput {
	in := service.SessionInput{PerformedAt: r.PerformedAt}
	for _, ex := range r.Exercises {
		in.Results = append(in.Results, service.ExerciseResult{ExerciseID: ex.ExerciseID, ElapsedSeconds: ex.ElapsedSeconds})
	}
	for _, id := range r.CompletedExerciseIDs {
		in.Results = append(in.Results, service.ExerciseResult{ExerciseID: id})
	}
	return in
}

type ImageUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse excludes sensitive info like password hash
type UserResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Provisional bool      `json:"provisional,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// MapUserToResponse converts a domain User to a UserResponse DTO.
func MapUserToResponse(user *domain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Provisional: user.Provisional,
		CreatedAt:   user.CreatedAt,
	}
}

// WorkoutExerciseResponse flattens the execution of an instance.
type WorkoutExerciseResponse struct {
	ID                string          `json:"id"`
	ExerciseID        *string         `json:"exerciseId,omitempty"`
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	Category          domain.Category `json:"category"`
	Image             string          `json:"image,omitempty"`
	CaloriesPerMinute *float64        `json:"caloriesPerMinute,omitempty"`
	Duration          *int            `json:"duration,omitempty"`
	Series            *int            `json:"series,omitempty"`
	Repetitions       *int            `json:"repetitions,omitempty"`
	Order             int             `json:"order"`
}

type WorkoutResponse struct {
	ID          string                    `json:"id"`
	Name        string                    `json:"name"`
	Description string                    `json:"description,omitempty"`
	Difficulty  domain.Difficulty         `json:"difficulty"`
	Exercises   []WorkoutExerciseResponse `json:"exercises"`
	CreatedAt   time.Time                 `json:"createdAt"`
	UpdatedAt   time.Time                 `json:"updatedAt"`
}

func MapWorkoutExerciseToResponse(ex domain.WorkoutExercise) WorkoutExerciseResponse {
	resp := WorkoutExerciseResponse{
		ID:                ex.ID,
		ExerciseID:        ex.SourceExerciseID,
		Name:              ex.Name,
		Description:       ex.Description,
		Category:          ex.Category,
		Image:             ex.Image,
		CaloriesPerMinute: ex.CaloriesPerMinute,
		Order:             ex.Order,
	}
	if t := ex.Execution.Timed; t != nil {
		d := t.DurationSeconds
		resp.Duration = &d
	}
	if r := ex.Execution.Reps; r != nil {
		series, reps := r.Series, r.Repetitions
		resp.Series, resp.Repetitions = &series, &reps
	}
	return resp
}

// MapWorkoutToResponse converts a domain Workout, exercises in execution order.
func MapWorkoutToResponse(w *domain.Workout) WorkoutResponse {
	resp := WorkoutResponse{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		Difficulty:  w.Difficulty,
		Exercises:   []WorkoutExerciseResponse{},
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
	for _, ex := range w.SortedExercises() {
		resp.Exercises = append(resp.Exercises, MapWorkoutExerciseToResponse(ex))
	}
	return resp
}

func MapWorkoutsToResponse(workouts []domain.Workout) []WorkoutResponse {
	responses := make([]WorkoutResponse, len(workouts))
	for i := range workouts {
		responses[i] = MapWorkoutToResponse(&workouts[i])
	}
	return responses
}
