package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path"
	"strings"
	"time"

	"github.com/samueldk12/trainer/internal/catalog"
	"github.com/samueldk12/trainer/internal/domain"
	"github.com/samueldk12/trainer/internal/metrics"
	"github.com/samueldk12/trainer/internal/repository"
	"github.com/samueldk12/trainer/internal/search"
	"github.com/samueldk12/trainer/internal/storage"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// ExerciseInput carries the editable fields of an exercise.
type ExerciseInput struct {
	Name              string
	Description       string
	Category          string
	Image             string
	CaloriesPerMinute *float64
	Intensity         *int
}

// ImageUpload is returned when a client asks to upload an exercise picture.
type ImageUpload struct {
	UploadURL string    `json:"uploadUrl"`
	ObjectKey string    `json:"objectKey"`
	ImageURL  string    `json:"imageUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type ExerciseService interface {
	// List returns the caller's exercises, or the built-in catalog when the
	// caller has none or the store fails, narrowed by query and category.
	List(ctx context.Context, owner domain.Identity, query, category string) ([]domain.Exercise, error)
	// Selectable returns everything that can be placed in a workout: the
	// caller's exercises followed by the built-in catalog.
	Selectable(ctx context.Context, owner domain.Identity) ([]domain.Exercise, error)
	Get(ctx context.Context, owner domain.Identity, exerciseID string) (*domain.Exercise, error)
	Create(ctx context.Context, owner domain.Identity, in ExerciseInput) (*domain.Exercise, error)
	Update(ctx context.Context, owner domain.Identity, exerciseID string, in ExerciseInput) (*domain.Exercise, error)
	Delete(ctx context.Context, owner domain.Identity, exerciseID string) error
	RequestImageUpload(ctx context.Context, owner domain.Identity, exerciseID, contentType string) (*ImageUpload, error)
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	workoutRepo  repository.WorkoutRepository
	fileStorage  storage.FileStorage
	metrics      *metrics.Manager
	uploadExpiry time.Duration
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(
	exerciseRepo repository.ExerciseRepository,
	workoutRepo repository.WorkoutRepository,
	fileStorage storage.FileStorage,
	metricsManager *metrics.Manager,
	uploadExpiry time.Duration,
) ExerciseService {
	if uploadExpiry <= 0 {
		uploadExpiry = storage.DefaultPresignedURLExpiry
	}
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		workoutRepo:  workoutRepo,
		fileStorage:  fileStorage,
		metrics:      metricsManager,
		uploadExpiry: uploadExpiry,
	}
}

func (s *exerciseService) List(ctx context.Context, owner domain.Identity, query, category string) ([]domain.Exercise, error) {
	exercises, err := s.exerciseRepo.ListByOwner(ctx, owner.UserID)
	if err != nil {
		log.WithError(err).WithField("owner", owner.UserID).Warn("listing exercises failed, serving built-in catalog")
	}
	if err != nil || len(exercises) == 0 {
		s.metrics.CounterCatalogFallbacks.Inc()
		exercises = catalog.Builtin()
	}
	return search.Filter(exercises, query, normalizeCategoryFilter(category)), nil
}

func (s *exerciseService) Selectable(ctx context.Context, owner domain.Identity) ([]domain.Exercise, error) {
	owned, err := s.exerciseRepo.ListByOwner(ctx, owner.UserID)
	if err != nil {
		log.WithError(err).WithField("owner", owner.UserID).Warn("listing exercises failed, offering built-in catalog only")
		owned = nil
	}
	return append(owned, catalog.Builtin()...), nil
}

// normalizeCategoryFilter maps localized labels to the stored value. Other
// values are kept as sent and compared exactly, so "CARDIO" matches nothing.
func normalizeCategoryFilter(category string) string {
	if c, ok := domain.CategoryFromLabel(category); ok {
		return string(c)
	}
	return category
}

func (s *exerciseService) Get(ctx context.Context, owner domain.Identity, exerciseID string) (*domain.Exercise, error) {
	if domain.IsBuiltinID(exerciseID) {
		ex, ok := catalog.Lookup(exerciseID)
		if !ok {
			return nil, ErrExerciseNotFound
		}
		return &ex, nil
	}
	return s.getOwned(ctx, owner, exerciseID)
}

// getOwned loads a user exercise. Exercises of other users are reported as not found.
func (s *exerciseService) getOwned(ctx context.Context, owner domain.Identity, exerciseID string) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if exercise.OwnerID != owner.UserID {
		return nil, ErrExerciseNotFound
	}
	return exercise, nil
}

func validateExercise(in ExerciseInput) (domain.Category, error) {
	if strings.TrimSpace(in.Name) == "" {
		return "", invalid("name is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return "", invalid("category is required")
	}
	category, ok := domain.ParseCategory(in.Category)
	if !ok {
		return "", invalid("unknown category %q", in.Category)
	}
	if in.CaloriesPerMinute != nil && (*in.CaloriesPerMinute < 0 || math.IsNaN(*in.CaloriesPerMinute)) {
		return "", invalid("caloriesPerMinute must not be negative")
	}
	if in.Intensity != nil && (*in.Intensity < 1 || *in.Intensity > 5) {
		return "", invalid("intensity must be between 1 and 5")
	}
	return category, nil
}

func (s *exerciseService) Create(ctx context.Context, owner domain.Identity, in ExerciseInput) (*domain.Exercise, error) {
	category, err := validateExercise(in)
	if err != nil {
		return nil, err
	}

	exercise := &domain.Exercise{
		OwnerID:           owner.UserID,
		Name:              strings.TrimSpace(in.Name),
		Description:       in.Description,
		Category:          category,
		Image:             in.Image,
		CaloriesPerMinute: in.CaloriesPerMinute,
		Intensity:         in.Intensity,
	}
	if _, err := s.exerciseRepo.Create(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

func (s *exerciseService) Update(ctx context.Context, owner domain.Identity, exerciseID string, in ExerciseInput) (*domain.Exercise, error) {
	if domain.IsBuiltinID(exerciseID) {
		return nil, ErrBuiltinImmutable
	}
	category, err := validateExercise(in)
	if err != nil {
		return nil, err
	}

	existing, err := s.getOwned(ctx, owner, exerciseID)
	if err != nil {
		return nil, err
	}
	if existing.IsBuiltin() {
		return nil, ErrBuiltinImmutable
	}

	existing.Name = strings.TrimSpace(in.Name)
	existing.Description = in.Description
	existing.Category = category
	existing.Image = in.Image
	existing.CaloriesPerMinute = in.CaloriesPerMinute
	existing.Intensity = in.Intensity

	if err := s.exerciseRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return existing, nil
}

// Delete removes a user exercise. Every guard runs before the delete itself.
func (s *exerciseService) Delete(ctx context.Context, owner domain.Identity, exerciseID string) error {
	if domain.IsBuiltinID(exerciseID) {
		return ErrBuiltinImmutable
	}
	existing, err := s.getOwned(ctx, owner, exerciseID)
	if err != nil {
		return err
	}
	if existing.IsBuiltin() {
		return ErrBuiltinImmutable
	}

	inUse, err := s.workoutRepo.ExistsWithSourceExercise(ctx, exerciseID)
	if err != nil {
		return fmt.Errorf("checking exercise references: %w", err)
	}
	if inUse {
		return ErrExerciseInUse
	}

	if err := s.exerciseRepo.Delete(ctx, exerciseID, owner.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}
	s.removeStoredImage(ctx, existing.Image)
	return nil
}

// removeStoredImage deletes an image object we host. Failures are only logged.
func (s *exerciseService) removeStoredImage(ctx context.Context, imageURL string) {
	key, ok := s.fileStorage.ObjectKey(imageURL)
	if !ok {
		return
	}
	if err := s.fileStorage.DeleteObject(ctx, key); err != nil {
		log.WithError(err).WithField("key", key).Warn("failed to delete exercise image")
	}
}

// RequestImageUpload hands out a presigned PUT URL and points the exercise
// image at the object that upload will create.
func (s *exerciseService) RequestImageUpload(ctx context.Context, owner domain.Identity, exerciseID, contentType string) (*ImageUpload, error) {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if !strings.HasPrefix(contentType, "image/") || len(contentType) == len("image/") {
		return nil, invalid("contentType must be an image type")
	}
	if domain.IsBuiltinID(exerciseID) {
		return nil, ErrBuiltinImmutable
	}
	exercise, err := s.getOwned(ctx, owner, exerciseID)
	if err != nil {
		return nil, err
	}

	extension := strings.TrimPrefix(contentType, "image/")
	if i := strings.IndexAny(extension, "+;"); i > 0 {
		extension = extension[:i]
	}
	objectKey := path.Join("exercises", owner.UserID, exerciseID, fmt.Sprintf("%s.%s", uuid.NewString(), extension))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, s.uploadExpiry)
	if err != nil {
		return nil, err
	}

	previous := exercise.Image
	exercise.Image = s.fileStorage.PublicURL(objectKey)
	if err := s.exerciseRepo.Update(ctx, exercise); err != nil {
		return nil, err
	}
	s.removeStoredImage(ctx, previous)

	return &ImageUpload{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
		ImageURL:  exercise.Image,
		ExpiresAt: time.Now().UTC().Add(s.uploadExpiry),
	}, nil
}
