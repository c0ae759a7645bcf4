package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/samueldk12/trainer/internal/config"
	"github.com/samueldk12/trainer/internal/domain"
	"github.com/samueldk12/trainer/internal/repository"

	log "github.com/sirupsen/logrus"
)

// ProvisionalIdentity fetches the placeholder user, creating it on first
// start. It runs once at startup; the result is what every request acts as
// until real authentication is enabled.
func ProvisionalIdentity(ctx context.Context, users repository.UserRepository, cfg config.ProvisionalConfig) (domain.Identity, error) {
	user, err := users.First(ctx)
	if err == nil {
		return domain.IdentityOf(user), nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return domain.Identity{}, fmt.Errorf("looking up provisional user: %w", err)
	}

	user = &domain.User{Name: cfg.Name, Email: normalizeEmail(cfg.Email), Provisional: true}
	if _, err := users.Create(ctx, user); err != nil {
		// Another instance may have created it first.
		if errors.Is(err, repository.ErrDuplicate) {
			existing, getErr := users.GetByEmail(ctx, user.Email)
			if getErr == nil {
				return domain.IdentityOf(existing), nil
			}
		}
		return domain.Identity{}, fmt.Errorf("creating provisional user: %w", err)
	}
	log.WithFields(log.Fields{"userId": user.ID, "email": user.Email}).Info("created provisional user")
	return domain.IdentityOf(user), nil
}
