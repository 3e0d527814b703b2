package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"

	"github.com/google/uuid"
)

// subjectNamespace seeds deterministic subject IDs synthesized from emails
// when the identity provider did not supply one.
var subjectNamespace = uuid.MustParse("8f8e7c5a-2f1d-4b6a-9c3e-5d4f6a7b8c9d")

// Identity is the claim set the resolver works from. Subject and Name are
// optional; Email is required.
type Identity struct {
	Email   string
	Name    string
	Subject string
}

// UserResolver maps an authenticated identity to a persisted user record,
// provisioning the record on first sight.
type UserResolver struct {
	userRepo repositories.UserRepository
	logger   *slog.Logger
}

// NewUserResolver creates a new user resolver
func NewUserResolver(userRepo repositories.UserRepository, logger *slog.Logger) *UserResolver {
	return &UserResolver{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Resolve finds or creates the user for the given identity. A concurrent
// insert of the same email loses the unique-constraint race and is retried
// as a find, so two simultaneous first requests both resolve to one row.
func (s *UserResolver) Resolve(ctx context.Context, identity Identity) (*models.User, error) {
	if identity.Email == "" {
		return nil, &domain.ValidationError{Message: "identity is missing the email claim"}
	}

	user, err := s.userRepo.GetByEmail(ctx, identity.Email)
	if err == nil {
		return s.refresh(ctx, user, identity)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("look up user: %w", err)
	}

	now := time.Now().UTC()
	created := &models.User{
		ID:        uuid.NewString(),
		SubjectID: identity.Subject,
		Email:     identity.Email,
		Name:      identity.Name,
		Role:      models.RoleFree,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if created.Name == "" {
		created.Name = localPart(identity.Email)
	}
	if created.SubjectID == "" {
		created.SubjectID = uuid.NewSHA1(subjectNamespace, []byte(identity.Email)).String()
	}

	if err := s.userRepo.Create(ctx, created); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// Lost the provisioning race; the row exists now
			existing, findErr := s.userRepo.GetByEmail(ctx, identity.Email)
			if findErr != nil {
				return nil, fmt.Errorf("find user after conflict: %w", findErr)
			}
			return existing, nil
		}
		return nil, fmt.Errorf("provision user: %w", err)
	}

	s.logger.Info("user provisioned", "user_id", created.ID, "email", created.Email)
	return created, nil
}

// refresh updates the display name if the provider reports a new one and
// stamps last_login_at.
func (s *UserResolver) refresh(ctx context.Context, user *models.User, identity Identity) (*models.User, error) {
	now := time.Now().UTC()
	changed := false

	if identity.Name != "" && identity.Name != user.Name {
		user.Name = identity.Name
		changed = true
	}
	if user.LastLoginAt == nil || now.Sub(*user.LastLoginAt) > time.Minute {
		user.LastLoginAt = &now
		changed = true
	}

	if changed {
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("refresh user: %w", err)
		}
	}

	return user, nil
}

func localPart(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
