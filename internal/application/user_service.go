package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-course-api/internal/domain/entity"
	"github.com/oksasatya/go-course-api/internal/domain/repository"
	"github.com/oksasatya/go-course-api/pkg/apperror"
	"github.com/oksasatya/go-course-api/pkg/helpers"
	"github.com/oksasatya/go-course-api/pkg/mailer"
)

const (
	msgUserExists         = "user already exists"
	msgUserNotFound       = "user not found"
	msgInvalidCredentials = "invalid email or password"
	msgMissingCredentials = "provide email and password"
)

type UserService struct {
	Repo    repository.UserRepository
	Tokens  TokenIssuer
	Avatars AvatarStore
	Index   DocumentIndexer
	Mail    EmailPublisher
	Logger  *logrus.Logger
	AppName string
}

func NewUserService(repo repository.UserRepository, tokens TokenIssuer, avatars AvatarStore, logger *logrus.Logger) *UserService {
	return &UserService{Repo: repo, Tokens: tokens, Avatars: avatars, Logger: logger}
}

// RegisterInput carries validated registration fields and the avatar upload.
type RegisterInput struct {
	FirstName         string
	LastName          string
	Email             string
	Password          string
	Role              entity.Role
	AvatarContentType string
	Avatar            io.Reader
}

// Register creates an account, stores its avatar and returns the user with a fresh token.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if _, err := s.Repo.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperror.Conflict(msgUserExists)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	role, ok := entity.ParseRole(string(in.Role))
	if !ok {
		return nil, apperror.Validation("role must be one of: default, admin, manager")
	}

	hash, err := helpers.HashPassword(in.Password)
	if errors.Is(err, helpers.ErrPasswordTooLong) {
		return nil, apperror.Validation("password must be at most 72 bytes")
	} else if err != nil {
		return nil, err
	}

	avatar, err := s.Avatars.Save(ctx, avatarName(in.AvatarContentType), in.AvatarContentType, in.Avatar)
	if err != nil {
		return nil, fmt.Errorf("save avatar: %w", err)
	}

	u := &entity.User{
		ID:        uuid.NewString(),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  hash,
		Role:      role,
		Avatar:    avatar,
	}
	token, err := s.Tokens.Issue(identityOf(u))
	if err != nil {
		s.dropAvatar(ctx, avatar)
		return nil, err
	}
	u.Token = token

	if err := s.Repo.Create(ctx, u); err != nil {
		s.dropAvatar(ctx, avatar)
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict(msgUserExists)
		}
		return nil, err
	}
	usersRegistered.Add(1)

	s.afterRegister(ctx, u)
	return u, nil
}

// Login checks credentials and issues a new token. The stored token is left as is.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" && password == "" {
		return "", apperror.BadRequest(msgMissingCredentials)
	}
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			loginsFailed.Add(1)
			return "", apperror.NotFound(msgUserNotFound)
		}
		return "", err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		loginsFailed.Add(1)
		return "", apperror.InvalidCredentials(msgInvalidCredentials)
	}
	token, err := s.Tokens.Issue(identityOf(u))
	if err != nil {
		return "", err
	}
	loginsSucceeded.Add(1)
	return token, nil
}

func (s *UserService) List(ctx context.Context, page repository.Page) ([]*entity.User, error) {
	return s.Repo.List(ctx, page)
}

func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("not found user")
		}
		return nil, err
	}
	return u, nil
}

// Delete removes the user record, its avatar and its search document.
// Deleting an unknown id is a no-op.
func (s *UserService) Delete(ctx context.Context, id string) error {
	u, err := s.Repo.GetByID(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil
	case err != nil:
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.dropAvatar(ctx, u.Avatar)
	if s.Index != nil {
		if err := s.Index.Remove(ctx, id); err != nil {
			s.warn(err, id, "es remove user failed")
		}
	}
	return nil
}

func (s *UserService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.Index == nil {
		return []map[string]any{}, nil
	}
	return s.Index.Search(ctx, q, size)
}

func (s *UserService) afterRegister(ctx context.Context, u *entity.User) {
	if s.Index != nil {
		if err := s.Index.Put(ctx, u.ID, u.Public()); err != nil {
			s.warn(err, u.ID, "es index user failed")
		}
	}
	if s.Mail != nil {
		job := mailer.NewWelcomeJob(s.AppName, u.Email, u.FirstName, u.LastName)
		if err := s.Mail.PublishJSON(ctx, job); err != nil {
			s.warn(err, u.ID, "enqueue welcome email failed")
		}
	}
}

func (s *UserService) dropAvatar(ctx context.Context, name string) {
	if name == "" {
		return
	}
	if err := s.Avatars.Delete(ctx, name); err != nil {
		s.warn(err, "", "remove avatar failed")
	}
}

func (s *UserService) warn(err error, id, msg string) {
	if s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", id).Warn(msg)
	}
}

func identityOf(u *entity.User) helpers.Identity {
	return helpers.Identity{Email: u.Email, UserID: u.ID, Role: string(u.Role)}
}

// avatarName builds "user-<uuid>.<subtype>" from an image content type.
func avatarName(contentType string) string {
	ext := "bin"
	if _, sub, ok := strings.Cut(contentType, "/"); ok && sub != "" {
		ext, _, _ = strings.Cut(sub, ";")
		ext = strings.TrimSpace(ext)
	}
	return fmt.Sprintf("user-%s.%s", uuid.NewString(), ext)
}
