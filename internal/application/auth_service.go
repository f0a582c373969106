package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bg-companion-api/internal/domain/entity"
	repo "github.com/oksasatya/bg-companion-api/internal/domain/repository"
	"github.com/oksasatya/bg-companion-api/pkg/apperror"
	"github.com/oksasatya/bg-companion-api/pkg/helpers"
	"github.com/oksasatya/bg-companion-api/pkg/mailer"
)

var (
	ErrUserExists      = apperror.New(apperror.Conflict, "User already exists")
	ErrUserNotFound    = apperror.New(apperror.NotFound, "User not found")
	ErrInvalidPassword = apperror.New(apperror.Credential, "Invalid password!")
)

// PasswordHasher is a one-way salted hash.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) bool
}

// TokenSigner turns a claims payload into a signed session token.
type TokenSigner interface {
	Sign(claims map[string]any) (string, error)
}

// JobPublisher enqueues background jobs such as emails.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// Session is the outcome of a successful register or login.
type Session struct {
	Identity entity.Identity
	Token    string
}

type AuthService struct {
	Users  repo.UserRepository
	Hasher PasswordHasher
	Tokens TokenSigner
	Jobs   JobPublisher // optional
	Logger *logrus.Logger
}

func NewAuthService(users repo.UserRepository, hasher PasswordHasher, tokens TokenSigner, jobs JobPublisher, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, Hasher: hasher, Tokens: tokens, Jobs: jobs, Logger: logger}
}

// Register creates the user and issues a session. The email lookup is only a
// fast path; the store's unique index decides concurrent registrations.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*Session, error) {
	existing, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperror.InternalErr(err)
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return nil, apperror.InternalErr(err)
	}

	u := &entity.User{Username: username, Email: email, Password: hash}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrUserExists
		}
		return nil, apperror.InternalErr(err)
	}

	sess, err := s.issue(u)
	if err != nil {
		return nil, err
	}
	s.enqueueWelcome(ctx, u)
	helpers.LogInfo(s.Logger, "user registered", logrus.Fields{"user_id": u.ID})
	return sess, nil
}

// Login verifies the credentials and issues a session. Unknown email and
// wrong password are distinct errors here; the HTTP layer decides how much
// of that to reveal.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperror.InternalErr(err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	if !s.Hasher.Compare(u.Password, password) {
		if s.Logger != nil {
			s.Logger.WithField("user_id", u.ID).Warn("login with wrong password")
		}
		return nil, ErrInvalidPassword
	}
	u.Password = ""
	return s.issue(u)
}

func (s *AuthService) issue(u *entity.User) (*Session, error) {
	id := u.Identity()
	tok, err := s.Tokens.Sign(id.Claims())
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("sign session token failed")
		}
		return nil, apperror.InternalErr(err)
	}
	return &Session{Identity: id, Token: tok}, nil
}

func (s *AuthService) enqueueWelcome(ctx context.Context, u *entity.User) {
	if s.Jobs == nil {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateWelcome,
		Data:     map[string]any{"Username": u.Username},
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := s.Jobs.PublishJSON(c, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("enqueue welcome email failed")
	}
}
