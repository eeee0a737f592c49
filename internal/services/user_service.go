package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spectropro/spectro-backend/internal/adminlist"
	"github.com/spectropro/spectro-backend/internal/auth"
	"github.com/spectropro/spectro-backend/internal/metrics"
	"github.com/spectropro/spectro-backend/internal/models"
	"github.com/spectropro/spectro-backend/internal/policy"
	repo "github.com/spectropro/spectro-backend/internal/repository"
	"github.com/spectropro/spectro-backend/internal/worker"
)

var (
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = repo.ErrNotFound
)

// UserService is the identity provider: it owns registration, credential
// checks, token issuance and profile updates.
type UserService struct {
	users    repo.Users
	tm       *auth.TokenManager
	approved *adminlist.List
	wp       *worker.Pool
	log      *slog.Logger
}

func NewUserService(users repo.Users, tm *auth.TokenManager, approved *adminlist.List, wp *worker.Pool, log *slog.Logger) *UserService {
	return &UserService{users: users, tm: tm, approved: approved, wp: wp, log: log}
}

type RegisterParams struct {
	Name      string
	Email     string
	Password  string
	Role      models.Role
	StudentID string
}

// AuthResult is what both login and registration hand back to the client:
// the validated user plus a fresh token pair.
type AuthResult struct {
	User         models.User `json:"user"`
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresAt    time.Time   `json:"expires_at"`
}

// derive recomputes the admin flag from role + student id. Persisted or cached
// copies of the flag are never trusted.
func (s *UserService) derive(u models.User) models.User {
	u.IsApprovedAdmin = policy.CanAccessAdminArea(&u, s.approved)
	return u
}

func (s *UserService) Register(ctx context.Context, p RegisterParams) (AuthResult, error) {
	u := models.User{
		Name:      strings.TrimSpace(p.Name),
		Email:     strings.ToLower(strings.TrimSpace(p.Email)),
		Role:      p.Role,
		StudentID: strings.TrimSpace(p.StudentID),
	}
	if err := u.Validate(); err != nil {
		return AuthResult{}, err
	}
	if len(p.Password) < 6 {
		return AuthResult{}, errors.New("password must be at least 6 characters")
	}
	switch u.Role {
	case models.RoleResearcher:
		if !adminlist.IsValidFormat(u.StudentID) {
			return AuthResult{}, errors.New("researcher accounts require a student id in EC/YYYY/XXX format")
		}
	default:
		// An id on a plain user account would be dead data; refuse it here
		// rather than store an inconsistent pair.
		if u.StudentID != "" {
			return AuthResult{}, errors.New("student id is only valid for researcher accounts")
		}
	}

	taken, err := s.users.EmailExists(ctx, u.Email)
	if err != nil {
		return AuthResult{}, fmt.Errorf("checking email: %w", err)
	}
	if taken {
		metrics.RegistrationsTotal.WithLabelValues("failed", string(u.Role)).Inc()
		return AuthResult{}, ErrEmailTaken
	}

	hash, err := auth.HashPassword(p.Password)
	if err != nil {
		return AuthResult{}, err
	}
	u.PasswordHash = hash

	created, err := s.users.Create(ctx, u)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("failed", string(u.Role)).Inc()
		return AuthResult{}, fmt.Errorf("creating user: %w", err)
	}
	metrics.RegistrationsTotal.WithLabelValues("ok", string(u.Role)).Inc()
	s.log.Info("user registered", "id", created.ID, "role", created.Role)

	return s.issue(created)
}

func (s *UserService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			metrics.LoginsTotal.WithLabelValues("failed").Inc()
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}
	if auth.VerifyPassword(password, u.PasswordHash) != nil {
		metrics.LoginsTotal.WithLabelValues("failed").Inc()
		return AuthResult{}, ErrInvalidCredentials
	}
	metrics.LoginsTotal.WithLabelValues("ok").Inc()

	// Stamp off the request path; the response carries the fresh timestamp.
	u.LastLogin = time.Now()
	id := u.ID
	s.wp.Submit(func() {
		if err := s.users.StampLastLogin(context.Background(), id); err != nil {
			s.log.Error("stamp last login", "id", id, "err", err)
		}
	})

	return s.issue(u)
}

// Refresh rotates a refresh token into a new pair. The user record is
// re-read so a role or student-id change takes effect on rotation.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (AuthResult, error) {
	claims, err := s.tm.ParseRefresh(refreshToken)
	if err != nil {
		return AuthResult{}, err
	}
	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return AuthResult{}, err
	}
	return s.issue(u)
}

func (s *UserService) issue(u models.User) (AuthResult, error) {
	u = s.derive(u)
	access, refresh, exp, err := s.tm.GeneratePair(u)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: u, AccessToken: access, RefreshToken: refresh, ExpiresAt: exp}, nil
}

func (s *UserService) Get(ctx context.Context, id string) (models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	return s.derive(u), nil
}

type ProfileUpdate struct {
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	StudentID *string `json:"student_id"`
}

// UpdateProfile applies a partial update to the stored user and returns the
// result with derived fields recomputed.
func (s *UserService) UpdateProfile(ctx context.Context, id string, p ProfileUpdate) (models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	if p.Name != nil {
		u.Name = strings.TrimSpace(*p.Name)
	}
	if p.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*p.Email))
		if email != u.Email {
			taken, err := s.users.EmailExists(ctx, email)
			if err != nil {
				return models.User{}, err
			}
			if taken {
				return models.User{}, ErrEmailTaken
			}
			u.Email = email
		}
	}
	if p.StudentID != nil {
		sid := strings.TrimSpace(*p.StudentID)
		if u.Role == models.RoleResearcher && !adminlist.IsValidFormat(sid) {
			return models.User{}, errors.New("student id must be in EC/YYYY/XXX format")
		}
		if u.Role != models.RoleResearcher && sid != "" {
			return models.User{}, errors.New("student id is only valid for researcher accounts")
		}
		u.StudentID = sid
	}
	if err := u.Validate(); err != nil {
		return models.User{}, err
	}
	if err := s.users.Update(ctx, u); err != nil {
		return models.User{}, err
	}
	return s.derive(u), nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i] = s.derive(users[i])
	}
	return users, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("user deleted", "id", id)
	return nil
}
