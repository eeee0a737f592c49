// Package session holds the client-side session store: the single source of
// truth for who is logged in, backed by a durable token/user cache and an
// identity provider. The store is an injected object with an explicit Load
// lifecycle; nothing in this package is package-level mutable state.
package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/spectropro/spectro-backend/internal/adminlist"
	"github.com/spectropro/spectro-backend/internal/models"
	"github.com/spectropro/spectro-backend/internal/policy"
)

type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "uninitialized"
	}
}

// Cache keys. The durable cache holds exactly these two entries.
const (
	keyToken = "auth-token"
	keyUser  = "user-data"
)

// Result is the outcome of a credential operation. Credential failures are
// reported here, never as panics or errors escaping the store.
type Result struct {
	OK      bool
	Message string
}

// Store binds at most one authenticated user to a client context.
type Store struct {
	cache    Cache
	idp      IdentityProvider
	approved *adminlist.List
	log      *slog.Logger

	mu    sync.Mutex
	state State
	user  *models.User
	token string
}

func New(cache Cache, idp IdentityProvider, approved *adminlist.List, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{cache: cache, idp: idp, approved: approved, log: log, state: StateUninitialized}
}

// revalidate recomputes the derived admin flag and stamps the login time.
// The cached copy of the flag is treated purely as a cache, never as truth.
func (s *Store) revalidate(u models.User) models.User {
	u.IsApprovedAdmin = policy.CanAccessAdminArea(&u, s.approved)
	u.LastLogin = time.Now()
	return u
}

// Load restores the session from the durable cache. A missing or corrupted
// cache degrades to Anonymous; Load never returns an error.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateLoading

	token, okTok := s.cache.Get(keyToken)
	raw, okUser := s.cache.Get(keyUser)
	if !okTok || !okUser || token == "" {
		s.clearLocked()
		return
	}

	var u models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		s.log.Warn("session cache unreadable, treating as logged out", "err", err)
		s.clearLocked()
		return
	}
	// Reject shapes that parsed but are not a plausible user record.
	if u.Email == "" || !u.Role.Valid() {
		s.log.Warn("session cache rejected, unexpected shape")
		s.clearLocked()
		return
	}

	u = s.revalidate(u)
	s.publishLocked(token, u)
}

// Login delegates the credential check to the identity provider. While a
// session already exists, a successful login replaces it (last write wins).
func (s *Store) Login(ctx context.Context, email, password string) Result {
	payload, err := s.idp.Login(ctx, email, password)
	if err != nil {
		return Result{OK: false, Message: err.Error()}
	}
	s.adopt(payload)
	return Result{OK: true, Message: "Login successful"}
}

// Register creates an account and opens a session for it. The student-id
// format is checked before the provider is called, matching the inline
// validation the signup form performs.
func (s *Store) Register(ctx context.Context, p RegisterParams) Result {
	if p.Role == "" {
		p.Role = models.RoleUser
	}
	if p.Role == models.RoleResearcher && !adminlist.IsValidFormat(p.StudentID) {
		return Result{OK: false, Message: "student id must be in EC/YYYY/XXX format"}
	}
	payload, err := s.idp.Register(ctx, p)
	if err != nil {
		return Result{OK: false, Message: err.Error()}
	}
	s.adopt(payload)
	return Result{OK: true, Message: "Registration successful"}
}

func (s *Store) adopt(payload AuthPayload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.revalidate(payload.User)
	s.publishLocked(payload.AccessToken, u)
}

// Logout clears the durable and in-memory session. It is unconditional and
// idempotent; calling it while Anonymous is a no-op.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

// UserUpdate is a partial profile change; nil fields are left untouched.
type UserUpdate struct {
	Name      *string
	Email     *string
	StudentID *string
}

// UpdateUser mutates the in-memory and cached current user. No-op when there
// is no session.
func (s *Store) UpdateUser(upd UserUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAuthenticated || s.user == nil {
		return
	}
	u := *s.user
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.StudentID != nil {
		u.StudentID = *upd.StudentID
	}
	u = s.revalidate(u)
	s.publishLocked(s.token, u)
}

func (s *Store) publishLocked(token string, u models.User) {
	s.token = token
	s.user = &u
	s.state = StateAuthenticated
	if b, err := json.Marshal(u); err == nil {
		if err := s.cache.Set(keyUser, string(b)); err != nil {
			s.log.Warn("persist session user", "err", err)
		}
	}
	if err := s.cache.Set(keyToken, token); err != nil {
		s.log.Warn("persist session token", "err", err)
	}
}

func (s *Store) clearLocked() {
	_ = s.cache.Delete(keyToken)
	_ = s.cache.Delete(keyUser)
	s.token = ""
	s.user = nil
	s.state = StateAnonymous
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Current returns a copy of the logged-in user, if any.
func (s *Store) Current() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAuthenticated || s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// IsAdmin reports the researcher role alone; HasAdminAccess additionally
// requires allow-list approval, recomputed on every call.
func (s *Store) IsAdmin() bool {
	u, ok := s.Current()
	return ok && u.Role == models.RoleResearcher
}

func (s *Store) HasAdminAccess() bool {
	u, ok := s.Current()
	return ok && policy.CanAccessAdminArea(&u, s.approved)
}
