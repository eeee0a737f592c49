package session

import "github.com/spectropro/spectro-backend/internal/models"

type Decision int

const (
	// DecisionPending: the session is still loading; show a waiting
	// indicator, make no navigation decision yet.
	DecisionPending Decision = iota
	// DecisionRedirectLogin: no session; send the caller to the login entry.
	DecisionRedirectLogin
	// DecisionDenied: authenticated but not authorized; terminal until the
	// caller re-authenticates with different credentials.
	DecisionDenied
	DecisionAllowed
)

// GuardResult carries the decision plus the role/id of the denied user for
// diagnostic display.
type GuardResult struct {
	Decision Decision
	Role     models.Role
	UserID   string
}

// Guard gates a protected view. With requireAdmin the admin-area policy is
// applied on top of plain authentication.
func (s *Store) Guard(requireAdmin bool) GuardResult {
	switch s.State() {
	case StateUninitialized, StateLoading:
		return GuardResult{Decision: DecisionPending}
	case StateAnonymous:
		return GuardResult{Decision: DecisionRedirectLogin}
	}

	u, ok := s.Current()
	if !ok {
		return GuardResult{Decision: DecisionRedirectLogin}
	}
	if requireAdmin && !s.HasAdminAccess() {
		return GuardResult{Decision: DecisionDenied, Role: u.Role, UserID: u.ID}
	}
	return GuardResult{Decision: DecisionAllowed, Role: u.Role, UserID: u.ID}
}
