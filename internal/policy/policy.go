// Package policy contains the pure access-control decisions. Callers own the
// side effects of a denial (redirect, 403 response, denial screen).
package policy

import (
	"github.com/spectropro/spectro-backend/internal/adminlist"
	"github.com/spectropro/spectro-backend/internal/catalog"
	"github.com/spectropro/spectro-backend/internal/models"
)

// CanAccess decides whether a caller holding role may download f. An empty
// role means the caller is unauthenticated.
//
// A protected file without a role requirement is accessible to everyone: the
// protection flag alone does not gate access, only the role requirement does.
// That mirrors the behavior the download pages were built against, so it is
// kept deliberately rather than tightened.
func CanAccess(f catalog.File, role models.Role) bool {
	if !f.IsProtected {
		return true
	}
	if f.RequiredRole == "" {
		return true
	}
	if role == "" {
		return false
	}
	// Researchers satisfy any role requirement.
	return role == f.RequiredRole || role == models.RoleResearcher
}

// CanAccessAdminArea decides admin-dashboard access. Being a researcher is
// necessary but not sufficient: the student id must also be on the allow-list.
// The decision is always recomputed here; u.IsApprovedAdmin is never consulted.
func CanAccessAdminArea(u *models.User, approved *adminlist.List) bool {
	if u == nil {
		return false
	}
	return u.Role == models.RoleResearcher && approved.IsApproved(u.StudentID)
}
