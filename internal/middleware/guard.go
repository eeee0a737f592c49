package middleware

import (
	"net/http"

	"github.com/spectropro/spectro-backend/internal/adminlist"
	"github.com/spectropro/spectro-backend/internal/api/httpx"
	"github.com/spectropro/spectro-backend/internal/models"
)

// RequireAdmin gates the admin area. Approval is recomputed from the token's
// role + student id against the allow-list on every request; no cached flag
// is consulted. The denial body carries the caller's role and id so the
// dashboard can show who was refused.
func RequireAdmin(approved *adminlist.List) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetClaims(r.Context())
			if !ok {
				httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
				return
			}
			if models.Role(claims.Role) != models.RoleResearcher || !approved.IsApproved(claims.StudentID) {
				httpx.WriteError(w, http.StatusForbidden, "forbidden", "admin access denied", map[string]string{
					"role":    claims.Role,
					"user_id": claims.UserID,
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
