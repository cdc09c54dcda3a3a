package middleware

import (
	"CampusConnect-backend/internal/utilities"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	// Load env
	_ "github.com/joho/godotenv/autoload"
)

// AdminAllowList is the set of email addresses granted admin access. It is
// built once at startup and injected into the middleware so tests can
// substitute their own set without touching environments.
type AdminAllowList map[string]struct{}

// NewAdminAllowList builds an allow-list from the given emails,
// case-normalized and with blanks dropped.
func NewAdminAllowList(emails []string) AdminAllowList {
	allow := AdminAllowList{}
	for _, e := range emails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		allow[e] = struct{}{}
	}
	return allow
}

// AdminAllowListFromEnv reads ADMIN_EMAILS (comma separated) into an allow-list.
func AdminAllowListFromEnv() AdminAllowList {
	return NewAdminAllowList(strings.Split(os.Getenv("ADMIN_EMAILS"), ","))
}

// IsAdmin reports whether the given email is on the allow-list. A nil or
// empty email is never an admin.
func (a AdminAllowList) IsAdmin(email *string) bool {
	if email == nil {
		return false
	}
	_, ok := a[strings.ToLower(*email)]
	return ok
}

// CheckAdmin will protect endpoint from users whose email is not on the
// admin allow-list. Must run after RequireAuth.
func CheckAdmin(allow AdminAllowList) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user := utilities.ExtractUser(ctx)
		if ctx.IsAborted() {
			return
		}

		if !allow.IsAdmin(user.Email) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, utilities.ErrorResponse{
				Error: "Forbidden: Admin access required",
			})
		}
	}
}
