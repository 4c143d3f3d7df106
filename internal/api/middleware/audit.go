package middleware

import (
	"net/http"
	"strings"

	"github.com/eventlane/server/internal/audit"
)

// AdminAudit records mutating admin requests in the audit log. It runs
// inside AdminAuth so the operator identity is already on the context.
func AdminAudit(auditLog *audit.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rw, r)

			adminUser := "unknown"
			if claims, ok := AdminClaims(r.Context()); ok {
				adminUser = claims.Subject
			}

			status := "success"
			if rw.status >= http.StatusBadRequest {
				status = "failure"
			}

			resourceType, resourceID := adminResource(r.URL.Path)
			auditLog.Log(audit.Entry{
				Action:       strings.ToLower(r.Method) + "." + resourceType,
				AdminUser:    adminUser,
				ResourceType: resourceType,
				ResourceID:   resourceID,
				IPAddress:    ClientIP(r),
				Status:       status,
			})
		})
	}
}

// adminResource splits "/admin/<resource>/<id>..." into its resource type
// and optional id.
func adminResource(path string) (resourceType, resourceID string) {
	trimmed := strings.TrimPrefix(path, "/admin/")
	parts := strings.SplitN(trimmed, "/", 3)
	resourceType = parts[0]
	if len(parts) > 1 {
		resourceID = parts[1]
	}
	return resourceType, resourceID
}
