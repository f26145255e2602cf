package auth

import (
	"fmt"

	"go-portfolio-app/internal/logger"

	"github.com/casbin/casbin/v2"
)

const (
	RoleAdmin     = "admin"
	RoleViewer    = "viewer"
	RoleAnonymous = "anonymous"
)

// SeedDefaultPolicies ensures the baseline authorization rules exist.
// Each policy is checked before it is added, so it is safe to run on every start.
func SeedDefaultPolicies(e casbin.IEnforcer, log logger.Logger) {
	log.Info("Seeding default authorization policies...")

	policies := [][]string{
		// Viewers can read the admin collections.
		{RoleViewer, "/api/admin/*", "GET"},

		// Admins can also create, update and delete.
		{RoleAdmin, "/api/admin/*", "*"},
	}
	for _, p := range policies {
		if has, _ := e.HasPolicy(p); !has {
			if _, err := e.AddPolicy(p); err != nil {
				log.Error(err, fmt.Sprintf("Failed to add policy %v", p))
			}
		}
	}

	if has, _ := e.HasRoleForUser(RoleAdmin, RoleViewer); !has {
		if _, err := e.AddRoleForUser(RoleAdmin, RoleViewer); err != nil {
			log.Error(err, "Failed to add role 'admin' -> 'viewer'")
		}
	}
	log.Info("Policy seeding complete.")
}
