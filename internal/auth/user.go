// Package auth decides who may use the panel. Credentials are checked by
// the catalog backend; this package only reads what the backend returned.
package auth

import (
	"fmt"
	"strings"
)

// roleKeys lists every spelling of the role field seen in login responses.
var roleKeys = []string{"role", "Role", "role_name", "Role_name", "account_role", "Account_role"}

// RoleOf returns the user's role as text, or "" when none is present.
func RoleOf(user map[string]any) string {
	for _, k := range roleKeys {
		v, ok := user[k]
		if !ok || v == nil {
			continue
		}
		switch r := v.(type) {
		case string:
			return r
		case float64:
			return fmt.Sprintf("%g", r)
		case int, int64, bool:
			return fmt.Sprint(r)
		}
		// first present key wins even if it is an odd type
		return ""
	}
	return ""
}

// IsAdminRole reports whether role names the administrator role: "admin"
// in any case, or the numeric role id 1.
func IsAdminRole(role string) bool {
	role = strings.TrimSpace(role)
	return strings.EqualFold(role, "admin") || role == "1"
}

func IsAdmin(user map[string]any) bool {
	return user != nil && IsAdminRole(RoleOf(user))
}

// DisplayName picks the label shown in the top bar.
func DisplayName(user map[string]any) string {
	for _, k := range []string{"full_name", "name", "username", "email"} {
		if s, ok := user[k].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return "Admin"
}

func emailOf(user map[string]any) string {
	for _, k := range []string{"email", "Email"} {
		if s, ok := user[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
