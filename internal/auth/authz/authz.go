// Package authz holds the ownership predicate shared by every mutating
// endpoint instead of re-deriving owner checks per call site.
package authz

import authdomain "spendtrack-backend/internal/auth/domain"

// Ownable is any resource attributable to a single user.
type Ownable interface {
	OwnedBy() uint
}

// Owns reports whether the user owns the resource.
func Owns(user *authdomain.User, resource Ownable) bool {
	if user == nil || resource == nil {
		return false
	}
	return user.ID == resource.OwnedBy()
}
