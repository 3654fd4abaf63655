package application

import "campdir/pkg/apperr"

// Actor is the authenticated identity attached to a request.
type Actor struct {
	ID   string
	Role string
}

func (a Actor) IsAdmin() bool { return a.Role == "admin" }

// CanModify decides whether the actor may mutate a resource recorded as owned
// by ownerID: the owner or an admin. The denial is an authorization error,
// never a not-found, so an existing-but-foreign resource is reported as
// forbidden rather than absent.
func CanModify(actor Actor, ownerID string) error {
	if actor.ID == ownerID || actor.IsAdmin() {
		return nil
	}
	return apperr.New(apperr.Authorization, "user %s is not authorized to modify this resource", actor.ID)
}
