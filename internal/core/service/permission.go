package service

import "github.com/ashkelon/forum/internal/core/domain"

// canActOn reports whether actor may perform a privileged action on a
// resource owned by owner. Admins and moderators bypass ownership.
func canActOn(actor *domain.Account, owner string) bool {
	return actor.Roles.HasElevatedRights() || actor.Login == owner
}
