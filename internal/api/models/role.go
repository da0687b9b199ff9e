package models

// Role is the moderation tier of a user account.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleModerator || r == RoleAdmin
}

// CanModerate reports whether the role may edit or delete any review/comment.
func (r Role) CanModerate() bool {
	return r == RoleModerator || r == RoleAdmin
}

// CanModifyContribution decides whether a requester may update or delete a
// review or comment written by authorID. Authors always may; moderators and
// admins may regardless of ownership.
func CanModifyContribution(role Role, isSuperuser bool, requesterID, authorID string) bool {
	if isSuperuser || role.CanModerate() {
		return true
	}
	return requesterID == authorID
}

// IsAdministrator decides whether a user may manage categories, genres,
// titles and other user accounts.
func IsAdministrator(role Role, isSuperuser bool) bool {
	return isSuperuser || role == RoleAdmin
}
