package app

import "github.com/dkeye/Signal/internal/domain"

// AssignRole decides the role of a joiner from the room size observed just
// before the join. The first joiner hosts; nobody is promoted later.
func AssignRole(membersBefore int) domain.Role {
	if membersBefore == 0 {
		return domain.RoleHost
	}
	return domain.RoleParticipant
}
