package domain

// Role is advisory metadata forwarded to peers, it grants nothing.
type Role string

const (
	RoleHost        Role = "host"
	RoleParticipant Role = "participant"
)
