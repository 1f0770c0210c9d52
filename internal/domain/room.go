package domain

// RoomID is chosen by clients and is not validated beyond being non-empty.
type RoomID string
