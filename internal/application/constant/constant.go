package constant

// Shared slog attribute keys.
const (
	Error    = "error"
	UserID   = "user_id"
	UserName = "user_name"
	RoomID   = "room_id"
)
