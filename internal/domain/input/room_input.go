package input

import "github.com/google/uuid"

type CreateRoomInput struct {
	CreatorID uuid.UUID `json:"creator_id"`
	Title     string    `json:"title"`
	Capacity  int       `json:"capacity"`
}
