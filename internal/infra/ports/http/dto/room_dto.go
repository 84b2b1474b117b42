package dto

import (
	"github.com/google/uuid"

	"github.com/meetu-app/meetu-server/internal/domain/models"
)

type CreateRoomRequest struct {
	Title    string `json:"title"`
	Capacity int    `json:"capacity"`
}

type HandoverRoomRequest struct {
	NewCreatorID uuid.UUID `json:"new_creator_id"`
}

type RoomResponse struct {
	ID          uuid.UUID `json:"id"`
	CreatorID   uuid.UUID `json:"creator_id"`
	Title       string    `json:"title"`
	Capacity    int       `json:"capacity"`
	MemberCount int       `json:"member_count"`
}

func NewRoomResponseFromSummary(room *models.RoomSummary) RoomResponse {
	return RoomResponse{
		ID:          room.ID,
		CreatorID:   room.CreatorID,
		Title:       room.Title,
		Capacity:    room.Capacity,
		MemberCount: room.MemberCount,
	}
}

type ListRoomsResponse struct {
	Rooms []RoomResponse `json:"rooms"`
}

type JoinRoomResponse struct {
	AlreadyMember bool `json:"already_member"`
	MemberCount   int  `json:"member_count"`
}

type ExitRoomResponse struct {
	RemainingExits int `json:"remaining_exits"`
}
