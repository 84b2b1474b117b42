package models

import (
	"time"

	"github.com/google/uuid"
)

// Room is a capacity-bounded group session. The creator is always a member;
// the creator_id column only ever moves to another current member.
type Room struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatorID uuid.UUID `json:"creator_id" db:"creator_id"`
	Title     string    `json:"title" db:"title"`
	Capacity  int       `json:"capacity" db:"capacity"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func NewRoom(creatorID uuid.UUID, title string, capacity int) *Room {
	now := time.Now()

	return &Room{
		ID:        uuid.New(),
		CreatorID: creatorID,
		Title:     title,
		Capacity:  capacity,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// RoomSummary is a Room plus its current member count, as produced by the
// listing queries.
type RoomSummary struct {
	Room
	MemberCount int `json:"member_count" db:"member_count"`
}
