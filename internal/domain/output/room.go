package output

import (
	"github.com/google/uuid"

	"github.com/meetu-app/meetu-server/internal/domain/models"
)

// JoinResult reports the outcome of a join. AlreadyMember marks the
// idempotent short-circuit: the caller was a member before the call and no
// state changed.
type JoinResult struct {
	AlreadyMember bool `json:"already_member"`
	MemberCount   int  `json:"member_count"`
}

// ExitResult reports how many voluntary exits the user has left after this
// one was charged.
type ExitResult struct {
	RemainingExits int `json:"remaining_exits"`
}

// MemberView is one room participant with the profile fields shown in room
// listings.
type MemberView struct {
	UserID     uuid.UUID `json:"user_id"`
	Nickname   string    `json:"nickname"`
	University string    `json:"university"`
	Gender     string    `json:"gender"`
	IsCreator  bool      `json:"is_creator"`
}

type RoomDetail struct {
	Room    models.Room  `json:"room"`
	Members []MemberView `json:"members"`
}
