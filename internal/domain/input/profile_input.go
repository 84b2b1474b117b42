package input

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
)

type UpsertProfileInput struct {
	UserID          uuid.UUID `json:"user_id"`
	Nickname        string    `json:"nickname"`
	University      string    `json:"university"`
	Major           string    `json:"major"`
	Age             int       `json:"age"`
	Height          *int      `json:"height"`
	Gender          string    `json:"gender"`
	MBTI            *string   `json:"mbti"`
	Hobbies         *string   `json:"hobbies"`
	Charms          *string   `json:"charms"`
	ProfileImageURL *string   `json:"profile_image_url"`
}

type UpsertPreferenceInput struct {
	UserID        uuid.UUID      `json:"user_id"`
	PrefAgeMin    *int           `json:"pref_age_min"`
	PrefAgeMax    *int           `json:"pref_age_max"`
	PrefUnivGroup *string        `json:"pref_univ_group"`
	AvoidTraits   *string        `json:"avoid_traits"`
	CoreValues    *string        `json:"core_values"`
	Tags          types.JSONText `json:"tags"`
}
