package models

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
)

type Profile struct {
	UserID          uuid.UUID `json:"user_id" db:"user_id"`
	Nickname        string    `json:"nickname" db:"nickname"`
	University      string    `json:"university" db:"university"`
	Major           string    `json:"major" db:"major"`
	Age             int       `json:"age" db:"age"`
	Height          *int      `json:"height,omitempty" db:"height"`
	Gender          string    `json:"gender" db:"gender"`
	MBTI            *string   `json:"mbti,omitempty" db:"mbti"`
	Hobbies         *string   `json:"hobbies,omitempty" db:"hobbies"`
	Charms          *string   `json:"charms,omitempty" db:"charms"`
	ProfileImageURL *string   `json:"profile_image_url,omitempty" db:"profile_image_url"`
}

type Preference struct {
	UserID        uuid.UUID      `json:"user_id" db:"user_id"`
	PrefAgeMin    *int           `json:"pref_age_min,omitempty" db:"pref_age_min"`
	PrefAgeMax    *int           `json:"pref_age_max,omitempty" db:"pref_age_max"`
	PrefUnivGroup *string        `json:"pref_univ_group,omitempty" db:"pref_univ_group"`
	AvoidTraits   *string        `json:"avoid_traits,omitempty" db:"avoid_traits"`
	CoreValues    *string        `json:"core_values,omitempty" db:"core_values"`
	Tags          types.JSONText `json:"tags,omitempty" db:"tags"`
}
