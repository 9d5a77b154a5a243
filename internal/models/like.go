package models

import "time"

// Like represents a user's like on a plan. Presence is the liked state.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"not null;size:128;uniqueIndex:idx_user_plan_like"`
	PlanID    string    `json:"plan_id" gorm:"not null;size:36;index;uniqueIndex:idx_user_plan_like"`
	Plan      Plan      `json:"-" gorm:"foreignKey:PlanID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}
