package models

import "time"

// Bookmark represents a plan saved by a user
type Bookmark struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"not null;size:128;index;uniqueIndex:idx_user_plan_bookmark"`
	PlanID    string    `json:"plan_id" gorm:"not null;size:36;uniqueIndex:idx_user_plan_bookmark"`
	Plan      Plan      `json:"-" gorm:"foreignKey:PlanID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}
