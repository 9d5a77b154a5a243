package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Plan is a user-authored multi-day itinerary
type Plan struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	Destination  string    `json:"destination" gorm:"not null;index"`
	Days         int       `json:"days" gorm:"not null;index"`
	ThumbnailURL *string   `json:"thumbnailUrl"`
	AuthorID     string    `json:"-" gorm:"not null;index;size:128"`
	Author       User      `json:"author" gorm:"foreignKey:AuthorID"`
	DayList      []Day     `json:"dayList,omitempty" gorm:"foreignKey:PlanID;constraint:OnDelete:CASCADE"`
	LikeCount    int64     `json:"-" gorm:"->;-:migration"` // projected by the repositories, never stored
	CreatedAt    time.Time `json:"createdAt" gorm:"index"`
}

// Day is one numbered day within a plan
type Day struct {
	ID        string `json:"id" gorm:"primaryKey;size:36"`
	PlanID    string `json:"-" gorm:"not null;index;size:36"`
	DayNumber int    `json:"dayNumber"`
	Spots     []Spot `json:"spots" gorm:"foreignKey:DayID;constraint:OnDelete:CASCADE"`
}

// Spot is a named stop within a day, ordered by OrderIndex starting at 0
type Spot struct {
	ID         string `json:"id" gorm:"primaryKey;size:36"`
	DayID      string `json:"-" gorm:"not null;index;size:36"`
	Name       string `json:"name" gorm:"not null"`
	Memo       string `json:"memo" gorm:"not null;default:''"`
	OrderIndex int    `json:"orderIndex"`
}

func (p *Plan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func (d *Day) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

func (s *Spot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// SpotInput is one stop in the create request. Memo is optional.
type SpotInput struct {
	Name string  `json:"name" validate:"required"`
	Memo *string `json:"memo,omitempty"`
}

// DayInput carries the caller-supplied day number as-is; it is not checked against Days.
type DayInput struct {
	DayNumber int         `json:"dayNumber"`
	Spots     []SpotInput `json:"spots" validate:"dive"`
}

// CreatePlanRequest defines the request body for creating a plan
type CreatePlanRequest struct {
	Destination  string     `json:"destination" validate:"required"`
	Days         int        `json:"days" validate:"required,gte=1"`
	ThumbnailURL *string    `json:"thumbnailUrl,omitempty" validate:"omitempty,url"`
	DayList      []DayInput `json:"dayList" validate:"required,min=1,dive"`
}

// ToPlan builds the plan aggregate. Each spot's OrderIndex is its position in the input.
func (r *CreatePlanRequest) ToPlan(authorID string) *Plan {
	plan := &Plan{
		Destination: r.Destination,
		Days:        r.Days,
		AuthorID:    authorID,
		DayList:     make([]Day, 0, len(r.DayList)),
	}
	if r.ThumbnailURL != nil && *r.ThumbnailURL != "" {
		url := *r.ThumbnailURL
		plan.ThumbnailURL = &url
	}
	for _, in := range r.DayList {
		day := Day{DayNumber: in.DayNumber, Spots: make([]Spot, 0, len(in.Spots))}
		for i, s := range in.Spots {
			spot := Spot{Name: s.Name, OrderIndex: i}
			if s.Memo != nil {
				spot.Memo = *s.Memo
			}
			day.Spots = append(day.Spots, spot)
		}
		plan.DayList = append(plan.DayList, day)
	}
	return plan
}

// PlanCount mirrors the aggregate block the web client reads likes from
type PlanCount struct {
	Likes int64 `json:"likes"`
}

// PlanSummary is the fixed projection used by every plan listing
type PlanSummary struct {
	ID           string      `json:"id"`
	Destination  string      `json:"destination"`
	Days         int         `json:"days"`
	ThumbnailURL *string     `json:"thumbnailUrl"`
	CreatedAt    time.Time   `json:"createdAt"`
	Author       UserCompact `json:"author"`
	Count        PlanCount   `json:"_count"`
}

// PlanDetail is a plan with its full schedule and the caller's interaction state
type PlanDetail struct {
	PlanSummary
	DayList      []Day `json:"dayList"`
	IsLiked      bool  `json:"isLiked"`
	IsBookmarked bool  `json:"isBookmarked"`
}

func (p *Plan) ToSummary() PlanSummary {
	return PlanSummary{
		ID:           p.ID,
		Destination:  p.Destination,
		Days:         p.Days,
		ThumbnailURL: p.ThumbnailURL,
		CreatedAt:    p.CreatedAt,
		Author:       p.Author.ToCompact(),
		Count:        PlanCount{Likes: p.LikeCount},
	}
}

// ToSummaries projects a listing; it never returns nil so empty results encode as [].
func ToSummaries(plans []Plan) []PlanSummary {
	out := make([]PlanSummary, 0, len(plans))
	for i := range plans {
		out = append(out, plans[i].ToSummary())
	}
	return out
}

func (p *Plan) ToDetail(isLiked, isBookmarked bool) PlanDetail {
	days := p.DayList
	if days == nil {
		days = []Day{}
	}
	return PlanDetail{
		PlanSummary:  p.ToSummary(),
		DayList:      days,
		IsLiked:      isLiked,
		IsBookmarked: isBookmarked,
	}
}
