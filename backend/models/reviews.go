package models

import (
	"time"

	"coursecatalog/backend/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is keyed by its own id; a user reviews a course at most once.
type Review struct {
	ID          string `gorm:"primaryKey;size:36"`
	CourseID    string `gorm:"uniqueIndex:idx_review_user_course;not null;size:36"`
	UserID      string `gorm:"uniqueIndex:idx_review_user_course;not null"`
	Recommended bool   `gorm:"not null"`
	Review      string `gorm:"type:text"`
	Date        int64  `gorm:"index;not null"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Date == 0 {
		r.Date = time.Now().UnixMilli()
	}
	return nil
}

func NewReview(courseID string, data domain.ReviewCreate) *Review {
	return &Review{
		CourseID:    courseID,
		UserID:      data.ID,
		Recommended: data.Recommended,
		Review:      data.Review,
	}
}

func (r *Review) ToDomain() domain.Review {
	return domain.Review{
		ID:          r.UserID,
		CourseID:    r.CourseID,
		Recommended: r.Recommended,
		Review:      r.Review,
		Date:        r.Date,
	}
}
