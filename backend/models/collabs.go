package models

import (
	"coursecatalog/backend/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Collab links a user to a course with a role. Deactivation keeps the row.
type Collab struct {
	ID       string `gorm:"primaryKey;size:36"`
	CourseID string `gorm:"index:idx_collab_course_user;not null;size:36"`
	UserID   string `gorm:"index:idx_collab_course_user;not null"`
	Role     string `gorm:"size:16;not null"`
	Active   bool   `gorm:"not null"`
}

func (c *Collab) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

func NewCollab(courseID, userID string, role domain.Role) *Collab {
	return &Collab{
		CourseID: courseID,
		UserID:   userID,
		Role:     string(role),
		Active:   true,
	}
}

func (c *Collab) ToDomain() domain.Collab {
	return domain.Collab{
		ID:       c.UserID,
		CourseID: c.CourseID,
		Role:     domain.Role(c.Role),
		Active:   c.Active,
	}
}
