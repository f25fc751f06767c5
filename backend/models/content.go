package models

import (
	"coursecatalog/backend/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Content struct {
	ID           string `gorm:"primaryKey;size:36"`
	CourseID     string `gorm:"uniqueIndex:idx_content_position;not null;size:36"`
	ChapterTitle string `gorm:"not null"`
	Subtitle     string
	Chapter      int    `gorm:"uniqueIndex:idx_content_position;not null"`
	Order        int    `gorm:"column:order_number;uniqueIndex:idx_content_position;not null"`
	Description  string `gorm:"type:text"`
	Video        string
	Image        string
	Active       bool `gorm:"not null"`
}

func (c *Content) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

func NewContent(courseID string, data domain.ContentCreate) *Content {
	return &Content{
		CourseID:     courseID,
		ChapterTitle: data.ChapterTitle,
		Subtitle:     data.Subtitle,
		Chapter:      data.Chapter,
		Order:        data.Order,
		Description:  data.Description,
		Video:        data.Video,
		Image:        data.Image,
		Active:       true,
	}
}

// MovesPosition reports whether the update changes chapter or order.
func (c *Content) MovesPosition(data domain.ContentUpdate) bool {
	return (data.Chapter != nil && *data.Chapter != c.Chapter) ||
		(data.Order != nil && *data.Order != c.Order)
}

func (c *Content) ApplyUpdate(data domain.ContentUpdate) {
	if data.ChapterTitle != nil {
		c.ChapterTitle = *data.ChapterTitle
	}
	if data.Subtitle != nil {
		c.Subtitle = *data.Subtitle
	}
	if data.Chapter != nil {
		c.Chapter = *data.Chapter
	}
	if data.Order != nil {
		c.Order = *data.Order
	}
	if data.Description != nil {
		c.Description = *data.Description
	}
	if data.Video != nil {
		c.Video = *data.Video
	}
	if data.Image != nil {
		c.Image = *data.Image
	}
	if data.Active != nil {
		c.Active = *data.Active
	}
}

func (c *Content) ToDomain() domain.Content {
	return domain.Content{
		ID:           c.ID,
		ChapterTitle: c.ChapterTitle,
		Subtitle:     c.Subtitle,
		Chapter:      c.Chapter,
		Order:        c.Order,
		Description:  c.Description,
		Video:        c.Video,
		Image:        c.Image,
	}
}
