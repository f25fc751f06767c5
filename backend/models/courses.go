package models

import (
	"coursecatalog/backend/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Course struct {
	ID                string  `gorm:"primaryKey;size:36"`
	CreatorID         string  `gorm:"index;not null"`
	Name              string  `gorm:"uniqueIndex;not null"`
	Price             float64 `gorm:"not null"`
	Active            bool    `gorm:"not null"`
	SubscriptionID    int     `gorm:"index;not null"`
	Language          string  `gorm:"index"`
	Country           string  `gorm:"index"`
	Description       string  `gorm:"type:text"`
	PresentationVideo string
	Image             string
	CreatedAt         int64 `gorm:"autoCreateTime:milli;index"`
	UpdatedAt         int64 `gorm:"autoUpdateTime:milli;index"`

	Categories []Category `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	Collabs    []Collab   `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	Contents   []Content  `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	Reviews    []Review   `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

type Category struct {
	ID       string `gorm:"primaryKey;size:36"`
	CourseID string `gorm:"index;not null;size:36"`
	Category string `gorm:"index;not null"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// NewCourse builds the row for a freshly created, active course.
func NewCourse(id, creatorID string, data domain.CourseCreate) *Course {
	return &Course{
		ID:                id,
		CreatorID:         creatorID,
		Name:              data.Name,
		Price:             data.Price,
		Active:            true,
		SubscriptionID:    data.SubscriptionID,
		Language:          data.Language,
		Country:           data.Country,
		Description:       data.Description,
		PresentationVideo: data.PresentationVideo,
		Image:             data.Image,
		Categories:        NewCategories(id, data.Categories),
	}
}

func NewCategories(courseID string, labels []string) []Category {
	categories := make([]Category, 0, len(labels))
	for _, label := range labels {
		categories = append(categories, Category{CourseID: courseID, Category: label})
	}
	return categories
}

// CategoryLabels returns the labels of the loaded categories.
func (c *Course) CategoryLabels() []string {
	labels := make([]string, 0, len(c.Categories))
	for _, category := range c.Categories {
		labels = append(labels, category.Category)
	}
	return labels
}

// Recommendations computes the aggregate from the loaded reviews.
func (c *Course) Recommendations() domain.Recommendations {
	r := domain.Recommendations{Total: len(c.Reviews)}
	for _, review := range c.Reviews {
		if review.Recommended {
			r.Recommended++
		}
	}
	return r
}

// ApplyUpdate merges the present fields of an update into the row. Category
// replacement is handled by the caller since it touches another table.
func (c *Course) ApplyUpdate(data domain.CourseUpdate) {
	if data.Name != nil {
		c.Name = *data.Name
	}
	if data.Price != nil {
		c.Price = *data.Price
	}
	if data.SubscriptionID != nil {
		c.SubscriptionID = *data.SubscriptionID
	}
	if data.Active != nil {
		c.Active = *data.Active
	}
	if data.Language != nil {
		c.Language = *data.Language
	}
	if data.Country != nil {
		c.Country = *data.Country
	}
	if data.Description != nil {
		c.Description = *data.Description
	}
	if data.PresentationVideo != nil {
		c.PresentationVideo = *data.PresentationVideo
	}
	if data.Image != nil {
		c.Image = *data.Image
	}
}

// ToDomain expects Categories and Reviews to be preloaded.
func (c *Course) ToDomain() domain.Course {
	return domain.Course{
		ID:                c.ID,
		CreatorID:         c.CreatorID,
		Name:              c.Name,
		Price:             c.Price,
		Active:            c.Active,
		SubscriptionID:    c.SubscriptionID,
		Language:          c.Language,
		Country:           c.Country,
		Description:       c.Description,
		Categories:        c.CategoryLabels(),
		Recommendations:   c.Recommendations(),
		PresentationVideo: c.PresentationVideo,
		Image:             c.Image,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

func CoursesToDomain(rows []Course) []domain.Course {
	courses := make([]domain.Course, 0, len(rows))
	for i := range rows {
		courses = append(courses, rows[i].ToDomain())
	}
	return courses
}
