package domain

// SubscriptionTiers is the number of subscription levels a course can require.
const SubscriptionTiers = 3

// Recommendations aggregates the reviews of a course.
type Recommendations struct {
	Recommended int `json:"recommended"`
	Total       int `json:"total"`
}

// Course is the read view of a course.
type Course struct {
	ID                string          `json:"id"`
	CreatorID         string          `json:"creator_id"`
	Name              string          `json:"name"`
	Price             float64         `json:"price"`
	Active            bool            `json:"active"`
	SubscriptionID    int             `json:"subscription_id"`
	Language          string          `json:"language"`
	Country           string          `json:"country"`
	Description       string          `json:"description"`
	Categories        []string        `json:"categories"`
	Recommendations   Recommendations `json:"recommendations"`
	PresentationVideo string          `json:"presentation_video"`
	Image             string          `json:"image"`
	CreatedAt         int64           `json:"created_at"`
	UpdatedAt         int64           `json:"updated_at"`
}

// PaginatedCourses is one page of courses plus the total number of matches.
type PaginatedCourses struct {
	Courses []Course `json:"courses"`
	Count   int64    `json:"count"`
}

type CourseCreate struct {
	Name              string   `json:"name" validate:"required"`
	Price             float64  `json:"price" validate:"gte=0"`
	SubscriptionID    int      `json:"subscription_id" validate:"gte=0,lte=2"`
	Language          string   `json:"language"`
	Country           string   `json:"country"`
	Description       string   `json:"description"`
	Categories        []string `json:"categories"`
	PresentationVideo string   `json:"presentation_video"`
	Image             string   `json:"image"`
}

// CourseUpdate carries a partial update. A nil field is left untouched, so
// zero prices and empty strings are valid new values.
type CourseUpdate struct {
	Name              *string   `json:"name" validate:"omitempty,min=1"`
	Price             *float64  `json:"price" validate:"omitempty,gte=0"`
	SubscriptionID    *int      `json:"subscription_id" validate:"omitempty,gte=0,lte=2"`
	Active            *bool     `json:"active"`
	Language          *string   `json:"language"`
	Country           *string   `json:"country"`
	Description       *string   `json:"description"`
	Categories        *[]string `json:"categories"`
	PresentationVideo *string   `json:"presentation_video"`
	Image             *string   `json:"image"`
}

// CategoryMetric is the number of courses tagged with a category.
type CategoryMetric struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type CategoryMetrics struct {
	Categories []CategoryMetric `json:"categories"`
	Count      int64            `json:"count"`
}

// CourseMetrics is a creation histogram with one bucket per month.
// Year is zero when the histogram spans all time.
type CourseMetrics struct {
	Year   int   `json:"year"`
	Months []int `json:"months"`
}

// SubscriptionMetrics holds the number of courses per subscription tier.
type SubscriptionMetrics struct {
	Subscriptions []int `json:"subscriptions"`
}
