package domain

// Review is a user's opinion of a course. ID is the reviewing user.
type Review struct {
	ID          string `json:"id"`
	CourseID    string `json:"course_id"`
	Recommended bool   `json:"recommended"`
	Review      string `json:"review"`
	Date        int64  `json:"date"`
}

type ReviewCreate struct {
	ID          string `json:"id" validate:"required"`
	Recommended bool   `json:"recommended"`
	Review      string `json:"review"`
}
