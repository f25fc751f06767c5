package domain

// Role is the part a user plays in a course besides its creator.
type Role string

const (
	RoleCollab  Role = "collab"
	RoleStudent Role = "student"
)

// Collab is an association between a user and a course.
type Collab struct {
	ID       string `json:"id"`
	CourseID string `json:"course_id"`
	Role     Role   `json:"role"`
	Active   bool   `json:"active"`
}

// IDs returns the user ids of the given associations.
func IDs(collabs []Collab) []string {
	ids := make([]string, 0, len(collabs))
	for _, c := range collabs {
		ids = append(ids, c.ID)
	}
	return ids
}

// NoneFoundFor returns the empty-listing error for a role.
func NoneFoundFor(role Role) error {
	if role == RoleStudent {
		return ErrNoStudentsInCourse
	}
	return ErrNoCollabsInCourse
}
