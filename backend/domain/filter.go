package domain

const (
	DefaultLimit       = 50
	DefaultMetricLimit = 10
)

// Page selects a window of results. Offset counts pages of Limit items,
// not rows.
type Page struct {
	Limit  int
	Offset int
}

// Normalize replaces out-of-range values with defaults.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// Skip is the number of rows before the page starts.
func (p Page) Skip() int {
	return p.Limit * p.Offset
}

// CourseFilter narrows a course listing. Every set field adds a predicate and
// predicates combine with AND.
type CourseFilter struct {
	// IDs restricts the result to these courses and lifts the default
	// active-only restriction.
	IDs             []string
	Name            *string
	CreatorID       *string
	CollabID        *string
	StudentID       *string
	SubscriptionID  *int
	InactiveCourses bool
	// InactiveCollab also matches deactivated associations for CollabID
	// and StudentID.
	InactiveCollab bool
	Category       *string
	Language       *string
	Country        *string
	// Free and Paid select price classes; neither set means both.
	Free bool
	Paid bool
	// Text is matched case-insensitively against name or description.
	Text *string
	Page Page
}

// IgnoreFree reports whether free courses are excluded.
func (f CourseFilter) IgnoreFree() bool {
	return f.Paid && !f.Free
}

// IgnorePaid reports whether paid courses are excluded.
func (f CourseFilter) IgnorePaid() bool {
	return f.Free && !f.Paid
}
