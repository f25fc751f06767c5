package domain

import "github.com/pkg/errors"

// Kind classifies a domain error for translation at the HTTP boundary.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindConflict
	KindForbidden
)

// Error is a non-retryable failure caused by the request itself.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func notFound(msg string) *Error  { return &Error{Kind: KindNotFound, Message: msg} }
func conflict(msg string) *Error  { return &Error{Kind: KindConflict, Message: msg} }
func forbidden(msg string) *Error { return &Error{Kind: KindForbidden, Message: msg} }

var (
	ErrCourseNotFound     = notFound("The course you specified does not exist.")
	ErrCategoriesNotFound = notFound("No categories were found.")
	ErrContentNotFound    = notFound("The content you specified does not exist.")
	ErrReviewsNotFound    = notFound("The course you specified has no reviews.")
	ErrNoCollabsInCourse  = notFound("The course you specified has no collaborators working.")
	ErrNoStudentsInCourse = notFound("The course you specified has no active students.")

	ErrCourseNameAlreadyExists   = conflict("A course with the name you specified already exists.")
	ErrUserAlreadyInCourse       = conflict("The course you specified already has an active user with that id.")
	ErrChapterAlreadyInCourse    = conflict("The course you specified already has content with the chapter you specified.")
	ErrUserAlreadyReviewedCourse = conflict("User has reviewed this course already.")

	ErrUserIsNotCreator = forbidden("User is not the creator of the course you specified.")
	ErrNotEnoughFunds   = forbidden("Creator does not have enough funds to cancel course.")
)

// IsNoneFound reports whether err is one of the "empty listing" signals that
// list endpoints answer with an empty collection.
func IsNoneFound(err error) bool {
	for _, target := range []error{ErrCategoriesNotFound, ErrContentNotFound, ErrReviewsNotFound, ErrNoCollabsInCourse, ErrNoStudentsInCourse} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
