package usecase

import (
	"context"

	"coursecatalog/backend/clients"
	"coursecatalog/backend/domain"
	"coursecatalog/backend/repository"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type CourseCommandUseCase interface {
	CreateCourse(ctx context.Context, creatorID string, data domain.CourseCreate) (*domain.Course, error)
	UpdateCourse(ctx context.Context, id string, data domain.CourseUpdate) (*domain.Course, error)
	DeleteCourse(ctx context.Context, id string) error
	// CancelCourse deletes a course once the creator's wallet covers the
	// cancellation fee and the enrollments were notified.
	CancelCourse(ctx context.Context, id string) error

	AddCollaborator(ctx context.Context, courseID, userID string) (*domain.Collab, error)
	DeactivateCollaborator(ctx context.Context, courseID, userID string) error
	AddStudent(ctx context.Context, courseID, userID string) (*domain.Collab, error)
	DeactivateStudent(ctx context.Context, courseID, userID string) error

	AddContent(ctx context.Context, courseID string, data domain.ContentCreate) (*domain.Content, error)
	UpdateContent(ctx context.Context, courseID, contentID string, data domain.ContentUpdate) (*domain.Content, error)

	AddReview(ctx context.Context, courseID string, data domain.ReviewCreate) (*domain.Review, error)

	UserInvolved(ctx context.Context, courseID, userID string) (bool, error)
}

type courseCommandUseCase struct {
	uow           repository.UnitOfWork
	queries       repository.CourseQueryService
	payments      clients.PaymentsService
	subscriptions clients.SubscriptionsService
	log           *logrus.Logger
}

func NewCourseCommandUseCase(
	uow repository.UnitOfWork,
	queries repository.CourseQueryService,
	payments clients.PaymentsService,
	subscriptions clients.SubscriptionsService,
	log *logrus.Logger,
) CourseCommandUseCase {
	return &courseCommandUseCase{
		uow:           uow,
		queries:       queries,
		payments:      payments,
		subscriptions: subscriptions,
		log:           log,
	}
}

// inTx runs fn in a fresh unit of work, committing on success and rolling
// back before returning any error.
func (u *courseCommandUseCase) inTx(ctx context.Context, fn func(tx repository.Tx) error) error {
	tx, err := u.uow.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			u.log.WithError(rbErr).Error("rollback failed")
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return err
	}
	return nil
}

func requireCourse(tx repository.Tx, id string) (*domain.Course, error) {
	course, err := tx.FindByID(id)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, domain.ErrCourseNotFound
	}
	return course, nil
}

func (u *courseCommandUseCase) CreateCourse(ctx context.Context, creatorID string, data domain.CourseCreate) (*domain.Course, error) {
	var created *domain.Course
	err := u.inTx(ctx, func(tx repository.Tx) error {
		existing, err := tx.FindByName(data.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrCourseNameAlreadyExists
		}

		id, err := tx.Create(creatorID, data)
		if err != nil {
			return err
		}
		created, err = requireCourse(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	u.log.WithFields(logrus.Fields{"course_id": created.ID, "creator_id": creatorID}).Info("course created")
	return created, nil
}

func (u *courseCommandUseCase) UpdateCourse(ctx context.Context, id string, data domain.CourseUpdate) (*domain.Course, error) {
	var updated *domain.Course
	err := u.inTx(ctx, func(tx repository.Tx) error {
		existing, err := requireCourse(tx, id)
		if err != nil {
			return err
		}

		if data.Name != nil && *data.Name != existing.Name {
			clash, err := tx.FindByName(*data.Name)
			if err != nil {
				return err
			}
			if clash != nil {
				return domain.ErrCourseNameAlreadyExists
			}
		}

		if err := tx.Update(id, data); err != nil {
			return err
		}
		updated, err = requireCourse(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (u *courseCommandUseCase) DeleteCourse(ctx context.Context, id string) error {
	err := u.inTx(ctx, func(tx repository.Tx) error {
		if _, err := requireCourse(tx, id); err != nil {
			return err
		}
		return tx.DeleteByID(id)
	})
	if err != nil {
		return err
	}

	u.log.WithField("course_id", id).Info("course deleted")
	return nil
}

func (u *courseCommandUseCase) CancelCourse(ctx context.Context, id string) error {
	course, err := u.queries.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if course == nil {
		return domain.ErrCourseNotFound
	}

	balance, err := u.payments.WalletBalance(course.CreatorID)
	if err != nil {
		return errors.Wrap(err, "wallet balance")
	}
	fee, err := u.subscriptions.CancelFee(*course)
	if err != nil {
		return errors.Wrap(err, "cancel fee")
	}
	u.log.WithFields(logrus.Fields{"course_id": id, "balance": balance, "fee": fee}).Info("cancellation requested")
	if balance <= fee {
		return domain.ErrNotEnoughFunds
	}

	if err := u.subscriptions.NotifyCancellation(*course); err != nil {
		return errors.Wrap(err, "notify enrollments")
	}
	return u.DeleteCourse(ctx, id)
}

func (u *courseCommandUseCase) AddCollaborator(ctx context.Context, courseID, userID string) (*domain.Collab, error) {
	return u.addUser(ctx, courseID, userID, domain.RoleCollab)
}

func (u *courseCommandUseCase) AddStudent(ctx context.Context, courseID, userID string) (*domain.Collab, error) {
	return u.addUser(ctx, courseID, userID, domain.RoleStudent)
}

func (u *courseCommandUseCase) addUser(ctx context.Context, courseID, userID string, role domain.Role) (*domain.Collab, error) {
	var added *domain.Collab
	err := u.inTx(ctx, func(tx repository.Tx) error {
		if _, err := requireCourse(tx, courseID); err != nil {
			return err
		}
		var err error
		added, err = tx.AddCollaborator(courseID, userID, role)
		return err
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

func (u *courseCommandUseCase) DeactivateCollaborator(ctx context.Context, courseID, userID string) error {
	return u.deactivateUser(ctx, courseID, userID, domain.RoleCollab)
}

func (u *courseCommandUseCase) DeactivateStudent(ctx context.Context, courseID, userID string) error {
	return u.deactivateUser(ctx, courseID, userID, domain.RoleStudent)
}

func (u *courseCommandUseCase) deactivateUser(ctx context.Context, courseID, userID string, role domain.Role) error {
	return u.inTx(ctx, func(tx repository.Tx) error {
		if _, err := requireCourse(tx, courseID); err != nil {
			return err
		}
		return tx.DeactivateCollaborator(courseID, userID, role)
	})
}

func (u *courseCommandUseCase) AddContent(ctx context.Context, courseID string, data domain.ContentCreate) (*domain.Content, error) {
	var added *domain.Content
	err := u.inTx(ctx, func(tx repository.Tx) error {
		if _, err := requireCourse(tx, courseID); err != nil {
			return err
		}
		var err error
		added, err = tx.AddContent(courseID, data)
		return err
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

func (u *courseCommandUseCase) UpdateContent(ctx context.Context, courseID, contentID string, data domain.ContentUpdate) (*domain.Content, error) {
	var updated *domain.Content
	err := u.inTx(ctx, func(tx repository.Tx) error {
		if _, err := requireCourse(tx, courseID); err != nil {
			return err
		}
		var err error
		updated, err = tx.UpdateContent(courseID, contentID, data)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (u *courseCommandUseCase) AddReview(ctx context.Context, courseID string, data domain.ReviewCreate) (*domain.Review, error) {
	var added *domain.Review
	err := u.inTx(ctx, func(tx repository.Tx) error {
		if _, err := requireCourse(tx, courseID); err != nil {
			return err
		}
		var err error
		added, err = tx.AddReview(courseID, data)
		return err
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

func (u *courseCommandUseCase) UserInvolved(ctx context.Context, courseID, userID string) (bool, error) {
	var involved bool
	err := u.inTx(ctx, func(tx repository.Tx) error {
		var err error
		involved, err = tx.UserInvolved(courseID, userID)
		return err
	})
	return involved, err
}
