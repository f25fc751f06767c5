package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// UnitOfWork starts transactions for the command side.
type UnitOfWork interface {
	Begin(ctx context.Context) (Tx, error)
}

// Tx is a CourseRepository bound to one open transaction. It must end in
// Commit or Rollback; Rollback after Commit does nothing.
type Tx interface {
	CourseRepository
	Commit() error
	Rollback() error
}

type gormUnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &gormUnitOfWork{db: db}
}

func (u *gormUnitOfWork) Begin(ctx context.Context) (Tx, error) {
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, errors.Wrap(tx.Error, "begin transaction")
	}
	return &gormTx{courseRepository: courseRepository{db: tx}}, nil
}

type gormTx struct {
	courseRepository
	done bool
}

func (t *gormTx) Commit() error {
	if t.done {
		return errors.New("transaction already finished")
	}
	t.done = true
	return errors.Wrap(t.db.Commit().Error, "commit")
}

func (t *gormTx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	return errors.Wrap(t.db.Rollback().Error, "rollback")
}
