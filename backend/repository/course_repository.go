package repository

import (
	"coursecatalog/backend/domain"
	"coursecatalog/backend/models"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CourseRepository mutates courses and everything a course owns. All
// methods run on the transaction of the unit of work that created it.
type CourseRepository interface {
	Create(creatorID string, data domain.CourseCreate) (string, error)
	// FindByID and FindByName return nil without error when nothing matches.
	FindByID(id string) (*domain.Course, error)
	FindByName(name string) (*domain.Course, error)
	Update(id string, data domain.CourseUpdate) error
	DeleteByID(id string) error

	AddCollaborator(courseID, userID string, role domain.Role) (*domain.Collab, error)
	DeactivateCollaborator(courseID, userID string, role domain.Role) error

	AddContent(courseID string, data domain.ContentCreate) (*domain.Content, error)
	UpdateContent(courseID, contentID string, data domain.ContentUpdate) (*domain.Content, error)

	AddReview(courseID string, data domain.ReviewCreate) (*domain.Review, error)

	// UserInvolved reports whether the user created the course or actively
	// collaborates on it.
	UserInvolved(courseID, userID string) (bool, error)
}

type courseRepository struct {
	db *gorm.DB
}

func (r *courseRepository) Create(creatorID string, data domain.CourseCreate) (string, error) {
	row := models.NewCourse(uuid.NewString(), creatorID, data)
	if err := r.db.Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", domain.ErrCourseNameAlreadyExists
		}
		return "", errors.Wrap(err, "create course")
	}
	return row.ID, nil
}

func (r *courseRepository) FindByID(id string) (*domain.Course, error) {
	return r.findOne("id = ?", id)
}

func (r *courseRepository) FindByName(name string) (*domain.Course, error) {
	return r.findOne("name = ?", name)
}

func (r *courseRepository) findOne(query string, arg interface{}) (*domain.Course, error) {
	var row models.Course
	err := r.db.Preload("Categories").Preload("Reviews").Where(query, arg).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "find course")
	}
	course := row.ToDomain()
	return &course, nil
}

func (r *courseRepository) Update(id string, data domain.CourseUpdate) error {
	var row models.Course
	err := r.db.Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrCourseNotFound
	}
	if err != nil {
		return errors.Wrap(err, "load course")
	}

	row.ApplyUpdate(data)
	if err := r.db.Omit(clause.Associations).Save(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrCourseNameAlreadyExists
		}
		return errors.Wrap(err, "save course")
	}

	if data.Categories == nil {
		return nil
	}
	if err := r.db.Where("course_id = ?", id).Delete(&models.Category{}).Error; err != nil {
		return errors.Wrap(err, "clear categories")
	}
	categories := models.NewCategories(id, *data.Categories)
	if len(categories) == 0 {
		return nil
	}
	return errors.Wrap(r.db.Create(&categories).Error, "replace categories")
}

func (r *courseRepository) DeleteByID(id string) error {
	for _, owned := range []interface{}{&models.Category{}, &models.Collab{}, &models.Content{}, &models.Review{}} {
		if err := r.db.Where("course_id = ?", id).Delete(owned).Error; err != nil {
			return errors.Wrap(err, "delete course children")
		}
	}

	result := r.db.Where("id = ?", id).Delete(&models.Course{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "delete course")
	}
	if result.RowsAffected == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}

func (r *courseRepository) AddCollaborator(courseID, userID string, role domain.Role) (*domain.Collab, error) {
	var active int64
	err := r.db.Model(&models.Collab{}).
		Where("course_id = ? AND user_id = ? AND role = ? AND active = ?", courseID, userID, string(role), true).
		Count(&active).Error
	if err != nil {
		return nil, errors.Wrap(err, "count associations")
	}
	if active > 0 {
		return nil, domain.ErrUserAlreadyInCourse
	}

	row := models.NewCollab(courseID, userID, role)
	if err := r.db.Create(row).Error; err != nil {
		return nil, errors.Wrap(err, "add association")
	}
	collab := row.ToDomain()
	return &collab, nil
}

func (r *courseRepository) DeactivateCollaborator(courseID, userID string, role domain.Role) error {
	err := r.db.Model(&models.Collab{}).
		Where("course_id = ? AND user_id = ? AND role = ?", courseID, userID, string(role)).
		Update("active", false).Error
	return errors.Wrap(err, "deactivate association")
}

func (r *courseRepository) AddContent(courseID string, data domain.ContentCreate) (*domain.Content, error) {
	taken, err := r.positionTaken(courseID, data.Chapter, data.Order, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrChapterAlreadyInCourse
	}

	row := models.NewContent(courseID, data)
	if err := r.db.Create(row).Error; err != nil {
		return nil, errors.Wrap(err, "add content")
	}
	content := row.ToDomain()
	return &content, nil
}

func (r *courseRepository) UpdateContent(courseID, contentID string, data domain.ContentUpdate) (*domain.Content, error) {
	var row models.Content
	err := r.db.Where("id = ? AND course_id = ?", contentID, courseID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrContentNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "load content")
	}

	if row.MovesPosition(data) {
		chapter, order := row.Chapter, row.Order
		if data.Chapter != nil {
			chapter = *data.Chapter
		}
		if data.Order != nil {
			order = *data.Order
		}
		taken, err := r.positionTaken(courseID, chapter, order, row.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrChapterAlreadyInCourse
		}
	}

	row.ApplyUpdate(data)
	if err := r.db.Save(&row).Error; err != nil {
		return nil, errors.Wrap(err, "save content")
	}
	content := row.ToDomain()
	return &content, nil
}

// positionTaken checks (chapter, order) against every item of the course,
// active or not, since the unique index covers them all.
func (r *courseRepository) positionTaken(courseID string, chapter, order int, exceptID string) (bool, error) {
	q := r.db.Model(&models.Content{}).
		Where("course_id = ? AND chapter = ? AND order_number = ?", courseID, chapter, order)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, errors.Wrap(err, "check content position")
	}
	return n > 0, nil
}

func (r *courseRepository) AddReview(courseID string, data domain.ReviewCreate) (*domain.Review, error) {
	var n int64
	err := r.db.Model(&models.Review{}).
		Where("course_id = ? AND user_id = ?", courseID, data.ID).
		Count(&n).Error
	if err != nil {
		return nil, errors.Wrap(err, "count reviews")
	}
	if n > 0 {
		return nil, domain.ErrUserAlreadyReviewedCourse
	}

	row := models.NewReview(courseID, data)
	if err := r.db.Create(row).Error; err != nil {
		return nil, errors.Wrap(err, "add review")
	}
	review := row.ToDomain()
	return &review, nil
}

func (r *courseRepository) UserInvolved(courseID, userID string) (bool, error) {
	var n int64
	err := r.db.Model(&models.Course{}).
		Where("id = ?", courseID).
		Where("creator_id = ? OR "+associationExists+" AND collabs.active = ?)", userID, userID, string(domain.RoleCollab), true).
		Count(&n).Error
	if err != nil {
		return false, errors.Wrap(err, "check involvement")
	}
	return n > 0, nil
}
