package repository

import (
	"strings"

	"coursecatalog/backend/domain"

	"gorm.io/gorm"
)

// associationExists is left open so callers can append more predicates on
// collabs before closing the parenthesis.
const associationExists = "EXISTS (SELECT 1 FROM collabs WHERE collabs.course_id = courses.id AND collabs.user_id = ? AND collabs.role = ?"

// filterScopes turns a CourseFilter into gorm scopes combined with AND.
func filterScopes(f domain.CourseFilter) []func(*gorm.DB) *gorm.DB {
	scopes := []func(*gorm.DB) *gorm.DB{activeScope(f)}

	if f.Name != nil {
		scopes = append(scopes, equals("courses.name", *f.Name))
	}
	if f.CreatorID != nil {
		scopes = append(scopes, equals("courses.creator_id", *f.CreatorID))
	}
	if f.SubscriptionID != nil {
		scopes = append(scopes, equals("courses.subscription_id", *f.SubscriptionID))
	}
	if f.Language != nil {
		scopes = append(scopes, equals("courses.language", *f.Language))
	}
	if f.Country != nil {
		scopes = append(scopes, equals("courses.country", *f.Country))
	}
	if f.CollabID != nil {
		scopes = append(scopes, withAssociation(*f.CollabID, domain.RoleCollab, !f.InactiveCollab))
	}
	if f.StudentID != nil {
		scopes = append(scopes, withAssociation(*f.StudentID, domain.RoleStudent, !f.InactiveCollab))
	}
	if f.Category != nil {
		scopes = append(scopes, withCategory(*f.Category))
	}
	if f.IgnoreFree() {
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB { return db.Where("courses.price > ?", 0) })
	}
	if f.IgnorePaid() {
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB { return db.Where("courses.price = ?", 0) })
	}
	if f.Text != nil && *f.Text != "" {
		scopes = append(scopes, matchingText(*f.Text))
	}
	return scopes
}

// activeScope restricts to active courses unless ids were given or inactive
// courses were asked for.
func activeScope(f domain.CourseFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.IDs != nil {
			return db.Where("courses.id IN ?", f.IDs)
		}
		if f.InactiveCourses {
			return db
		}
		return db.Where("courses.active = ?", true)
	}
}

func equals(column string, value interface{}) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" = ?", value)
	}
}

func withAssociation(userID string, role domain.Role, activeOnly bool) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if activeOnly {
			return db.Where(associationExists+" AND collabs.active = ?)", userID, string(role), true)
		}
		return db.Where(associationExists+")", userID, string(role))
	}
}

func withCategory(label string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("EXISTS (SELECT 1 FROM categories WHERE categories.course_id = courses.id AND categories.category = ?)", label)
	}
}

func matchingText(text string) func(*gorm.DB) *gorm.DB {
	pattern := "%" + strings.ToLower(text) + "%"
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER(courses.name) LIKE ? OR LOWER(courses.description) LIKE ?", pattern, pattern)
	}
}

func paginate(p domain.Page) func(*gorm.DB) *gorm.DB {
	p = p.Normalize()
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(p.Skip()).Limit(p.Limit)
	}
}
