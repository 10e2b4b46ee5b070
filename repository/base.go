package repository

import (
	"gorm.io/gorm"
)

// Generic CRUD helpers shared by the entity repositories. Every helper
// takes the handle to run on, so callers pass either the root db or a
// transaction.

func FindByID[T any](db *gorm.DB, id uint, preloads ...string) (*T, error) {
	var out T
	q := db
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if err := q.First(&out, id).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func FindOne[T any](db *gorm.DB, query any, args ...any) (*T, error) {
	var out T
	if err := db.Where(query, args...).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func Create[T any](db *gorm.DB, v *T) error {
	return db.Create(v).Error
}

// UpdateFields updates the named columns and reports affected rows.
func UpdateFields[T any](db *gorm.DB, id uint, fields map[string]any) (int64, error) {
	var model T
	res := db.Model(&model).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

func Delete[T any](db *gorm.DB, id uint) (int64, error) {
	var model T
	res := db.Delete(&model, id)
	return res.RowsAffected, res.Error
}

func Exists[T any](db *gorm.DB, query any, args ...any) (bool, error) {
	var model T
	var n int64
	if err := db.Model(&model).Where(query, args...).Limit(1).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// Page is a normalised page/limit pair.
type Page struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func NewPage(page, limit int) Page {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return Page{Page: page, Limit: limit}
}

func (p Page) Offset() int { return (p.Page - 1) * p.Limit }

func Paginate(p Page) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(p.Offset()).Limit(p.Limit)
	}
}
