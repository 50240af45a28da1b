package specification

import "gorm.io/gorm"

// ByScope filters rows by the (course, cycle, section) triple that
// partitions all course content.
type ByScope struct {
	Course  string
	Cycle   string
	Section string
}

func (s ByScope) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("course = ? AND cycle = ? AND section = ?", s.Course, s.Cycle, s.Section)
}

// ByStatus filters documents by lifecycle status.
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// ByCategory filters course updates by category.
type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}
