package specification

import "gorm.io/gorm"

// Specification is a composable query fragment applied to a gorm chain.
// Repositories accept any number of them and fold them into the query.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
