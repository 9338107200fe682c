package scope

import "gorm.io/gorm"

func OrderByCreatedDesc(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}

func OrderByCreatedAsc(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

func OrderByIndexAsc(db *gorm.DB) *gorm.DB {
	return db.Order("order_index ASC")
}

func OrderByNameAsc(db *gorm.DB) *gorm.DB {
	return db.Order("name ASC")
}

func OrderByStartAsc(db *gorm.DB) *gorm.DB {
	return db.Order("start_ts ASC")
}
