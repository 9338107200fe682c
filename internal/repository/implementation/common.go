package implementation

import (
	"workspace-be/internal/pkg/apperror"
	"workspace-be/internal/repository/specification"

	"gorm.io/gorm"
)

func applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// deleteResult maps a delete that matched nothing to NotFound.
func deleteResult(res *gorm.DB, op, what string, id interface{}) error {
	if res.Error != nil {
		return apperror.StorageFailure(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("%s %v not found", what, id)
	}
	return nil
}

func deleteAll(db *gorm.DB, value interface{}, op string, specs ...specification.Specification) (int64, error) {
	res := applySpecifications(db, specs...).Delete(value)
	if res.Error != nil {
		return 0, apperror.StorageFailure(op, res.Error)
	}
	return res.RowsAffected, nil
}
