package postgres

import (
	"vigil/internal/errors"
	"vigil/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// Migrate creates or updates the tables backing users, notifications and read states.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.UserModel{},
		&model.NotificationModel{},
		&model.NotificationReadStateModel{},
	); err != nil {
		return errors.Wrap(err, "failed to migrate schema")
	}

	return nil
}
