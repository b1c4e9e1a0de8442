package migration

import (
	"Recipe-Sharing/entities"
	"fmt"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.User{}); err != nil {
		return fmt.Errorf("error migrating user database: %w", err)
	}
	if err := db.AutoMigrate(&entities.Recipe{}); err != nil {
		return fmt.Errorf("error migrating recipe database: %w", err)
	}
	if err := db.AutoMigrate(&entities.Ingredient{}, &entities.Instruction{}); err != nil {
		return fmt.Errorf("error migrating recipe children database: %w", err)
	}

	return nil
}
