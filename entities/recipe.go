// File: entities/recipe.go
package entities

import (
	"github.com/google/uuid"
)

type Recipe struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Title       string    `gorm:"size:100;not null" json:"title"`
	Description string    `gorm:"size:500;not null" json:"description"`
	ImageURL    string    `json:"image_url,omitempty"`

	User         *User         `gorm:"foreignKey:UserID" json:"-"`
	Ingredients  []Ingredient  `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients"`
	Instructions []Instruction `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"instructions"`
	Timestamp
}

type Ingredient struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	Quantity string `json:"quantity"`
	RecipeID uint   `gorm:"not null;index" json:"recipe_id"`
}

type Instruction struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	StepNumber  int    `gorm:"not null" json:"step_number"`
	Description string `gorm:"not null" json:"description"`
	RecipeID    uint   `gorm:"not null;index" json:"recipe_id"`
}
