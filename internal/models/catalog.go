package models

import "time"

// DefaultCategoryImage is served for categories that were created without an image.
const DefaultCategoryImage = "/images/placeholders/category.jpg"

type Category struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Img       string    `gorm:"size:1000;not null;default:'/images/placeholders/category.jpg'" json:"img,omitempty"`
}

// Area is the cuisine a recipe belongs to, e.g. "French".
type Area struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
}

type Ingredient struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
	Name        string    `gorm:"index;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Img         string    `json:"img,omitempty"`
}
