package models

import "time"

// Testimonial is a short quote from a user shown on the landing page. The author link
// is cleared when the user is deleted.
type Testimonial struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
	OwnerID     *uint     `gorm:"index" json:"ownerId"`
	Testimonial string    `gorm:"type:text;not null" json:"testimonial"`

	Owner *User `gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL" json:"-"`
}

func (Testimonial) TableName() string {
	return "testimonials"
}
