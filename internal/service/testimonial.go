package service

import (
	"context"

	"github.com/pageza/foodies/backend/internal/models"
	"gorm.io/gorm"
)

// Page sizes of the testimonial listing.
const (
	DefaultTestimonialLimit = 1
	MaxTestimonialLimit     = 20
)

// TestimonialService lists user testimonials
type TestimonialService struct {
	db *gorm.DB
}

func NewTestimonialService(db *gorm.DB) *TestimonialService {
	return &TestimonialService{db: db}
}

// ListTestimonials returns testimonials newest first with their author's public
// fields. Testimonials whose author was deleted have a nil Owner.
func (s *TestimonialService) ListTestimonials(ctx context.Context, p Pagination) (*Listing[models.Testimonial], error) {
	p = p.WithMaxLimit(MaxTestimonialLimit)
	db := s.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Testimonial{}).Count(&total).Error; err != nil {
		return nil, storageErr("count testimonials", err)
	}

	items := make([]models.Testimonial, 0)
	if total > 0 {
		err := db.
			Preload("Owner", func(tx *gorm.DB) *gorm.DB {
				return tx.Select("id", "name", "avatar")
			}).
			Order("testimonials.created_at DESC, testimonials.id DESC").
			Limit(p.Limit).
			Offset(p.Offset()).
			Find(&items).Error
		if err != nil {
			return nil, storageErr("list testimonials", err)
		}
	}
	return &Listing[models.Testimonial]{Items: items, Total: total}, nil
}
