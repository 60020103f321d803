package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageza/foodies/backend/internal/models"
	"github.com/pageza/foodies/backend/internal/service"
)

const anonymousAuthor = "Anonymous"

// TestimonialView is a testimonial with its author's display name
type TestimonialView struct {
	ID          uint      `json:"id"`
	Testimonial string    `json:"testimonial"`
	AuthorName  string    `json:"authorName"`
	CreatedAt   time.Time `json:"createdAt"`
}

type TestimonialHandler struct {
	testimonials service.ITestimonialService
}

func NewTestimonialHandler(testimonials service.ITestimonialService) *TestimonialHandler {
	return &TestimonialHandler{testimonials: testimonials}
}

func (h *TestimonialHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/testimonials", h.ListTestimonials)
}

// ListTestimonials handles GET /testimonials
func (h *TestimonialHandler) ListTestimonials(c *gin.Context) {
	var q PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondStatus(c, http.StatusBadRequest, err.Error())
		return
	}
	p := q.pagination(service.DefaultTestimonialLimit).WithMaxLimit(service.MaxTestimonialLimit)

	listing, err := h.testimonials.ListTestimonials(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}

	views := make([]TestimonialView, len(listing.Items))
	for i, t := range listing.Items {
		views[i] = toTestimonialView(t)
	}
	respond(c, http.StatusOK, "Testimonials retrieved successfully", PageView[TestimonialView]{
		Items:      views,
		Total:      listing.Total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages(listing.Total),
	})
}

func toTestimonialView(t models.Testimonial) TestimonialView {
	author := anonymousAuthor
	if t.Owner != nil && t.Owner.Name != "" {
		author = t.Owner.Name
	}
	return TestimonialView{
		ID:          t.ID,
		Testimonial: t.Testimonial,
		AuthorName:  author,
		CreatedAt:   t.CreatedAt,
	}
}
