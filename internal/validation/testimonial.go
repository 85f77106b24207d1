package validation

import (
	"strings"

	"github.com/vwconsorcio/consorcio-backend/internal/domain/content"
	"github.com/vwconsorcio/consorcio-backend/internal/pkg/pointers"
)

const (
	minRating = 1
	maxRating = 5
)

func checkRating(v *violations, rating int) {
	if rating < minRating || rating > maxRating {
		v.add("rating", "must be between 1 and 5")
	}
}

// Testimonial rejects out-of-range ratings rather than clamping them.
// months_to_contemplate only carries meaning for contemplated customers and is zeroed otherwise.
func Testimonial(in content.TestimonialInput) (content.Testimonial, error) {
	v := newViolations("testimonial")
	out := content.Testimonial{
		ID:           strings.TrimSpace(in.ID),
		Name:         v.required("name", in.Name),
		City:         strings.TrimSpace(in.City),
		Car:          strings.TrimSpace(in.Car),
		Image:        strings.TrimSpace(in.Image),
		Testimonial:  v.required("testimonial", in.Testimonial),
		Rating:       in.Rating,
		Contemplated: in.Contemplated,
		IsActive:     pointers.ValueOr(in.IsActive, true),
	}
	checkRating(v, in.Rating)
	if in.Contemplated {
		if in.MonthsToContemplate < 0 {
			v.add("months_to_contemplate", "must not be negative")
		}
		out.MonthsToContemplate = in.MonthsToContemplate
	}
	return out, v.err()
}

// TestimonialPatch checks a partial update against the stored record, since the
// months rule depends on the effective contemplated flag.
func TestimonialPatch(p content.TestimonialPatch, current content.Testimonial) (content.TestimonialPatch, error) {
	v := newViolations("testimonial")
	out := content.TestimonialPatch{
		Name:                v.requiredPtr("name", p.Name),
		City:                trimPtr(p.City),
		Car:                 trimPtr(p.Car),
		Image:               trimPtr(p.Image),
		Testimonial:         v.requiredPtr("testimonial", p.Testimonial),
		Rating:              p.Rating,
		Contemplated:        p.Contemplated,
		MonthsToContemplate: p.MonthsToContemplate,
		IsActive:            p.IsActive,
	}
	if p.Rating != nil {
		checkRating(v, *p.Rating)
	}
	if pointers.ValueOr(p.Contemplated, current.Contemplated) {
		if p.MonthsToContemplate != nil && *p.MonthsToContemplate < 0 {
			v.add("months_to_contemplate", "must not be negative")
		}
	} else if p.Contemplated != nil || p.MonthsToContemplate != nil {
		out.MonthsToContemplate = pointers.Ptr(0)
	}
	return out, v.err()
}
