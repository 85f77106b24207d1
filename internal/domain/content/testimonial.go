package content

import "time"

// Testimonial is a customer quote shown on the landing page.
type Testimonial struct {
	ID                  string    `gorm:"type:varchar(64);primaryKey" json:"id" bson:"id"`
	Name                string    `gorm:"column:name;not null" json:"name" bson:"name"`
	City                string    `gorm:"column:city" json:"city" bson:"city"`
	Car                 string    `gorm:"column:car" json:"car" bson:"car"`
	Image               string    `gorm:"column:image;type:text" json:"image" bson:"image"`
	Testimonial         string    `gorm:"column:testimonial;type:text;not null" json:"testimonial" bson:"testimonial"`
	Rating              int       `gorm:"column:rating;not null" json:"rating" bson:"rating"`
	Contemplated        bool      `gorm:"column:contemplated;not null" json:"contemplated" bson:"contemplated"`
	MonthsToContemplate int       `gorm:"column:months_to_contemplate;not null" json:"months_to_contemplate" bson:"months_to_contemplate"`
	IsActive            bool      `gorm:"column:is_active;not null;index" json:"is_active" bson:"is_active"`
	CreatedAt           time.Time `gorm:"column:created_at;not null;index" json:"created_at" bson:"created_at"`
}

func (Testimonial) TableName() string { return "testimonials" }

func (t Testimonial) RecordID() string       { return t.ID }
func (t *Testimonial) SetRecordID(id string) { t.ID = id }

type TestimonialInput struct {
	ID                  string `json:"id" yaml:"id"`
	Name                string `json:"name" yaml:"name"`
	City                string `json:"city" yaml:"city"`
	Car                 string `json:"car" yaml:"car"`
	Image               string `json:"image" yaml:"image"`
	Testimonial         string `json:"testimonial" yaml:"testimonial"`
	Rating              int    `json:"rating" yaml:"rating"`
	Contemplated        bool   `json:"contemplated" yaml:"contemplated"`
	MonthsToContemplate int    `json:"months_to_contemplate" yaml:"months_to_contemplate"`
	IsActive            *bool  `json:"is_active" yaml:"is_active"`
}

type TestimonialPatch struct {
	Name                *string `json:"name"`
	City                *string `json:"city"`
	Car                 *string `json:"car"`
	Image               *string `json:"image"`
	Testimonial         *string `json:"testimonial"`
	Rating              *int    `json:"rating"`
	Contemplated        *bool   `json:"contemplated"`
	MonthsToContemplate *int    `json:"months_to_contemplate"`
	IsActive            *bool   `json:"is_active"`
}

func (p TestimonialPatch) Fields() map[string]any {
	out := map[string]any{}
	if p.Name != nil {
		out["name"] = *p.Name
	}
	if p.City != nil {
		out["city"] = *p.City
	}
	if p.Car != nil {
		out["car"] = *p.Car
	}
	if p.Image != nil {
		out["image"] = *p.Image
	}
	if p.Testimonial != nil {
		out["testimonial"] = *p.Testimonial
	}
	if p.Rating != nil {
		out["rating"] = *p.Rating
	}
	if p.Contemplated != nil {
		out["contemplated"] = *p.Contemplated
	}
	if p.MonthsToContemplate != nil {
		out["months_to_contemplate"] = *p.MonthsToContemplate
	}
	if p.IsActive != nil {
		out["is_active"] = *p.IsActive
	}
	return out
}
