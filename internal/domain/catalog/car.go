package catalog

import (
	"time"

	"gorm.io/datatypes"
)

// Car is a vehicle listing offered through a consortium plan.
// MonthlyPrice and TotalCredit are display strings ("R$ 1.247"); nothing computes on them.
type Car struct {
	ID           string                     `gorm:"type:varchar(64);primaryKey" json:"id" bson:"id"`
	Name         string                     `gorm:"column:name;not null" json:"name" bson:"name"`
	Model        string                     `gorm:"column:model;not null;index" json:"model" bson:"model"`
	Year         int                        `gorm:"column:year;not null" json:"year" bson:"year"`
	Image        string                     `gorm:"column:image;type:text" json:"image" bson:"image"`
	MonthlyPrice string                     `gorm:"column:monthly_price;not null" json:"monthly_price" bson:"monthly_price"`
	TotalCredit  string                     `gorm:"column:total_credit;not null" json:"total_credit" bson:"total_credit"`
	Installments int                        `gorm:"column:installments;not null" json:"installments" bson:"installments"`
	Highlights   datatypes.JSONSlice[string] `gorm:"column:highlights" json:"highlights" bson:"highlights"`
	Description  string                     `gorm:"column:description;type:text" json:"description" bson:"description"`
	IsActive     bool                       `gorm:"column:is_active;not null;index" json:"is_active" bson:"is_active"`
	CreatedAt    time.Time                  `gorm:"column:created_at;not null;index" json:"created_at" bson:"created_at"`
}

func (Car) TableName() string { return "cars" }

func (c Car) RecordID() string       { return c.ID }
func (c *Car) SetRecordID(id string) { c.ID = id }

// Input is the create payload. A caller-chosen ID is kept when it is free.
type Input struct {
	ID           string   `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	Model        string   `json:"model" yaml:"model"`
	Year         int      `json:"year" yaml:"year"`
	Image        string   `json:"image" yaml:"image"`
	MonthlyPrice string   `json:"monthly_price" yaml:"monthly_price"`
	TotalCredit  string   `json:"total_credit" yaml:"total_credit"`
	Installments int      `json:"installments" yaml:"installments"`
	Highlights   []string `json:"highlights" yaml:"highlights"`
	Description  string   `json:"description" yaml:"description"`
	IsActive     *bool    `json:"is_active" yaml:"is_active"`
}

type Patch struct {
	Name         *string   `json:"name"`
	Model        *string   `json:"model"`
	Year         *int      `json:"year"`
	Image        *string   `json:"image"`
	MonthlyPrice *string   `json:"monthly_price"`
	TotalCredit  *string   `json:"total_credit"`
	Installments *int      `json:"installments"`
	Highlights   *[]string `json:"highlights"`
	Description  *string   `json:"description"`
	IsActive     *bool     `json:"is_active"`
}

func (p Patch) Fields() map[string]any {
	out := map[string]any{}
	if p.Name != nil {
		out["name"] = *p.Name
	}
	if p.Model != nil {
		out["model"] = *p.Model
	}
	if p.Year != nil {
		out["year"] = *p.Year
	}
	if p.Image != nil {
		out["image"] = *p.Image
	}
	if p.MonthlyPrice != nil {
		out["monthly_price"] = *p.MonthlyPrice
	}
	if p.TotalCredit != nil {
		out["total_credit"] = *p.TotalCredit
	}
	if p.Installments != nil {
		out["installments"] = *p.Installments
	}
	if p.Highlights != nil {
		out["highlights"] = datatypes.JSONSlice[string](*p.Highlights)
	}
	if p.Description != nil {
		out["description"] = *p.Description
	}
	if p.IsActive != nil {
		out["is_active"] = *p.IsActive
	}
	return out
}
