package leads

import (
	"strings"
	"time"
)

const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusConverted = "converted"
)

const (
	SourceHeroForm       = "hero-form"
	SourceCarInterest    = "car-interest"
	SourceBlogInterest   = "blog-interest"
	SourceWhatsAppDirect = "whatsapp-direct"
	// SourceUnspecified labels leads whose origin was missing or unrecognized.
	SourceUnspecified = "unspecified"
)

// Statuses lists every lead status in pipeline order.
var Statuses = []string{StatusNew, StatusContacted, StatusConverted}

// Sources lists the capture points the site knows about.
var Sources = []string{SourceHeroForm, SourceCarInterest, SourceBlogInterest, SourceWhatsAppDirect}

func IsStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

func IsKnownSource(s string) bool {
	for _, v := range Sources {
		if v == s {
			return true
		}
	}
	return false
}

// NormalizeSource maps anything outside Sources to SourceUnspecified.
func NormalizeSource(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if IsKnownSource(s) {
		return s
	}
	return SourceUnspecified
}

// Lead is a contact request submitted through one of the site's forms.
type Lead struct {
	ID        string    `gorm:"type:varchar(64);primaryKey" json:"id" bson:"id"`
	Name      string    `gorm:"column:name;not null" json:"name" bson:"name"`
	WhatsApp  string    `gorm:"column:whatsapp;not null" json:"whatsapp" bson:"whatsapp"`
	City      string    `gorm:"column:city;not null" json:"city" bson:"city"`
	Model     string    `gorm:"column:model;not null;index" json:"model" bson:"model"`
	Source    string    `gorm:"column:source;not null;index" json:"source" bson:"source"`
	Status    string    `gorm:"column:status;not null;index" json:"status" bson:"status"`
	CreatedAt time.Time `gorm:"column:created_at;not null;index" json:"created_at" bson:"created_at"`
}

func (Lead) TableName() string { return "leads" }

func (l Lead) RecordID() string       { return l.ID }
func (l *Lead) SetRecordID(id string) { l.ID = id }

// CreateInput is the public form payload.
type CreateInput struct {
	Name     string `json:"name"`
	WhatsApp string `json:"whatsapp"`
	City     string `json:"city"`
	Model    string `json:"model"`
	Source   string `json:"source"`
}

// Patch is a partial update. Nil fields are left untouched; id and created_at are not patchable.
type Patch struct {
	Name     *string `json:"name"`
	WhatsApp *string `json:"whatsapp"`
	City     *string `json:"city"`
	Model    *string `json:"model"`
	Source   *string `json:"source"`
	Status   *string `json:"status"`
}

// Fields returns the set fields keyed by their stored name.
func (p Patch) Fields() map[string]any {
	out := map[string]any{}
	if p.Name != nil {
		out["name"] = *p.Name
	}
	if p.WhatsApp != nil {
		out["whatsapp"] = *p.WhatsApp
	}
	if p.City != nil {
		out["city"] = *p.City
	}
	if p.Model != nil {
		out["model"] = *p.Model
	}
	if p.Source != nil {
		out["source"] = *p.Source
	}
	if p.Status != nil {
		out["status"] = *p.Status
	}
	return out
}
