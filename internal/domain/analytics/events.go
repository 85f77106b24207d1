package analytics

import (
	"time"

	"gorm.io/datatypes"
)

// PageView is one recorded visit to a site page.
type PageView struct {
	ID        string    `gorm:"type:varchar(64);primaryKey" json:"id" bson:"id"`
	Page      string    `gorm:"column:page;not null;index" json:"page" bson:"page"`
	UserAgent string    `gorm:"column:user_agent;type:text" json:"user_agent" bson:"user_agent"`
	IP        string    `gorm:"column:ip" json:"ip" bson:"ip"`
	Timestamp time.Time `gorm:"column:timestamp;not null;index" json:"timestamp" bson:"timestamp"`
}

func (PageView) TableName() string { return "page_views" }

func (p PageView) RecordID() string       { return p.ID }
func (p *PageView) SetRecordID(id string) { p.ID = id }

// FormInteraction records a user touching a form (opened, field focused, submitted...).
type FormInteraction struct {
	ID        string            `gorm:"type:varchar(64);primaryKey" json:"id" bson:"id"`
	FormType  string            `gorm:"column:form_type;not null;index" json:"form_type" bson:"form_type"`
	Action    string            `gorm:"column:action;not null" json:"action" bson:"action"`
	Details   datatypes.JSONMap `gorm:"column:details" json:"details" bson:"details"`
	Timestamp time.Time         `gorm:"column:timestamp;not null;index" json:"timestamp" bson:"timestamp"`
}

func (FormInteraction) TableName() string { return "form_interactions" }

func (f FormInteraction) RecordID() string       { return f.ID }
func (f *FormInteraction) SetRecordID(id string) { f.ID = id }

// StatusCheck backs the legacy /api/status ping endpoints.
type StatusCheck struct {
	ID         string    `gorm:"type:varchar(64);primaryKey" json:"id" bson:"id"`
	ClientName string    `gorm:"column:client_name;not null" json:"client_name" bson:"client_name"`
	Timestamp  time.Time `gorm:"column:timestamp;not null;index" json:"timestamp" bson:"timestamp"`
}

func (StatusCheck) TableName() string { return "status_checks" }

func (s StatusCheck) RecordID() string       { return s.ID }
func (s *StatusCheck) SetRecordID(id string) { s.ID = id }

type PageViewInput struct {
	Page      string `json:"page" form:"page"`
	UserAgent string `json:"user_agent" form:"user_agent"`
	IP        string `json:"ip" form:"ip"`
}

type FormInteractionInput struct {
	FormType string         `json:"form_type" form:"form_type"`
	Action   string         `json:"action" form:"action"`
	Details  map[string]any `json:"details"`
}

type StatusCheckInput struct {
	ClientName string `json:"client_name"`
}
