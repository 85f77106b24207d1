package domain

import (
	"github.com/vwconsorcio/consorcio-backend/internal/domain/analytics"
	"github.com/vwconsorcio/consorcio-backend/internal/domain/catalog"
	"github.com/vwconsorcio/consorcio-backend/internal/domain/content"
	"github.com/vwconsorcio/consorcio-backend/internal/domain/leads"
)

type Lead = leads.Lead
type Car = catalog.Car
type Testimonial = content.Testimonial
type BlogPost = content.BlogPost
type PageView = analytics.PageView
type FormInteraction = analytics.FormInteraction
type StatusCheck = analytics.StatusCheck

// Models lists every persisted record type, in migration order.
func Models() []any {
	return []any{
		&Lead{},
		&Car{},
		&Testimonial{},
		&BlogPost{},
		&PageView{},
		&FormInteraction{},
		&StatusCheck{},
	}
}
