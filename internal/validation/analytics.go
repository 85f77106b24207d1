package validation

import (
	"strings"

	"gorm.io/datatypes"

	"github.com/vwconsorcio/consorcio-backend/internal/domain/analytics"
)

func PageView(in analytics.PageViewInput) (analytics.PageView, error) {
	v := newViolations("page view")
	out := analytics.PageView{
		Page:      v.required("page", in.Page),
		UserAgent: strings.TrimSpace(in.UserAgent),
		IP:        strings.TrimSpace(in.IP),
	}
	return out, v.err()
}

func FormInteraction(in analytics.FormInteractionInput) (analytics.FormInteraction, error) {
	v := newViolations("form interaction")
	out := analytics.FormInteraction{
		FormType: v.required("form_type", in.FormType),
		Action:   v.required("action", in.Action),
		Details:  datatypes.JSONMap{},
	}
	for k, val := range in.Details {
		out.Details[k] = val
	}
	return out, v.err()
}

func StatusCheck(in analytics.StatusCheckInput) (analytics.StatusCheck, error) {
	v := newViolations("status check")
	out := analytics.StatusCheck{ClientName: v.required("client_name", in.ClientName)}
	return out, v.err()
}
