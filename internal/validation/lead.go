package validation

import (
	"regexp"
	"strings"

	"github.com/vwconsorcio/consorcio-backend/internal/domain/leads"
)

var (
	phoneCharsRe = regexp.MustCompile(`^[0-9+()\-.\s]+$`)
	// Optional 55 country code, optional two-digit area code, 8-9 digit subscriber number.
	brMobileRe = regexp.MustCompile(`^(?:55)?(?:[1-9]{2})?9?[0-9]{8}$`)
)

// NormalizeWhatsApp returns the digits of a Brazilian mobile number, or false when
// the input is not one.
func NormalizeWhatsApp(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || !phoneCharsRe.MatchString(raw) {
		return "", false
	}
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if !brMobileRe.MatchString(digits) {
		return "", false
	}
	return digits, true
}

// Lead validates a form submission. An unknown or missing source never rejects the lead.
func Lead(in leads.CreateInput) (leads.Lead, error) {
	v := newViolations("lead")
	out := leads.Lead{
		Name:   v.required("name", in.Name),
		City:   v.required("city", in.City),
		Model:  v.required("model", in.Model),
		Source: leads.NormalizeSource(in.Source),
	}
	if strings.TrimSpace(in.WhatsApp) == "" {
		v.add("whatsapp", "is required")
	} else if digits, ok := NormalizeWhatsApp(in.WhatsApp); ok {
		out.WhatsApp = digits
	} else {
		v.add("whatsapp", "must be a Brazilian mobile number")
	}
	return out, v.err()
}

func LeadPatch(p leads.Patch) (leads.Patch, error) {
	v := newViolations("lead")
	out := leads.Patch{
		Name:  v.requiredPtr("name", p.Name),
		City:  v.requiredPtr("city", p.City),
		Model: v.requiredPtr("model", p.Model),
	}
	if p.WhatsApp != nil {
		if digits, ok := NormalizeWhatsApp(*p.WhatsApp); ok {
			out.WhatsApp = &digits
		} else {
			v.add("whatsapp", "must be a Brazilian mobile number")
		}
	}
	if p.Source != nil {
		src := leads.NormalizeSource(*p.Source)
		out.Source = &src
	}
	if p.Status != nil {
		status := strings.ToLower(strings.TrimSpace(*p.Status))
		if leads.IsStatus(status) {
			out.Status = &status
		} else {
			v.add("status", "must be one of new, contacted, converted")
		}
	}
	return out, v.err()
}
