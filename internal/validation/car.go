package validation

import (
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/vwconsorcio/consorcio-backend/internal/domain/catalog"
	"github.com/vwconsorcio/consorcio-backend/internal/pkg/pointers"
)

const (
	minCarYear      = 1900
	maxCarYearAhead = 2
)

func checkYear(v *violations, year int) {
	if year < minCarYear || year > time.Now().Year()+maxCarYearAhead {
		v.add("year", "must be a four-digit model year, at most two years ahead")
	}
}

func cleanHighlights(in []string) datatypes.JSONSlice[string] {
	out := make(datatypes.JSONSlice[string], 0, len(in))
	for _, h := range in {
		if h = strings.TrimSpace(h); h != "" {
			out = append(out, h)
		}
	}
	return out
}

// Car validates a new listing. IsActive defaults to true.
func Car(in catalog.Input) (catalog.Car, error) {
	v := newViolations("car")
	out := catalog.Car{
		ID:           strings.TrimSpace(in.ID),
		Name:         v.required("name", in.Name),
		Model:        v.required("model", in.Model),
		Year:         in.Year,
		Image:        strings.TrimSpace(in.Image),
		MonthlyPrice: v.required("monthly_price", in.MonthlyPrice),
		TotalCredit:  v.required("total_credit", in.TotalCredit),
		Installments: in.Installments,
		Highlights:   cleanHighlights(in.Highlights),
		Description:  strings.TrimSpace(in.Description),
		IsActive:     pointers.ValueOr(in.IsActive, true),
	}
	checkYear(v, in.Year)
	if in.Installments <= 0 {
		v.add("installments", "must be greater than zero")
	}
	return out, v.err()
}

func CarPatch(p catalog.Patch) (catalog.Patch, error) {
	v := newViolations("car")
	out := catalog.Patch{
		Name:         v.requiredPtr("name", p.Name),
		Model:        v.requiredPtr("model", p.Model),
		Year:         p.Year,
		Image:        trimPtr(p.Image),
		MonthlyPrice: v.requiredPtr("monthly_price", p.MonthlyPrice),
		TotalCredit:  v.requiredPtr("total_credit", p.TotalCredit),
		Installments: p.Installments,
		Description:  trimPtr(p.Description),
		IsActive:     p.IsActive,
	}
	if p.Year != nil {
		checkYear(v, *p.Year)
	}
	if p.Installments != nil && *p.Installments <= 0 {
		v.add("installments", "must be greater than zero")
	}
	if p.Highlights != nil {
		h := []string(cleanHighlights(*p.Highlights))
		out.Highlights = &h
	}
	return out, v.err()
}
