package validation

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/vwconsorcio/consorcio-backend/internal/domain/content"
	"github.com/vwconsorcio/consorcio-backend/internal/pkg/pointers"
)

var slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Slugify lowercases the title, folds accents ("Consórcio" -> "consorcio") and
// collapses every run of other characters into one hyphen, trimmed at both ends.
func Slugify(title string) string {
	s := strings.ToLower(foldDiacritics(title))
	var b strings.Builder
	gap := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if gap && b.Len() > 0 {
				b.WriteByte('-')
			}
			gap = false
			b.WriteRune(r)
			continue
		}
		gap = true
	}
	return b.String()
}

func IsSlug(s string) bool {
	return slugRe.MatchString(s)
}

func checkSlug(v *violations, slug string) {
	if !IsSlug(slug) {
		v.add("slug", "must contain only lowercase letters, digits and single hyphens")
	}
}

// BlogPost derives the slug from the title when none is given. Uniqueness is the
// service's concern. PublishedAt is left zero when not supplied.
func BlogPost(in content.BlogPostInput) (content.BlogPost, error) {
	v := newViolations("blog post")
	out := content.BlogPost{
		ID:          strings.TrimSpace(in.ID),
		Title:       v.required("title", in.Title),
		Excerpt:     strings.TrimSpace(in.Excerpt),
		Slug:        strings.TrimSpace(in.Slug),
		Category:    strings.TrimSpace(in.Category),
		ReadTime:    strings.TrimSpace(in.ReadTime),
		Content:     in.Content,
		IsPublished: pointers.ValueOr(in.IsPublished, true),
	}
	if out.Slug == "" {
		out.Slug = Slugify(out.Title)
	}
	if out.Title != "" || out.Slug != "" {
		checkSlug(v, out.Slug)
	}
	if in.PublishedAt != nil {
		out.PublishedAt = in.PublishedAt.UTC()
	}
	return out, v.err()
}

func BlogPostPatch(p content.BlogPostPatch) (content.BlogPostPatch, error) {
	v := newViolations("blog post")
	out := content.BlogPostPatch{
		Title:       v.requiredPtr("title", p.Title),
		Excerpt:     trimPtr(p.Excerpt),
		Slug:        trimPtr(p.Slug),
		Category:    trimPtr(p.Category),
		ReadTime:    trimPtr(p.ReadTime),
		Content:     p.Content,
		IsPublished: p.IsPublished,
	}
	if out.Slug != nil {
		checkSlug(v, *out.Slug)
	}
	return out, v.err()
}
