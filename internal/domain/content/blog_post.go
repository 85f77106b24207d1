package content

import "time"

// BlogPost is an educational article. Slug is the public lookup key; ID stays internal.
type BlogPost struct {
	ID          string    `gorm:"type:varchar(64);primaryKey" json:"id" bson:"id"`
	Title       string    `gorm:"column:title;not null" json:"title" bson:"title"`
	Excerpt     string    `gorm:"column:excerpt;type:text" json:"excerpt" bson:"excerpt"`
	Slug        string    `gorm:"column:slug;not null;uniqueIndex" json:"slug" bson:"slug"`
	Category    string    `gorm:"column:category;index" json:"category" bson:"category"`
	ReadTime    string    `gorm:"column:read_time" json:"read_time" bson:"read_time"`
	PublishedAt time.Time `gorm:"column:published_at;not null;index" json:"published_at" bson:"published_at"`
	Content     string    `gorm:"column:content;type:text" json:"content" bson:"content"`
	IsPublished bool      `gorm:"column:is_published;not null;index" json:"is_published" bson:"is_published"`
}

func (BlogPost) TableName() string { return "blog_posts" }

func (b BlogPost) RecordID() string       { return b.ID }
func (b *BlogPost) SetRecordID(id string) { b.ID = id }

type BlogPostInput struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Excerpt     string     `json:"excerpt" yaml:"excerpt"`
	Slug        string     `json:"slug" yaml:"slug"`
	Category    string     `json:"category" yaml:"category"`
	ReadTime    string     `json:"read_time" yaml:"read_time"`
	PublishedAt *time.Time `json:"published_at" yaml:"published_at"`
	Content     string     `json:"content" yaml:"content"`
	IsPublished *bool      `json:"is_published" yaml:"is_published"`
}

// BlogPostPatch has no PublishedAt: the publication date is fixed at creation.
type BlogPostPatch struct {
	Title       *string `json:"title"`
	Excerpt     *string `json:"excerpt"`
	Slug        *string `json:"slug"`
	Category    *string `json:"category"`
	ReadTime    *string `json:"read_time"`
	Content     *string `json:"content"`
	IsPublished *bool   `json:"is_published"`
}

func (p BlogPostPatch) Fields() map[string]any {
	out := map[string]any{}
	if p.Title != nil {
		out["title"] = *p.Title
	}
	if p.Excerpt != nil {
		out["excerpt"] = *p.Excerpt
	}
	if p.Slug != nil {
		out["slug"] = *p.Slug
	}
	if p.Category != nil {
		out["category"] = *p.Category
	}
	if p.ReadTime != nil {
		out["read_time"] = *p.ReadTime
	}
	if p.Content != nil {
		out["content"] = *p.Content
	}
	if p.IsPublished != nil {
		out["is_published"] = *p.IsPublished
	}
	return out
}
