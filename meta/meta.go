// Package meta builds the page <head> metadata for posts: basic meta
// tags, Open Graph and Twitter Card tags, and schema.org JSON-LD.
package meta

import (
	"strings"
	"time"

	"github.com/blog-seo/backend/post"
)

// Config describes the site the tags are generated for.
type Config struct {
	BaseURL         string
	SiteName        string
	SiteDescription string
	LogoPath        string
	TwitterHandle   string
}

// Generator produces meta tags and structured data from posts.
type Generator struct {
	cfg Config
}

func NewGenerator(cfg Config) *Generator {
	return &Generator{cfg: cfg}
}

func (g *Generator) postURL(p *post.Post) string {
	return g.cfg.BaseURL + "/blog/" + p.Slug + "/"
}

// BasicMeta generates the basic meta tags for a post.
func (g *Generator) BasicMeta(p *post.Post) map[string]string {
	canonical := p.CanonicalURL
	if canonical == "" {
		canonical = g.postURL(p)
	}

	robots := "index, follow"
	if p.NoIndex || p.NoFollow {
		robots = "noindex, nofollow"
	}

	return map[string]string{
		"title":       p.GetSEOTitle(),
		"description": p.GetMetaDescription(),
		"keywords":    strings.Join(p.Tags, ", "),
		"canonical":   canonical,
		"robots":      robots,
	}
}

// OpenGraphMeta generates Open Graph tags. article:tag carries the full
// tag list and is typed accordingly.
func (g *Generator) OpenGraphMeta(p *post.Post) map[string]any {
	tags := map[string]any{
		"og:title":       p.GetOGTitle(),
		"og:description": p.GetOGDescription(),
		"og:type":        "article",
		"og:url":         g.postURL(p),
		"og:site_name":   g.cfg.SiteName,

		"article:author":         p.Author,
		"article:published_time": formatTime(p.CreatedAt),
		"article:modified_time":  formatTime(p.UpdatedAt),
		"article:section":        p.Category,
	}

	if image := p.GetOGImageURL(); image != "" {
		tags["og:image"] = g.cfg.BaseURL + image
		tags["og:image:width"] = "1200"
		tags["og:image:height"] = "630"
	}
	if len(p.Tags) > 0 {
		tags["article:tag"] = p.Tags
	}

	return tags
}

// TwitterMeta generates Twitter Card tags.
func (g *Generator) TwitterMeta(p *post.Post) map[string]string {
	tags := map[string]string{
		"twitter:card":        "summary_large_image",
		"twitter:title":       p.GetTwitterTitle(),
		"twitter:description": p.GetTwitterDescription(),
		"twitter:site":        g.cfg.TwitterHandle,
	}

	if image := p.GetOGImageURL(); image != "" {
		tags["twitter:image"] = g.cfg.BaseURL + image
	}

	return tags
}

// ArticleSchema generates the schema.org Article JSON-LD for a post.
func (g *Generator) ArticleSchema(p *post.Post) map[string]any {
	images := []string{}
	if p.FeaturedImage != "" {
		images = append(images, g.cfg.BaseURL+p.FeaturedImage)
	}
	if p.OGImage != "" {
		images = append(images, g.cfg.BaseURL+p.OGImage)
	}

	schema := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "Article",
		"headline":    p.GetSEOTitle(),
		"description": p.GetMetaDescription(),
		"image":       images,
		"author": map[string]any{
			"@type": "Person",
			"name":  p.Author,
			"url":   g.cfg.BaseURL + "/author/" + post.Slugify(p.Author) + "/",
		},
		"publisher": map[string]any{
			"@type": "Organization",
			"name":  g.cfg.SiteName,
			"url":   g.cfg.BaseURL,
			"logo": map[string]any{
				"@type": "ImageObject",
				"url":   g.cfg.BaseURL + g.cfg.LogoPath,
			},
		},
		"datePublished": formatTime(p.CreatedAt),
		"dateModified":  formatTime(p.UpdatedAt),
		"mainEntityOfPage": map[string]any{
			"@type": "WebPage",
			"@id":   g.postURL(p),
		},
	}

	if p.Category != "" {
		schema["articleSection"] = p.Category
	}
	if len(p.Tags) > 0 {
		schema["keywords"] = p.Tags
	}

	return schema
}

// OrganizationSchema generates the site-wide Organization JSON-LD.
func (g *Generator) OrganizationSchema() map[string]any {
	return map[string]any{
		"@context":    "https://schema.org",
		"@type":       "Organization",
		"name":        g.cfg.SiteName,
		"url":         g.cfg.BaseURL,
		"logo":        g.cfg.BaseURL + g.cfg.LogoPath,
		"description": g.cfg.SiteDescription,
	}
}

// Breadcrumb is one entry of a breadcrumb trail.
type Breadcrumb struct {
	Name string
	URL  string
}

// BreadcrumbSchema generates BreadcrumbList JSON-LD for a trail.
func (g *Generator) BreadcrumbSchema(crumbs []Breadcrumb) map[string]any {
	items := make([]map[string]any, 0, len(crumbs))
	for i, crumb := range crumbs {
		item := crumb.URL
		if strings.HasPrefix(item, "/") {
			item = g.cfg.BaseURL + item
		}
		items = append(items, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     crumb.Name,
			"item":     item,
		})
	}

	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": items,
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
