package post

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/blog-seo/backend/analyzer"
)

// Post is a blog post with its SEO and social metadata. Content is the
// rendered HTML body.
type Post struct {
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Author    string    `json:"author"`
	Category  string    `json:"category"`
	Tags      []string  `json:"tags"`
	Excerpt   string    `json:"excerpt"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Published bool      `json:"isPublished"`

	// SEO fields. All optional; getters below apply the fallback chains.
	SEOTitle        string `json:"seoTitle"`
	MetaDescription string `json:"metaDescription"`
	FocusKeyword    string `json:"focusKeyword"`
	FeaturedImage   string `json:"featuredImage"`

	// Open Graph and Twitter Card fields.
	OGTitle            string `json:"ogTitle"`
	OGDescription      string `json:"ogDescription"`
	OGImage            string `json:"ogImage"`
	TwitterTitle       string `json:"twitterTitle"`
	TwitterDescription string `json:"twitterDescription"`

	// Advanced SEO fields.
	CanonicalURL string `json:"canonicalUrl"`
	NoIndex      bool   `json:"noindex"`
	NoFollow     bool   `json:"nofollow"`
}

// GetSEOTitle returns the SEO title, falling back to the post title.
func (p *Post) GetSEOTitle() string {
	if p.SEOTitle != "" {
		return p.SEOTitle
	}
	return p.Title
}

// GetMetaDescription returns the meta description, falling back to the excerpt.
func (p *Post) GetMetaDescription() string {
	if p.MetaDescription != "" {
		return p.MetaDescription
	}
	return p.Excerpt
}

// GetOGTitle returns the Open Graph title, falling back to the SEO title.
func (p *Post) GetOGTitle() string {
	if p.OGTitle != "" {
		return p.OGTitle
	}
	return p.GetSEOTitle()
}

// GetOGDescription returns the Open Graph description, falling back to
// the meta description.
func (p *Post) GetOGDescription() string {
	if p.OGDescription != "" {
		return p.OGDescription
	}
	return p.GetMetaDescription()
}

// GetOGImageURL returns the Open Graph image path, falling back to the
// featured image. Empty when neither is set.
func (p *Post) GetOGImageURL() string {
	if p.OGImage != "" {
		return p.OGImage
	}
	return p.FeaturedImage
}

// GetTwitterTitle returns the Twitter card title, falling back to the SEO title.
func (p *Post) GetTwitterTitle() string {
	if p.TwitterTitle != "" {
		return p.TwitterTitle
	}
	return p.GetSEOTitle()
}

// GetTwitterDescription returns the Twitter card description, falling
// back to the meta description.
func (p *Post) GetTwitterDescription() string {
	if p.TwitterDescription != "" {
		return p.TwitterDescription
	}
	return p.GetMetaDescription()
}

// GetReadingTime estimates reading time in minutes at 200 words per
// minute, with a one minute floor.
func (p *Post) GetReadingTime() int {
	words := analyzer.WordCount(analyzer.StripHTML(p.Content))
	minutes := int(math.Ceil(float64(words) / 200))
	if minutes < 1 {
		return 1
	}
	return minutes
}

// GetReadingTimeDisplay formats the reading time for display.
func (p *Post) GetReadingTimeDisplay() string {
	minutes := p.GetReadingTime()
	if minutes == 1 {
		return "1 min read"
	}
	return fmt.Sprintf("%d min read", minutes)
}

// Document projects the post into the analyzer's input shape. The meta
// description is resolved through its fallback chain so the report sees
// what search engines would.
func (p *Post) Document() analyzer.Document {
	return analyzer.Document{
		Title:            p.Title,
		SEOTitle:         p.SEOTitle,
		MetaDescription:  p.GetMetaDescription(),
		FocusKeyword:     p.FocusKeyword,
		Slug:             p.Slug,
		ContentHTML:      p.Content,
		HasFeaturedImage: p.FeaturedImage != "",
		HasOGImage:       p.OGImage != "",
	}
}

// Slugify converts a title into a URL-safe slug: letters and digits are
// kept (lowercased), runs of anything else collapse to single hyphens.
func Slugify(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var out []rune
	lastDash := false
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]

		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			out = append(out, unicode.ToLower(r))
			lastDash = false
			continue
		}
		if !lastDash && len(out) > 0 {
			out = append(out, '-')
			lastDash = true
		}
	}
	for len(out) > 0 && out[len(out)-1] == '-' {
		out = out[:len(out)-1]
	}
	return string(out)
}

// SlugSuggestions generates slug candidates for a title: the full slug,
// a numbered variant when the slug is already taken, and a shortened
// variant built from the leading words of long titles.
func SlugSuggestions(title string, existing []string) []string {
	taken := make(map[string]bool, len(existing))
	for _, s := range existing {
		taken[s] = true
	}

	base := Slugify(title)
	suggestions := []string{base}

	if taken[base] {
		counter := 1
		for taken[fmt.Sprintf("%s-%d", base, counter)] {
			counter++
		}
		suggestions = append(suggestions, fmt.Sprintf("%s-%d", base, counter))
	}

	if words := strings.Fields(title); len(words) > 3 {
		short := Slugify(strings.Join(words[:3], " "))
		if short != base && !taken[short] {
			suggestions = append(suggestions, short)
		}
	}

	return suggestions
}
