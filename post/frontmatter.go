package post

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"gopkg.in/yaml.v3"
)

var ErrNoFrontMatter = errors.New("no front matter found")

// FrontMatter mirrors the YAML block at the top of a markdown post file.
type FrontMatter struct {
	Title    string   `yaml:"title"`
	Slug     string   `yaml:"slug"`
	Author   string   `yaml:"author"`
	Category string   `yaml:"category"`
	Tags     []string `yaml:"tags"`
	Excerpt  string   `yaml:"excerpt"`
	Date     string   `yaml:"date"`
	Updated  string   `yaml:"updated"`
	Draft    bool     `yaml:"draft"`

	SEOTitle        string `yaml:"seo_title"`
	MetaDescription string `yaml:"meta_description"`
	FocusKeyword    string `yaml:"focus_keyword"`
	FeaturedImage   string `yaml:"featured_image"`

	OGTitle            string `yaml:"og_title"`
	OGDescription      string `yaml:"og_description"`
	OGImage            string `yaml:"og_image"`
	TwitterTitle       string `yaml:"twitter_title"`
	TwitterDescription string `yaml:"twitter_description"`

	CanonicalURL string `yaml:"canonical_url"`
	NoIndex      bool   `yaml:"noindex"`
	NoFollow     bool   `yaml:"nofollow"`
}

var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Linkify,
		extension.Strikethrough,
		extension.Table,
	),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// ParseFrontMatter splits a raw post file into its YAML front matter
// and markdown body. The front matter is the block between a leading
// "---" line and the next "---" line.
func ParseFrontMatter(raw []byte) (FrontMatter, []byte, error) {
	raw = bytes.TrimSpace(raw)

	norm := bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n"))
	norm = bytes.ReplaceAll(norm, []byte("\r"), []byte("\n"))

	const sep = "---\n"
	if !bytes.HasPrefix(norm, []byte(sep)) {
		return FrontMatter{}, raw, ErrNoFrontMatter
	}

	rest := norm[len(sep):]
	parts := bytes.SplitN(rest, []byte("\n---"), 2)
	if len(parts) != 2 {
		return FrontMatter{}, raw, ErrNoFrontMatter
	}

	var fm FrontMatter
	if err := yaml.Unmarshal(parts[0], &fm); err != nil {
		return FrontMatter{}, raw, fmt.Errorf("invalid front matter: %w", err)
	}

	return fm, bytes.TrimSpace(parts[1]), nil
}

// LoadFile reads a markdown post file, parses its front matter and
// renders the body to HTML.
func LoadFile(path string) (*Post, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read post file: %w", err)
	}

	fm, body, err := ParseFrontMatter(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var buf bytes.Buffer
	if err := markdown.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("failed to render markdown for %s: %w", path, err)
	}

	p := &Post{
		Title:              fm.Title,
		Slug:               fm.Slug,
		Author:             fm.Author,
		Category:           fm.Category,
		Tags:               fm.Tags,
		Excerpt:            fm.Excerpt,
		Content:            buf.String(),
		CreatedAt:          parseTime(fm.Date),
		UpdatedAt:          parseTime(fm.Updated),
		Published:          !fm.Draft,
		SEOTitle:           fm.SEOTitle,
		MetaDescription:    fm.MetaDescription,
		FocusKeyword:       fm.FocusKeyword,
		FeaturedImage:      fm.FeaturedImage,
		OGTitle:            fm.OGTitle,
		OGDescription:      fm.OGDescription,
		OGImage:            fm.OGImage,
		TwitterTitle:       fm.TwitterTitle,
		TwitterDescription: fm.TwitterDescription,
		CanonicalURL:       fm.CanonicalURL,
		NoIndex:            fm.NoIndex,
		NoFollow:           fm.NoFollow,
	}

	if p.Slug == "" {
		if p.Title != "" {
			p.Slug = Slugify(p.Title)
		} else {
			base := filepath.Base(path)
			p.Slug = Slugify(strings.TrimSuffix(base, filepath.Ext(base)))
		}
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}

	return p, nil
}

// LoadDir loads every published *.md post under dir, sorted by path.
func LoadDir(dir string) ([]*Post, error) {
	var posts []*Post

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}

		p, err := LoadFile(path)
		if err != nil {
			return err
		}
		if p.Published {
			posts = append(posts, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load posts from %s: %w", dir, err)
	}

	return posts, nil
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{
		time.RFC3339,
		time.DateOnly,
		"2006-01-02 15:04",
		time.DateTime,
	} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}
