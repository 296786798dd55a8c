// Package markdown parses provider corpus files: YAML frontmatter followed
// by a markdown body split into sections at heading boundaries.
package markdown

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fwojciec/eldin"
	"gopkg.in/yaml.v3"
)

const (
	frontmatterOpen  = "---\n"
	frontmatterClose = "\n---\n"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// frontmatter holds the fields recognized in a document's YAML header.
// Authority is a pointer to distinguish "absent" from zero.
type frontmatter struct {
	ID        string   `yaml:"id"`
	Title     string   `yaml:"title"`
	Date      string   `yaml:"date"`
	Authority *float64 `yaml:"authority"`
}

// Parse builds a Document from a corpus file. Missing frontmatter fields
// default to the filename stem for ID, the ID for title, and
// eldin.DefaultAuthority for authority. Returns EINVALID if the
// frontmatter is not valid YAML.
func Parse(filename, raw string) (*eldin.Document, error) {
	header, body := splitFrontmatter(raw)

	var fm frontmatter
	if header != "" {
		if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
			return nil, eldin.Errorf(eldin.EINVALID, "invalid frontmatter in %s: %s", filename, err)
		}
	}

	id := fm.ID
	if id == "" {
		id = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	title := fm.Title
	if title == "" {
		title = id
	}
	authority := eldin.DefaultAuthority
	if fm.Authority != nil {
		authority = *fm.Authority
	}

	body = strings.TrimSpace(body)

	return &eldin.Document{
		ID:        id,
		Title:     title,
		Summary:   Summary(body),
		Date:      fm.Date,
		Authority: authority,
		Content:   body,
	}, nil
}

// Summary returns the first non-empty paragraph of a markdown body with
// internal whitespace collapsed to single spaces.
func Summary(body string) string {
	for _, para := range strings.Split(body, "\n\n") {
		para = strings.TrimSpace(para)
		if para != "" {
			return whitespaceRe.ReplaceAllString(para, " ")
		}
	}
	return ""
}

// splitFrontmatter separates a leading YAML frontmatter block from the
// markdown body. Content without a frontmatter block is returned whole as
// the body.
func splitFrontmatter(raw string) (header, body string) {
	if !strings.HasPrefix(raw, frontmatterOpen) {
		return "", raw
	}
	rest := raw[len(frontmatterOpen):]
	end := strings.Index(rest, frontmatterClose)
	if end < 0 {
		return "", raw
	}
	return rest[:end], rest[end+len(frontmatterClose):]
}
