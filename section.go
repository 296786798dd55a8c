package eldin

import (
	"strconv"
	"strings"
	"unicode"
)

// sectionIDLen bounds the length of section identifiers derived from
// heading slugs.
const sectionIDLen = 8

// DocSection is one addressable unit of a document: a heading plus the raw
// body text between it and the next heading.
type DocSection struct {
	ID     string `json:"section_id"`
	Title  string `json:"title"`
	Anchor string `json:"anchor"`
	Text   string `json:"text"`
}

// Heading returns the section's identifying fields without body text.
func (s DocSection) Heading() Section {
	return Section{ID: s.ID, Title: s.Title, Anchor: s.Anchor}
}

// SplitSections parses markdown into ordered sections at heading
// boundaries. Section identifiers derive deterministically from heading
// text, so repeated indexing of unchanged content yields unchanged
// identifiers, and are unique within a document. Anchors are URL-safe
// fragment identifiers with numeric suffixes for duplicates. Text before
// the first heading is dropped, and headings inside fenced code blocks are
// ignored.
func SplitSections(markdown string) []DocSection {
	if markdown == "" {
		return nil
	}

	var sections []DocSection
	anchorCounts := make(map[string]int)
	idCounts := make(map[string]int)

	var title string
	var body []string
	inHeading := false
	inFence := false

	flush := func() {
		if !inHeading {
			// Text before the first heading is not addressable.
			body = body[:0]
			return
		}
		slug := generateAnchor(title)
		anchor := slug
		if count, exists := anchorCounts[slug]; exists {
			anchorCounts[slug]++
			anchor = slug + "-" + strconv.Itoa(count)
		} else {
			anchorCounts[slug] = 1
		}
		// IDs are deduplicated separately from anchors: truncation can
		// collapse distinct anchors onto the same 8-rune prefix.
		id := sectionID(slug)
		if count, exists := idCounts[id]; exists {
			idCounts[id]++
			id = id + "-" + strconv.Itoa(count)
		} else {
			idCounts[id] = 1
		}
		sections = append(sections, DocSection{
			ID:     id,
			Title:  title,
			Anchor: "#" + anchor,
			Text:   strings.TrimSpace(strings.Join(body, "\n")),
		})
		body = body[:0]
	}

	for _, line := range strings.Split(markdown, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			body = append(body, line)
			continue
		}
		if !inFence && strings.HasPrefix(line, "#") {
			flush()
			title = strings.TrimSpace(strings.TrimLeft(line, "# "))
			inHeading = true
			continue
		}
		body = append(body, line)
	}
	flush()

	return sections
}

// sectionID derives a stable identifier from a deduplicated anchor slug.
func sectionID(slug string) string {
	id := []rune(strings.ToUpper(slug))
	if len(id) > sectionIDLen {
		id = id[:sectionIDLen]
	}
	return string(id)
}

// generateAnchor creates a URL-safe anchor from a title.
// Converts to lowercase, replaces spaces with hyphens, removes special chars.
func generateAnchor(title string) string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			prevHyphen = false
		} else if unicode.IsSpace(r) || r == '-' {
			if !prevHyphen && sb.Len() > 0 {
				sb.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	result := sb.String()
	// Trim trailing hyphen
	return strings.TrimSuffix(result, "-")
}
