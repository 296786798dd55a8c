package eldin

import "context"

// Defaults applied to an AskRequest when the caller omits identity fields.
// Reference-only stand-ins, not a real multi-tenancy boundary.
const (
	DefaultUser   = "demo_user"
	DefaultTenant = "acme"
)

// Outcome identifies how an ask request terminated. Insufficiency outcomes
// are successful results, not errors; callers can branch on the tag without
// matching answer text.
type Outcome string

const (
	OutcomeAnswered    Outcome = "answered"
	OutcomeNoDocuments Outcome = "no_documents"
	OutcomeNoSections  Outcome = "no_sections"
	OutcomeNoSources   Outcome = "no_sources"
)

// Message returns the fixed advisory text carried by insufficiency outcomes.
// Returns an empty string for OutcomeAnswered.
func (o Outcome) Message() string {
	switch o {
	case OutcomeNoDocuments:
		return "Insufficient evidence. No relevant documents found."
	case OutcomeNoSections:
		return "Insufficient evidence. No relevant sections matched the query."
	case OutcomeNoSources:
		return "Insufficient evidence after applying excerpt caps."
	}
	return ""
}

// AskRequest is a free-text question plus caller identity. Identity is
// carried through for audit purposes only and has no effect on retrieval.
type AskRequest struct {
	Q      string `json:"q"`
	User   string `json:"user"`
	Tenant string `json:"tenant"`
}

// Validate returns an error if the request contains invalid fields.
func (r *AskRequest) Validate() error {
	if r.Q == "" {
		return Errorf(EINVALID, "question required")
	}
	return nil
}

// Source is one fetched excerpt annotated with its owning document's title.
// Every Source in a result traces to a (doc_id, section) pair actually
// returned by the provider.
type Source struct {
	DocID       string `json:"doc_id"`
	Title       string `json:"title"`
	Anchor      string `json:"anchor"`
	CitationURL string `json:"citation_url"`
	Excerpt     string `json:"excerpt"`
}

// Meta carries per-request measurements reported alongside an answer.
type Meta struct {
	// Elapsed wall-clock time from request start to result construction,
	// in whole milliseconds.
	TTFAMs int64 `json:"ttfa_ms"`

	// Total excerpt characters across all sources.
	ExcerptTotal int `json:"excerpt_total,omitempty"`
}

// AskResult is the final answer for a question. On insufficiency outcomes
// Answer holds the outcome's fixed message and Sources is empty.
type AskResult struct {
	Answer  string   `json:"answer"`
	Outcome Outcome  `json:"outcome"`
	Sources []Source `json:"sources"`
	Meta    Meta     `json:"meta"`
}

// Asker provides question answering over the indexed document corpus.
type Asker interface {
	// Ask answers a free-text question. Insufficient evidence is a normal,
	// successful result; only transport and not-found conditions return an
	// error.
	Ask(ctx context.Context, req AskRequest) (*AskResult, error)
}
