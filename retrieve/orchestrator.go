package retrieve

import (
	"context"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/eldin"
	"github.com/google/uuid"
)

// Retrieval protocol constants.
const (
	// searchTopN bounds the number of candidate documents per query.
	searchTopN = 8

	// sectionsPerDoc bounds how many positively-scoring sections are
	// selected from a single document.
	sectionsPerDoc = 2
)

// Ensure Orchestrator implements eldin.Asker at compile time.
var _ eldin.Asker = (*Orchestrator)(nil)

// Orchestrator drives the three-stage retrieval protocol: document search,
// section listing and selection, excerpt fetching under budget caps, then
// extractive synthesis. Each stage is a gate that may short-circuit to an
// insufficiency result. Provider failures are not caught; they propagate as
// a hard failure of the whole request with no retry and no partial result.
type Orchestrator struct {
	// Retriever provides the provider's retrieval primitives. Required.
	Retriever eldin.Retriever

	// Auditor records ask and answer events. Optional.
	Auditor eldin.Auditor

	// Excerpt caps. Non-positive values fall back to the defaults
	// (600 per section, 1200 total).
	PerSectionCap int
	TotalCap      int

	// Now reports wall-clock time. Defaults to time.Now.
	Now func() time.Time
}

// pick is one selected section awaiting excerpt fetch.
type pick struct {
	docID     string
	sectionID string
	anchor    string
}

// Ask answers a free-text question against the provider corpus.
func (o *Orchestrator) Ask(ctx context.Context, req eldin.AskRequest) (*eldin.AskResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := o.Now
	if now == nil {
		now = time.Now
	}
	start := now()
	requestID := uuid.New().String()

	if o.Auditor != nil {
		o.Auditor.RecordAsk(ctx, eldin.AskEvent{
			RequestID: requestID,
			TS:        start,
			User:      req.User,
			Tenant:    req.Tenant,
			Q:         req.Q,
		})
	}

	// Gate 1: document search.
	docs, err := o.Retriever.SearchDocuments(ctx, req.Q, nil, searchTopN)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return insufficient(eldin.OutcomeNoDocuments, start, now()), nil
	}

	// Gate 2: list, score and select sections. Document iteration order is
	// the provider's ranking order; within a document sections are kept in
	// descending score order.
	titles := make(map[string]string, len(docs))
	var picks []pick
	for _, d := range docs {
		titles[d.DocID] = d.Title

		sections, err := o.Retriever.ListSections(ctx, d.DocID)
		if err != nil {
			return nil, err
		}

		scored := make([]struct {
			eldin.Section
			score float64
		}, len(sections))
		for i, s := range sections {
			scored[i].Section = s
			scored[i].score = HeadingScore(req.Q, s.Title)
		}
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].score > scored[j].score
		})

		for i, s := range scored {
			if i == sectionsPerDoc {
				break
			}
			if s.score <= 0 {
				continue
			}
			picks = append(picks, pick{docID: d.DocID, sectionID: s.ID, anchor: s.Anchor})
		}
	}
	if len(picks) == 0 {
		return insufficient(eldin.OutcomeNoSections, start, now()), nil
	}

	// Gate 3: fetch excerpts under budget caps.
	budget := NewBudget(o.PerSectionCap, o.TotalCap)
	sources := []eldin.Source{}
	for _, p := range picks {
		if budget.Exhausted() {
			break
		}
		allowance := budget.Allowance()

		excerpts, _, err := o.Retriever.GetExcerpts(ctx, p.docID,
			[]eldin.Span{{SectionID: p.sectionID, Start: 0, End: allowance}}, allowance)
		if err != nil {
			return nil, err
		}
		if len(excerpts) == 0 {
			continue
		}

		e := excerpts[0]
		budget.Consume(utf8.RuneCountInString(e.Text))
		sources = append(sources, eldin.Source{
			DocID:       p.docID,
			Title:       titles[p.docID],
			Anchor:      e.Anchor,
			CitationURL: e.CitationURL,
			Excerpt:     e.Text,
		})
	}
	if len(sources) == 0 {
		return insufficient(eldin.OutcomeNoSources, start, now()), nil
	}

	// Synthesize.
	answer := Synthesize(sources)
	ttfa := now().Sub(start).Milliseconds()

	if o.Auditor != nil {
		refs := make([]eldin.SourceRef, len(sources))
		for i, s := range sources {
			refs[i] = eldin.SourceRef{
				DocID:  s.DocID,
				Anchor: s.Anchor,
				Chars:  utf8.RuneCountInString(s.Excerpt),
			}
		}
		o.Auditor.RecordAnswer(ctx, eldin.AnswerEvent{
			RequestID: requestID,
			TS:        now(),
			User:      req.User,
			Tenant:    req.Tenant,
			Q:         req.Q,
			Sources:   refs,
			TTFAMs:    ttfa,
		})
	}

	return &eldin.AskResult{
		Answer:  answer,
		Outcome: eldin.OutcomeAnswered,
		Sources: sources,
		Meta: eldin.Meta{
			TTFAMs:       ttfa,
			ExcerptTotal: budget.Consumed(),
		},
	}, nil
}

// insufficient builds the terminal result for a short-circuited gate.
func insufficient(outcome eldin.Outcome, start, end time.Time) *eldin.AskResult {
	return &eldin.AskResult{
		Answer:  outcome.Message(),
		Outcome: outcome,
		Sources: []eldin.Source{},
		Meta:    eldin.Meta{TTFAMs: end.Sub(start).Milliseconds()},
	}
}
