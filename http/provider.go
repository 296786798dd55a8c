package http

import (
	"encoding/json"
	"net/http"

	"github.com/fwojciec/eldin"
	"github.com/gorilla/mux"
)

// defaultSearchTopN bounds search results when the caller does not specify
// a limit.
const defaultSearchTopN = 10

// ProviderServer serves the document provider: the /mcp retrieval
// primitives and the HTML portal.
type ProviderServer struct {
	docs     eldin.DocumentService
	licensor eldin.Licensor
	baseURL  string
}

// NewProviderServer creates a provider server. baseURL is the externally
// reachable address used to build citation URLs.
func NewProviderServer(docs eldin.DocumentService, licensor eldin.Licensor, baseURL string) *ProviderServer {
	return &ProviderServer{docs: docs, licensor: licensor, baseURL: baseURL}
}

// Router returns the provider's HTTP handler.
func (s *ProviderServer) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/mcp/search.documents", s.handleSearchDocuments).Methods(http.MethodPost)
	r.HandleFunc("/mcp/list.sections", s.handleListSections).Methods(http.MethodPost)
	r.HandleFunc("/mcp/get.excerpts", s.handleGetExcerpts).Methods(http.MethodPost)
	r.HandleFunc("/mcp/get.citation_url", s.handleCitationURL).Methods(http.MethodPost)
	r.HandleFunc("/mcp/license.check", s.handleLicenseCheck).Methods(http.MethodPost)
	r.HandleFunc("/portal/doc/{doc_id}", s.handlePortalDoc).Methods(http.MethodGet)
	return r
}

func (s *ProviderServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]bool{"ok": true})
}

func (s *ProviderServer) handleSearchDocuments(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Q       string            `json:"q"`
		Filters map[string]string `json:"filters"`
		TopN    int               `json:"topN"`
		Token   string            `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, r, eldin.Errorf(eldin.EINVALID, "invalid JSON body"))
		return
	}
	if req.TopN <= 0 {
		req.TopN = defaultSearchTopN
	}

	candidates, err := s.docs.SearchDocuments(r.Context(), req.Q, req.TopN)
	if err != nil {
		Error(w, r, err)
		return
	}
	if candidates == nil {
		candidates = []eldin.Candidate{}
	}
	respondJSON(w, candidates)
}

func (s *ProviderServer) handleListSections(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DocID string `json:"doc_id"`
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, r, eldin.Errorf(eldin.EINVALID, "invalid JSON body"))
		return
	}

	doc, err := s.docs.FindDocumentByID(r.Context(), req.DocID)
	if err != nil {
		Error(w, r, err)
		return
	}

	sections := eldin.SplitSections(doc.Content)
	headings := make([]eldin.Section, len(sections))
	for i, sec := range sections {
		headings[i] = sec.Heading()
	}
	respondJSON(w, headings)
}

func (s *ProviderServer) handleGetExcerpts(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DocID    string       `json:"doc_id"`
		Spans    []eldin.Span `json:"spans"`
		MaxChars int          `json:"max_chars"`
		Token    string       `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, r, eldin.Errorf(eldin.EINVALID, "invalid JSON body"))
		return
	}

	doc, err := s.docs.FindDocumentByID(r.Context(), req.DocID)
	if err != nil {
		Error(w, r, err)
		return
	}

	sections := make(map[string]eldin.DocSection)
	for _, sec := range eldin.SplitSections(doc.Content) {
		sections[sec.ID] = sec
	}

	excerpts := []eldin.Excerpt{}
	consumed := 0
	for _, span := range req.Spans {
		sec, ok := sections[span.SectionID]
		if !ok {
			// Unknown spans are tolerated, not an error.
			continue
		}

		chunk := sliceSection(sec.Text, span.Start, span.End, req.MaxChars)
		consumed += len([]rune(chunk))
		excerpts = append(excerpts, eldin.Excerpt{
			SectionID:   span.SectionID,
			Text:        chunk,
			Anchor:      sec.Anchor,
			CitationURL: s.citationURL(req.DocID, sec.Anchor),
		})
	}

	respondJSON(w, struct {
		Excerpts      []eldin.Excerpt `json:"excerpts"`
		ConsumedChars int             `json:"consumed_chars"`
	}{Excerpts: excerpts, ConsumedChars: consumed})
}

func (s *ProviderServer) handleCitationURL(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DocID     string `json:"doc_id"`
		SectionID string `json:"section_id"`
		Anchor    string `json:"anchor"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, r, eldin.Errorf(eldin.EINVALID, "invalid JSON body"))
		return
	}

	respondJSON(w, map[string]string{"url": s.citationURL(req.DocID, req.Anchor)})
}

func (s *ProviderServer) handleLicenseCheck(w http.ResponseWriter, r *http.Request) {
	var req eldin.LicenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, r, eldin.Errorf(eldin.EINVALID, "invalid JSON body"))
		return
	}

	decision, err := s.licensor.Check(r.Context(), req)
	if err != nil {
		Error(w, r, err)
		return
	}
	respondJSON(w, decision)
}

// citationURL builds a stable citation link for an anchor within a
// document. The anchor already carries its "#" prefix.
func (s *ProviderServer) citationURL(docID, anchor string) string {
	return s.baseURL + "/portal/doc/" + docID + anchor
}

// sliceSection clamps a character-range request against the section text:
// [start, min(len, end, start+maxChars)). Offsets are in characters, not
// bytes.
func sliceSection(text string, start, end, maxChars int) string {
	runes := []rune(text)

	if start < 0 {
		start = 0
	}
	if start > len(runes) {
		start = len(runes)
	}
	if end > len(runes) {
		end = len(runes)
	}
	if maxChars >= 0 && start+maxChars < end {
		end = start + maxChars
	}
	if end < start {
		end = start
	}
	return string(runes[start:end])
}
