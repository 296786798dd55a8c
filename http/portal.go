package http

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/fwojciec/eldin"
	"github.com/gorilla/mux"
	"github.com/yuin/goldmark"
)

var portalTemplate = template.Must(template.New("doc").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
<p><em>Date: {{.Date}} &bull; Authority: {{.Authority}}</em></p>
{{range .Sections}}<h2 id="{{.Anchor}}">{{.Title}}</h2>
<div>{{.Body}}</div>
{{end}}</body>
</html>
`))

type portalPage struct {
	Title     string
	Date      string
	Authority float64
	Sections  []portalSection
}

type portalSection struct {
	Anchor string
	Title  string
	Body   template.HTML
}

// handlePortalDoc renders a document as HTML with per-section anchors.
// Display-only; orchestration never consumes this surface.
func (s *ProviderServer) handlePortalDoc(w http.ResponseWriter, r *http.Request) {
	docID := mux.Vars(r)["doc_id"]

	doc, err := s.docs.FindDocumentByID(r.Context(), docID)
	if err != nil {
		Error(w, r, err)
		return
	}

	page := portalPage{
		Title:     doc.Title,
		Date:      doc.Date,
		Authority: doc.Authority,
	}
	for _, sec := range eldin.SplitSections(doc.Content) {
		var body bytes.Buffer
		if err := goldmark.Convert([]byte(sec.Text), &body); err != nil {
			Error(w, r, err)
			return
		}
		page.Sections = append(page.Sections, portalSection{
			// Anchors carry a "#" prefix; element ids must not.
			Anchor: sec.Anchor[1:],
			Title:  sec.Title,
			Body:   template.HTML(body.String()),
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := portalTemplate.Execute(w, page); err != nil {
		Error(w, r, err)
	}
}
