package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/eldin"
	"github.com/fwojciec/eldin/mock"
	eldinslog "github.com/fwojciec/eldin/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetriever_SearchDocuments(t *testing.T) {
	t.Parallel()

	t.Run("logs hits with duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Retriever{
			SearchDocumentsFn: func(_ context.Context, q string, _ map[string]string, topN int) ([]eldin.Candidate, error) {
				return []eldin.Candidate{{DocID: "q4-2023"}}, nil
			},
		}

		r := eldinslog.NewRetriever(inner, logger)
		docs, err := r.SearchDocuments(context.Background(), "revenue growth", nil, 8)

		require.NoError(t, err)
		assert.Len(t, docs, 1)
		output := buf.String()
		assert.Contains(t, output, "search documents")
		assert.Contains(t, output, "hits=1")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs failures at error level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Retriever{
			SearchDocumentsFn: func(context.Context, string, map[string]string, int) ([]eldin.Candidate, error) {
				return nil, eldin.Errorf(eldin.EUNAVAILABLE, "provider unreachable")
			},
		}

		r := eldinslog.NewRetriever(inner, logger)
		_, err := r.SearchDocuments(context.Background(), "revenue growth", nil, 8)

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=ERROR")
		assert.Contains(t, output, "provider unreachable")
	})
}

func TestRetriever_GetExcerpts(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.Retriever{
		GetExcerptsFn: func(_ context.Context, docID string, spans []eldin.Span, maxChars int) ([]eldin.Excerpt, int, error) {
			return []eldin.Excerpt{{SectionID: "REVENUE-", Text: "Revenue grew."}}, 13, nil
		},
	}

	r := eldinslog.NewRetriever(inner, logger)
	excerpts, consumed, err := r.GetExcerpts(context.Background(), "q4-2023",
		[]eldin.Span{{SectionID: "REVENUE-", Start: 0, End: 600}}, 600)

	require.NoError(t, err)
	assert.Len(t, excerpts, 1)
	assert.Equal(t, 13, consumed)
	output := buf.String()
	assert.Contains(t, output, "get excerpts")
	assert.Contains(t, output, "doc_id=q4-2023")
	assert.Contains(t, output, "consumed=13")
}
