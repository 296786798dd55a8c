package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/eldin"
	"github.com/fwojciec/eldin/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument(id, title, content string) *eldin.Document {
	return &eldin.Document{
		ID:        id,
		Title:     title,
		Summary:   "Summary of " + title + ".",
		Date:      "2023-12-31",
		Authority: 0.5,
		Content:   content,
	}
}

func TestDocumentService_CreateDocument(t *testing.T) {
	t.Parallel()

	t.Run("stores document with hash and timestamp", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()

		doc := testDocument("q4-2023", "Q4 2023 Revenue Review", "## Revenue Growth\n\nRevenue grew 12%.")
		require.NoError(t, svc.CreateDocument(ctx, doc))
		assert.NotEmpty(t, doc.ContentHash)
		assert.False(t, doc.IndexedAt.IsZero())

		got, err := svc.FindDocumentByID(ctx, "q4-2023")
		require.NoError(t, err)
		assert.Equal(t, "Q4 2023 Revenue Review", got.Title)
		assert.Equal(t, doc.Content, got.Content)
		assert.Equal(t, doc.ContentHash, got.ContentHash)
	})

	t.Run("replaces existing document with same ID", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()

		require.NoError(t, svc.CreateDocument(ctx, testDocument("doc1", "Old Title", "old content")))
		require.NoError(t, svc.CreateDocument(ctx, testDocument("doc1", "New Title", "new content")))

		n, err := svc.CountDocuments(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		got, err := svc.FindDocumentByID(ctx, "doc1")
		require.NoError(t, err)
		assert.Equal(t, "New Title", got.Title)

		// The FTS index must track the replacement: the old content no
		// longer matches, the new content does.
		stale, err := svc.SearchDocuments(ctx, "old", 10)
		require.NoError(t, err)
		assert.Empty(t, stale)

		fresh, err := svc.SearchDocuments(ctx, "new content", 10)
		require.NoError(t, err)
		require.Len(t, fresh, 1)
		assert.Equal(t, "doc1", fresh[0].DocID)
	})

	t.Run("rejects document without ID", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)

		err := svc.CreateDocument(context.Background(), &eldin.Document{Title: "No ID"})
		require.Error(t, err)
		assert.Equal(t, eldin.EINVALID, eldin.ErrorCode(err))
	})
}

func TestDocumentService_FindDocumentByID(t *testing.T) {
	t.Parallel()

	t.Run("returns ENOTFOUND for missing document", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)

		_, err := svc.FindDocumentByID(context.Background(), "missing")
		require.Error(t, err)
		assert.Equal(t, eldin.ENOTFOUND, eldin.ErrorCode(err))
	})
}

func TestDocumentService_SearchDocuments(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T) (*sqlite.DocumentService, context.Context) {
		t.Helper()
		db := setupTestDB(t)
		svc := sqlite.NewDocumentService(db)
		ctx := context.Background()
		require.NoError(t, svc.CreateDocument(ctx, testDocument(
			"q4-2023", "Q4 2023 Revenue Review",
			"## Revenue Growth\n\nRevenue grew 12% in 2023 driven by subscriptions.")))
		require.NoError(t, svc.CreateDocument(ctx, testDocument(
			"handbook", "Employee Handbook",
			"## Vacation Policy\n\nEmployees accrue paid time off monthly.")))
		require.NoError(t, svc.CreateDocument(ctx, testDocument(
			"roadmap", "Product Roadmap",
			"## 2024 Themes\n\nGrowth of the platform is the main theme.")))
		return svc, ctx
	}

	t.Run("ranks the matching document first", func(t *testing.T) {
		t.Parallel()

		svc, ctx := seed(t)
		got, err := svc.SearchDocuments(ctx, "revenue growth 2023", 10)
		require.NoError(t, err)
		require.NotEmpty(t, got)
		assert.Equal(t, "q4-2023", got[0].DocID)
		assert.Equal(t, "Q4 2023 Revenue Review", got[0].Title)
	})

	t.Run("no match yields empty result", func(t *testing.T) {
		t.Parallel()

		svc, ctx := seed(t)
		got, err := svc.SearchDocuments(ctx, "quantum chromodynamics", 10)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("query punctuation is not parsed as operators", func(t *testing.T) {
		t.Parallel()

		svc, ctx := seed(t)
		got, err := svc.SearchDocuments(ctx, `vacation" OR NOT (policy`, 10)
		require.NoError(t, err)
		require.NotEmpty(t, got)
		assert.Equal(t, "handbook", got[0].DocID)
	})

	t.Run("recalls on a partial term match", func(t *testing.T) {
		t.Parallel()

		svc, ctx := seed(t)
		got, err := svc.SearchDocuments(ctx, "vacation chromodynamics", 10)
		require.NoError(t, err)
		require.NotEmpty(t, got)
		assert.Equal(t, "handbook", got[0].DocID)
	})

	t.Run("respects topN", func(t *testing.T) {
		t.Parallel()

		svc, ctx := seed(t)
		got, err := svc.SearchDocuments(ctx, "the", 1)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(got), 1)
	})

	t.Run("empty query yields no candidates", func(t *testing.T) {
		t.Parallel()

		svc, ctx := seed(t)
		got, err := svc.SearchDocuments(ctx, "  ...  ", 10)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestDocumentService_DeleteAllDocuments(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := sqlite.NewDocumentService(db)
	ctx := context.Background()

	require.NoError(t, svc.CreateDocument(ctx, testDocument("doc1", "One", "alpha")))
	require.NoError(t, svc.CreateDocument(ctx, testDocument("doc2", "Two", "beta")))

	require.NoError(t, svc.DeleteAllDocuments(ctx))

	n, err := svc.CountDocuments(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	got, err := svc.SearchDocuments(ctx, "alpha", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
