package fs_test

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/eldin"
	"github.com/fwojciec/eldin/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readLines(t *testing.T, path string) []map[string]any {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		lines = append(lines, rec)
	}
	require.NoError(t, scanner.Err())
	return lines
}

func TestAuditLog_Record(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "audit.jsonl")
	log := fs.NewAuditLog(path, nil)
	defer log.Close()

	now := time.Date(2023, 12, 31, 12, 0, 0, 500_000_000, time.UTC)
	log.RecordAsk(context.Background(), eldin.AskEvent{
		RequestID: "req-1",
		TS:        now,
		User:      "demo_user",
		Tenant:    "acme",
		Q:         "revenue growth 2023",
	})
	log.RecordAnswer(context.Background(), eldin.AnswerEvent{
		RequestID: "req-1",
		TS:        now.Add(5 * time.Millisecond),
		User:      "demo_user",
		Tenant:    "acme",
		Q:         "revenue growth 2023",
		Sources:   []eldin.SourceRef{{DocID: "q4-2023", Anchor: "#revenue-growth", Chars: 200}},
		TTFAMs:    5,
	})

	lines := readLines(t, path)
	require.Len(t, lines, 2)

	ask := lines[0]
	assert.Equal(t, "ask", ask["type"])
	assert.Equal(t, "req-1", ask["request_id"])
	assert.Equal(t, "demo_user", ask["user"])
	assert.Equal(t, "acme", ask["tenant"])
	assert.Equal(t, "revenue growth 2023", ask["q"])
	assert.InDelta(t, float64(now.UnixNano())/1e9, ask["ts"], 1e-6)
	assert.NotContains(t, ask, "sources")

	answer := lines[1]
	assert.Equal(t, "answer", answer["type"])
	assert.Equal(t, "req-1", answer["request_id"])
	assert.Equal(t, float64(5), answer["ttfa_ms"])
	sources, ok := answer["sources"].([]any)
	require.True(t, ok)
	require.Len(t, sources, 1)
	src := sources[0].(map[string]any)
	assert.Equal(t, "q4-2023", src["doc_id"])
	assert.Equal(t, "#revenue-growth", src["anchor"])
	assert.Equal(t, float64(200), src["chars"])
}

func TestAuditLog_AppendsAcrossReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "audit.jsonl")

	log := fs.NewAuditLog(path, nil)
	log.RecordAsk(context.Background(), eldin.AskEvent{RequestID: "req-1", TS: time.Now(), Q: "first"})
	require.NoError(t, log.Close())

	log = fs.NewAuditLog(path, nil)
	log.RecordAsk(context.Background(), eldin.AskEvent{RequestID: "req-2", TS: time.Now(), Q: "second"})
	require.NoError(t, log.Close())

	lines := readLines(t, path)
	require.Len(t, lines, 2)
	assert.Equal(t, "req-1", lines[0]["request_id"])
	assert.Equal(t, "req-2", lines[1]["request_id"])
}

func TestAuditLog_ConcurrentAppends(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "audit.jsonl")
	log := fs.NewAuditLog(path, nil)
	defer log.Close()

	const n = 50
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			log.RecordAsk(context.Background(), eldin.AskEvent{
				RequestID: fmt.Sprintf("req-%d", i),
				TS:        time.Now(),
				Q:         "concurrent",
			})
		}()
	}
	wg.Wait()

	// Every record must be a complete, parseable line.
	lines := readLines(t, path)
	assert.Len(t, lines, n)
	seen := make(map[string]bool, n)
	for _, rec := range lines {
		seen[rec["request_id"].(string)] = true
	}
	assert.Len(t, seen, n)
}

func TestAuditLog_SwallowsWriteFailures(t *testing.T) {
	t.Parallel()

	// A directory path cannot be opened as a file; recording must not
	// panic or error out.
	log := fs.NewAuditLog(t.TempDir(), nil)
	defer log.Close()

	log.RecordAsk(context.Background(), eldin.AskEvent{RequestID: "req-1", TS: time.Now(), Q: "doomed"})
}
