package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/eldin"
	elhttp "github.com/fwojciec/eldin/http"
	"github.com/fwojciec/eldin/markdown"
	"github.com/fwojciec/eldin/sqlite"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// CLI defines the provider's flags. Every flag has an environment variable
// fallback and a default, so the binary runs with no arguments.
type CLI struct {
	Addr    string `default:":8001" env:"PROVIDER_ADDR" help:"Listen address"`
	DocsDir string `default:"data/docs" env:"DOCS_DIR" help:"Markdown corpus directory"`
	DB      string `default:"data/index.db" env:"PROVIDER_DB" help:"Index database path (\":memory:\" allowed)"`
	BaseURL string `default:"http://localhost:8001" env:"HOST" help:"External base URL for citation links"`
}

// Main represents the program.
type Main struct {
	// SQLite database backing the document index.
	DB *sqlite.DB

	// Document service, exposed for end-to-end testing.
	Documents eldin.DocumentService
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the provider with the given arguments. The index is rebuilt
// wholesale from the corpus directory before the server starts accepting
// queries.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	_ = godotenv.Load()

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("eldin-provider"),
		kong.Description("Markdown document provider serving retrieval primitives."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}
	if _, err := parser.Parse(args); err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(stderr, nil))

	m.DB = sqlite.NewDB(cli.DB)
	if err := m.DB.Open(); err != nil {
		return fmt.Errorf("failed to open index database at %q: %w", cli.DB, err)
	}
	defer m.Close()

	m.Documents = sqlite.NewDocumentService(m.DB)

	// Rebuild completes before the server starts, so query handlers only
	// ever observe a fully built index.
	begin := time.Now()
	if err := m.Documents.DeleteAllDocuments(ctx); err != nil {
		return fmt.Errorf("failed to clear index: %w", err)
	}
	n, err := markdown.LoadDir(ctx, cli.DocsDir, m.Documents)
	if err != nil {
		return fmt.Errorf("failed to rebuild index from %q: %w", cli.DocsDir, err)
	}
	logger.Info("index rebuilt", "docs", n, "dir", cli.DocsDir, "duration", time.Since(begin))

	licensor := eldin.NewAllowList(eldin.ScopeReadMetadata, eldin.ScopeReadExcerpts)
	server := elhttp.NewProviderServer(m.Documents, licensor, cli.BaseURL)

	httpServer := &http.Server{
		Addr:    cli.Addr,
		Handler: server.Router(),
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("provider listening", "addr", cli.Addr)
		errc <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("provider shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
