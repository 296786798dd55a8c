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
	"github.com/fwojciec/eldin/fs"
	elhttp "github.com/fwojciec/eldin/http"
	"github.com/fwojciec/eldin/retrieve"
	elslog "github.com/fwojciec/eldin/slog"
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

// CLI defines the gateway's flags. Every flag has an environment variable
// fallback and a default, so the binary runs with no arguments.
type CLI struct {
	Addr              string  `default:":8000" env:"GATEWAY_ADDR" help:"Listen address"`
	ProviderBase      string  `default:"http://localhost:8001" env:"PROVIDER_BASE" help:"Provider base URL"`
	ProviderToken     string  `default:"stub" env:"PROVIDER_TOKEN" help:"Credential sent with every provider call"`
	AuditLog          string  `default:"data/logs/audit.jsonl" env:"AUDIT_LOG" help:"Audit log path"`
	ExcerptPerSection int     `default:"600" env:"EXCERPT_PER_SECTION" help:"Per-section excerpt character cap"`
	ExcerptTotalCap   int     `default:"1200" env:"EXCERPT_TOTAL_CAP" help:"Total excerpt character cap"`
	CORSOrigin        string  `name:"cors-origin" default:"http://localhost:3000" env:"CORS_ORIGIN" help:"Allowed cross-origin value"`
	AskRPS            float64 `name:"ask-rps" default:"5" env:"ASK_RPS" help:"Per-client rate limit on /ask"`
}

// Main represents the program.
type Main struct {
	// Audit log, retained for closing on shutdown.
	Audit *fs.AuditLog
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Audit != nil {
		return m.Audit.Close()
	}
	return nil
}

// Run executes the gateway with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	_ = godotenv.Load()

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("eldin-gateway"),
		kong.Description("Retrieval-augmented question-answering gateway."),
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

	m.Audit = fs.NewAuditLog(cli.AuditLog, logger)
	defer m.Close()

	client := elhttp.NewClient(cli.ProviderBase, elhttp.WithToken(cli.ProviderToken))
	retriever := elslog.NewRetriever(client, logger)

	orchestrator := &retrieve.Orchestrator{
		Retriever:     retriever,
		Auditor:       m.Audit,
		PerSectionCap: cli.ExcerptPerSection,
		TotalCap:      cli.ExcerptTotalCap,
	}

	server := elhttp.NewGatewayServer(orchestrator,
		elhttp.WithCORSOrigin(cli.CORSOrigin),
		elhttp.WithAskRPS(cli.AskRPS),
	)

	httpServer := &http.Server{
		Addr:    cli.Addr,
		Handler: server.Router(),
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("gateway listening", "addr", cli.Addr, "provider", cli.ProviderBase)
		errc <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("gateway shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
