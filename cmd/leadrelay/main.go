// Command leadrelay serves the leadscout relay API. It holds the Gemini
// credentials so leadscout clients do not have to, and re-frames the
// generation stream as newline-delimited JSON envelopes.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/leadscout/gemini"
	lshttp "github.com/fwojciec/leadscout/http"
	leadslog "github.com/fwojciec/leadscout/slog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// shutdownTimeout bounds how long in-flight streams may run after a
// shutdown signal before the server gives up on them.
const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Listen address. Set before calling Run().
	Addr string

	mu sync.Mutex
	ln net.Listener
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Addr: defaultAddr(),
	}
}

// ListenAddr returns the bound listen address, or "" before the server
// starts listening. With an Addr of "127.0.0.1:0" this reports the port
// the kernel picked.
func (m *Main) ListenAddr() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ln == nil {
		return ""
	}
	return m.ln.Addr().String()
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Addr    string  `help:"Listen address (overrides LEADRELAY_ADDR)"`
	Rate    float64 `default:"10" help:"Searches admitted per minute"`
	Burst   int     `default:"3" help:"Searches admitted in a burst"`
	Model   string  `help:"Generation model (default ${default_model})"`
	Verbose bool    `short:"v" help:"Log at debug level"`
}

// Run executes the relay with the given arguments. It blocks until the
// context is canceled or the server fails.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("leadrelay"),
		kong.Description("Relay server for leadscout lead generation"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Vars{"default_model": gemini.DefaultModel},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	if cli.Addr != "" {
		m.Addr = cli.Addr
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	generator := leadslog.NewLoggingGenerator(
		gemini.NewGenerator(client, gemini.WithModel(cli.Model)),
		logger,
	)

	handler := &lshttp.Handler{
		Generator: generator,
		Limiter:   rate.NewLimiter(rate.Limit(cli.Rate/60.0), cli.Burst),
		Logger:    logger,
	}

	return m.serve(ctx, handler, logger)
}

// serve runs the HTTP server until the context is canceled, then shuts
// down gracefully, letting in-flight streams finish within
// shutdownTimeout.
func (m *Main) serve(ctx context.Context, handler http.Handler, logger *slog.Logger) error {
	ln, err := net.Listen("tcp", m.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %q: %w", m.Addr, err)
	}

	m.mu.Lock()
	m.ln = ln
	m.mu.Unlock()

	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("relay listening", "addr", ln.Addr().String())

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := server.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func defaultAddr() string {
	if addr := os.Getenv("LEADRELAY_ADDR"); addr != "" {
		return addr
	}
	return ":8080"
}
