package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pageindex"
	"github.com/fwojciec/pageindex/gemini"
	"github.com/fwojciec/pageindex/goldmark"
	"github.com/fwojciec/pageindex/goquery"
	"github.com/fwojciec/pageindex/htmltomarkdown"
	pihttp "github.com/fwojciec/pageindex/http"
	pioai "github.com/fwojciec/pageindex/openai"
	pislog "github.com/fwojciec/pageindex/slog"
	"github.com/fwojciec/pageindex/sqlite"
	"github.com/fwojciec/pageindex/yaml"
	"github.com/joho/godotenv"
	"google.golang.org/genai"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Stdin feeds the manual oracle.
	Stdin io.Reader

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	DocumentService pageindex.DocumentService
	QueryService    pageindex.QueryService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Stdin:  os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pageindex"),
		kong.Description("Answer questions by navigating a document's outline."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pageindex --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = newLogger(stderr, cli.Verbose)

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set PAGEINDEX_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.DocumentService = sqlite.NewDocumentService(m.DB)
	m.QueryService = sqlite.NewQueryService(m.DB)
	deps.Documents = m.DocumentService
	deps.Queries = m.QueryService
	deps.Builders = pislog.NewLoggingRegistry(NewRegistry(), deps.Logger)
	deps.Fetcher = pihttp.NewFetcher()

	if cli.Load.CountTokens {
		tokens, err := gemini.NewTokenCounter(gemini.DefaultModel)
		if err != nil {
			return fmt.Errorf("failed to create token counter: %w", err)
		}
		deps.Tokens = tokens
	}

	if selected := kongCtx.Selected(); selected != nil && (selected.Name == "ask" || selected.Name == "eval") {
		if err := m.wireProvider(ctx, cli, deps); err != nil {
			return err
		}
	}

	return kongCtx.Run(deps)
}

// wireProvider sets the oracle and synthesizer for the selected provider.
func (m *Main) wireProvider(ctx context.Context, cli *CLI, deps *Dependencies) error {
	logger := deps.Logger

	switch cli.Provider {
	case "manual":
		deps.Oracle = NewManualOracle(m.Stdin, deps.Stderr)
		return nil

	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		baseURL := os.Getenv("OPENAI_BASE_URL")
		if apiKey == "" && baseURL == "" {
			fmt.Fprintln(deps.Stderr, "OPENAI_API_KEY environment variable not set. Set OPENAI_BASE_URL to use a local OpenAI-compatible server.")
			return fmt.Errorf("OPENAI_API_KEY not set")
		}
		client := pioai.NewClient(apiKey, baseURL)
		deps.Oracle = pislog.NewLoggingOracle(pioai.NewOracle(client, cli.Model), logger)
		deps.Synthesizer = func(docType string) pageindex.Synthesizer {
			s := pioai.NewSynthesizer(client, cli.Model)
			s.DocumentType = docType
			return pislog.NewLoggingSynthesizer(s, logger)
		}
		return nil

	default:
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(deps.Stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		deps.Oracle = pislog.NewLoggingOracle(gemini.NewOracle(client, cli.Model), logger)
		deps.Synthesizer = func(docType string) pageindex.Synthesizer {
			s := gemini.NewSynthesizer(client, cli.Model)
			s.DocumentType = docType
			return pislog.NewLoggingSynthesizer(s, logger)
		}
		return nil
	}
}

// NewRegistry returns a registry with a builder for every supported
// document type.
func NewRegistry() *pageindex.BuilderRegistry {
	r := pageindex.NewBuilderRegistry()
	r.Register(pageindex.DocumentTypeSECFiling, yaml.SECFilingBuilder{})
	r.Register(pageindex.DocumentTypeSOP, yaml.SOPBuilder{})
	r.Register(pageindex.DocumentTypeOutline, yaml.OutlineBuilder{})
	r.Register(pageindex.DocumentTypeMarkdown, goldmark.NewBuilder(""))
	r.Register(pageindex.DocumentTypeHTML, goquery.NewBuilder(htmltomarkdown.NewConverter()))
	return r
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	if path := os.Getenv("PAGEINDEX_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "pageindex.db"
	}
	dir := filepath.Join(home, ".pageindex")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "pageindex.db")
}
