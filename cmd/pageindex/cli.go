package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/pageindex"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Documents pageindex.DocumentService
	Queries   pageindex.QueryService
	Builders  pageindex.IndexBuilderRegistry
	Tokens    pageindex.TokenCounter
	Fetcher   pageindex.Fetcher
	Oracle    pageindex.Oracle

	// Synthesizer returns the synthesizer for a document type. Nil answers
	// with the extracted text.
	Synthesizer func(docType string) pageindex.Synthesizer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Provider string `default:"gemini" enum:"gemini,openai,manual" env:"PAGEINDEX_PROVIDER" help:"Oracle provider (gemini, openai, manual)"`
	Model    string `env:"PAGEINDEX_MODEL" help:"Model name for the provider"`
	Verbose  bool   `short:"v" help:"Log oracle decisions and timings to stderr"`

	Load    LoadCmd    `cmd:"" help:"Index a document and store its outline"`
	List    ListCmd    `cmd:"" help:"List stored documents"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a document and its query history"`
	Tree    TreeCmd    `cmd:"" help:"Show the outline of a document"`
	Ask     AskCmd     `cmd:"" help:"Answer a question by navigating a document"`
	History HistoryCmd `cmd:"" help:"Show answered questions for a document"`
	Eval    EvalCmd    `cmd:"" help:"Answer a file of questions concurrently"`
}

// LoadCmd is the "load" subcommand.
type LoadCmd struct {
	Name        string `arg:"" help:"Document name"`
	Path        string `arg:"" help:"Path or http(s) URL of the source document"`
	Type        string `short:"t" help:"Document type (sec-filing, sop, outline, markdown, html); detected from the extension when empty, html for URLs without one"`
	Force       bool   `short:"f" help:"Replace an existing document with the same name"`
	CountTokens bool   `name:"count-tokens" help:"Report the token count of the indexed content"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Document name"`
	Force bool   `help:"Confirm deletion"`
}

// TreeCmd is the "tree" subcommand.
type TreeCmd struct {
	Name  string `arg:"" help:"Document name"`
	Depth int    `short:"d" default:"2" help:"Levels below the root to show"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Name         string `arg:"" help:"Document name"`
	Question     string `arg:"" help:"Question to answer"`
	JSON         bool   `name:"json" help:"Print the full result as JSON"`
	Trace        bool   `help:"Print the navigation trace"`
	Steps        int    `default:"15" help:"Maximum navigation steps"`
	Retries      int    `default:"2" help:"Retries per failed oracle call"`
	Preview      int    `default:"0" help:"Content runes shown to the oracle before extracting"`
	NoXref       bool   `name:"no-xref" help:"Disallow jumps along cross-references"`
	VisitedJumps bool   `name:"visited-jumps" help:"Allow jumps back to any visited section"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Name  string `arg:"" help:"Document name"`
	Limit int    `short:"n" default:"10" help:"Number of queries to show"`
}

// EvalCmd is the "eval" subcommand.
type EvalCmd struct {
	Name        string  `arg:"" help:"Document name"`
	File        string  `arg:"" help:"File with one question per line" type:"existingfile"`
	Concurrency int     `short:"c" default:"4" help:"Questions navigated at once"`
	RPS         float64 `name:"rps" default:"0" help:"Oracle calls per second across all questions (0 for no limit)"`
	Steps       int     `default:"15" help:"Maximum navigation steps"`
}
