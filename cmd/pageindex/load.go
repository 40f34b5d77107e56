package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fwojciec/pageindex"
)

// Run executes the load command.
func (c *LoadCmd) Run(deps *Dependencies) error {
	remote := pageindex.IsURL(c.Path)

	docType := pageindex.DocumentType(c.Type)
	if docType == "" {
		detected, ok := pageindex.DetectDocumentType(c.Path)
		switch {
		case ok:
			docType = detected
		case remote:
			docType = pageindex.DocumentTypeHTML
		default:
			fmt.Fprintf(deps.Stderr, "error: cannot detect the type of %q; use --type\n", c.Path)
			return pageindex.Errorf(pageindex.EINVALID, "cannot detect the type of %q", c.Path)
		}
	}

	data, err := c.read(deps, remote)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pageindex.ErrorMessage(err))
		return err
	}

	idx, err := deps.Builders.Build(docType, data)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pageindex.ErrorMessage(err))
		return err
	}

	// Force mode: delete existing document first
	if c.Force {
		existing, err := deps.Documents.FindDocuments(deps.Ctx, pageindex.DocumentFilter{Name: &c.Name})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pageindex.ErrorMessage(err))
			return err
		}
		if len(existing) > 0 {
			if err := deps.Documents.DeleteDocument(deps.Ctx, existing[0].ID); err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", pageindex.ErrorMessage(err))
				return err
			}
		}
	}

	doc := &pageindex.Document{
		Name:       c.Name,
		Type:       docType,
		SourcePath: c.Path,
	}
	if err := deps.Documents.CreateDocument(deps.Ctx, doc, idx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pageindex.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Loaded document %q (%s)\n", c.Name, doc.ID)
	fmt.Fprintf(deps.Stdout, "  %d sections from %s\n", idx.Len(), FormatBytes(len(data)))

	if c.CountTokens && deps.Tokens != nil {
		tokens, err := pageindex.CountIndexTokens(deps.Ctx, deps.Tokens, idx)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "warning: counting tokens: %v\n", err)
			return nil
		}
		fmt.Fprintf(deps.Stdout, "  %s of content\n", FormatTokens(tokens))
	}

	return nil
}

func (c *LoadCmd) read(deps *Dependencies, remote bool) ([]byte, error) {
	if !remote {
		data, err := os.ReadFile(c.Path)
		if err != nil {
			return nil, pageindex.Errorf(pageindex.EINVALID, "cannot read %s: %v", c.Path, err)
		}
		return data, nil
	}

	if deps.Fetcher == nil {
		return nil, pageindex.Errorf(pageindex.EINVALID, "fetching URLs is not configured")
	}
	data, err := deps.Fetcher.Fetch(deps.Ctx, c.Path)
	var appErr *pageindex.Error
	if err != nil && !errors.As(err, &appErr) {
		return nil, pageindex.Errorf(pageindex.EINTERNAL, "fetching %s: %v", c.Path, err)
	}
	return data, err
}
