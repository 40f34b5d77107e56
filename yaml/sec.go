package yaml

import (
	"fmt"

	"github.com/fwojciec/pageindex"
	"gopkg.in/yaml.v3"
)

// SECDocumentType is the document_type metadata of SEC filings.
const SECDocumentType = "SEC Filing"

var _ pageindex.IndexBuilder = (*SECFilingBuilder)(nil)

// SECFilingBuilder builds an index from an SEC filing:
//
//	document_id: acme-10k-2023
//	company: Acme Corp
//	filing_type: 10-K
//	fiscal_year: 2023
//	sections:
//	  Item7:
//	    title: Management's Discussion and Analysis
//	    content: ...
//	    subsections: {...}
//	footnotes:
//	  Note5: {title: Revenue, content: ...}
//
// Footnotes are grouped under a "Footnotes" node.
type SECFilingBuilder struct{}

type secFiling struct {
	DocumentID string    `yaml:"document_id"`
	Company    string    `yaml:"company"`
	FilingType string    `yaml:"filing_type"`
	FiscalYear string    `yaml:"fiscal_year"`
	Sections   yaml.Node `yaml:"sections"`
	Footnotes  yaml.Node `yaml:"footnotes"`
}

// Build parses data and returns the filing's index.
func (SECFilingBuilder) Build(data []byte) (*pageindex.Index, error) {
	var f secFiling
	if err := decode(data, &f); err != nil {
		return nil, err
	}
	if err := required(f.DocumentID, "document_id"); err != nil {
		return nil, err
	}
	if err := required(f.Company, "company"); err != nil {
		return nil, err
	}

	root := &pageindex.Node{
		ID:    "root",
		Title: fmt.Sprintf("%s %s FY%s", f.Company, f.FilingType, f.FiscalYear),
	}
	children, err := sections(&f.Sections, 1)
	if err != nil {
		return nil, err
	}
	root.Children = children

	footnotes, err := group("Footnotes", "Financial Statement Footnotes", &f.Footnotes)
	if err != nil {
		return nil, err
	}
	if footnotes != nil {
		root.Children = append(root.Children, footnotes)
	}

	metadata := map[string]string{pageindex.MetadataDocumentType: SECDocumentType}
	setIf(metadata, "company", f.Company)
	setIf(metadata, "filing_type", f.FilingType)
	setIf(metadata, "fiscal_year", f.FiscalYear)

	return build(f.DocumentID, metadata, root)
}
