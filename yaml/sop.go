package yaml

import (
	"fmt"

	"github.com/fwojciec/pageindex"
	"gopkg.in/yaml.v3"
)

// SOPDocumentType is the default document_type metadata of standard
// operating procedures.
const SOPDocumentType = "Standard Operating Procedure"

var _ pageindex.IndexBuilder = (*SOPBuilder)(nil)

// SOPBuilder builds an index from a standard operating procedure with
// document control fields, numbered sections and appendices. The root
// holds the document control block; appendices are grouped under an
// "Appendices" node.
type SOPBuilder struct{}

type sop struct {
	DocumentID     string    `yaml:"document_id"`
	Title          string    `yaml:"title"`
	DocumentType   string    `yaml:"document_type"`
	Version        string    `yaml:"version"`
	EffectiveDate  string    `yaml:"effective_date"`
	Classification string    `yaml:"classification"`
	Sections       yaml.Node `yaml:"sections"`
	Appendices     yaml.Node `yaml:"appendices"`
}

// Build parses data and returns the procedure's index.
func (SOPBuilder) Build(data []byte) (*pageindex.Index, error) {
	var s sop
	if err := decode(data, &s); err != nil {
		return nil, err
	}

	documentID := orDefault(s.DocumentID, "unknown")
	root := &pageindex.Node{
		ID:    "root",
		Title: orDefault(s.Title, "Standard Operating Procedure"),
		Content: fmt.Sprintf("Document ID: %s\nVersion: %s\nEffective Date: %s\nClassification: %s",
			orDefault(s.DocumentID, "N/A"),
			orDefault(s.Version, "N/A"),
			orDefault(s.EffectiveDate, "N/A"),
			orDefault(s.Classification, "N/A"),
		),
	}
	children, err := sections(&s.Sections, 1)
	if err != nil {
		return nil, err
	}
	root.Children = children

	appendices, err := group("Appendices", "Appendices", &s.Appendices)
	if err != nil {
		return nil, err
	}
	if appendices != nil {
		root.Children = append(root.Children, appendices)
	}

	metadata := map[string]string{pageindex.MetadataDocumentType: orDefault(s.DocumentType, SOPDocumentType)}
	setIf(metadata, "title", s.Title)
	setIf(metadata, "version", s.Version)
	setIf(metadata, "effective_date", s.EffectiveDate)
	setIf(metadata, "classification", s.Classification)

	return build(documentID, metadata, root)
}
