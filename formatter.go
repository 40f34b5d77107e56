package pageindex

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"
)

// NavigatorInstruction is the system instruction for model-backed oracles.
const NavigatorInstruction = `You navigate the outline of a long business or technical document to find the sections that answer a question.

At each step you see one section: its title, summary, child sections and cross-references. Choose exactly one action:
- "descend": move into one of the listed child sections that likely holds the answer. Set "target" to the child id.
- "extract": record the current section's full text as evidence. Do this only when the section itself holds the answer.
- "backtrack": leave a wrong branch. Set "target" to an ancestor on the current path or to a listed cross-reference id.
- "complete": stop when the extracted evidence answers the question, or when nothing more can be found.

Follow the hierarchy from general to specific. When the answer spans sections, extract each of them. Follow cross-references ("see Section 2.3") when they point to required details. Never descend into an id that is not listed.

Reply with a JSON object: {"action": "...", "target": "...", "rationale": "..."}. The rationale is required.`

const operationsEmphasis = `

This is an operations document. Pay attention to procedure steps and their order, approval thresholds, numerical limits, timing rules and references to other procedures.`

const filingEmphasis = `

This is a regulatory financial filing. Pay attention to exact figures, fiscal periods, risk disclosures and footnotes referenced from the statements.`

// NavigatorInstructionFor returns NavigatorInstruction specialized for a
// document_type metadata value.
func NavigatorInstructionFor(docType string) string {
	switch {
	case isOperationsDoc(docType):
		return NavigatorInstruction + operationsEmphasis
	case isFilingDoc(docType):
		return NavigatorInstruction + filingEmphasis
	}
	return NavigatorInstruction
}

// SynthesizerInstructionFor returns the system instruction for
// model-backed synthesizers.
func SynthesizerInstructionFor(docType string) string {
	base := "You answer questions using only the evidence extracted from a document. Quote exact numbers, percentages, procedures and requirements. If the evidence does not answer the question, say so."
	switch {
	case isOperationsDoc(docType):
		return base + " For procedures, state every step, threshold and policy requirement; do not omit critical details."
	case isFilingDoc(docType):
		return "You are a financial analyst. " + base
	}
	return base
}

func isOperationsDoc(docType string) bool {
	for _, kw := range []string{"SOP", "Procedure", "Planning", "Supply"} {
		if strings.Contains(docType, kw) {
			return true
		}
	}
	return false
}

func isFilingDoc(docType string) bool {
	return strings.Contains(docType, "SEC") || strings.Contains(docType, "Filing")
}

// FormatNavigationPrompt renders the per-step prompt for a model-backed
// oracle.
func FormatNavigationPrompt(query string, node NodeDescriptor, nav NavigationContext) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Question: %s\n\n", query)
	fmt.Fprintf(&sb, "Current section: [%s] %s\n", node.ID, node.Title)
	if node.Summary != "" {
		fmt.Fprintf(&sb, "Summary: %s\n", node.Summary)
	}
	if node.Preview != "" {
		fmt.Fprintf(&sb, "Content preview: %s\n", node.Preview)
	} else if !node.HasContent {
		sb.WriteString("Content preview: (no direct content)\n")
	}

	sb.WriteString("\nChild sections:\n")
	if len(node.Children) == 0 {
		sb.WriteString("(none - this is a leaf section)\n")
	}
	for _, c := range node.Children {
		marker := "[-]"
		if c.HasChildren {
			marker = "[+]"
		}
		fmt.Fprintf(&sb, "%s [%s] %s\n", marker, c.ID, c.Title)
		if c.Summary != "" {
			fmt.Fprintf(&sb, "    %s\n", c.Summary)
		}
	}

	if len(node.CrossReferences) > 0 {
		sb.WriteString("\nCross-references:\n")
		for _, r := range node.CrossReferences {
			fmt.Fprintf(&sb, "[%s] %s\n", r.ID, r.Title)
		}
	}

	path := make([]string, 0, len(nav.Path))
	for _, p := range nav.Path {
		path = append(path, p.ID)
	}
	fmt.Fprintf(&sb, "\nPath so far: %s\n", strings.Join(path, " -> "))

	sb.WriteString("\nExtracted so far:\n")
	if len(nav.Extracted) == 0 {
		sb.WriteString("(none yet)\n")
	}
	for _, f := range nav.Extracted {
		fmt.Fprintf(&sb, "- [%s] %s\n", f.NodeID, f.Title)
	}

	fmt.Fprintf(&sb, "\nStep %d, %d steps remaining.", nav.Step, nav.StepsRemaining)
	return sb.String()
}

// FormatFragments renders fragments with their provenance, one block per
// fragment.
func FormatFragments(fragments []Fragment) string {
	if len(fragments) == 0 {
		return ""
	}

	parts := make([]string, 0, len(fragments))
	for _, f := range fragments {
		parts = append(parts, fmt.Sprintf("[%s] %s\n%s", f.NodeID, f.Title, strings.TrimSpace(f.Text)))
	}
	return strings.Join(parts, "\n\n")
}

// FormatSynthesisPrompt renders the prompt for a model-backed synthesizer.
func FormatSynthesisPrompt(query string, fragments []Fragment) string {
	var sb strings.Builder
	sb.WriteString("<evidence>\n")
	for _, f := range fragments {
		sb.WriteString("<section>\n")
		fmt.Fprintf(&sb, "<id>%s</id>\n", f.NodeID)
		fmt.Fprintf(&sb, "<title>%s</title>\n", f.Title)
		fmt.Fprintf(&sb, "<text>%s</text>\n", f.Text)
		sb.WriteString("</section>\n")
	}
	sb.WriteString("</evidence>\n\n")
	fmt.Fprintf(&sb, "Question: %s\n\n", query)
	sb.WriteString(`Reply with a JSON object: {"answer": "...", "confidence": 0.0}. Confidence is between 0 and 1 and reflects how completely the evidence answers the question.`)
	return sb.String()
}

var codeFenceRe = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if m := codeFenceRe.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return s
}

// ParseDecision decodes a model reply into a Decision. The reply may be
// wrapped in a code fence and may use "target_section" and "reasoning" as
// aliases. Returns EORACLE for malformed or invalid replies.
func ParseDecision(text string) (Decision, error) {
	var raw struct {
		Action        string `json:"action"`
		Target        string `json:"target"`
		TargetSection string `json:"target_section"`
		Rationale     string `json:"rationale"`
		Reasoning     string `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &raw); err != nil {
		return Decision{}, Errorf(EORACLE, "malformed decision %q: %v", truncate(text, 200), err)
	}

	d := Decision{
		Action:    Action(strings.ToLower(strings.TrimSpace(raw.Action))),
		Target:    firstNonEmpty(raw.Target, raw.TargetSection),
		Rationale: firstNonEmpty(raw.Rationale, raw.Reasoning),
	}
	if err := d.Validate(); err != nil {
		return Decision{}, err
	}
	return d, nil
}

// ParseSynthesis decodes a model reply into a Synthesis, clamping the
// confidence to [0,1]. Returns EINVALID for malformed replies.
func ParseSynthesis(text string) (*Synthesis, error) {
	var s Synthesis
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &s); err != nil {
		return nil, Errorf(EINVALID, "malformed synthesis %q: %v", truncate(text, 200), err)
	}
	if strings.TrimSpace(s.Answer) == "" {
		return nil, Errorf(EINVALID, "synthesis has no answer")
	}
	s.Confidence = ClampConfidence(s.Confidence)
	return &s, nil
}

// ClampConfidence limits c to [0,1].
func ClampConfidence(c float64) float64 {
	if c < 0 || math.IsNaN(c) {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
