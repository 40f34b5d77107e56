package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/fwojciec/pageindex"
	pioai "github.com/fwojciec/pageindex/openai"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// server replies to chat completions with content and records requests.
type server struct {
	mu       sync.Mutex
	requests []openai.ChatCompletionRequest
}

func newServer(t *testing.T, content string) (*server, *openai.Client) {
	t.Helper()

	s := &server{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.mu.Lock()
		s.requests = append(s.requests, req)
		s.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Model: req.Model,
			Choices: []openai.ChatCompletionChoice{{
				Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content},
			}},
		})
	}))
	t.Cleanup(srv.Close)

	return s, pioai.NewClient("test-key", srv.URL+"/v1")
}

func (s *server) last(t *testing.T) openai.ChatCompletionRequest {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(t, s.requests)
	return s.requests[len(s.requests)-1]
}

func TestOracle_Judge(t *testing.T) {
	t.Parallel()

	t.Run("parses decision from reply", func(t *testing.T) {
		t.Parallel()

		srv, client := newServer(t, `{"action":"descend","target":"s3","rationale":"maintenance lives here"}`)
		oracle := pioai.NewOracle(client, "")

		d, err := oracle.Judge(context.Background(), "filter interval?",
			pageindex.NodeDescriptor{ID: "root", Title: "Manual", Children: []pageindex.ChildDescriptor{{ID: "s3", Title: "Maintenance"}}},
			pageindex.NavigationContext{Metadata: map[string]string{pageindex.MetadataDocumentType: "sop"}, Step: 1, StepsRemaining: 15},
		)

		require.NoError(t, err)
		assert.Equal(t, pageindex.Descend("s3", "maintenance lives here"), d)

		req := srv.last(t)
		assert.Equal(t, pioai.DefaultModel, req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, pageindex.NavigatorInstructionFor("sop"), req.Messages[0].Content)
		assert.Contains(t, req.Messages[1].Content, "filter interval?")
		require.NotNil(t, req.ResponseFormat)
		assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONObject, req.ResponseFormat.Type)
	})

	t.Run("returns EORACLE for malformed reply", func(t *testing.T) {
		t.Parallel()

		_, client := newServer(t, "I think section 3")
		oracle := pioai.NewOracle(client, "gpt-4o")

		_, err := oracle.Judge(context.Background(), "q", pageindex.NodeDescriptor{ID: "root"}, pageindex.NavigationContext{})

		require.Error(t, err)
		assert.Equal(t, pageindex.EORACLE, pageindex.ErrorCode(err))
	})

	t.Run("returns EINVALID without client", func(t *testing.T) {
		t.Parallel()

		oracle := pioai.NewOracle(nil, "")

		_, err := oracle.Judge(context.Background(), "q", pageindex.NodeDescriptor{ID: "root"}, pageindex.NavigationContext{})

		require.Error(t, err)
		assert.Equal(t, pageindex.EINVALID, pageindex.ErrorCode(err))
	})
}

func TestSynthesizer_Synthesize(t *testing.T) {
	t.Parallel()

	t.Run("parses answer and clamps confidence", func(t *testing.T) {
		t.Parallel()

		srv, client := newServer(t, "```json\n{\"answer\":\"Every 500 hours.\",\"confidence\":1.4}\n```")
		synth := pioai.NewSynthesizer(client, "gpt-4o")
		synth.DocumentType = "SEC Filing"

		out, err := synth.Synthesize(context.Background(), "filter interval?", []pageindex.Fragment{
			{NodeID: "s3.2", Title: "Filters", Text: "Replace every 500 hours."},
		})

		require.NoError(t, err)
		assert.Equal(t, "Every 500 hours.", out.Answer)
		assert.InDelta(t, 1.0, out.Confidence, 0.0001)

		req := srv.last(t)
		assert.Equal(t, "gpt-4o", req.Model)
		assert.Equal(t, pageindex.SynthesizerInstructionFor("SEC Filing"), req.Messages[0].Content)
		assert.Contains(t, req.Messages[1].Content, "Replace every 500 hours.")
	})

	t.Run("returns EINVALID without fragments", func(t *testing.T) {
		t.Parallel()

		_, client := newServer(t, `{"answer":"x","confidence":1}`)
		synth := pioai.NewSynthesizer(client, "")

		_, err := synth.Synthesize(context.Background(), "q", nil)

		require.Error(t, err)
		assert.Equal(t, pageindex.EINVALID, pageindex.ErrorCode(err))
	})
}

func TestBuildOracleRequest(t *testing.T) {
	t.Parallel()

	req := pioai.BuildOracleRequest("m", "q", pageindex.NodeDescriptor{ID: "root"}, pageindex.NavigationContext{})

	assert.Equal(t, "m", req.Model)
	assert.InDelta(t, 0.1, req.Temperature, 0.001)
	assert.Equal(t, pageindex.NavigatorInstructionFor(""), req.Messages[0].Content)
}
