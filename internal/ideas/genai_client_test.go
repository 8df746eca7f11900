package ideas

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenAIClient(t *testing.T, handler http.HandlerFunc) *GenAIClient {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewGenAIClient(context.Background(), GenAIConfig{
		APIKey:  "test-key",
		Model:   "gemini-test",
		BaseURL: srv.URL,
	})
	require.NoError(t, err)
	return client
}

func TestNewGenAIClientRequiresAPIKey(t *testing.T) {
	_, err := NewGenAIClient(context.Background(), GenAIConfig{Model: "gemini-test"})
	assert.Error(t, err)
}

func TestNewGenAIClientDefaultsModel(t *testing.T) {
	client, err := NewGenAIClient(context.Background(), GenAIConfig{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-flash", client.Model())
}

func TestGenAIClientGenerateText(t *testing.T) {
	var gotPath, gotBody string
	client := newTestGenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotPath = r.URL.Path
		gotBody = string(body)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"Stubble can be sold as biomass fuel..."}]}}]}`)
	})

	text, err := client.GenerateText(context.Background(), "", "biomass question")

	require.NoError(t, err)
	assert.Equal(t, "Stubble can be sold as biomass fuel...", text)
	assert.Contains(t, gotPath, "gemini-test")
	assert.Contains(t, gotBody, "biomass question")
}

func TestGenAIClientServiceFailure(t *testing.T) {
	client := newTestGenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`)
	})

	_, err := client.GenerateText(context.Background(), "", "prompt")

	var svcErr *ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, "gemini-test", svcErr.Model)
}

func TestGenAIClientNoCandidates(t *testing.T) {
	client := newTestGenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[]}`)
	})

	_, err := client.GenerateText(context.Background(), "", "prompt")

	var svcErr *ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Contains(t, err.Error(), "no candidates")
}
