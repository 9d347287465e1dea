package posters

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPromptFull(t *testing.T) {
	prompt := BuildPrompt(ShowDetails{
		BandName:  "The Amps",
		ShowTitle: "Winter Tour",
		Venue:     "The Hall",
		Date:      "2026-12-01",
		Style:     "jazz",
	})

	assert.Contains(t, prompt, `Concert poster for "The Amps"`)
	assert.Contains(t, prompt, `performing "Winter Tour"`)
	assert.Contains(t, prompt, "at The Hall")
	assert.Contains(t, prompt, "on 2026-12-01")
	assert.Contains(t, prompt, "jazz music style")
	assert.Contains(t, prompt, "bold typography")
}

func TestBuildPromptDefaultsStyle(t *testing.T) {
	prompt := BuildPrompt(ShowDetails{BandName: "The Amps"})
	assert.Contains(t, prompt, "rock music style")
	assert.NotContains(t, prompt, "performing")
	assert.NotContains(t, prompt, " at ")
	assert.NotContains(t, prompt, " on ")
}

func newTestClient(srv *httptest.Server) *ImageClient {
	return &ImageClient{
		APIKey:     "test-key",
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
	}
}

func TestGenerate(t *testing.T) {
	imageBytes := []byte("fake-png-bytes")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/images/generations", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req generationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "dall-e-3", req.Model)
		assert.Equal(t, 1, req.N)
		assert.Equal(t, "1024x1024", req.Size)
		assert.Equal(t, "b64_json", req.ResponseFormat)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]string{
				{"b64_json": base64.StdEncoding.EncodeToString(imageBytes)},
			},
		})
	}))
	defer srv.Close()

	got, err := newTestClient(srv).Generate(context.Background(), "a poster")
	require.NoError(t, err)
	assert.Equal(t, imageBytes, got)
}

func TestGenerateAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "content policy violation"},
		})
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Generate(context.Background(), "a poster")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "poster generation failed")
	assert.Contains(t, err.Error(), "content policy violation")
}

func TestGenerateEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"data": []map[string]string{}})
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Generate(context.Background(), "a poster")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}

func TestGenerateBadBase64(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]string{{"b64_json": "not base64!!"}},
		})
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Generate(context.Background(), "a poster")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding image")
}
