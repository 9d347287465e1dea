package posters

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

const defaultBaseURL = "https://api.openai.com/v1"

// ImageClient calls the text-to-image API. The dependency is single-shot:
// a failed generation is surfaced to the caller, never retried.
type ImageClient struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func NewImageClient() *ImageClient {
	return &ImageClient{
		APIKey:     os.Getenv("OPENAI_API_KEY"),
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 120 * time.Second},
	}
}

type generationRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	Quality        string `json:"quality"`
	ResponseFormat string `json:"response_format"`
}

type generationResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate synthesizes one 1024x1024 image for the prompt and returns the
// decoded bytes.
func (c *ImageClient) Generate(ctx context.Context, prompt string) ([]byte, error) {
	payload, err := json.Marshal(generationRequest{
		Model:          "dall-e-3",
		Prompt:         prompt,
		N:              1,
		Size:           "1024x1024",
		Quality:        "standard",
		ResponseFormat: "b64_json",
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/images/generations", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("poster generation failed: %w", err)
	}
	defer resp.Body.Close()

	var result generationResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("poster generation failed: decoding response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := resp.Status
		if result.Error != nil && result.Error.Message != "" {
			msg = result.Error.Message
		}
		return nil, fmt.Errorf("poster generation failed: %s", msg)
	}
	if len(result.Data) == 0 || result.Data[0].B64JSON == "" {
		return nil, fmt.Errorf("poster generation failed: empty response")
	}

	image, err := base64.StdEncoding.DecodeString(result.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("poster generation failed: decoding image: %w", err)
	}
	return image, nil
}
