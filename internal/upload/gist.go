package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// GistEndpoint is the GitHub API endpoint for creating gists.
const GistEndpoint = "https://api.github.com/gists"

// TokenEnv names the environment variable holding the default gist token.
const TokenEnv = "GITHUB_API_KEY"

// Gist uploads reports as private gists.
type Gist struct {
	Token    string
	Endpoint string // defaults to GistEndpoint
	Client   *http.Client
}

type gistFile struct {
	Content string `json:"content"`
}

type gistRequest struct {
	Description string              `json:"description"`
	Public      bool                `json:"public"`
	Files       map[string]gistFile `json:"files"`
}

type gistResponse struct {
	HTMLURL string `json:"html_url"`
}

// Upload implements Uploader.
func (g *Gist) Upload(ctx context.Context, filename string, content []byte) (string, error) {
	if g.Token == "" {
		return "", fmt.Errorf("no GitHub token: pass one to --paste or set %s", TokenEnv)
	}
	if err := checkContent(content); err != nil {
		return "", err
	}

	payload, err := json.Marshal(gistRequest{
		Description: "Recap output",
		Public:      false,
		Files:       map[string]gistFile{filename: {Content: string(content)}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode gist payload: %w", err)
	}

	endpoint := g.Endpoint
	if endpoint == "" {
		endpoint = GistEndpoint
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create gist request: %w", err)
	}
	req.Header.Set("Authorization", "token "+g.Token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("Content-Type", "application/json")

	body, err := do(g.Client, "gist", req)
	if err != nil {
		return "", err
	}
	var resp gistResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to decode gist response: %w", err)
	}
	if resp.HTMLURL == "" {
		return "", errors.New("gist response has no html_url")
	}
	return resp.HTMLURL, nil
}
