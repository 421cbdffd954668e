package upload

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	// PastebinEndpoint is the pastebin paste creation API.
	PastebinEndpoint = "https://pastebin.com/api/api_post.php"
	pastebinPrefix   = "https://pastebin.com/"
)

// Pastebin uploads reports as unlisted pastes.
type Pastebin struct {
	DevKey   string
	Endpoint string // defaults to PastebinEndpoint
	Client   *http.Client
}

// Upload implements Uploader. Pastebin reports errors in a 200 response
// body, so anything that is not a paste URL is treated as a failure.
func (p *Pastebin) Upload(ctx context.Context, filename string, content []byte) (string, error) {
	if p.DevKey == "" {
		return "", errors.New("no pastebin developer key given")
	}
	if err := checkContent(content); err != nil {
		return "", err
	}

	form := url.Values{
		"api_dev_key":       {p.DevKey},
		"api_option":        {"paste"},
		"api_paste_code":    {string(content)},
		"api_paste_private": {"1"},
		"api_paste_name":    {filename},
		"api_paste_format":  {"text"},
	}

	endpoint := p.Endpoint
	if endpoint == "" {
		endpoint = PastebinEndpoint
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create pastebin request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := do(p.Client, "pastebin", req)
	if err != nil {
		return "", err
	}
	link := strings.TrimSpace(string(body))
	if !strings.HasPrefix(link, p.prefix(endpoint)) {
		return "", fmt.Errorf("pastebin upload failed: %s", link)
	}
	return link, nil
}

// prefix returns the URL prefix of a successful paste: the scheme and host
// of a custom endpoint, pastebin.com otherwise.
func (p *Pastebin) prefix(endpoint string) string {
	if endpoint == PastebinEndpoint {
		return pastebinPrefix
	}
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return pastebinPrefix
	}
	return u.Scheme + "://" + u.Host + "/"
}
