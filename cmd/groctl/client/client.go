// Package client is the HTTP client groctl speaks to a gro server
// with. It wraps the few endpoints the subcommands need and decodes
// the server's {"detail": ...} error bodies into plain errors.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apifarms "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/api/types/farms"
)

type Client struct {
	// BaseURL is the server root, e.g. http://localhost:8000 . On a
	// root server, point it at the farm prefix:
	// http://roothost:8000/farms/my-farm .
	BaseURL string

	// Token, when set, is sent as a bearer token.
	Token string

	HTTP *http.Client
}

func New(baseURL string, token string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Token:   token,
		HTTP:    http.DefaultClient,
	}
}

// Do sends a request and returns the response as-is. path is taken
// relative to BaseURL and should start with "/".
func (c *Client) Do(ctx context.Context, method string, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	return c.HTTP.Do(req)
}

// apiError turns a non-2xx response into an error, preferring the
// server's detail message over the raw status.
func apiError(resp *http.Response) error {
	payload, _ := io.ReadAll(resp.Body)
	message := struct {
		Detail interface{} `json:"detail"`
	}{}
	if err := json.Unmarshal(payload, &message); err == nil && message.Detail != nil {
		return fmt.Errorf("%s: %v", resp.Status, message.Detail)
	}
	return fmt.Errorf("%s: %s", resp.Status, string(payload))
}

func (c *Client) getJSON(ctx context.Context, path string, dest interface{}) error {
	resp, err := c.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}

// Farm fetches the farm this server serves.
func (c *Client) Farm(ctx context.Context) (apifarms.Detail, error) {
	found := []apifarms.Detail{}
	if err := c.getJSON(ctx, "/api/farm/", &found); err != nil {
		return apifarms.Detail{}, err
	}
	if len(found) == 0 {
		return apifarms.Detail{}, fmt.Errorf("the server has no farm")
	}
	return found[0], nil
}

// UpdateFarm PUTs an update to the farm and returns its new state.
func (c *Client) UpdateFarm(ctx context.Context, id int64, update apifarms.Update) (apifarms.Detail, error) {
	body, err := json.Marshal(update)
	if err != nil {
		return apifarms.Detail{}, err
	}
	resp, err := c.Do(ctx, http.MethodPut, fmt.Sprintf("/api/farm/%d/", id), bytes.NewReader(body))
	if err != nil {
		return apifarms.Detail{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return apifarms.Detail{}, apiError(resp)
	}
	updated := apifarms.Detail{}
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		return apifarms.Detail{}, err
	}
	return updated, nil
}

// IssueToken trades the server secret for a bearer token.
func (c *Client) IssueToken(ctx context.Context, secret string) (string, error) {
	body, err := json.Marshal(map[string]string{"secret": secret})
	if err != nil {
		return "", err
	}
	resp, err := c.Do(ctx, http.MethodPost, "/api/auth/token/", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", apiError(resp)
	}
	issued := struct {
		Token string `json:"token"`
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&issued); err != nil {
		return "", err
	}
	return issued.Token, nil
}
