package board

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"core/models"
)

// Client is the HTTP Store implementation used against a running API. The
// bearer token scopes every call to the owner's clan; a 401 maps to
// models.ErrSessionExpired so the board discards local edits.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 8 * time.Second},
	}
}

func (c *Client) ListPlayers(ctx context.Context) ([]models.Player, error) {
	var players []models.Player
	if err := c.do(ctx, http.MethodGet, "/api/players", nil, &players); err != nil {
		return nil, err
	}
	for i := range players {
		players[i].Wars = players[i].Wars.Normalized()
	}
	return players, nil
}

func (c *Client) UpdateWarSlot(ctx context.Context, playerID uint, warIndex int, slot models.WarSlot) (*models.Player, error) {
	var player models.Player
	path := fmt.Sprintf("/api/players/%d/war/%d", playerID, warIndex)
	if err := c.do(ctx, http.MethodPut, path, slot, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (c *Client) ResetWar(ctx context.Context, warIndex int) error {
	path := fmt.Sprintf("/api/players/reset-war/%d", warIndex)
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body *bytes.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payload)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.apiError(resp)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// apiError maps HTTP statuses onto the shared error taxonomy, keeping the
// server's inline message when it sent one.
func (c *Client) apiError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	message := payload.Error
	if message == "" {
		message = fmt.Sprintf("api status %d", resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%s: %w", message, models.ErrSessionExpired)
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", message, models.ErrNotFound)
	case http.StatusConflict:
		return fmt.Errorf("%s: %w", message, models.ErrConflict)
	case http.StatusBadRequest:
		return fmt.Errorf("%s: %w", message, models.ErrValidation)
	default:
		return fmt.Errorf("api status %d: %s", resp.StatusCode, message)
	}
}
