// Package submitclient sends editor submissions to the structures endpoint
// and reads saved structures back.
package submitclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/dalemusser/kemahasiswaan/internal/domain/editor"
	"go.uber.org/zap"
)

// ErrNotFound is returned by Fetch when nothing is saved for the target yet.
var ErrNotFound = errors.New("structure not found")

// FieldErrors is the rejection returned with 422. Keys are structure paths
// ("groups[0].name"); see editor.ParsePath.
type FieldErrors struct {
	Fields map[string]string `json:"errors"`
}

func (e *FieldErrors) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("structure rejected: %d field error(s): %s", len(keys), strings.Join(keys, ", "))
}

// Client talks to one structure, identified by Kind and Period.
// It implements editor.Transmitter.
type Client struct {
	BaseURL string
	Kind    string
	Period  string
	HTTP    *http.Client
	Log     *zap.Logger

	mu    sync.Mutex
	saved *editor.Structure
}

func (c *Client) url() string {
	return strings.TrimRight(c.BaseURL, "/") + "/structures/" + url.PathEscape(c.Kind) + "/" + url.PathEscape(c.Period)
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

func (c *Client) logger() *zap.Logger {
	if c.Log != nil {
		return c.Log
	}
	return zap.NewNop()
}

// Transmit posts sub as multipart/form-data. A 200 reply carries the
// canonical structure, available afterwards from Saved.
func (c *Client) Transmit(ctx context.Context, sub editor.Submission) error {
	body, contentType, err := sub.Encode()
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		c.logger().Warn("structure save failed", zap.String("url", req.URL.String()), zap.Error(err))
		return fmt.Errorf("save structure: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var m editor.Metadata
		if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
			return fmt.Errorf("decode saved structure: %w", err)
		}
		s := m.Structure()
		c.mu.Lock()
		c.saved = &s
		c.mu.Unlock()
		c.logger().Info("structure saved",
			zap.String("kind", c.Kind),
			zap.String("period", c.Period),
			zap.Int("assets", len(sub.Assets)))
		return nil
	case http.StatusUnprocessableEntity:
		fe := &FieldErrors{}
		if err := json.NewDecoder(resp.Body).Decode(fe); err != nil {
			return fmt.Errorf("decode field errors: %w", err)
		}
		return fe
	default:
		return statusError(resp)
	}
}

// Saved returns the canonical structure from the last successful Transmit.
func (c *Client) Saved() (editor.Structure, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.saved == nil {
		return editor.Structure{}, false
	}
	return *c.saved, true
}

// Fetch loads the saved structure, the starting point of an edit session.
func (c *Client) Fetch(ctx context.Context) (editor.Structure, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(), nil)
	if err != nil {
		return editor.Structure{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return editor.Structure{}, fmt.Errorf("fetch structure: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var v struct {
			editor.Metadata
			Flash []string `json:"flash"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
			return editor.Structure{}, fmt.Errorf("decode structure: %w", err)
		}
		return v.Metadata.Structure(), nil
	case http.StatusNotFound:
		return editor.Structure{}, ErrNotFound
	default:
		return editor.Structure{}, statusError(resp)
	}
}

func statusError(resp *http.Response) error {
	var e struct {
		Error string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	if json.Unmarshal(raw, &e) == nil && e.Error != "" {
		return fmt.Errorf("structures endpoint: %s: %s", resp.Status, e.Error)
	}
	return fmt.Errorf("structures endpoint: %s", resp.Status)
}
