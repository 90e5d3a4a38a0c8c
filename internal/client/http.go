package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxErrorBody caps how much of a failed response is kept for logging.
const maxErrorBody = 4 << 10

// HTTPClient makes REST calls to the lobby backend.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

// NewHTTPClient creates a client targeting the given base URL (e.g. "http://localhost:8000").
// A zero timeout means requests never time out on their own.
func NewHTTPClient(baseURL string, timeout time.Duration, log *zap.Logger) *HTTPClient {
	if log == nil {
		log = zap.NewNop()
	}
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		log:     log.Named("client"),
	}
}

// Join sends POST /sessions/{accessCode}/players and returns the lobby's
// player list. The access code is placed in the path verbatim, except that a
// '%' which does not start an escape is sent as %25.
func (c *HTTPClient) Join(ctx context.Context, accessCode, name string) ([]Player, error) {
	path := "/sessions/" + escapeStrayPercent(accessCode) + "/players"
	reqID := uuid.NewString()
	log := c.log.With(zap.String("access_code", accessCode), zap.String("request_id", reqID))

	var players []Player
	if err := c.post(ctx, path, reqID, JoinRequest{Name: name}, &players); err != nil {
		return nil, err
	}
	if players == nil {
		return nil, fmt.Errorf("POST %s: %w: body is null", path, ErrParse)
	}
	log.Debug("response from API", zap.Int("players", len(players)))
	return players, nil
}

func (c *HTTPClient) post(ctx context.Context, path, reqID string, body interface{}, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("POST %s: %w: %w", path, ErrNetwork, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", reqID)

	c.log.Debug("sending request", zap.String("path", path), zap.String("request_id", reqID))
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w: %w", path, ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("POST %s: %w", path, &StatusError{Code: resp.StatusCode, Body: string(respBody)})
	}
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("POST %s: %w: %w", path, ErrNetwork, err)
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("POST %s: %w: %w", path, ErrParse, err)
	}
	return nil
}

// escapeStrayPercent encodes every '%' not followed by two hex digits, so
// the URL still parses and the backend receives the literal character.
func escapeStrayPercent(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && !(i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2])) {
			b.WriteString("%25")
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}
