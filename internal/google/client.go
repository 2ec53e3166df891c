package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

var ErrInvalidIDToken = errors.New("invalid google id token")

// Profile is the subset of the tokeninfo response the service needs.
type Profile struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	Aud     string `json:"aud"`
}

// Verifier validates a Google-issued ID token and returns its profile.
type Verifier interface {
	Verify(ctx context.Context, idToken string) (*Profile, error)
}

type client struct {
	httpClient *http.Client
	endpoint   string
	clientID   string
}

// NewClient builds a Verifier backed by Google's tokeninfo endpoint. The HTTP
// client is passed in so tests can substitute a transport. When clientID is
// set the token audience must match it.
func NewClient(httpClient *http.Client, endpoint, clientID string) Verifier {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if endpoint == "" {
		endpoint = defaultTokenInfoURL
	}
	return &client{httpClient: httpClient, endpoint: endpoint, clientID: clientID}
}

func (c *client) Verify(ctx context.Context, idToken string) (*Profile, error) {
	if idToken == "" {
		return nil, ErrInvalidIDToken
	}

	u := c.endpoint + "?id_token=" + url.QueryEscape(idToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create tokeninfo request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call tokeninfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		buf := new(strings.Builder)
		_, _ = io.Copy(buf, resp.Body)
		if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
			return nil, ErrInvalidIDToken
		}
		return nil, fmt.Errorf("tokeninfo returned status %d: %s", resp.StatusCode, buf.String())
	}

	var p Profile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to decode tokeninfo response: %w", err)
	}
	if p.Sub == "" || p.Email == "" {
		return nil, ErrInvalidIDToken
	}
	if c.clientID != "" && p.Aud != c.clientID {
		return nil, ErrInvalidIDToken
	}
	return &p, nil
}
