package clientdirectory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/fincore/credit-service/internal/core/domain"
	portssvc "github.com/fincore/credit-service/internal/core/ports/services"
)

// Resolver resolves client identifiers against the client directory service
// over HTTP. The Authorization header of the inbound request is forwarded
// opaquely when present.
type Resolver struct {
	baseURL    string
	httpClient *http.Client
}

// NewResolver creates a Resolver for the directory at baseURL.
func NewResolver(baseURL string, timeout time.Duration) *Resolver {
	return &Resolver{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

var _ portssvc.ClientResolver = (*Resolver)(nil)

// ResolveClient fetches the client record for clientID. A missing client is
// reported as (nil, nil); transport and server faults are returned as errors.
func (r *Resolver) ResolveClient(ctx context.Context, clientID string, authHeader string) (*domain.Client, error) {
	endpoint := fmt.Sprintf("%s/api/v1/client/%s", r.baseURL, url.PathEscape(clientID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building client directory request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling client directory for client %s: %w", clientID, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNoContent:
		return nil, nil
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("client directory returned status %d for client %s", resp.StatusCode, clientID)
	}

	var client domain.Client
	if err := json.NewDecoder(resp.Body).Decode(&client); err != nil {
		return nil, fmt.Errorf("decoding client directory response for client %s: %w", clientID, err)
	}
	return &client, nil
}
