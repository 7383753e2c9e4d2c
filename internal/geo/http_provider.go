package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPProvider queries a positioning endpoint that returns
// {"latitude": ..., "longitude": ...}. The endpoint URL comes from
// configuration so deployments can point at whatever location service the
// venue uses.
type HTTPProvider struct {
	Endpoint string
	Client   *http.Client
}

func NewHTTPProvider(endpoint string) *HTTPProvider {
	return &HTTPProvider{
		Endpoint: endpoint,
		Client:   &http.Client{},
	}
}

func (p *HTTPProvider) Position(ctx context.Context, opts Options) (Position, error) {
	url := p.Endpoint
	if opts.HighAccuracy {
		url += "?accuracy=high"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Position{}, err
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return Position{}, err // context deadline surfaces here
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return Position{}, &Failure{Kind: FailurePermissionDenied, Err: fmt.Errorf("provider returned %d", resp.StatusCode)}
	case resp.StatusCode != http.StatusOK:
		return Position{}, &Failure{Kind: FailurePositionUnavailable, Err: fmt.Errorf("provider returned %d", resp.StatusCode)}
	}

	var body struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Position{}, &Failure{Kind: FailurePositionUnavailable, Err: err}
	}

	return Position{Latitude: body.Latitude, Longitude: body.Longitude, Taken: time.Now()}, nil
}
