// Package dashclient is a Go client for the treasury dashboard API,
// including the live price merge cache and the polling refresh
// controller used by terminal dashboards.
package dashclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"treasuryd/internal/common"
	"treasuryd/internal/models"
)

// Client talks to a treasuryd server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
}

// NewClient creates a dashboard API client for the given base URL,
// e.g. "http://localhost:8080".
func NewClient(baseURL string, logger *common.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// FetchSnapshot retrieves the holdings dashboard snapshot.
func (c *Client) FetchSnapshot(ctx context.Context) (*models.DashboardSnapshot, error) {
	var snapshot models.DashboardSnapshot
	if err := c.getJSON(ctx, "/api/holdings", &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// FetchAssetPrices retrieves the current asset price list, the seed
// for a LiveMergeCache.
func (c *Client) FetchAssetPrices(ctx context.Context) ([]models.AssetPrice, error) {
	var prices []models.AssetPrice
	if err := c.getJSON(ctx, "/api/assets", &prices); err != nil {
		return nil, err
	}
	return prices, nil
}

func (c *Client) getJSON(ctx context.Context, path string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// LiveSubscription is an open event stream from the server. Events
// arrive on Events in server order; the channel closes when the
// subscription ends.
type LiveSubscription struct {
	Events <-chan models.PriceEvent

	cancel context.CancelFunc
}

// Close terminates the subscription.
func (s *LiveSubscription) Close() { s.cancel() }

// SubscribeLive opens a WebSocket to /api/live and streams price change
// events until the subscription or ctx is cancelled.
func (c *Client) SubscribeLive(ctx context.Context) (*LiveSubscription, error) {
	wsURL, err := c.liveURL()
	if err != nil {
		return nil, err
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", wsURL, err)
	}

	subCtx, cancel := context.WithCancel(ctx)
	events := make(chan models.PriceEvent, 64)

	go func() {
		<-subCtx.Done()
		conn.Close()
	}()

	go func() {
		defer close(events)
		defer cancel()
		for {
			var event models.PriceEvent
			if err := conn.ReadJSON(&event); err != nil {
				if subCtx.Err() == nil {
					c.logger.Warn().Err(err).Msg("Live subscription closed")
				}
				return
			}
			select {
			case events <- event:
			case <-subCtx.Done():
				return
			}
		}
	}()

	return &LiveSubscription{Events: events, cancel: cancel}, nil
}

func (c *Client) liveURL() (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	u.Path = "/api/live"
	return u.String(), nil
}
