// Package remote is the HTTP boundary to the authoritative game server.
// Every call is one round trip with no retry.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"geminus.dev/internal/models"
)

const maxBody = 4 << 20

// Client talks to the /api/game endpoints
type Client struct {
	base   string
	http   *http.Client
	tracer trace.Tracer

	mu    sync.RWMutex
	token string
}

// New creates a client for the server at base, bounded by timeout per call
func New(base string, timeout time.Duration) *Client {
	return &Client{
		base:   strings.TrimRight(base, "/"),
		http:   &http.Client{Timeout: timeout},
		tracer: otel.Tracer("geminus/remote"),
	}
}

// Init starts a server session and keeps its token for later calls
func (c *Client) Init(ctx context.Context) (models.StateDelta, error) {
	res, err := call[models.InitResponse](ctx, c, "init", http.MethodPost, "/api/game/init", nil)
	if err != nil {
		return models.StateDelta{}, err
	}
	c.mu.Lock()
	c.token = res.Token
	c.mu.Unlock()
	return res.GameState, nil
}

// State fetches the authoritative player and game state
func (c *Client) State(ctx context.Context) (models.StateDelta, error) {
	res, err := call[models.StateResponse](ctx, c, "state", http.MethodGet, "/api/game/state", nil)
	return res.GameState, err
}

// Zones fetches the server's zone catalog
func (c *Client) Zones(ctx context.Context) ([]models.Zone, error) {
	res, err := call[models.ZonesResponse](ctx, c, "zones", http.MethodGet, "/api/game/zones", nil)
	return res.Zones, err
}

// Teleport asks the server to move the player to another zone
func (c *Client) Teleport(ctx context.Context, zoneID int) (models.ActionResponse, error) {
	res, err := call[models.ActionResponse](ctx, c, "teleport", http.MethodPost, "/api/game/teleport",
		models.TeleportRequest{ZoneID: zoneID})
	if err != nil {
		return res, err
	}
	return res, checkAction("teleport", res)
}

// Move asks the server to step the player one hex
func (c *Client) Move(ctx context.Context, deltaQ, deltaR int) (models.ActionResponse, error) {
	res, err := call[models.ActionResponse](ctx, c, "move", http.MethodPost, "/api/game/move",
		models.MoveRequest{DeltaQ: deltaQ, DeltaR: deltaR})
	if err != nil {
		return res, err
	}
	return res, checkAction("move", res)
}

// CurrentZone fetches the zone the server has the player in
func (c *Client) CurrentZone(ctx context.Context) (models.Zone, error) {
	res, err := call[models.ZoneResponse](ctx, c, "current-zone", http.MethodGet, "/api/game/current-zone", nil)
	return res.Zone, err
}

func checkAction(op string, res models.ActionResponse) error {
	if res.Success {
		return nil
	}
	msg := res.Message
	if msg == "" {
		msg = "action refused"
	}
	return &RemoteError{Op: op, Status: http.StatusOK, Message: msg}
}

// call performs one JSON round trip and classifies the outcome
func call[Res any](ctx context.Context, c *Client, op, method, path string, body any) (result Res, err error) {
	ctx, span := c.tracer.Start(ctx, "remote."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return result, fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return result, fmt.Errorf("%s: build request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	c.mu.RLock()
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	c.mu.RUnlock()
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req)
	if err != nil {
		return result, &UnavailableError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return result, &UnavailableError{Op: op, Status: resp.StatusCode, Err: err}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if err := json.Unmarshal(payload, &result); err != nil {
			return result, &RemoteError{Op: op, Status: resp.StatusCode, Message: "malformed response: " + err.Error()}
		}
		return result, nil
	case resp.StatusCode >= 500:
		return result, &UnavailableError{Op: op, Status: resp.StatusCode}
	default:
		var e models.ErrorResponse
		if json.Unmarshal(payload, &e) == nil && e.Error != "" {
			return result, &RemoteError{Op: op, Status: resp.StatusCode, Message: e.Error}
		}
		return result, &UnavailableError{Op: op, Status: resp.StatusCode}
	}
}
