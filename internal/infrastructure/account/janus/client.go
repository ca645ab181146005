// Package janus verifies access tokens against the league account service.
package janus

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/leagueops/league-office/internal/domain/user"
	"github.com/leagueops/league-office/internal/platform/logging"
	"github.com/leagueops/league-office/internal/platform/resilience"
	"github.com/leagueops/league-office/internal/usecase"
)

var errJanusTransient = crerr.New("account service transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	IntrospectPath string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig

	// PrincipalCacheTTL <= 0 disables the verified-principal cache.
	PrincipalCacheTTL        time.Duration
	PrincipalCacheMaxEntries int
}

// Client calls the account service's token introspection endpoint. A circuit
// breaker guards the upstream: while it is open, verification fails fast with
// a dependency-unavailable error instead of piling up requests.
type Client struct {
	httpClient     *http.Client
	introspectURL  string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
	principals     *inMemoryPrincipalCache
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 10 * time.Second
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	var principals *inMemoryPrincipalCache
	if cfg.PrincipalCacheTTL > 0 {
		maxEntries := cfg.PrincipalCacheMaxEntries
		if maxEntries <= 0 {
			maxEntries = 1024
		}
		principals = newInMemoryPrincipalCache(cfg.PrincipalCacheTTL, maxEntries)
	}

	return &Client{
		httpClient:     httpClient,
		introspectURL:  buildURL(cfg.BaseURL, cfg.IntrospectPath),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
		principals:     principals,
	}
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	tokenKey := hashToken(token)
	if c.principals != nil {
		if principal, ok := c.principals.Get(tokenKey); ok {
			return principal, nil
		}
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "account service circuit breaker rejected request", "state", c.breaker.State())
			return user.Principal{}, fmt.Errorf("%w: account service is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	// Concurrent requests carrying the same token collapse into one upstream
	// introspection call.
	out, err, _ := c.flight.Do(tokenKey, func() (any, error) {
		decoded, reqErr := c.introspect(ctx, token)
		if c.circuitEnabled {
			if reqErr != nil && isCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return decoded, reqErr
	})
	if err != nil {
		if isCircuitFailure(err) {
			return user.Principal{}, fmt.Errorf("%w: account service is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		return user.Principal{}, err
	}

	decoded, ok := out.(introspectResponse)
	if !ok {
		return user.Principal{}, fmt.Errorf("unexpected introspect payload type %T", out)
	}

	if !decoded.Active {
		return user.Principal{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)
	}
	if strings.TrimSpace(decoded.UserID) == "" {
		return user.Principal{}, fmt.Errorf("invalid introspect response: user_id is empty")
	}

	role := user.Role(strings.TrimSpace(decoded.Role))
	if role == "" {
		role = user.RoleManager
	}

	principal := user.Principal{
		UserID: decoded.UserID,
		TeamID: decoded.TeamID,
		Role:   role,
	}
	if c.principals != nil {
		c.principals.Set(tokenKey, principal)
	}

	return principal, nil
}

func (c *Client) introspect(ctx context.Context, token string) (introspectResponse, error) {
	encoded, err := sonic.Marshal(introspectRequest{Token: token})
	if err != nil {
		return introspectResponse{}, fmt.Errorf("marshal introspect request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.introspectURL, bytes.NewReader(encoded))
	if err != nil {
		return introspectResponse{}, fmt.Errorf("create introspect request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return introspectResponse{}, fmt.Errorf("%w: send introspect request: %v", errJanusTransient, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return introspectResponse{}, fmt.Errorf("%w: introspection denied", usecase.ErrUnauthorized)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return introspectResponse{}, fmt.Errorf("%w: read introspect response: %v", errJanusTransient, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "account service introspection non-200", "status_code", resp.StatusCode)
		if resp.StatusCode >= http.StatusInternalServerError {
			return introspectResponse{}, fmt.Errorf("%w: introspection status=%d", errJanusTransient, resp.StatusCode)
		}
		return introspectResponse{}, fmt.Errorf("account service introspection failed with status %d", resp.StatusCode)
	}

	var decoded introspectResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return introspectResponse{}, fmt.Errorf("unmarshal introspect response: %w", err)
	}

	return decoded, nil
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active bool   `json:"active"`
	UserID string `json:"user_id"`
	TeamID string `json:"team_id"`
	Role   string `json:"role"`
}
