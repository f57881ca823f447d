package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/rentkeeper/internal/logging"
	"github.com/dmitrijs2005/rentkeeper/internal/models"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	logger  logging.Logger
}

// NewHTTPClient builds a client for the backend at baseURL (for example
// "http://127.0.0.1:8080/api"). timeout bounds every request.
func NewHTTPClient(baseURL string, timeout time.Duration, logger logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api url %q: scheme must be http or https", baseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	return &HTTPClient{
		baseURL: u,
		http:    &http.Client{Timeout: timeout, Jar: jar},
		logger:  logger.With("module", "api_client"),
	}, nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, &APIError{Status: http.StatusOK, Message: "login response carries no user", Err: ErrUnavailable}
	}
	return &resp, nil
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, &APIError{Status: http.StatusCreated, Message: "register response carries no user", Err: ErrUnavailable}
	}
	return &resp, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", struct{}{}, nil)
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var resp models.MeResponse
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, &APIError{Status: http.StatusOK, Message: "no active session", Err: ErrUnauthorized}
	}
	return resp.User, nil
}

func (c *HTTPClient) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	var resp models.Paginated[models.Vehicle]
	if err := c.do(ctx, http.MethodGet, "/vehicles", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *HTTPClient) CreateVehicle(ctx context.Context, req models.CreateVehicleRequest) (*models.Vehicle, error) {
	var v models.Vehicle
	if err := c.do(ctx, http.MethodPost, "/vehicles", req, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *HTTPClient) UpdateVehicle(ctx context.Context, id string, req models.UpdateVehicleRequest) (*models.Vehicle, error) {
	var v models.Vehicle
	if err := c.do(ctx, http.MethodPatch, "/vehicles/"+url.PathEscape(id), req, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *HTTPClient) DeleteVehicle(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/vehicles/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	var resp models.Paginated[models.Reservation]
	if err := c.do(ctx, http.MethodGet, "/reservations", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *HTTPClient) CreateReservation(ctx context.Context, req models.CreateReservationRequest) (*models.Reservation, error) {
	var r models.Reservation
	if err := c.do(ctx, http.MethodPost, "/reservations", req, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *HTTPClient) CancelReservation(ctx context.Context, id string) (*models.Reservation, error) {
	return c.patchReservation(ctx, id, "cancel")
}

func (c *HTTPClient) CompleteReservation(ctx context.Context, id string) (*models.Reservation, error) {
	return c.patchReservation(ctx, id, "complete")
}

func (c *HTTPClient) patchReservation(ctx context.Context, id, action string) (*models.Reservation, error) {
	var r models.Reservation
	path := "/reservations/" + url.PathEscape(id) + "/" + action
	if err := c.do(ctx, http.MethodPatch, path, struct{}{}, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodPatch, "/users", req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) DeleteAccount(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/users", nil, nil)
}

// do sends one JSON request and decodes a 2xx body into out (when out is
// non-nil and the body is not empty). Everything else becomes an *APIError.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		c.logger.Debug(ctx, "request failed", "method", method, "path", path, "error", err)
		return &APIError{Message: "server unavailable", Err: fmt.Errorf("%w: %v", ErrUnavailable, err)}
	}
	defer resp.Body.Close()

	c.logger.Debug(ctx, "response", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &APIError{Status: resp.StatusCode, Message: "malformed server response", Err: fmt.Errorf("%w: %v", ErrUnavailable, err)}
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Err: mapStatus(resp.StatusCode)}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var body models.ErrorResponse
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		apiErr.Message = body.Message
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
