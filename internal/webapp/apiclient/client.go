// Package apiclient is the webapp's typed client for the backend REST API.
// Transport failures and non-2xx statuses surface as errors; logical
// failures (success=false) come back inside the decoded response so
// callers can render the server-supplied message.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/salesai/dashboard-system/internal/core/domain"
	"github.com/salesai/dashboard-system/pkg/logger"
)

const defaultTimeout = 15 * time.Second

// Client calls the backend API over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// SignupRequest registers a new account.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message,omitempty"`
	User    *domain.SessionRecord `json:"user,omitempty"`
}

type ProfileResponse struct {
	Success         bool                  `json:"success"`
	Message         string                `json:"message,omitempty"`
	User            *domain.SessionRecord `json:"user,omitempty"`
	PredictionCount int64                 `json:"prediction_count"`
}

type PredictResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message,omitempty"`
	Prediction   int    `json:"prediction"`
	Label        string `json:"label"`
	ModelVersion string `json:"model_version"`
}

type DeleteAccountRequest struct {
	UserID string `json:"user_id"`
}

type DeleteAccountResponse struct {
	Success            bool   `json:"success"`
	Message            string `json:"message,omitempty"`
	PredictionsDeleted int64  `json:"predictions_deleted"`
}

type LoadDatasetResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	// Count is the dataset size after the load.
	Count int64 `json:"count"`
}

type TrainModelResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message,omitempty"`
	ModelsTotal int64  `json:"models_total"`
}

func (c *Client) Signup(ctx context.Context, req SignupRequest) (*SignupResponse, error) {
	var out SignupResponse
	if err := c.do(ctx, http.MethodPost, "/signup", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.do(ctx, http.MethodPost, "/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Dashboard(ctx context.Context) (*domain.DashboardData, error) {
	var out domain.DashboardData
	if err := c.do(ctx, http.MethodGet, "/dashboard", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Profile(ctx context.Context, userID string) (*ProfileResponse, error) {
	var out ProfileResponse
	if err := c.do(ctx, http.MethodGet, "/profile/"+userID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Predict(ctx context.Context, req domain.PredictionInput) (*PredictResponse, error) {
	var out PredictResponse
	if err := c.do(ctx, http.MethodPost, "/predict", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteAccount(ctx context.Context, userID string) (*DeleteAccountResponse, error) {
	var out DeleteAccountResponse
	if err := c.do(ctx, http.MethodDelete, "/delete-account", DeleteAccountRequest{UserID: userID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) LoadDataset(ctx context.Context) (*LoadDatasetResponse, error) {
	var out LoadDatasetResponse
	if err := c.do(ctx, http.MethodPost, "/load-dataset", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TrainModel(ctx context.Context) (*TrainModelResponse, error) {
	var out TrainModelResponse
	if err := c.do(ctx, http.MethodPost, "/train-model", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Health(ctx context.Context) (*domain.HealthReport, error) {
	var out domain.HealthReport
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do issues one request and decodes the JSON response into out. A 4xx body
// that still carries the expected envelope is decoded rather than rejected,
// since logical failures are reported through it.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	log := logger.Get()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building %s %s request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error().Err(err).Str("method", method).Str("path", path).Msg("backend request failed")
		return fmt.Errorf("calling backend %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("backend %s %s: status %d", method, path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Error().Err(err).Str("method", method).Str("path", path).Msg("decoding backend response failed")
		return fmt.Errorf("decoding backend %s %s response: %w", method, path, err)
	}
	return nil
}
