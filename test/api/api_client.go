/*
Copyright 2026 the Codesoom Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

//nolint:revive // naming conventions acceptable in test code
package api

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/onsi/ginkgo/v2"
)

//go:generate mockgen -source=api_client.go -destination=mock/interfaces.go -package=mock

// HTTPDoer is the part of *http.Client the APIClient needs.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type APIClient struct {
	baseURL   string
	client    HTTPDoer
	config    *TestConfig
	endpoints *Endpoints
	contract  *Contract
	log       logr.Logger

	lock      sync.RWMutex
	authToken string
}

// Option customises an APIClient.
type Option func(*APIClient)

// WithLogger replaces the default Ginkgo logger.
func WithLogger(log logr.Logger) Option {
	return func(c *APIClient) {
		c.log = log
	}
}

// WithHTTPDoer replaces the default *http.Client.
func WithHTTPDoer(doer HTTPDoer) Option {
	return func(c *APIClient) {
		c.client = doer
	}
}

// WithBaseURL overrides the configured base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *APIClient) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

func NewAPIClientWithConfig(config *TestConfig, options ...Option) (*APIClient, error) {
	c := &APIClient{
		baseURL: strings.TrimSuffix(config.BaseURL, "/"),
		client: &http.Client{
			Timeout: config.RequestTimeout,
		},
		config:    config,
		endpoints: NewEndpoints(),
		log:       ginkgo.GinkgoLogr,
	}

	for _, o := range options {
		o(c)
	}

	if config.ValidateResponses {
		contract, err := LoadContract()
		if err != nil {
			return nil, err
		}

		c.contract = contract
	}

	return c, nil
}

// SetAuthToken sets the bearer token sent with every following request.
// An empty token removes the Authorization header.
func (c *APIClient) SetAuthToken(token string) {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.authToken = token
}

// AuthToken returns the current bearer token.
func (c *APIClient) AuthToken() string {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.authToken
}

// WithAuthToken returns a client sharing everything but the token, for
// requests that must be made as a different user.
func (c *APIClient) WithAuthToken(token string) *APIClient {
	return &APIClient{
		baseURL:   c.baseURL,
		client:    c.client,
		config:    c.config,
		endpoints: c.endpoints,
		contract:  c.contract,
		log:       c.log,
		authToken: token,
	}
}

// Endpoints exposes the path builders used by the client.
func (c *APIClient) Endpoints() *Endpoints {
	return c.endpoints
}

// logError logs a generic error with trace context.
func (c *APIClient) logError(method, path string, duration time.Duration, traceParent string, err error, context string) {
	c.log.Error(err, context, "method", method, "path", path, "duration", duration, "traceparent", traceParent)
	c.logTraceContext(traceParent)
}

// logUnexpectedStatus logs an unexpected HTTP status code.
func (c *APIClient) logUnexpectedStatus(method, path string, expectedStatus, actualStatus int, body, traceParent string) {
	c.log.Info("unexpected status", "method", method, "path", path, "expected", expectedStatus, "got", actualStatus, "body", body, "traceparent", traceParent)
	c.logTraceContext(traceParent)
}

// logTraceContext logs the trace context information.
func (c *APIClient) logTraceContext(traceParent string) {
	c.log.Info("use the trace ID to search service logs for this request", "traceID", extractTraceID(traceParent))
}

// generateTraceID creates a new W3C trace ID from a random UUID, which has
// the same 16 byte width.
func generateTraceID() string {
	id := uuid.New()

	return hex.EncodeToString(id[:])
}

// generateSpanID creates a new W3C span ID.
func generateSpanID() string {
	bytes := make([]byte, 8)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// createTraceParent creates a W3C traceparent header value.
func createTraceParent() string {
	return fmt.Sprintf("00-%s-%s-01", generateTraceID(), generateSpanID())
}

// extractTraceID extracts the trace ID from a traceparent header value.
func extractTraceID(traceParent string) string {
	parts := strings.Split(traceParent, "-")
	if len(parts) >= 2 {
		return parts[1]
	}

	return traceParent
}

// Response is a fully read HTTP response.
type Response struct {
	Method      string
	Path        string
	StatusCode  int
	Header      http.Header
	Body        []byte
	TraceParent string
}

// TraceID returns the trace ID the request was sent with.
func (r *Response) TraceID() string {
	return extractTraceID(r.TraceParent)
}

// DecodeJSON unmarshals the response body.
func (r *Response) DecodeJSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("unmarshaling %s %s response: %w", r.Method, r.Path, err)
	}

	return nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// doRequest sends a request and reads the whole response. When expectedStatus
// is positive any other status yields a *StatusError; when it is negative any
// non-2xx status does. Zero accepts every status.
//
//nolint:cyclop // test code complexity is acceptable
func (c *APIClient) doRequest(ctx context.Context, method, path string, body any, expectedStatus int) (*Response, error) {
	fullURL := c.baseURL + path

	var reader io.Reader

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		if c.config.DebugLogging {
			c.log.Info("request body", "method", method, "path", path, "body", string(data))
		}

		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	// Add W3C Trace Context headers
	traceParent := createTraceParent()
	req.Header.Set("Traceparent", traceParent)
	req.Header.Set("Tracestate", "test-automation=ginkgo")
	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token := c.AuthToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logError(method, path, duration, traceParent, err, "http request failed")
		return nil, fmt.Errorf("http request failed: %w", err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logError(method, path, duration, traceParent, err, "reading response body")
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.config.LogRequests {
		c.log.Info("request", "method", method, "path", path, "status", resp.StatusCode, "duration", duration, "traceparent", traceParent)
	}

	if c.config.LogResponses && len(respBody) > 0 {
		c.log.Info("response body", "method", method, "path", path, "body", string(respBody))
	}

	response := &Response{
		Method:      method,
		Path:        path,
		StatusCode:  resp.StatusCode,
		Header:      resp.Header,
		Body:        respBody,
		TraceParent: traceParent,
	}

	if (expectedStatus > 0 && resp.StatusCode != expectedStatus) || (expectedStatus < 0 && !isSuccess(resp.StatusCode)) {
		c.logUnexpectedStatus(method, path, max(expectedStatus, 0), resp.StatusCode, string(respBody), traceParent)

		return response, &StatusError{
			Method:   method,
			Path:     path,
			Expected: max(expectedStatus, 0),
			Actual:   resp.StatusCode,
			Body:     string(respBody),
			TraceID:  extractTraceID(traceParent),
		}
	}

	if c.contract != nil {
		if err := c.contract.ValidateResponse(ctx, req, response); err != nil {
			c.log.Info("response violates contract", "method", method, "path", path, "status", resp.StatusCode, "error", err.Error(), "traceparent", traceParent)
			return response, err
		}
	}

	return response, nil
}

// anySuccess asks doRequest to accept any 2xx status.
const anySuccess = -1

// Do sends a request and returns the response whatever its status.
func (c *APIClient) Do(ctx context.Context, method, path string, body any) (*Response, error) {
	return c.doRequest(ctx, method, path, body, 0)
}

// Ping succeeds as soon as the service answers HTTP at all.
func (c *APIClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+c.endpoints.Root(), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("pinging %s: %w", c.baseURL, err)
	}

	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}

// CreateUser registers a new user.
func (c *APIClient) CreateUser(ctx context.Context, body UserRequest) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, c.endpoints.Users(), body, http.StatusCreated)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	var user User
	if err := resp.DecodeJSON(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

// Login exchanges credentials for an access token.
func (c *APIClient) Login(ctx context.Context, body SessionRequest) (*Session, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, c.endpoints.Session(), body, anySuccess)
	if err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}

	var session Session
	if err := resp.DecodeJSON(&session); err != nil {
		return nil, err
	}

	if session.AccessToken == "" {
		return nil, fmt.Errorf("logging in as %s: %w", body.Email, ErrNoAccessToken)
	}

	return &session, nil
}

// UpdateUser changes the name and/or password of a user.
func (c *APIClient) UpdateUser(ctx context.Context, userID int64, body UserUpdateRequest) (*User, error) {
	path, err := c.endpoints.User(userID)
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPatch, path, body, http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("updating user %d: %w", userID, err)
	}

	var user User
	if err := resp.DecodeJSON(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

// DeleteUser removes a user.
func (c *APIClient) DeleteUser(ctx context.Context, userID int64) error {
	path, err := c.endpoints.User(userID)
	if err != nil {
		return err
	}

	if _, err := c.doRequest(ctx, http.MethodDelete, path, nil, http.StatusNoContent); err != nil {
		return fmt.Errorf("deleting user %d: %w", userID, err)
	}

	return nil
}
