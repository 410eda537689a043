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

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-logr/logr/testr"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// fakeUserService is an in-memory stand in for the user service, enough to
// drive the client through a whole lifecycle.
type fakeUserService struct {
	lock    sync.Mutex
	nextID  int64
	users   map[int64]*fakeUser
	secret  []byte
	updated string
	// updateStatus, when set, fails every update with that status.
	updateStatus int
}

type fakeUser struct {
	User
	password string
}

func newFakeUserService() *fakeUserService {
	return &fakeUserService{
		users:  map[int64]*fakeUser{},
		secret: []byte("not-a-real-secret"),
	}
}

func (s *fakeUserService) router() http.Handler {
	r := chi.NewRouter()
	r.Post("/users", s.create)
	r.Post("/session", s.login)
	r.Patch("/users/{id}", s.update)
	r.Delete("/users/{id}", s.remove)

	return r
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (s *fakeUserService) create(w http.ResponseWriter, r *http.Request) {
	var request UserRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Email == "" || request.Name == "" || request.Password == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	s.nextID++

	user := &fakeUser{
		User: User{
			ID:    s.nextID,
			Name:  request.Name,
			Email: request.Email,
		},
		password: request.Password,
	}

	s.users[user.ID] = user

	writeJSON(w, http.StatusCreated, user.User)
}

func (s *fakeUserService) login(w http.ResponseWriter, r *http.Request) {
	var request SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	for _, user := range s.users {
		if user.Email == request.Email && user.password == request.Password {
			token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{UserIDClaim: user.ID}).SignedString(s.secret)
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}

			writeJSON(w, http.StatusCreated, Session{AccessToken: token})

			return
		}
	}

	w.WriteHeader(http.StatusBadRequest)
}

// authenticated returns the user ID in the bearer token.
func (s *fakeUserService) authenticated(r *http.Request) (int64, bool) {
	raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return 0, false
	}

	claims := jwt.MapClaims{}

	if _, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) { return s.secret, nil }); err != nil {
		return 0, false
	}

	id, ok := claims[UserIDClaim].(float64)

	return int64(id), ok
}

func (s *fakeUserService) update(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.authenticated(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	// Ownership comes before existence.
	if id != owner {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	if s.updateStatus != 0 {
		w.WriteHeader(s.updateStatus)
		return
	}

	var request UserUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil ||
		(request.Name != nil && *request.Name == "") || (request.Password != nil && *request.Password == "") {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	user, ok := s.users[id]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	if request.Name != nil {
		user.Name = *request.Name
	}

	if s.updated != "" {
		user.Name = s.updated
	}

	if request.Password != nil {
		user.password = *request.Password
	}

	writeJSON(w, http.StatusOK, user.User)
}

func (s *fakeUserService) remove(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.authenticated(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.users[id]; !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	if id != owner {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	delete(s.users, id)

	w.WriteHeader(http.StatusNoContent)
}

func testConfig(baseURL string) *TestConfig {
	return &TestConfig{
		BaseURL:           baseURL,
		RequestTimeout:    5 * time.Second,
		TestTimeout:       30 * time.Second,
		ReadyTimeout:      5 * time.Second,
		SentinelUserID:    DefaultSentinelUserID,
		ValidateResponses: true,
		LogRequests:       true,
		LogResponses:      true,
	}
}

// newTestClient starts a server for the handler and returns a client for it.
func newTestClient(t *testing.T, handler http.Handler) (*APIClient, *TestConfig) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := testConfig(server.URL)

	client, err := NewAPIClientWithConfig(config, WithLogger(testr.New(t)))
	require.NoError(t, err)

	return client, config
}
