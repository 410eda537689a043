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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"k8s.io/apimachinery/pkg/util/wait"
)

// Fixture defaults.
const (
	DefaultUserName = "testuser"
	DefaultPassword = "password"
	EmailDomain     = "test.com"
)

// UserGenerator hands out user fixtures with unique emails. The email is the
// current time in milliseconds followed by a counter that only ever grows.
type UserGenerator struct {
	count atomic.Int64
	now   func() time.Time
}

// NewUserGenerator creates a generator with its own counter.
func NewUserGenerator() *UserGenerator {
	return &UserGenerator{
		now: time.Now,
	}
}

// Generate returns the next user fixture.
func (g *UserGenerator) Generate() UserRequest {
	count := g.count.Add(1)

	return UserRequest{
		Email:    fmt.Sprintf("%d-%d@%s", g.now().UnixMilli(), count, EmailDomain),
		Name:     DefaultUserName,
		Password: DefaultPassword,
	}
}

//nolint:gochecknoglobals
var defaultGenerator = NewUserGenerator()

// DefaultUserGenerator returns the process wide generator.
func DefaultUserGenerator() *UserGenerator {
	return defaultGenerator
}

// GenerateUserData returns a user fixture from the process wide generator.
func GenerateUserData() UserRequest {
	return defaultGenerator.Generate()
}

// UserFixture is a user created for a single spec.
type UserFixture struct {
	ID          int64
	Data        UserRequest
	AccessToken string
}

// Credentials returns the login request for the fixture.
func (f *UserFixture) Credentials() SessionRequest {
	return SessionRequest{
		Email:    f.Data.Email,
		Password: f.Data.Password,
	}
}

// CreateUserWithCleanup creates a user and schedules its deletion after the spec.
func CreateUserWithCleanup(client *APIClient, ctx context.Context, config *TestConfig, data UserRequest) (*User, *UserFixture) {
	user, err := client.CreateUser(ctx, data)
	Expect(err).NotTo(HaveOccurred(), "creating fixture user %s", data.Email)

	GinkgoWriter.Printf("Created user with ID: %d (%s)\n", user.ID, data.Email)

	fixture := &UserFixture{
		ID:   user.ID,
		Data: data,
	}

	deleteUserOnCleanup(client, config, fixture)

	return user, fixture
}

// LoginUser logs the fixture in and records its access token.
func LoginUser(client *APIClient, ctx context.Context, fixture *UserFixture) *Session {
	session, err := client.Login(ctx, fixture.Credentials())
	Expect(err).NotTo(HaveOccurred(), "logging in fixture user %s", fixture.Data.Email)
	Expect(session.AccessToken).NotTo(BeEmpty())

	if userID, ok := session.UserID(); ok && userID != fixture.ID {
		GinkgoWriter.Printf("Warning: access token for user %d carries %s=%d\n", fixture.ID, UserIDClaim, userID)
	}

	fixture.AccessToken = session.AccessToken

	return session
}

// SetupUser creates a fresh user and logs it in.
func SetupUser(client *APIClient, ctx context.Context, config *TestConfig) *UserFixture {
	_, fixture := CreateUserWithCleanup(client, ctx, config, GenerateUserData())

	LoginUser(client, ctx, fixture)

	return fixture
}

// SetupAccessToken makes every following request of this client carry the token.
func SetupAccessToken(client *APIClient, accessToken string) {
	client.SetAuthToken(accessToken)
}

// deleteUserOnCleanup deletes the fixture after the spec, whatever its outcome.
// The token is read when the cleanup runs, so a login later in the spec is used.
func deleteUserOnCleanup(client *APIClient, config *TestConfig, fixture *UserFixture) {
	if !config.CleanupUsers {
		return
	}

	DeferCleanup(func(ctx SpecContext) {
		token := fixture.AccessToken

		if token == "" {
			session, err := client.WithAuthToken("").Login(ctx, fixture.Credentials())
			if err != nil {
				GinkgoWriter.Printf("Warning: Failed to log in user %d for cleanup: %v\n", fixture.ID, err)
				return
			}

			token = session.AccessToken
		}

		err := client.WithAuthToken(token).DeleteUser(ctx, fixture.ID)

		switch status, _ := StatusCode(err); {
		case err == nil:
			GinkgoWriter.Printf("Successfully deleted user: %d\n", fixture.ID)
		case status == http.StatusNotFound:
			GinkgoWriter.Printf("User %d already deleted\n", fixture.ID)
		default:
			GinkgoWriter.Printf("Warning: Failed to delete user %d: %v\n", fixture.ID, err)
		}
	}, NodeTimeout(2*config.RequestTimeout))
}

// UserTracker records users created by requests that were expected to fail,
// so a misbehaving service does not leave them behind. It is safe for
// concurrent use.
type UserTracker struct {
	lock     sync.Mutex
	fixtures []*UserFixture
}

// CreateUser creates a user and records it if the service accepted it.
func (t *UserTracker) CreateUser(ctx context.Context, client *APIClient, data UserRequest) (*User, error) {
	user, err := client.CreateUser(ctx, data)
	if err != nil {
		return nil, err
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	t.fixtures = append(t.fixtures, &UserFixture{
		ID:   user.ID,
		Data: data,
	})

	return user, nil
}

// Fixtures returns the users recorded so far.
func (t *UserTracker) Fixtures() []*UserFixture {
	t.lock.Lock()
	defer t.lock.Unlock()

	return append([]*UserFixture(nil), t.fixtures...)
}

// DeferCleanup schedules deletion of every recorded user after the spec.
// Call it from the spec itself, not from a goroutine.
func (t *UserTracker) DeferCleanup(client *APIClient, config *TestConfig) {
	for _, fixture := range t.Fixtures() {
		GinkgoWriter.Printf("Unexpectedly created user with ID: %d (%s)\n", fixture.ID, fixture.Data.Email)

		deleteUserOnCleanup(client, config, fixture)
	}
}

// WaitForService polls the service until it answers HTTP or the ready timeout
// passes.
func WaitForService(ctx context.Context, client *APIClient, config *TestConfig) error {
	attempt := 0

	err := wait.PollUntilContextTimeout(ctx, time.Second, config.ReadyTimeout, true, func(ctx context.Context) (bool, error) {
		attempt++

		if err := client.Ping(ctx); err != nil {
			client.log.V(1).Info("service not ready", "attempt", attempt, "error", err.Error())
			return false, nil
		}

		return true, nil
	})
	if err != nil {
		return fmt.Errorf("user service at %s not ready after %s: %w", config.BaseURL, config.ReadyTimeout, err)
	}

	return nil
}
