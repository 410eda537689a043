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
	"context"
	"errors"
	"fmt"
)

// ErrUnexpectedBody is returned when a response has the right status but the
// wrong content.
var ErrUnexpectedBody = errors.New("unexpected response body")

// SmokeResult records what the smoke scenario observed.
type SmokeResult struct {
	Created *User
	Updated *User
	Session *Session
}

// RunSmoke runs the user lifecycle once: create, log in, update, delete.
// It stops at the first failure, deleting the user if it can still log in as
// it. The caller's client token is left untouched.
func RunSmoke(ctx context.Context, client *APIClient, generator *UserGenerator) (*SmokeResult, error) {
	log := client.log.WithName("smoke")

	anonymous := client.WithAuthToken("")
	data := generator.Generate()

	created, err := anonymous.CreateUser(ctx, data)
	if err != nil {
		return nil, err
	}

	if created.Email != data.Email || created.Name != data.Name {
		return nil, fmt.Errorf("%w: created user %+v does not match %s/%s", ErrUnexpectedBody, created, data.Email, data.Name)
	}

	log.Info("created user", "id", created.ID, "email", created.Email)

	session, err := anonymous.Login(ctx, SessionRequest{
		Email:    data.Email,
		Password: data.Password,
	})
	if err != nil {
		return nil, err
	}

	log.Info("logged in", "id", created.ID)

	authenticated := client.WithAuthToken(session.AccessToken)

	deleted := false

	defer func() {
		if deleted {
			return
		}

		if cleanupErr := authenticated.DeleteUser(context.WithoutCancel(ctx), created.ID); cleanupErr != nil {
			log.Error(cleanupErr, "failed to delete user after failure", "id", created.ID)
			return
		}

		log.Info("deleted user after failure", "id", created.ID)
	}()

	updated, err := authenticated.UpdateUser(ctx, created.ID, NewUpdatePayload().Build())
	if err != nil {
		return nil, err
	}

	if updated.Name != UpdatedUserName {
		return nil, fmt.Errorf("%w: updated name is %q, want %q", ErrUnexpectedBody, updated.Name, UpdatedUserName)
	}

	log.Info("updated user", "id", updated.ID, "name", updated.Name)

	if err := authenticated.DeleteUser(ctx, created.ID); err != nil {
		return nil, err
	}

	deleted = true

	log.Info("deleted user", "id", created.ID)

	return &SmokeResult{
		Created: created,
		Updated: updated,
		Session: session,
	}, nil
}
