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
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// UserIDClaim is the access token claim that carries the user ID.
const UserIDClaim = "userId"

// UserRequest is the body of POST /users. Every field is always sent, so an
// empty string reaches the service as "".
type UserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// UserUpdateRequest is the body of PATCH /users/{id}. Nil fields are omitted.
type UserUpdateRequest struct {
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty"`
}

// User is the user representation returned by the service.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SessionRequest is the body of POST /session.
type SessionRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is the body returned by POST /session.
type Session struct {
	AccessToken string `json:"accessToken"`
}

// Claims decodes the access token without verifying its signature, the
// signing key belongs to the service.
func (s *Session) Claims() (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}

	if _, _, err := jwt.NewParser().ParseUnverified(s.AccessToken, claims); err != nil {
		return nil, fmt.Errorf("parsing access token: %w", err)
	}

	return claims, nil
}

// UserID returns the user ID claim, if the token has one.
func (s *Session) UserID() (int64, bool) {
	claims, err := s.Claims()
	if err != nil {
		return 0, false
	}

	// JSON numbers decode as float64.
	id, ok := claims[UserIDClaim].(float64)
	if !ok {
		return 0, false
	}

	return int64(id), true
}
