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

	"k8s.io/utils/ptr"
)

// Field names as they appear on the wire.
const (
	FieldEmail    = "email"
	FieldName     = "name"
	FieldPassword = "password"
)

// Values used by the update scenarios.
const (
	UpdatedUserName = "updated name"
	UpdatedPassword = "12345678"
)

// RequiredUserFields must all be non-empty for POST /users to succeed.
func RequiredUserFields() []string {
	return []string{FieldName, FieldEmail, FieldPassword}
}

// UpdatableUserFields are accepted by PATCH /users/{id}.
func UpdatableUserFields() []string {
	return []string{FieldName, FieldPassword}
}

// UserPayloadBuilder builds user creation payloads for testing.
type UserPayloadBuilder struct {
	payload UserRequest
}

// NewUserPayload starts from a copy of the given fixture.
func NewUserPayload(base UserRequest) *UserPayloadBuilder {
	return &UserPayloadBuilder{
		payload: base,
	}
}

// WithEmail sets the email.
func (b *UserPayloadBuilder) WithEmail(email string) *UserPayloadBuilder {
	b.payload.Email = email
	return b
}

// WithName sets the name.
func (b *UserPayloadBuilder) WithName(name string) *UserPayloadBuilder {
	b.payload.Name = name
	return b
}

// WithPassword sets the password.
func (b *UserPayloadBuilder) WithPassword(password string) *UserPayloadBuilder {
	b.payload.Password = password
	return b
}

// WithField sets a field by its wire name.
func (b *UserPayloadBuilder) WithField(field, value string) *UserPayloadBuilder {
	switch field {
	case FieldEmail:
		return b.WithEmail(value)
	case FieldName:
		return b.WithName(value)
	case FieldPassword:
		return b.WithPassword(value)
	}

	panic(fmt.Sprintf("unknown user field %q", field))
}

// Build returns the completed user payload.
func (b *UserPayloadBuilder) Build() UserRequest {
	return b.payload
}

// UpdatePayloadBuilder builds user update payloads for testing.
type UpdatePayloadBuilder struct {
	payload UserUpdateRequest
}

// NewUpdatePayload creates a builder defaulting to a full, valid update.
func NewUpdatePayload() *UpdatePayloadBuilder {
	return &UpdatePayloadBuilder{
		payload: UserUpdateRequest{
			Name:     ptr.To(UpdatedUserName),
			Password: ptr.To(UpdatedPassword),
		},
	}
}

// WithName sets the name.
func (b *UpdatePayloadBuilder) WithName(name string) *UpdatePayloadBuilder {
	b.payload.Name = ptr.To(name)
	return b
}

// WithPassword sets the password.
func (b *UpdatePayloadBuilder) WithPassword(password string) *UpdatePayloadBuilder {
	b.payload.Password = ptr.To(password)
	return b
}

// WithField sets a field by its wire name.
func (b *UpdatePayloadBuilder) WithField(field, value string) *UpdatePayloadBuilder {
	switch field {
	case FieldName:
		return b.WithName(value)
	case FieldPassword:
		return b.WithPassword(value)
	}

	panic(fmt.Sprintf("unknown update field %q", field))
}

// Without leaves a field out of the request entirely.
func (b *UpdatePayloadBuilder) Without(field string) *UpdatePayloadBuilder {
	switch field {
	case FieldName:
		b.payload.Name = nil
	case FieldPassword:
		b.payload.Password = nil
	default:
		panic(fmt.Sprintf("unknown update field %q", field))
	}

	return b
}

// Build returns the completed update payload.
func (b *UpdatePayloadBuilder) Build() UserUpdateRequest {
	return b.payload
}
