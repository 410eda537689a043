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

	"github.com/oapi-codegen/runtime"
)

// Endpoints contains all API endpoint patterns.
type Endpoints struct{}

// NewEndpoints creates a new Endpoints instance.
func NewEndpoints() *Endpoints {
	return &Endpoints{}
}

// User management endpoints.
func (e *Endpoints) Users() string {
	return "/users"
}

// User renders /users/{id} the same way a generated OpenAPI client would.
func (e *Endpoints) User(userID int64) (string, error) {
	id, err := runtime.StyleParamWithLocation("simple", false, "id", runtime.ParamLocationPath, userID)
	if err != nil {
		return "", fmt.Errorf("rendering user id %d: %w", userID, err)
	}

	return "/users/" + id, nil
}

// Session endpoints.
func (e *Endpoints) Session() string {
	return "/session"
}

// Root is used to probe that the service is listening.
func (e *Endpoints) Root() string {
	return "/"
}
