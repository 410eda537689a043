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
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
)

// ErrUndocumentedOperation is returned for requests the contract does not describe.
var ErrUndocumentedOperation = errors.New("operation is not part of the user API contract")

//go:embed users.yaml
var usersContract []byte

// Contract validates responses against the OpenAPI description of the user API.
type Contract struct {
	doc    *openapi3.T
	router routers.Router
}

//nolint:gochecknoglobals
var loadContract = sync.OnceValues(func() (*Contract, error) {
	return NewContract(usersContract)
})

// LoadContract returns the embedded user API contract, parsed once per process.
func LoadContract() (*Contract, error) {
	return loadContract()
}

// NewContract parses and validates an OpenAPI document.
func NewContract(data []byte) (*Contract, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("loading OpenAPI document: %w", err)
	}

	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validating OpenAPI document: %w", err)
	}

	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("creating OpenAPI router: %w", err)
	}

	return &Contract{
		doc:    doc,
		router: router,
	}, nil
}

// Document returns the parsed OpenAPI document.
func (c *Contract) Document() *openapi3.T {
	return c.doc
}

// ValidateResponse checks status, content type and body of a response. Only
// statuses the contract documents are checked, anything else is left to the
// caller's status assertions.
func (c *Contract) ValidateResponse(ctx context.Context, req *http.Request, resp *Response) error {
	route, params, err := c.router.FindRoute(req)
	if err != nil {
		if errors.Is(err, routers.ErrPathNotFound) || errors.Is(err, routers.ErrMethodNotAllowed) {
			return fmt.Errorf("%w: %s %s", ErrUndocumentedOperation, resp.Method, resp.Path)
		}

		return fmt.Errorf("routing %s %s: %w", resp.Method, resp.Path, err)
	}

	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{
			Request:    req,
			PathParams: params,
			Route:      route,
		},
		Status: resp.StatusCode,
		Header: resp.Header,
		Options: &openapi3filter.Options{
			IncludeResponseStatus: false,
		},
	}

	input.SetBodyBytes(resp.Body)

	if err := openapi3filter.ValidateResponse(ctx, input); err != nil {
		return fmt.Errorf("%s %s response %d violates the user API contract: %w", resp.Method, route.Path, resp.StatusCode, err)
	}

	return nil
}
