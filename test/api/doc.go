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

// Package api provides integration test utilities for the User API.
//
// # Separate Client Implementation
//
// The user service is a black box to this repository. APIClient is a small
// hand written HTTP client that speaks its REST API directly, rather than a
// client generated from the service's own code. Responses are checked against
// the OpenAPI document embedded in this package (users.yaml), so a change to
// the service's wire format shows up as a contract failure here.
//
// The client includes features tailored for integration testing:
//   - W3C trace context propagation for request correlation
//   - Detailed error logging with trace IDs for debugging
//   - Bearer token management shared by a group of specs
//   - Direct access to HTTP status codes and response bodies
//
// # Fixtures
//
// Users are generated per spec with an email derived from the wall clock and a
// process wide counter, created through the API and optionally logged in. When
// cleanup is enabled each fixture user is removed again with DeferCleanup.
package api
