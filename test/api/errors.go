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
	"errors"
	"fmt"
	"net/http"
)

// ErrNoAccessToken is returned when a login succeeds without a token.
var ErrNoAccessToken = errors.New("session response has no access token")

// StatusError is returned when the service answers with a status code other
// than the one the caller expected.
type StatusError struct {
	Method string
	Path   string
	// Expected is zero when any 2xx status was acceptable.
	Expected int
	Actual   int
	Body     string
	TraceID  string
}

func (e *StatusError) Error() string {
	expected := "2xx"
	if e.Expected != 0 {
		expected = fmt.Sprintf("%d", e.Expected)
	}

	return fmt.Sprintf("%s %s: unexpected status code: expected %s, got %d, body: %s (trace ID: %s)", e.Method, e.Path, expected, e.Actual, e.Body, e.TraceID)
}

// StatusCode returns the HTTP status carried by a StatusError anywhere in the
// error chain.
func StatusCode(err error) (int, bool) {
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		return 0, false
	}

	return statusErr.Actual, true
}

// ExpectStatus turns a request error into nil when it is a StatusError with
// the wanted status, so that concurrent checks can report plain errors.
func ExpectStatus(err error, want int) error {
	if err == nil {
		return fmt.Errorf("expected HTTP %d %s, request succeeded", want, http.StatusText(want))
	}

	got, ok := StatusCode(err)
	if !ok {
		return fmt.Errorf("expected HTTP %d %s: %w", want, http.StatusText(want), err)
	}

	if got != want {
		return fmt.Errorf("expected HTTP %d %s, got %d: %w", want, http.StatusText(want), got, err)
	}

	return nil
}
