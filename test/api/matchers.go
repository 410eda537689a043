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

	"github.com/onsi/gomega/gcustom"
	"github.com/onsi/gomega/types"
)

// HaveFailedWithStatus succeeds when the actual error is, or wraps, a
// *StatusError with the given HTTP status.
func HaveFailedWithStatus(expected int) types.GomegaMatcher {
	return gcustom.MakeMatcher(func(err error) (bool, error) {
		if err == nil {
			return false, nil
		}

		actual, ok := StatusCode(err)
		if !ok {
			return false, fmt.Errorf("error carries no HTTP status: %w", err)
		}

		return actual == expected, nil
	}).WithTemplate("Expected request {{.To}} fail with HTTP status {{.Data}}, got:\n{{.FormattedActual}}", expected)
}
