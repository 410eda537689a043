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

//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ahastudio/codesoom-spring-week7-assignment-1/test/api"
)

var _ = Describe("User lifecycle", func() {
	Context("When a new user goes through every operation", func() {
		It("should create, log in, update and delete the user", func() {
			result, err := api.RunSmoke(ctx, client, api.DefaultUserGenerator())
			Expect(err).NotTo(HaveOccurred())

			Expect(result.Session.AccessToken).NotTo(BeEmpty())
			Expect(result.Updated.ID).To(Equal(result.Created.ID))
			Expect(result.Updated.Name).To(Equal(api.UpdatedUserName))
		})
	})
})
