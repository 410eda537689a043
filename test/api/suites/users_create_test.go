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
	"context"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ahastudio/codesoom-spring-week7-assignment-1/test/api"
)

var _ = Describe("POST /users", func() {
	var userData api.UserRequest

	BeforeEach(func() {
		userData = api.GenerateUserData()
	})

	Context("with correct data", func() {
		It("responds with user", func() {
			// The client checks for 201 Created and validates the body
			// against the User schema of the contract.
			user, fixture := api.CreateUserWithCleanup(client, ctx, config, userData)

			Expect(user.ID).To(Equal(fixture.ID))
			Expect(user.Name).To(Equal(userData.Name))
			Expect(user.Email).To(Equal(userData.Email))
		})
	})

	Context("without required parameter", func() {
		It("responds 400 error", func() {
			var created api.UserTracker

			err := api.FanOut(ctx, api.RequiredUserFields(), func(ctx context.Context, field string) error {
				data := api.NewUserPayload(userData).WithField(field, "").Build()

				_, err := created.CreateUser(ctx, client, data)

				return api.ExpectStatus(err, http.StatusBadRequest)
			})

			created.DeferCleanup(client, config)

			Expect(err).NotTo(HaveOccurred())
		})
	})
})
