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

var _ = Describe("PATCH /users/{id}", func() {
	var userID int64

	BeforeEach(func() {
		fixture := api.SetupUser(client, ctx, config)
		api.SetupAccessToken(client, fixture.AccessToken)

		userID = fixture.ID
	})

	Context("with existing user", func() {
		It("responds with updated user", func() {
			user, err := client.UpdateUser(ctx, userID, api.NewUpdatePayload().Build())
			Expect(err).NotTo(HaveOccurred(), "should respond 200 OK")

			Expect(user.Name).To(Equal(api.UpdatedUserName))
		})
	})

	Context("with others", func() {
		BeforeEach(func() {
			userID = config.SentinelUserID
		})

		It("responds Forbidden", func() {
			// Ownership is checked before existence, so an unknown ID is
			// forbidden rather than not found.
			_, err := client.UpdateUser(ctx, userID, api.NewUpdatePayload().Build())
			Expect(err).To(api.HaveFailedWithStatus(http.StatusForbidden))
		})
	})

	Context("with wrong parameter", func() {
		It("responds Bad Request", func() {
			err := api.FanOut(ctx, api.UpdatableUserFields(), func(ctx context.Context, field string) error {
				data := api.NewUpdatePayload().WithField(field, "").Build()

				_, err := client.UpdateUser(ctx, userID, data)

				return api.ExpectStatus(err, http.StatusBadRequest)
			})
			Expect(err).NotTo(HaveOccurred())
		})
	})
})
