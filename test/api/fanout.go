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
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
)

// FanOut calls fn for every item concurrently and waits for all of them.
// Unlike a plain errgroup it keeps going after a failure and reports every
// failed item, tagged with the item, as one aggregate error.
func FanOut[T any](ctx context.Context, items []T, fn func(ctx context.Context, item T) error) error {
	var (
		group errgroup.Group
		lock  sync.Mutex
		errs  []error
	)

	for _, item := range items {
		group.Go(func() error {
			if err := fn(ctx, item); err != nil {
				lock.Lock()
				defer lock.Unlock()

				errs = append(errs, fmt.Errorf("%v: %w", item, err))
			}

			return nil
		})
	}

	_ = group.Wait()

	return utilerrors.NewAggregate(errs)
}
