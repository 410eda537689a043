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

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/ahastudio/codesoom-spring-week7-assignment-1/test/api"

	cr "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
)

func run() error {
	config := api.ReadTestConfig()

	zapOptions := zap.Options{}

	zapFlags := flag.NewFlagSet("zap", flag.ExitOnError)
	zapOptions.BindFlags(zapFlags)

	config.AddFlags(pflag.CommandLine)
	pflag.CommandLine.AddGoFlagSet(zapFlags)

	pflag.Parse()

	if err := config.Validate(); err != nil {
		return err
	}

	log.SetLogger(zap.New(zap.UseFlagOptions(&zapOptions)))

	logger := log.Log.WithName("init")
	logger.Info("smoke test starting", "baseURL", config.BaseURL, "validateResponses", config.ValidateResponses)

	ctx := cr.SetupSignalHandler()

	client, err := api.NewAPIClientWithConfig(config, api.WithLogger(log.Log.WithName("client")))
	if err != nil {
		return err
	}

	if err := api.WaitForService(ctx, client, config); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, config.TestTimeout)
	defer cancel()

	result, err := api.RunSmoke(ctx, client, api.NewUserGenerator())
	if err != nil {
		return fmt.Errorf("smoke test failed: %w", err)
	}

	logger.Info("smoke test passed", "userID", result.Created.ID, "email", result.Created.Email)

	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
