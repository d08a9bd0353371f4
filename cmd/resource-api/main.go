/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// @title Resource API
// @version 1.0.0
// @description API documentation for managing resources.
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @BasePath /api/resources
package main

import (
	"os"

	"github.com/tomoncle/resource-api/utils"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		utils.NewLogger("MAIN").WithError(err).Error("resource-api exited")
		os.Exit(1)
	}
}
