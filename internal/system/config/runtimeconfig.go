/*
 * Copyright (c) 2026, Ethyca, Inc. (https://ethyca.com).
 *
 * Ethyca, Inc. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package config

import "sync"

// FCSRuntime holds the runtime configuration for the consent service.
type FCSRuntime struct {
	FCSHome string `yaml:"fcs_home"`
	Config  Config `yaml:"config"`
}

var (
	runtimeConfig *FCSRuntime
	once          sync.Once
)

// InitializeFCSRuntime initializes the FCSRuntime configuration.
func InitializeFCSRuntime(fcsHome string, config *Config) error {

	once.Do(func() {
		runtimeConfig = &FCSRuntime{
			FCSHome: fcsHome,
			Config:  *config,
		}
	})

	return nil
}

// GetFCSRuntime returns the FCSRuntime configuration.
func GetFCSRuntime() *FCSRuntime {

	if runtimeConfig == nil {
		panic("FCSRuntime is not initialized")
	}
	return runtimeConfig
}
