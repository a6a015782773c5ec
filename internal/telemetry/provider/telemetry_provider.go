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

package provider

import (
	"github.com/ethyca/fides-consent-service/internal/telemetry/service"
)

// TelemetryProviderInterface defines the interface for the telemetry provider.
type TelemetryProviderInterface interface {
	GetTelemetryService() service.TelemetryServiceInterface
}

// TelemetryProvider is the default implementation of the TelemetryProviderInterface.
type TelemetryProvider struct{}

// NewTelemetryProvider creates a new instance of TelemetryProvider.
func NewTelemetryProvider() TelemetryProviderInterface {

	return &TelemetryProvider{}
}

// GetTelemetryService returns the telemetry service instance.
func (tp *TelemetryProvider) GetTelemetryService() service.TelemetryServiceInterface {

	return service.GetTelemetryService()
}
