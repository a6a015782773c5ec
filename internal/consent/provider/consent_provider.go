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
	"github.com/ethyca/fides-consent-service/internal/consent/service"
)

// ConsentProviderInterface defines the interface for the consent record provider.
type ConsentProviderInterface interface {
	GetConsentService() service.ConsentServiceInterface
}

// ConsentProvider is the default implementation of the ConsentProviderInterface.
type ConsentProvider struct{}

// NewConsentProvider creates a new instance of ConsentProvider.
func NewConsentProvider() ConsentProviderInterface {

	return &ConsentProvider{}
}

// GetConsentService returns the consent record service instance.
func (cp *ConsentProvider) GetConsentService() service.ConsentServiceInterface {

	return service.GetConsentService()
}
