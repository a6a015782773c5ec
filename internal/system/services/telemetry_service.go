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

package services

import (
	"fmt"
	"net/http"

	"github.com/ethyca/fides-consent-service/internal/telemetry/handler"
)

type TelemetryService struct {
	handler *handler.TelemetryHandler
}

func NewTelemetryService(mux *http.ServeMux, apiBasePath string) *TelemetryService {
	instance := &TelemetryService{
		handler: handler.NewTelemetryHandler(),
	}
	instance.RegisterRoutes(mux, apiBasePath)
	return instance
}

func (s *TelemetryService) RegisterRoutes(mux *http.ServeMux, apiBasePath string) {
	mux.HandleFunc(fmt.Sprintf("POST %s/notices-served", apiBasePath), s.handler.RecordNoticesServed)
	mux.HandleFunc(fmt.Sprintf("GET %s/telemetry/", apiBasePath), s.handler.GetEventsBySession)
}
