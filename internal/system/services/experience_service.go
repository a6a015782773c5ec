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

	"github.com/ethyca/fides-consent-service/internal/experience/handler"
)

type ExperienceService struct {
	handler *handler.ExperienceHandler
}

func NewExperienceService(mux *http.ServeMux, apiBasePath string) *ExperienceService {
	instance := &ExperienceService{
		handler: handler.NewExperienceHandler(),
	}
	instance.RegisterRoutes(mux, apiBasePath)
	return instance
}

func (s *ExperienceService) RegisterRoutes(mux *http.ServeMux, apiBasePath string) {
	mux.HandleFunc(fmt.Sprintf("GET %s/privacy-experience", apiBasePath), s.handler.GetExperience)
	mux.HandleFunc(fmt.Sprintf("PUT %s/privacy-experience", apiBasePath), s.handler.UpsertExperience)
	mux.HandleFunc(fmt.Sprintf("GET %s/privacy-experiences", apiBasePath), s.handler.ListExperiences)
	mux.HandleFunc(fmt.Sprintf("DELETE %s/privacy-experience/", apiBasePath), s.handler.DeleteExperience)
}
