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

package handler

import (
	"encoding/json"
	"net/http"

	experienceModel "github.com/ethyca/fides-consent-service/internal/experience/model"
	"github.com/ethyca/fides-consent-service/internal/experience/provider"
	"github.com/ethyca/fides-consent-service/internal/system/authn"
	"github.com/ethyca/fides-consent-service/internal/system/constants"
	"github.com/ethyca/fides-consent-service/internal/system/errors"
	"github.com/ethyca/fides-consent-service/internal/system/utils"
)

type ExperienceHandler struct{}

func NewExperienceHandler() *ExperienceHandler {
	return &ExperienceHandler{}
}

// GetExperience handles GET /privacy-experience?region=
func (h *ExperienceHandler) GetExperience(w http.ResponseWriter, r *http.Request) {

	region := r.URL.Query().Get("region")
	deviceID := r.Header.Get(constants.HeaderDeviceID)
	hasGPC := r.Header.Get(constants.HeaderGPC) == "1"

	service := provider.NewExperienceProvider().GetExperienceService()
	response, err := service.GetExperience(region, deviceID, hasGPC)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response)
}

// UpsertExperience handles PUT /privacy-experience
func (h *ExperienceHandler) UpsertExperience(w http.ResponseWriter, r *http.Request) {

	if err := authn.ValidateRequest(r, constants.ScopeExperienceManage); err != nil {
		utils.HandleError(w, err)
		return
	}

	var experience experienceModel.PrivacyExperience
	if err := json.NewDecoder(r.Body).Decode(&experience); err != nil {
		clientError := errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_REQUEST.Code,
			Message:     errors.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "privacy experience"),
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	service := provider.NewExperienceProvider().GetExperienceService()
	if err := service.UpsertExperience(&experience); err != nil {
		utils.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(experience)
}

// ListExperiences handles GET /privacy-experiences
func (h *ExperienceHandler) ListExperiences(w http.ResponseWriter, r *http.Request) {

	if err := authn.ValidateRequest(r, constants.ScopeExperienceManage); err != nil {
		utils.HandleError(w, err)
		return
	}

	service := provider.NewExperienceProvider().GetExperienceService()
	experiences, err := service.ListExperiences()
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(experiences)
}

// DeleteExperience handles DELETE /privacy-experience/{id}
func (h *ExperienceHandler) DeleteExperience(w http.ResponseWriter, r *http.Request) {

	if err := authn.ValidateRequest(r, constants.ScopeExperienceManage); err != nil {
		utils.HandleError(w, err)
		return
	}

	experienceID := utils.ExtractLastPathSegment(r.URL.Path)
	if experienceID == "" {
		clientError := errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_REQUEST.Code,
			Message:     errors.BAD_REQUEST.Message,
			Description: "Experience id is required to delete an experience.",
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	service := provider.NewExperienceProvider().GetExperienceService()
	if err := service.DeleteExperience(experienceID); err != nil {
		utils.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
