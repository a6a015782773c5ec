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

	consentModel "github.com/ethyca/fides-consent-service/internal/consent/model"
	"github.com/ethyca/fides-consent-service/internal/consent/provider"
	"github.com/ethyca/fides-consent-service/internal/system/errors"
	"github.com/ethyca/fides-consent-service/internal/system/utils"
)

type ConsentHandler struct{}

func NewConsentHandler() *ConsentHandler {
	return &ConsentHandler{}
}

// GetConsentRecord handles GET /consent/{device_id}
func (h *ConsentHandler) GetConsentRecord(w http.ResponseWriter, r *http.Request) {

	deviceID := utils.ExtractLastPathSegment(r.URL.Path)
	if deviceID == "" {
		clientError := errors.NewClientError(errors.ErrorMessage{
			Code:        errors.DEVICE_ID_REQUIRED.Code,
			Message:     errors.DEVICE_ID_REQUIRED.Message,
			Description: "Device id is required to fetch the consent record.",
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	service := provider.NewConsentProvider().GetConsentService()
	record, err := service.GetConsentRecord(deviceID)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(record)
}

// SavePrivacyPreferences handles POST /privacy-preferences
func (h *ConsentHandler) SavePrivacyPreferences(w http.ResponseWriter, r *http.Request) {

	var request consentModel.PrivacyPreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		clientError := errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_REQUEST.Code,
			Message:     errors.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "privacy preferences"),
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	service := provider.NewConsentProvider().GetConsentService()
	record, err := service.SavePrivacyPreferences(request)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(record)
}
