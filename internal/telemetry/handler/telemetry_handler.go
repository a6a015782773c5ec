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

	"github.com/ethyca/fides-consent-service/internal/system/authn"
	"github.com/ethyca/fides-consent-service/internal/system/constants"
	"github.com/ethyca/fides-consent-service/internal/system/errors"
	"github.com/ethyca/fides-consent-service/internal/system/utils"
	telemetryModel "github.com/ethyca/fides-consent-service/internal/telemetry/model"
	"github.com/ethyca/fides-consent-service/internal/telemetry/provider"
)

type TelemetryHandler struct{}

func NewTelemetryHandler() *TelemetryHandler {
	return &TelemetryHandler{}
}

// RecordNoticesServed handles POST /notices-served
func (h *TelemetryHandler) RecordNoticesServed(w http.ResponseWriter, r *http.Request) {

	var request telemetryModel.NoticesServedRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		clientError := errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_REQUEST.Code,
			Message:     errors.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "notices served report"),
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}
	if request.UserAgent == "" {
		request.UserAgent = r.UserAgent()
	}

	service := provider.NewTelemetryProvider().GetTelemetryService()
	event, err := service.RecordNoticesServed(request)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(event)
}

// GetEventsBySession handles GET /telemetry/{served_notice_history_id}
func (h *TelemetryHandler) GetEventsBySession(w http.ResponseWriter, r *http.Request) {

	if err := authn.ValidateRequest(r, constants.ScopeTelemetryView); err != nil {
		utils.HandleError(w, err)
		return
	}

	servedNoticeHistoryID := utils.ExtractLastPathSegment(r.URL.Path)

	service := provider.NewTelemetryProvider().GetTelemetryService()
	events, err := service.GetEventsBySession(servedNoticeHistoryID)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events)
}
