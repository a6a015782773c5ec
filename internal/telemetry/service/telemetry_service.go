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

package service

import (
	"net/http"
	"time"

	"github.com/ethyca/fides-consent-service/internal/system/constants"
	errors2 "github.com/ethyca/fides-consent-service/internal/system/errors"
	"github.com/ethyca/fides-consent-service/internal/system/log"
	"github.com/ethyca/fides-consent-service/internal/telemetry/model"
	"github.com/ethyca/fides-consent-service/internal/telemetry/store"
	"github.com/google/uuid"
)

// TelemetryServiceInterface defines the telemetry service operations.
type TelemetryServiceInterface interface {
	RecordNoticesServed(request model.NoticesServedRequest) (*model.TelemetryEvent, error)
	RecordPreferencesSaved(deviceID, servedNoticeHistoryID, method string, noticeKeys []string) error
	GetEventsBySession(servedNoticeHistoryID string) ([]model.TelemetryEvent, error)
}

// TelemetryService is the default implementation.
type TelemetryService struct {
	store store.TelemetryStoreInterface
}

// GetTelemetryService returns a service backed by the MongoDB store.
func GetTelemetryService() TelemetryServiceInterface {
	return &TelemetryService{
		store: &store.TelemetryStore{},
	}
}

// RecordNoticesServed records that the overlay rendered notices to a user.
func (ts *TelemetryService) RecordNoticesServed(request model.NoticesServedRequest) (*model.TelemetryEvent, error) {

	if request.ServedNoticeHistoryID == "" || request.FidesUserDeviceID == "" {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.TELEMETRY_VALIDATION.Code,
			Message:     errors2.TELEMETRY_VALIDATION.Message,
			Description: "served_notice_history_id and fides_user_device_id are required.",
		}, http.StatusBadRequest)
	}

	event := &model.TelemetryEvent{
		EventID:               uuid.New().String(),
		EventType:             constants.EventNoticesServed,
		ServedNoticeHistoryID: request.ServedNoticeHistoryID,
		FidesUserDeviceID:     request.FidesUserDeviceID,
		NoticeKeys:            request.NoticeKeys,
		UserAgent:             request.UserAgent,
		RecordedAt:            time.Now().Unix(),
	}

	if err := ts.store.InsertEvent(event); err != nil {
		return nil, err
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   request.FidesUserDeviceID,
		InitiatorType: log.InitiatorTypeConsumer,
		TargetID:      event.EventID,
		TargetType:    log.TargetTypeTelemetry,
		ActionID:      log.ActionRecordNoticesServed,
	})
	return event, nil
}

// RecordPreferencesSaved records a preference save under the serving session
// that showed the notices. Called by the consent service after a successful
// record update.
func (ts *TelemetryService) RecordPreferencesSaved(deviceID, servedNoticeHistoryID, method string, noticeKeys []string) error {

	if servedNoticeHistoryID == "" {
		// A save without a serving session is legal (e.g. privacy center
		// direct link); there is nothing to join it to, so skip.
		return nil
	}

	event := &model.TelemetryEvent{
		EventID:               uuid.New().String(),
		EventType:             constants.EventPreferencesSaved,
		ServedNoticeHistoryID: servedNoticeHistoryID,
		FidesUserDeviceID:     deviceID,
		Method:                method,
		NoticeKeys:            noticeKeys,
		RecordedAt:            time.Now().Unix(),
	}
	return ts.store.InsertEvent(event)
}

// GetEventsBySession returns the events recorded under one serving session.
func (ts *TelemetryService) GetEventsBySession(servedNoticeHistoryID string) ([]model.TelemetryEvent, error) {

	if servedNoticeHistoryID == "" {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.TELEMETRY_VALIDATION.Code,
			Message:     errors2.TELEMETRY_VALIDATION.Message,
			Description: "served_notice_history_id is required.",
		}, http.StatusBadRequest)
	}
	return ts.store.GetEventsBySession(servedNoticeHistoryID)
}
