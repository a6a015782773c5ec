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

	model "github.com/ethyca/fides-consent-service/internal/consent/model"
	"github.com/ethyca/fides-consent-service/internal/consent/store"
	expmodel "github.com/ethyca/fides-consent-service/internal/experience/model"
	"github.com/ethyca/fides-consent-service/internal/system/constants"
	errors2 "github.com/ethyca/fides-consent-service/internal/system/errors"
	"github.com/ethyca/fides-consent-service/internal/system/log"
	"github.com/ethyca/fides-consent-service/internal/system/utils"
	telemetryservice "github.com/ethyca/fides-consent-service/internal/telemetry/service"
	"github.com/google/uuid"
)

// ConsentServiceInterface defines the consent record service operations.
type ConsentServiceInterface interface {
	GetConsentRecord(deviceID string) (*model.ConsentCookie, error)
	GetOrCreateConsentRecord(deviceID string) (*model.ConsentCookie, error)
	SavePrivacyPreferences(request model.PrivacyPreferencesRequest) (*model.ConsentCookie, error)
}

// ConsentService is the default implementation.
type ConsentService struct {
	store     store.ConsentStoreInterface
	telemetry telemetryservice.TelemetryServiceInterface
}

// GetConsentService returns a service with the default store and telemetry wiring.
func GetConsentService() ConsentServiceInterface {
	return &ConsentService{
		store:     &store.ConsentStore{},
		telemetry: telemetryservice.GetTelemetryService(),
	}
}

// GetConsentRecord retrieves the consent record for a device.
func (cs *ConsentService) GetConsentRecord(deviceID string) (*model.ConsentCookie, error) {

	if deviceID == "" {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.DEVICE_ID_REQUIRED.Code,
			Message:     errors2.DEVICE_ID_REQUIRED.Message,
			Description: "A device id is required to fetch a consent record.",
		}, http.StatusBadRequest)
	}

	record, err := cs.store.GetConsentRecord(deviceID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.CONSENT_RECORD_NOT_FOUND.Code,
			Message:     errors2.CONSENT_RECORD_NOT_FOUND.Message,
			Description: "No consent record exists for the device.",
		}, http.StatusNotFound)
	}
	return record, nil
}

// GetOrCreateConsentRecord returns the consent record for a device, creating
// an empty record on first visit. An empty device id mints a new device
// identity.
func (cs *ConsentService) GetOrCreateConsentRecord(deviceID string) (*model.ConsentCookie, error) {

	if deviceID != "" {
		record, err := cs.store.GetConsentRecord(deviceID)
		if err != nil {
			return nil, err
		}
		if record != nil {
			return record, nil
		}
	} else {
		deviceID = uuid.New().String()
	}

	now := time.Now().Unix()
	record := &model.ConsentCookie{
		Identity:  model.CookieIdentity{FidesUserDeviceID: deviceID},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := cs.store.InsertConsentRecord(record); err != nil {
		return nil, err
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   deviceID,
		InitiatorType: log.InitiatorTypeConsumer,
		TargetID:      deviceID,
		TargetType:    log.TargetTypeConsentRecord,
		ActionID:      log.ActionCreateConsentRecord,
	})
	return record, nil
}

// SavePrivacyPreferences applies an explicit preference save to the device's
// consent record and persists it. Only the categories present in the request
// are touched; the rest of the record is carried forward unchanged.
func (cs *ConsentService) SavePrivacyPreferences(request model.PrivacyPreferencesRequest) (*model.ConsentCookie, error) {

	if err := validatePreferencesRequest(request); err != nil {
		return nil, err
	}

	record, err := cs.GetOrCreateConsentRecord(request.BrowserIdentity.FidesUserDeviceID)
	if err != nil {
		return nil, err
	}

	updated := applyPreferencesRequest(record, request)
	updated.UpdatedAt = time.Now().Unix()
	if err := cs.store.UpdateConsentRecord(updated); err != nil {
		return nil, err
	}

	noticeKeys := make([]string, 0, len(request.Preferences))
	for _, preference := range request.Preferences {
		noticeKeys = append(noticeKeys, preference.NoticeKey)
	}
	if err := cs.telemetry.RecordPreferencesSaved(updated.Identity.FidesUserDeviceID,
		request.ServedNoticeHistoryID, request.Method, noticeKeys); err != nil {
		// A failed telemetry write must not fail the preference save.
		log.GetLogger().Warn("Failed to record preferences-saved event", log.Error(err))
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   updated.Identity.FidesUserDeviceID,
		InitiatorType: log.InitiatorTypeConsumer,
		TargetID:      updated.Identity.FidesUserDeviceID,
		TargetType:    log.TargetTypeConsentRecord,
		ActionID:      log.ActionSavePreferences,
	})
	return updated, nil
}

func validatePreferencesRequest(request model.PrivacyPreferencesRequest) error {

	if request.Method != "" && !constants.AllowedConsentMethods[request.Method] {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.PREFERENCE_VALIDATION.Code,
			Message:     errors2.PREFERENCE_VALIDATION.Message,
			Description: "Invalid consent method provided.",
		}, http.StatusBadRequest)
	}

	for _, preference := range request.Preferences {
		if !validPreference(preference.Preference) {
			return invalidPreferenceError()
		}
	}
	for _, list := range tcfRequestLists(request) {
		for _, preference := range list.entries {
			if !validPreference(preference.Preference) {
				return invalidPreferenceError()
			}
		}
	}
	return nil
}

func validPreference(preference expmodel.UserConsentPreference) bool {
	return preference == expmodel.PreferenceOptIn || preference == expmodel.PreferenceOptOut
}

func invalidPreferenceError() error {
	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.PREFERENCE_VALIDATION.Code,
		Message:     errors2.PREFERENCE_VALIDATION.Message,
		Description: "Preference values must be opt_in or opt_out.",
	}, http.StatusBadRequest)
}

// tcfRequestList pairs one request list with the record map it updates.
type tcfRequestList struct {
	entries []model.TcfEntryPreference
	target  func(*model.TcfConsent) *map[string]bool
}

func tcfRequestLists(request model.PrivacyPreferencesRequest) []tcfRequestList {
	return []tcfRequestList{
		{request.PurposeConsentPreferences, func(t *model.TcfConsent) *map[string]bool { return &t.PurposeConsentPreferences }},
		{request.PurposeLegitimateInterestsPreferences, func(t *model.TcfConsent) *map[string]bool { return &t.PurposeLegitimateInterestsPreferences }},
		{request.SpecialPurposePreferences, func(t *model.TcfConsent) *map[string]bool { return &t.SpecialPurposePreferences }},
		{request.FeaturePreferences, func(t *model.TcfConsent) *map[string]bool { return &t.FeaturePreferences }},
		{request.SpecialFeaturePreferences, func(t *model.TcfConsent) *map[string]bool { return &t.SpecialFeaturePreferences }},
		{request.VendorConsentPreferences, func(t *model.TcfConsent) *map[string]bool { return &t.VendorConsentPreferences }},
		{request.VendorLegitimateInterestsPreferences, func(t *model.TcfConsent) *map[string]bool { return &t.VendorLegitimateInterestsPreferences }},
		{request.SystemConsentPreferences, func(t *model.TcfConsent) *map[string]bool { return &t.SystemConsentPreferences }},
		{request.SystemLegitimateInterestsPreferences, func(t *model.TcfConsent) *map[string]bool { return &t.SystemLegitimateInterestsPreferences }},
	}
}

// applyPreferencesRequest copies the record and folds the request into it.
// The input record is not mutated; reconciliation may still hold a reference.
func applyPreferencesRequest(record *model.ConsentCookie, request model.PrivacyPreferencesRequest) *model.ConsentCookie {

	updated := *record
	updated.Consent = copyBoolMap(record.Consent)
	updated.TcfConsent = copyTcfConsent(record.TcfConsent)

	if len(request.Preferences) > 0 {
		if updated.Consent == nil {
			updated.Consent = map[string]bool{}
		}
		for _, preference := range request.Preferences {
			updated.Consent[preference.NoticeKey] = preference.Preference == expmodel.PreferenceOptIn
		}
	}

	for _, list := range tcfRequestLists(request) {
		if len(list.entries) == 0 {
			continue
		}
		target := list.target(&updated.TcfConsent)
		if *target == nil {
			*target = map[string]bool{}
		}
		for _, preference := range list.entries {
			key := utils.CoerceKey(preference.ID)
			(*target)[key] = preference.Preference == expmodel.PreferenceOptIn
		}
	}
	return &updated
}

func copyBoolMap(in map[string]bool) map[string]bool {
	if in == nil {
		return nil
	}
	out := make(map[string]bool, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copyTcfConsent(in model.TcfConsent) model.TcfConsent {
	return model.TcfConsent{
		PurposeConsentPreferences:             copyBoolMap(in.PurposeConsentPreferences),
		PurposeLegitimateInterestsPreferences: copyBoolMap(in.PurposeLegitimateInterestsPreferences),
		SpecialPurposePreferences:             copyBoolMap(in.SpecialPurposePreferences),
		FeaturePreferences:                    copyBoolMap(in.FeaturePreferences),
		SpecialFeaturePreferences:             copyBoolMap(in.SpecialFeaturePreferences),
		VendorConsentPreferences:              copyBoolMap(in.VendorConsentPreferences),
		VendorLegitimateInterestsPreferences:  copyBoolMap(in.VendorLegitimateInterestsPreferences),
		SystemConsentPreferences:              copyBoolMap(in.SystemConsentPreferences),
		SystemLegitimateInterestsPreferences:  copyBoolMap(in.SystemLegitimateInterestsPreferences),
	}
}
