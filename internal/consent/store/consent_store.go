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

package store

import (
	"encoding/json"
	"fmt"

	model "github.com/ethyca/fides-consent-service/internal/consent/model"
	"github.com/ethyca/fides-consent-service/internal/system/database/provider"
	errors2 "github.com/ethyca/fides-consent-service/internal/system/errors"
	"github.com/ethyca/fides-consent-service/internal/system/log"
)

// ConsentStoreInterface defines the persistence operations for consent records.
type ConsentStoreInterface interface {
	InsertConsentRecord(record *model.ConsentCookie) error
	GetConsentRecord(deviceID string) (*model.ConsentCookie, error)
	UpdateConsentRecord(record *model.ConsentCookie) error
}

// ConsentStore is the PostgreSQL-backed implementation.
type ConsentStore struct{}

// InsertConsentRecord inserts a new consent record into the database.
func (s *ConsentStore) InsertConsentRecord(record *model.ConsentCookie) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for inserting consent record: %s", record.Identity.FidesUserDeviceID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_CONSENT_RECORD.Code,
			Message:     errors2.ADD_CONSENT_RECORD.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	consentJSON, tcfJSON, err := marshalPreferenceColumns(record)
	if err != nil {
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_CONSENT_RECORD.Code,
			Message:     errors2.ADD_CONSENT_RECORD.Message,
			Description: "Failed to serialize consent record.",
		}, err)
	}

	tx, err := dbClient.BeginTx()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to begin transaction for inserting consent record: %s", record.Identity.FidesUserDeviceID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_CONSENT_RECORD.Code,
			Message:     errors2.ADD_CONSENT_RECORD.Message,
			Description: errorMsg,
		}, err)
	}

	query := `INSERT INTO consent_records (device_id, consent, tcf_consent, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5)`
	_, err = tx.Exec(query, record.Identity.FidesUserDeviceID, consentJSON, tcfJSON, record.CreatedAt, record.UpdatedAt)
	if err != nil {
		if errRollback := tx.Rollback(); errRollback != nil {
			errorMsg := fmt.Sprintf("Failed to rollback inserting consent record: %s", record.Identity.FidesUserDeviceID)
			logger.Debug(errorMsg, log.Error(errRollback))
			return errors2.NewServerError(errors2.ErrorMessage{
				Code:        errors2.ADD_CONSENT_RECORD.Code,
				Message:     errors2.ADD_CONSENT_RECORD.Message,
				Description: errorMsg,
			}, errRollback)
		}
		errorMsg := fmt.Sprintf("Failed to execute query for inserting consent record: %s", record.Identity.FidesUserDeviceID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_CONSENT_RECORD.Code,
			Message:     errors2.ADD_CONSENT_RECORD.Message,
			Description: errorMsg,
		}, err)
	}
	logger.Info(fmt.Sprintf("Successfully inserted consent record: %s", record.Identity.FidesUserDeviceID))
	return tx.Commit()
}

// GetConsentRecord retrieves a consent record by device id. Returns nil when
// no record exists for the device.
func (s *ConsentStore) GetConsentRecord(deviceID string) (*model.ConsentCookie, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for fetching consent record: %s", deviceID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_CONSENT_RECORD.Code,
			Message:     errors2.FETCH_CONSENT_RECORD.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := `SELECT device_id, consent, tcf_consent, created_at, updated_at FROM consent_records WHERE device_id = $1`
	results, err := dbClient.ExecuteQuery(query, deviceID)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to execute query for fetching consent record: %s", deviceID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_CONSENT_RECORD.Code,
			Message:     errors2.FETCH_CONSENT_RECORD.Message,
			Description: errorMsg,
		}, err)
	}

	if len(results) == 0 {
		logger.Debug(fmt.Sprintf("Consent record not found for device: %s", deviceID))
		return nil, nil
	}
	return rowToConsentRecord(results[0])
}

// UpdateConsentRecord replaces the stored preference columns for a device.
func (s *ConsentStore) UpdateConsentRecord(record *model.ConsentCookie) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for updating consent record: %s", record.Identity.FidesUserDeviceID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_CONSENT_RECORD.Code,
			Message:     errors2.UPDATE_CONSENT_RECORD.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	consentJSON, tcfJSON, err := marshalPreferenceColumns(record)
	if err != nil {
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_CONSENT_RECORD.Code,
			Message:     errors2.UPDATE_CONSENT_RECORD.Message,
			Description: "Failed to serialize consent record.",
		}, err)
	}

	tx, err := dbClient.BeginTx()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to begin transaction for updating consent record: %s", record.Identity.FidesUserDeviceID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_CONSENT_RECORD.Code,
			Message:     errors2.UPDATE_CONSENT_RECORD.Message,
			Description: errorMsg,
		}, err)
	}

	query := `UPDATE consent_records SET consent=$1, tcf_consent=$2, updated_at=$3 WHERE device_id=$4`
	_, err = tx.Exec(query, consentJSON, tcfJSON, record.UpdatedAt, record.Identity.FidesUserDeviceID)
	if err != nil {
		logger.Debug("Failed to update consent record", log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_CONSENT_RECORD.Code,
			Message:     errors2.UPDATE_CONSENT_RECORD.Message,
			Description: "Failed to update consent record.",
		}, err)
	}
	return tx.Commit()
}

func marshalPreferenceColumns(record *model.ConsentCookie) (string, string, error) {
	consentJSON, err := json.Marshal(record.Consent)
	if err != nil {
		return "", "", err
	}
	tcfJSON, err := json.Marshal(record.TcfConsent)
	if err != nil {
		return "", "", err
	}
	return string(consentJSON), string(tcfJSON), nil
}

func rowToConsentRecord(row map[string]interface{}) (*model.ConsentCookie, error) {
	record := model.ConsentCookie{
		Identity: model.CookieIdentity{FidesUserDeviceID: asString(row["device_id"])},
	}

	if raw := asString(row["consent"]); raw != "" {
		if err := json.Unmarshal([]byte(raw), &record.Consent); err != nil {
			return nil, errors2.NewServerError(errors2.ErrorMessage{
				Code:        errors2.FETCH_CONSENT_RECORD.Code,
				Message:     errors2.FETCH_CONSENT_RECORD.Message,
				Description: "Failed to parse stored consent column.",
			}, err)
		}
	}
	if raw := asString(row["tcf_consent"]); raw != "" {
		if err := json.Unmarshal([]byte(raw), &record.TcfConsent); err != nil {
			return nil, errors2.NewServerError(errors2.ErrorMessage{
				Code:        errors2.FETCH_CONSENT_RECORD.Code,
				Message:     errors2.FETCH_CONSENT_RECORD.Message,
				Description: "Failed to parse stored tcf_consent column.",
			}, err)
		}
	}

	record.CreatedAt = asInt64(row["created_at"])
	record.UpdatedAt = asInt64(row["updated_at"])
	return &record, nil
}

func asString(raw interface{}) string {
	switch v := raw.(type) {
	case []byte:
		return string(v)
	case string:
		return v
	default:
		return ""
	}
}

func asInt64(raw interface{}) int64 {
	switch v := raw.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}
