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

	model "github.com/ethyca/fides-consent-service/internal/experience/model"
	"github.com/ethyca/fides-consent-service/internal/system/database/provider"
	errors2 "github.com/ethyca/fides-consent-service/internal/system/errors"
	"github.com/ethyca/fides-consent-service/internal/system/log"
)

// ExperienceStoreInterface defines the persistence operations for privacy
// experiences.
type ExperienceStoreInterface interface {
	UpsertExperience(experience *model.PrivacyExperience) error
	GetExperienceByRegion(region string) (*model.PrivacyExperience, error)
	GetExperienceByID(experienceID string) (*model.PrivacyExperience, error)
	ListExperiences() ([]model.PrivacyExperience, error)
	DeleteExperience(experienceID string) error
}

// ExperienceStore is the PostgreSQL-backed implementation. The experience
// document is stored as a JSON column; region and component are lifted into
// their own columns for lookups.
type ExperienceStore struct{}

// UpsertExperience inserts or replaces the experience for its id.
func (s *ExperienceStore) UpsertExperience(experience *model.PrivacyExperience) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for upserting experience: %s", experience.ID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPSERT_EXPERIENCE.Code,
			Message:     errors2.UPSERT_EXPERIENCE.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	experienceJSON, err := json.Marshal(experience)
	if err != nil {
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPSERT_EXPERIENCE.Code,
			Message:     errors2.UPSERT_EXPERIENCE.Message,
			Description: "Failed to serialize experience.",
		}, err)
	}

	tx, err := dbClient.BeginTx()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to begin transaction for upserting experience: %s", experience.ID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPSERT_EXPERIENCE.Code,
			Message:     errors2.UPSERT_EXPERIENCE.Message,
			Description: errorMsg,
		}, err)
	}

	query := `INSERT INTO privacy_experiences (experience_id, region, component, experience)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (experience_id) DO UPDATE
				SET region = EXCLUDED.region, component = EXCLUDED.component, experience = EXCLUDED.experience`
	_, err = tx.Exec(query, experience.ID, experience.Region, experience.Component, string(experienceJSON))
	if err != nil {
		if errRollback := tx.Rollback(); errRollback != nil {
			errorMsg := fmt.Sprintf("Failed to rollback upserting experience: %s", experience.ID)
			logger.Debug(errorMsg, log.Error(errRollback))
			return errors2.NewServerError(errors2.ErrorMessage{
				Code:        errors2.UPSERT_EXPERIENCE.Code,
				Message:     errors2.UPSERT_EXPERIENCE.Message,
				Description: errorMsg,
			}, errRollback)
		}
		errorMsg := fmt.Sprintf("Failed to execute query for upserting experience: %s", experience.ID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPSERT_EXPERIENCE.Code,
			Message:     errors2.UPSERT_EXPERIENCE.Message,
			Description: errorMsg,
		}, err)
	}
	logger.Info(fmt.Sprintf("Successfully upserted experience: %s", experience.ID))
	return tx.Commit()
}

// GetExperienceByRegion retrieves the experience configured for a region.
// Returns nil when no experience is configured.
func (s *ExperienceStore) GetExperienceByRegion(region string) (*model.PrivacyExperience, error) {

	query := `SELECT experience FROM privacy_experiences WHERE region = $1`
	return s.getExperience(query, region, fmt.Sprintf("region: %s", region))
}

// GetExperienceByID retrieves an experience by its id. Returns nil when no
// experience exists.
func (s *ExperienceStore) GetExperienceByID(experienceID string) (*model.PrivacyExperience, error) {

	query := `SELECT experience FROM privacy_experiences WHERE experience_id = $1`
	return s.getExperience(query, experienceID, fmt.Sprintf("id: %s", experienceID))
}

func (s *ExperienceStore) getExperience(query, arg, target string) (*model.PrivacyExperience, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for fetching experience by %s", target)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_EXPERIENCE.Code,
			Message:     errors2.FETCH_EXPERIENCE.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	results, err := dbClient.ExecuteQuery(query, arg)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to execute query for fetching experience by %s", target)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_EXPERIENCE.Code,
			Message:     errors2.FETCH_EXPERIENCE.Message,
			Description: errorMsg,
		}, err)
	}

	if len(results) == 0 {
		logger.Debug(fmt.Sprintf("Experience not found for %s", target))
		return nil, nil
	}
	return rowToExperience(results[0])
}

// ListExperiences returns all configured experiences.
func (s *ExperienceStore) ListExperiences() ([]model.PrivacyExperience, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		logger.Debug("Failed to get db client for listing experiences", log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_EXPERIENCE.Code,
			Message:     errors2.FETCH_EXPERIENCE.Message,
			Description: "Failed to get db client for listing experiences.",
		}, err)
	}
	defer dbClient.Close()

	query := `SELECT experience FROM privacy_experiences ORDER BY region`
	results, err := dbClient.ExecuteQuery(query)
	if err != nil {
		logger.Debug("Failed to execute query for listing experiences", log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_EXPERIENCE.Code,
			Message:     errors2.FETCH_EXPERIENCE.Message,
			Description: "Failed to execute query for listing experiences.",
		}, err)
	}

	experiences := make([]model.PrivacyExperience, 0, len(results))
	for _, row := range results {
		experience, err := rowToExperience(row)
		if err != nil {
			return nil, err
		}
		experiences = append(experiences, *experience)
	}
	return experiences, nil
}

// DeleteExperience removes an experience by id. Deleting an absent id is not
// an error.
func (s *ExperienceStore) DeleteExperience(experienceID string) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for deleting experience: %s", experienceID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DELETE_EXPERIENCE.Code,
			Message:     errors2.DELETE_EXPERIENCE.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	tx, err := dbClient.BeginTx()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to begin transaction for deleting experience: %s", experienceID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DELETE_EXPERIENCE.Code,
			Message:     errors2.DELETE_EXPERIENCE.Message,
			Description: errorMsg,
		}, err)
	}

	query := `DELETE FROM privacy_experiences WHERE experience_id = $1`
	_, err = tx.Exec(query, experienceID)
	if err != nil {
		logger.Debug("Failed to delete experience", log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DELETE_EXPERIENCE.Code,
			Message:     errors2.DELETE_EXPERIENCE.Message,
			Description: fmt.Sprintf("Failed to delete experience: %s", experienceID),
		}, err)
	}
	logger.Info(fmt.Sprintf("Successfully deleted experience: %s", experienceID))
	return tx.Commit()
}

func rowToExperience(row map[string]interface{}) (*model.PrivacyExperience, error) {

	raw, ok := row["experience"]
	if !ok {
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_EXPERIENCE.Code,
			Message:     errors2.FETCH_EXPERIENCE.Message,
			Description: "Experience column missing from result row.",
		}, nil)
	}

	var data []byte
	switch v := raw.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_EXPERIENCE.Code,
			Message:     errors2.FETCH_EXPERIENCE.Message,
			Description: "Unexpected type for experience column.",
		}, nil)
	}

	var experience model.PrivacyExperience
	if err := json.Unmarshal(data, &experience); err != nil {
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_EXPERIENCE.Code,
			Message:     errors2.FETCH_EXPERIENCE.Message,
			Description: "Failed to parse stored experience document.",
		}, err)
	}
	return &experience, nil
}
