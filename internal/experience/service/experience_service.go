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
	"fmt"
	"net/http"
	"sync"
	"time"

	consentservice "github.com/ethyca/fides-consent-service/internal/consent/service"
	model "github.com/ethyca/fides-consent-service/internal/experience/model"
	"github.com/ethyca/fides-consent-service/internal/experience/store"
	"github.com/ethyca/fides-consent-service/internal/gpc"
	"github.com/ethyca/fides-consent-service/internal/reconcile"
	"github.com/ethyca/fides-consent-service/internal/session"
	"github.com/ethyca/fides-consent-service/internal/system/cache"
	"github.com/ethyca/fides-consent-service/internal/system/config"
	"github.com/ethyca/fides-consent-service/internal/system/constants"
	errors2 "github.com/ethyca/fides-consent-service/internal/system/errors"
	"github.com/ethyca/fides-consent-service/internal/system/log"
	"github.com/go-playground/validator/v10"
)

// ExperienceServiceInterface defines the privacy experience operations.
type ExperienceServiceInterface interface {
	GetExperience(region, deviceID string, hasGPC bool) (*model.ExperienceResponse, error)
	UpsertExperience(experience *model.PrivacyExperience) error
	GetExperienceByID(experienceID string) (*model.PrivacyExperience, error)
	ListExperiences() ([]model.PrivacyExperience, error)
	DeleteExperience(experienceID string) error
}

// ExperienceService is the default implementation. It owns two TTL caches:
// experiences by region, and session managers by device id. A session manager
// expiring from its cache is the session boundary for that device.
type ExperienceService struct {
	store           store.ExperienceStoreInterface
	consent         consentservice.ConsentServiceInterface
	validate        *validator.Validate
	experienceCache *cache.Cache
	sessionCache    *cache.Cache
}

var (
	instance *ExperienceService
	once     sync.Once
)

// GetExperienceService returns the shared experience service instance.
func GetExperienceService() ExperienceServiceInterface {

	once.Do(func() {
		cacheConfig := config.GetFCSRuntime().Config.Cache
		instance = &ExperienceService{
			store:           &store.ExperienceStore{},
			consent:         consentservice.GetConsentService(),
			validate:        validator.New(),
			experienceCache: cache.NewCache(time.Duration(cacheConfig.ExperienceTTLSeconds) * time.Second),
			sessionCache:    cache.NewCache(time.Duration(cacheConfig.SessionTTLSeconds) * time.Second),
		}
	})
	return instance
}

// GetExperience resolves the consumer-facing experience for a region: it
// loads the region's catalog, merges in the device's stored decisions,
// substitutes GPC-conditional notice copy, and attaches the session's
// served-notice history id. The stored experience and consent record are
// never mutated; the response is a derived view.
func (es *ExperienceService) GetExperience(region, deviceID string, hasGPC bool) (*model.ExperienceResponse, error) {

	if region == "" {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.REGION_REQUIRED.Code,
			Message:     errors2.REGION_REQUIRED.Message,
			Description: "A region is required to resolve a privacy experience.",
		}, http.StatusBadRequest)
	}

	experience, err := es.experienceForRegion(region)
	if err != nil {
		return nil, err
	}
	if experience == nil {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.EXPERIENCE_NOT_FOUND.Code,
			Message:     errors2.EXPERIENCE_NOT_FOUND.Message,
			Description: fmt.Sprintf("No privacy experience is configured for region: %s", region),
		}, http.StatusNotFound)
	}

	record, err := es.consent.GetOrCreateConsentRecord(deviceID)
	if err != nil {
		return nil, err
	}

	merged := reconcile.UpdateExperienceFromCookieConsentTcf(experience, record)
	merged = reconcile.UpdateExperienceFromCookieConsentNotices(merged, record)
	resolveConditionalCopy(merged, hasGPC)

	resolvedDeviceID := record.Identity.FidesUserDeviceID
	manager := es.sessionCache.GetOrCompute(resolvedDeviceID, func() interface{} {
		return session.NewManager()
	}).(*session.Manager)

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   resolvedDeviceID,
		InitiatorType: log.InitiatorTypeConsumer,
		TargetID:      experience.ID,
		TargetType:    log.TargetTypeExperience,
		ActionID:      log.ActionServeExperience,
	})

	return &model.ExperienceResponse{
		Experience:            merged,
		FidesUserDeviceID:     resolvedDeviceID,
		ServedNoticeHistoryID: manager.GetServedNoticeHistoryID(),
		GPCApplied:            hasGPC,
	}, nil
}

// experienceForRegion serves region lookups through the TTL cache. Negative
// results are not cached so a freshly configured region is visible at once.
func (es *ExperienceService) experienceForRegion(region string) (*model.PrivacyExperience, error) {

	if cached, found := es.experienceCache.Get(region); found {
		return cached.(*model.PrivacyExperience), nil
	}

	experience, err := es.store.GetExperienceByRegion(region)
	if err != nil {
		return nil, err
	}
	if experience != nil {
		es.experienceCache.Set(region, experience)
	}
	return experience, nil
}

// UpsertExperience validates and persists an experience configuration.
func (es *ExperienceService) UpsertExperience(experience *model.PrivacyExperience) error {

	if err := es.validate.Struct(experience); err != nil {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.EXPERIENCE_VALIDATION.Code,
			Message:     errors2.EXPERIENCE_VALIDATION.Message,
			Description: fmt.Sprintf("Experience validation failed: %v", err),
		}, http.StatusBadRequest)
	}
	if !constants.AllowedExperienceComponents[experience.Component] {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.EXPERIENCE_VALIDATION.Code,
			Message:     errors2.EXPERIENCE_VALIDATION.Message,
			Description: fmt.Sprintf("Unknown experience component: %s", experience.Component),
		}, http.StatusBadRequest)
	}

	if err := es.store.UpsertExperience(experience); err != nil {
		return err
	}
	es.experienceCache.Delete(experience.Region)

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorType: log.InitiatorTypeAdmin,
		TargetID:      experience.ID,
		TargetType:    log.TargetTypeExperience,
		ActionID:      log.ActionUpsertExperience,
	})
	return nil
}

// GetExperienceByID fetches an experience configuration by id.
func (es *ExperienceService) GetExperienceByID(experienceID string) (*model.PrivacyExperience, error) {

	experience, err := es.store.GetExperienceByID(experienceID)
	if err != nil {
		return nil, err
	}
	if experience == nil {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.EXPERIENCE_NOT_FOUND.Code,
			Message:     errors2.EXPERIENCE_NOT_FOUND.Message,
			Description: fmt.Sprintf("No experience exists with id: %s", experienceID),
		}, http.StatusNotFound)
	}
	return experience, nil
}

// ListExperiences returns every configured experience.
func (es *ExperienceService) ListExperiences() ([]model.PrivacyExperience, error) {

	return es.store.ListExperiences()
}

// DeleteExperience removes an experience configuration and drops its cache
// entry.
func (es *ExperienceService) DeleteExperience(experienceID string) error {

	experience, err := es.store.GetExperienceByID(experienceID)
	if err != nil {
		return err
	}
	if experience == nil {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.EXPERIENCE_NOT_FOUND.Code,
			Message:     errors2.EXPERIENCE_NOT_FOUND.Message,
			Description: fmt.Sprintf("No experience exists with id: %s", experienceID),
		}, http.StatusNotFound)
	}

	if err := es.store.DeleteExperience(experienceID); err != nil {
		return err
	}
	es.experienceCache.Delete(experience.Region)
	return nil
}

// resolveConditionalCopy substitutes GPC-conditional marker blocks in the
// user-visible notice copy of a merged experience. The merge already produced
// fresh notice and entry slices, so writing resolved text here cannot reach
// the cached catalog.
func resolveConditionalCopy(experience *model.PrivacyExperience, hasGPC bool) {

	if experience == nil {
		return
	}
	for i := range experience.PrivacyNotices {
		experience.PrivacyNotices[i].Description = gpc.ProcessConditionals(experience.PrivacyNotices[i].Description, hasGPC)
	}
}
