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

package model

// ConsentCookie is the durable record of a user's consent decisions. It is
// the sole source of truth for what the user has decided; the privacy
// experience is the sole source of truth for what is currently offered.
// Reconciliation derives a merged view and mutates neither.
type ConsentCookie struct {
	Identity   CookieIdentity  `json:"identity"`
	Consent    map[string]bool `json:"consent,omitempty"` // notice key -> decision, non-TCF notices
	TcfConsent TcfConsent      `json:"tcf_consent,omitempty"`
	CreatedAt  int64           `json:"created_at,omitempty"` // unix seconds
	UpdatedAt  int64           `json:"updated_at,omitempty"` // unix seconds
}

// CookieIdentity carries the per-device identifier, generated once on first
// visit and persisted for cookie continuity.
type CookieIdentity struct {
	FidesUserDeviceID string `json:"fides_user_device_id"`
}

// TcfConsent holds one preference map per TCF category and legal basis. Map
// keys are always the canonical string form of the entry id; absence of a key
// means no decision was recorded for that entry.
type TcfConsent struct {
	PurposeConsentPreferences             map[string]bool `json:"purpose_consent_preferences,omitempty"`
	PurposeLegitimateInterestsPreferences map[string]bool `json:"purpose_legitimate_interests_preferences,omitempty"`
	SpecialPurposePreferences             map[string]bool `json:"special_purpose_preferences,omitempty"`
	FeaturePreferences                    map[string]bool `json:"feature_preferences,omitempty"`
	SpecialFeaturePreferences             map[string]bool `json:"special_feature_preferences,omitempty"`
	VendorConsentPreferences              map[string]bool `json:"vendor_consent_preferences,omitempty"`
	VendorLegitimateInterestsPreferences  map[string]bool `json:"vendor_legitimate_interests_preferences,omitempty"`
	SystemConsentPreferences              map[string]bool `json:"system_consent_preferences,omitempty"`
	SystemLegitimateInterestsPreferences  map[string]bool `json:"system_legitimate_interests_preferences,omitempty"`
}
