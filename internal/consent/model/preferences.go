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

import (
	expmodel "github.com/ethyca/fides-consent-service/internal/experience/model"
)

// NoticePreference is one non-TCF notice decision in a preference save.
type NoticePreference struct {
	NoticeKey  string                         `json:"notice_key"`
	Preference expmodel.UserConsentPreference `json:"preference"`
}

// TcfEntryPreference is one TCF entry decision in a preference save. The id
// may arrive as a string or a number; it is coerced to the canonical string
// form before the preference map is updated.
type TcfEntryPreference struct {
	ID         expmodel.ItemID                `json:"id"`
	Preference expmodel.UserConsentPreference `json:"preference"`
}

// PrivacyPreferencesRequest is the payload of an explicit preference save.
// Every populated list updates the corresponding preference map on the
// device's consent record; absent lists leave their maps untouched.
type PrivacyPreferencesRequest struct {
	BrowserIdentity       CookieIdentity `json:"browser_identity"`
	Method                string         `json:"method,omitempty"`
	ServedNoticeHistoryID string         `json:"served_notice_history_id,omitempty"`

	Preferences []NoticePreference `json:"preferences,omitempty"`

	PurposeConsentPreferences             []TcfEntryPreference `json:"purpose_consent_preferences,omitempty"`
	PurposeLegitimateInterestsPreferences []TcfEntryPreference `json:"purpose_legitimate_interests_preferences,omitempty"`
	SpecialPurposePreferences             []TcfEntryPreference `json:"special_purpose_preferences,omitempty"`
	FeaturePreferences                    []TcfEntryPreference `json:"feature_preferences,omitempty"`
	SpecialFeaturePreferences             []TcfEntryPreference `json:"special_feature_preferences,omitempty"`
	VendorConsentPreferences              []TcfEntryPreference `json:"vendor_consent_preferences,omitempty"`
	VendorLegitimateInterestsPreferences  []TcfEntryPreference `json:"vendor_legitimate_interests_preferences,omitempty"`
	SystemConsentPreferences              []TcfEntryPreference `json:"system_consent_preferences,omitempty"`
	SystemLegitimateInterestsPreferences  []TcfEntryPreference `json:"system_legitimate_interests_preferences,omitempty"`
}
