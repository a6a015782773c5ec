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

// UserConsentPreference is the resolved effective decision for one entry.
// The zero value (absence) means no applicable stored preference.
type UserConsentPreference string

const (
	PreferenceOptIn  UserConsentPreference = "opt_in"
	PreferenceOptOut UserConsentPreference = "opt_out"
)

// TcfEntry is the generic shape shared by purposes, special purposes,
// features, special features, vendors and systems. Descriptive fields are
// pass-through data; CurrentPreference is populated by reconciliation and is
// never stored.
type TcfEntry struct {
	ID                ItemID                 `json:"id" validate:"required"`
	Name              string                 `json:"name,omitempty"`
	Description       string                 `json:"description,omitempty"`
	CurrentPreference *UserConsentPreference `json:"current_preference,omitempty"`
}

// PrivacyNotice is a non-TCF notice shown by the consent overlay.
type PrivacyNotice struct {
	NoticeKey         string                 `json:"notice_key" validate:"required"`
	Name              string                 `json:"name,omitempty"`
	Description       string                 `json:"description,omitempty"`
	ConsentMechanism  string                 `json:"consent_mechanism,omitempty"`
	CurrentPreference *UserConsentPreference `json:"current_preference,omitempty"`
}

// PrivacyExperience is the catalog of notices, purposes and vendors
// applicable to a region. It is refreshed per page load and carries no
// stored decisions of its own.
type PrivacyExperience struct {
	ID        string `json:"id" validate:"required"`
	Region    string `json:"region" validate:"required"`
	Component string `json:"component" validate:"required"`

	TcfPurposeConsents            []TcfEntry `json:"tcf_purpose_consents,omitempty" validate:"omitempty,dive"`
	TcfPurposeLegitimateInterests []TcfEntry `json:"tcf_purpose_legitimate_interests,omitempty" validate:"omitempty,dive"`
	TcfSpecialPurposes            []TcfEntry `json:"tcf_special_purposes,omitempty" validate:"omitempty,dive"`
	TcfFeatures                   []TcfEntry `json:"tcf_features,omitempty" validate:"omitempty,dive"`
	TcfSpecialFeatures            []TcfEntry `json:"tcf_special_features,omitempty" validate:"omitempty,dive"`
	TcfVendorConsents             []TcfEntry `json:"tcf_vendor_consents,omitempty" validate:"omitempty,dive"`
	TcfVendorLegitimateInterests  []TcfEntry `json:"tcf_vendor_legitimate_interests,omitempty" validate:"omitempty,dive"`
	TcfSystemConsents             []TcfEntry `json:"tcf_system_consents,omitempty" validate:"omitempty,dive"`
	TcfSystemLegitimateInterests  []TcfEntry `json:"tcf_system_legitimate_interests,omitempty" validate:"omitempty,dive"`

	PrivacyNotices []PrivacyNotice `json:"privacy_notices,omitempty" validate:"omitempty,dive"`
}

// ExperienceResponse is what the consumer-facing endpoint returns: the merged
// experience plus the identifiers the client echoes back on telemetry calls.
type ExperienceResponse struct {
	Experience            *PrivacyExperience `json:"experience"`
	FidesUserDeviceID     string             `json:"fides_user_device_id"`
	ServedNoticeHistoryID string             `json:"served_notice_history_id"`
	GPCApplied            bool               `json:"gpc_applied"`
}
