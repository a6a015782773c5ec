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

// Package reconcile merges a stored consent record with a freshly resolved
// privacy experience. The experience says what currently exists; the consent
// record says what the user decided. The merge produces a derived view with
// current_preference populated per entry and mutates neither input.
package reconcile

import (
	consentmodel "github.com/ethyca/fides-consent-service/internal/consent/model"
	expmodel "github.com/ethyca/fides-consent-service/internal/experience/model"
	"github.com/ethyca/fides-consent-service/internal/system/utils"
)

// UpdateExperienceFromCookieConsentTcf returns a copy of experience in which
// every entry of every TCF category list carries the preference recorded in
// cookie, looked up by the entry id's canonical string form in the category's
// matching preference map. Entries with no recorded decision keep an unset
// current_preference; cookie entries for ids the experience no longer lists
// are ignored. A nil cookie behaves like a cookie with no decisions.
func UpdateExperienceFromCookieConsentTcf(experience *expmodel.PrivacyExperience, cookie *consentmodel.ConsentCookie) *expmodel.PrivacyExperience {
	if experience == nil {
		return nil
	}

	var tcf consentmodel.TcfConsent
	if cookie != nil {
		tcf = cookie.TcfConsent
	}

	merged := *experience
	merged.TcfPurposeConsents = applyPreferences(experience.TcfPurposeConsents, tcf.PurposeConsentPreferences)
	merged.TcfPurposeLegitimateInterests = applyPreferences(experience.TcfPurposeLegitimateInterests, tcf.PurposeLegitimateInterestsPreferences)
	merged.TcfSpecialPurposes = applyPreferences(experience.TcfSpecialPurposes, tcf.SpecialPurposePreferences)
	merged.TcfFeatures = applyPreferences(experience.TcfFeatures, tcf.FeaturePreferences)
	merged.TcfSpecialFeatures = applyPreferences(experience.TcfSpecialFeatures, tcf.SpecialFeaturePreferences)
	merged.TcfVendorConsents = applyPreferences(experience.TcfVendorConsents, tcf.VendorConsentPreferences)
	merged.TcfVendorLegitimateInterests = applyPreferences(experience.TcfVendorLegitimateInterests, tcf.VendorLegitimateInterestsPreferences)
	merged.TcfSystemConsents = applyPreferences(experience.TcfSystemConsents, tcf.SystemConsentPreferences)
	merged.TcfSystemLegitimateInterests = applyPreferences(experience.TcfSystemLegitimateInterests, tcf.SystemLegitimateInterestsPreferences)
	return &merged
}

// UpdateExperienceFromCookieConsentNotices applies the cookie's non-TCF
// notice decisions to privacy_notices by notice key, with the same copy and
// lookup semantics as the TCF merge.
func UpdateExperienceFromCookieConsentNotices(experience *expmodel.PrivacyExperience, cookie *consentmodel.ConsentCookie) *expmodel.PrivacyExperience {
	if experience == nil {
		return nil
	}

	var consent map[string]bool
	if cookie != nil {
		consent = cookie.Consent
	}

	merged := *experience
	if experience.PrivacyNotices != nil {
		notices := make([]expmodel.PrivacyNotice, len(experience.PrivacyNotices))
		for i, notice := range experience.PrivacyNotices {
			out := notice
			out.CurrentPreference = preferenceFor(consent, notice.NoticeKey)
			notices[i] = out
		}
		merged.PrivacyNotices = notices
	}
	return &merged
}

// applyPreferences copies entries, resolving each entry's preference from the
// given map. An absent list stays absent; an absent map leaves every
// preference unset.
func applyPreferences(entries []expmodel.TcfEntry, preferences map[string]bool) []expmodel.TcfEntry {
	if entries == nil {
		return nil
	}

	out := make([]expmodel.TcfEntry, len(entries))
	for i, entry := range entries {
		merged := entry
		merged.CurrentPreference = preferenceFor(preferences, utils.CoerceKey(entry.ID))
		out[i] = merged
	}
	return out
}

func preferenceFor(preferences map[string]bool, key string) *expmodel.UserConsentPreference {
	value, found := preferences[key]
	if !found {
		return nil
	}
	preference := expmodel.PreferenceOptOut
	if value {
		preference = expmodel.PreferenceOptIn
	}
	return &preference
}
