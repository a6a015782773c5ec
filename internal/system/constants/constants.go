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

package constants

const ApiBasePath = "/api/v1"

type contextKey string

const TraceIDContextKey contextKey = "trace_id"

// Request headers understood by the consumer-facing endpoints.
const (
	HeaderDeviceID = "Fides-User-Device-Id"
	HeaderGPC      = "Sec-GPC"
	HeaderTraceID  = "X-Trace-Id"
)

// Consent methods describe how a preference save was initiated.
const (
	MethodSave         = "save"
	MethodAcceptAll    = "accept"
	MethodRejectAll    = "reject"
	MethodGPC          = "gpc"
	MethodDismiss      = "dismiss"
	MethodScriptLoaded = "script"
)

// AllowedConsentMethods defines the valid set of consent methods.
var AllowedConsentMethods = map[string]bool{
	MethodSave:         true,
	MethodAcceptAll:    true,
	MethodRejectAll:    true,
	MethodGPC:          true,
	MethodDismiss:      true,
	MethodScriptLoaded: true,
}

// Experience components describe which surface an experience configures.
const (
	ComponentOverlay       = "overlay"
	ComponentPrivacyCenter = "privacy_center"
	ComponentTCFOverlay    = "tcf_overlay"
)

// AllowedExperienceComponents defines the valid set of experience components.
var AllowedExperienceComponents = map[string]bool{
	ComponentOverlay:       true,
	ComponentPrivacyCenter: true,
	ComponentTCFOverlay:    true,
}

// Telemetry event types.
const (
	EventNoticesServed    = "notices_served"
	EventPreferencesSaved = "preferences_saved"
)

// Scopes required by the administrative endpoints.
const (
	ScopeExperienceManage = "experience:manage"
	ScopeTelemetryView    = "telemetry:view"
)
