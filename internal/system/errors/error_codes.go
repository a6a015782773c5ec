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

package errors

const errorPrefix = "FCS-"

var (
	// Server error codes

	DB_CLIENT_INIT = ErrorMessage{
		Code:    errorPrefix + "15001",
		Message: "Unable to initialize database client.",
	}

	MONGO_CLIENT_INIT = ErrorMessage{
		Code:    errorPrefix + "15002",
		Message: "Unable to initialize mongo client.",
	}

	FETCH_EXPERIENCE = ErrorMessage{
		Code:    errorPrefix + "15003",
		Message: "Error while fetching privacy experience.",
	}

	UPSERT_EXPERIENCE = ErrorMessage{
		Code:    errorPrefix + "15004",
		Message: "Error while storing privacy experience.",
	}

	DELETE_EXPERIENCE = ErrorMessage{
		Code:    errorPrefix + "15005",
		Message: "Error while deleting privacy experience.",
	}

	FETCH_CONSENT_RECORD = ErrorMessage{
		Code:    errorPrefix + "15006",
		Message: "Error while fetching consent record.",
	}

	ADD_CONSENT_RECORD = ErrorMessage{
		Code:    errorPrefix + "15007",
		Message: "Error while creating consent record.",
	}

	UPDATE_CONSENT_RECORD = ErrorMessage{
		Code:    errorPrefix + "15008",
		Message: "Error while updating consent record.",
	}

	RECORD_TELEMETRY_EVENT = ErrorMessage{
		Code:    errorPrefix + "15009",
		Message: "Error while recording telemetry event.",
	}

	FETCH_TELEMETRY_EVENTS = ErrorMessage{
		Code:    errorPrefix + "15010",
		Message: "Error while fetching telemetry events.",
	}

	HEALTH_CHECK = ErrorMessage{
		Code:    errorPrefix + "15011",
		Message: "Error while performing health check.",
	}

	PARSING_ERROR = ErrorMessage{
		Code:    errorPrefix + "15012",
		Message: "Error while parsing the token.",
	}

	// Client error codes

	BAD_REQUEST = ErrorMessage{
		Code:    errorPrefix + "60001",
		Message: "Invalid request.",
	}

	UNAUTHORIZED = ErrorMessage{
		Code:    errorPrefix + "60002",
		Message: "Unauthorized request.",
	}

	EXPERIENCE_NOT_FOUND = ErrorMessage{
		Code:    errorPrefix + "60003",
		Message: "Privacy experience not found.",
	}

	EXPERIENCE_VALIDATION = ErrorMessage{
		Code:    errorPrefix + "60004",
		Message: "Privacy experience validation failed.",
	}

	CONSENT_RECORD_NOT_FOUND = ErrorMessage{
		Code:    errorPrefix + "60005",
		Message: "Consent record not found.",
	}

	PREFERENCE_VALIDATION = ErrorMessage{
		Code:    errorPrefix + "60006",
		Message: "Privacy preference validation failed.",
	}

	TELEMETRY_VALIDATION = ErrorMessage{
		Code:    errorPrefix + "60007",
		Message: "Telemetry event validation failed.",
	}

	DEVICE_ID_REQUIRED = ErrorMessage{
		Code:    errorPrefix + "60008",
		Message: "A fides user device id is required.",
	}

	REGION_REQUIRED = ErrorMessage{
		Code:    errorPrefix + "60009",
		Message: "A region is required to resolve a privacy experience.",
	}
)
