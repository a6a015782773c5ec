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

// TelemetryEvent is one consent telemetry record. Events emitted during one
// serving session share a served_notice_history_id so analytics can join the
// notices-served record with the preference save that followed it.
type TelemetryEvent struct {
	EventID               string   `json:"event_id" bson:"event_id"`
	EventType             string   `json:"event_type" bson:"event_type"` // notices_served or preferences_saved
	ServedNoticeHistoryID string   `json:"served_notice_history_id" bson:"served_notice_history_id"`
	FidesUserDeviceID     string   `json:"fides_user_device_id" bson:"fides_user_device_id"`
	Method                string   `json:"method,omitempty" bson:"method,omitempty"`
	NoticeKeys            []string `json:"notice_keys,omitempty" bson:"notice_keys,omitempty"`
	UserAgent             string   `json:"user_agent,omitempty" bson:"user_agent,omitempty"`
	RecordedAt            int64    `json:"recorded_at" bson:"recorded_at"` // unix seconds
}

// NoticesServedRequest is the payload reported by the overlay after it has
// rendered notices to the user.
type NoticesServedRequest struct {
	FidesUserDeviceID     string   `json:"fides_user_device_id"`
	ServedNoticeHistoryID string   `json:"served_notice_history_id"`
	NoticeKeys            []string `json:"notice_keys,omitempty"`
	UserAgent             string   `json:"user_agent,omitempty"`
}
