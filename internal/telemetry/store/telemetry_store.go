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
	"context"
	"time"

	"github.com/ethyca/fides-consent-service/internal/system/database/mongo"
	errors2 "github.com/ethyca/fides-consent-service/internal/system/errors"
	model "github.com/ethyca/fides-consent-service/internal/telemetry/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const eventsCollection = "consent_telemetry_events"

// TelemetryStoreInterface defines the persistence operations for telemetry events.
type TelemetryStoreInterface interface {
	InsertEvent(event *model.TelemetryEvent) error
	GetEventsBySession(servedNoticeHistoryID string) ([]model.TelemetryEvent, error)
}

// TelemetryStore is the MongoDB-backed implementation. Telemetry is
// append-heavy and queried only for analytics joins, so it lives in the
// document store rather than the relational one.
type TelemetryStore struct{}

// InsertEvent appends a telemetry event.
func (s *TelemetryStore) InsertEvent(event *model.TelemetryEvent) error {

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	collection := mongo.GetInstance().Database.Collection(eventsCollection)
	_, err := collection.InsertOne(ctx, event)
	if err != nil {
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.RECORD_TELEMETRY_EVENT.Code,
			Message:     errors2.RECORD_TELEMETRY_EVENT.Message,
			Description: "Failed to insert telemetry event.",
		}, err)
	}
	return nil
}

// GetEventsBySession fetches every event recorded under one served-notice
// session, oldest first.
func (s *TelemetryStore) GetEventsBySession(servedNoticeHistoryID string) ([]model.TelemetryEvent, error) {

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	collection := mongo.GetInstance().Database.Collection(eventsCollection)
	filter := bson.M{"served_notice_history_id": servedNoticeHistoryID}
	findOptions := options.Find().SetSort(bson.D{{Key: "recorded_at", Value: 1}})

	cursor, err := collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_TELEMETRY_EVENTS.Code,
			Message:     errors2.FETCH_TELEMETRY_EVENTS.Message,
			Description: "Failed to fetch telemetry events.",
		}, err)
	}
	defer cursor.Close(ctx)

	var events []model.TelemetryEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_TELEMETRY_EVENTS.Code,
			Message:     errors2.FETCH_TELEMETRY_EVENTS.Message,
			Description: "Failed to decode telemetry events.",
		}, err)
	}
	return events, nil
}
