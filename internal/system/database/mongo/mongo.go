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

package mongo

import (
	"context"
	"sync"
	"time"

	"github.com/ethyca/fides-consent-service/internal/system/errors"
	"github.com/ethyca/fides-consent-service/internal/system/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDB wraps the driver client and the service database handle.
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

var (
	mongoInstance *MongoDB
	once          sync.Once
	initErr       error
)

// Connect initializes the global MongoDB connection. Subsequent calls return
// the already established instance.
func Connect(uri, dbName string) (*MongoDB, error) {
	once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		clientOptions := options.Client().ApplyURI(uri)
		client, err := mongo.Connect(ctx, clientOptions)
		if err != nil {
			initErr = errors.NewServerError(errors.ErrorMessage{
				Code:        errors.MONGO_CLIENT_INIT.Code,
				Message:     errors.MONGO_CLIENT_INIT.Message,
				Description: "Failed to connect to MongoDB.",
			}, err)
			return
		}

		// Ping to ensure connection is live
		if err := client.Ping(ctx, nil); err != nil {
			initErr = errors.NewServerError(errors.ErrorMessage{
				Code:        errors.MONGO_CLIENT_INIT.Code,
				Message:     errors.MONGO_CLIENT_INIT.Message,
				Description: "Failed to ping MongoDB.",
			}, err)
			return
		}

		log.GetLogger().Info("Connected to MongoDB", log.String("database", dbName))
		mongoInstance = &MongoDB{
			Client:   client,
			Database: client.Database(dbName),
		}
	})

	return mongoInstance, initErr
}

// GetInstance returns the MongoDB instance established by Connect.
func GetInstance() *MongoDB {
	return mongoInstance
}

// OverrideInstance replaces the global instance, used by tests.
func OverrideInstance(db *MongoDB) {
	mongoInstance = db
}
