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

// Package session provides the served-notice session identity. One Manager
// exists per logical serving session; the identifier it issues correlates the
// telemetry events (notices served, preferences saved) emitted during that
// session so backend analytics can join them.
package session

import (
	"sync"

	"github.com/google/uuid"
)

// Manager issues a single stable session identifier. The identifier is
// generated lazily on first request and is immutable until Reset.
type Manager struct {
	mu                    sync.Mutex
	servedNoticeHistoryID string
}

// NewManager creates a Manager with no identifier generated yet.
func NewManager() *Manager {
	return &Manager{}
}

// GetServedNoticeHistoryID returns the session identifier, generating and
// caching a new v4 UUID if none exists yet. Every call between two Resets
// returns the exact same string.
func (m *Manager) GetServedNoticeHistoryID() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.servedNoticeHistoryID == "" {
		m.servedNoticeHistoryID = uuid.New().String()
	}
	return m.servedNoticeHistoryID
}

// HasSessionID reports whether an identifier has been generated, without
// creating one.
func (m *Manager) HasSessionID() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.servedNoticeHistoryID != ""
}

// Reset clears the cached identifier. The next GetServedNoticeHistoryID call
// generates a fresh UUID. Safe to call when no identifier exists.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.servedNoticeHistoryID = ""
}
