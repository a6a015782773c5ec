package service

import (
	"encoding/json"
	"net/http"
	"testing"

	model "github.com/ethyca/fides-consent-service/internal/consent/model"
	expmodel "github.com/ethyca/fides-consent-service/internal/experience/model"
	errors2 "github.com/ethyca/fides-consent-service/internal/system/errors"
	"github.com/ethyca/fides-consent-service/internal/system/log"
	telemetrymodel "github.com/ethyca/fides-consent-service/internal/telemetry/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockConsentStore implements store.ConsentStoreInterface for testing
type MockConsentStore struct {
	mock.Mock
}

func (m *MockConsentStore) InsertConsentRecord(record *model.ConsentCookie) error {
	args := m.Called(record)
	return args.Error(0)
}

func (m *MockConsentStore) GetConsentRecord(deviceID string) (*model.ConsentCookie, error) {
	args := m.Called(deviceID)
	record, _ := args.Get(0).(*model.ConsentCookie)
	return record, args.Error(1)
}

func (m *MockConsentStore) UpdateConsentRecord(record *model.ConsentCookie) error {
	args := m.Called(record)
	return args.Error(0)
}

// MockTelemetryService implements telemetry service.TelemetryServiceInterface
type MockTelemetryService struct {
	mock.Mock
}

func (m *MockTelemetryService) RecordNoticesServed(request telemetrymodel.NoticesServedRequest) (*telemetrymodel.TelemetryEvent, error) {
	args := m.Called(request)
	event, _ := args.Get(0).(*telemetrymodel.TelemetryEvent)
	return event, args.Error(1)
}

func (m *MockTelemetryService) RecordPreferencesSaved(deviceID, servedNoticeHistoryID, method string, noticeKeys []string) error {
	args := m.Called(deviceID, servedNoticeHistoryID, method, noticeKeys)
	return args.Error(0)
}

func (m *MockTelemetryService) GetEventsBySession(servedNoticeHistoryID string) ([]telemetrymodel.TelemetryEvent, error) {
	args := m.Called(servedNoticeHistoryID)
	events, _ := args.Get(0).([]telemetrymodel.TelemetryEvent)
	return events, args.Error(1)
}

func TestGetOrCreateConsentRecordMintsDeviceID(t *testing.T) {
	_ = log.Init("debug")

	mockStore := new(MockConsentStore)
	mockTelemetry := new(MockTelemetryService)
	svc := ConsentService{store: mockStore, telemetry: mockTelemetry}

	mockStore.
		On("InsertConsentRecord", mock.MatchedBy(func(r *model.ConsentCookie) bool {
			_, err := uuid.Parse(r.Identity.FidesUserDeviceID)
			return err == nil && r.CreatedAt > 0
		})).
		Return(nil)

	record, err := svc.GetOrCreateConsentRecord("")

	assert.NoError(t, err)
	assert.NotEmpty(t, record.Identity.FidesUserDeviceID)
	mockStore.AssertExpectations(t)
}

func TestGetOrCreateConsentRecordReturnsExisting(t *testing.T) {
	_ = log.Init("debug")

	existing := &model.ConsentCookie{
		Identity: model.CookieIdentity{FidesUserDeviceID: "device-1"},
		Consent:  map[string]bool{"analytics": true},
	}
	mockStore := new(MockConsentStore)
	svc := ConsentService{store: mockStore, telemetry: new(MockTelemetryService)}

	mockStore.On("GetConsentRecord", "device-1").Return(existing, nil)

	record, err := svc.GetOrCreateConsentRecord("device-1")

	assert.NoError(t, err)
	assert.Equal(t, existing, record)
	mockStore.AssertNotCalled(t, "InsertConsentRecord", mock.Anything)
}

func TestGetConsentRecordNotFound(t *testing.T) {
	_ = log.Init("debug")

	mockStore := new(MockConsentStore)
	svc := ConsentService{store: mockStore, telemetry: new(MockTelemetryService)}

	mockStore.On("GetConsentRecord", "missing").Return(nil, nil)

	record, err := svc.GetConsentRecord("missing")

	assert.Nil(t, record)
	var clientErr *errors2.ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, http.StatusNotFound, clientErr.StatusCode)
}

func TestSavePrivacyPreferencesAppliesAndPersists(t *testing.T) {
	_ = log.Init("debug")

	existing := &model.ConsentCookie{
		Identity:   model.CookieIdentity{FidesUserDeviceID: "device-1"},
		Consent:    map[string]bool{"analytics": true},
		TcfConsent: model.TcfConsent{SystemConsentPreferences: map[string]bool{"ctl_test_system": true}},
	}
	mockStore := new(MockConsentStore)
	mockTelemetry := new(MockTelemetryService)
	svc := ConsentService{store: mockStore, telemetry: mockTelemetry}

	mockStore.On("GetConsentRecord", "device-1").Return(existing, nil)
	mockStore.
		On("UpdateConsentRecord", mock.MatchedBy(func(r *model.ConsentCookie) bool {
			return r.Consent["data_sales"] == false &&
				r.Consent["analytics"] == true &&
				r.TcfConsent.PurposeConsentPreferences["1"] == true &&
				r.TcfConsent.SystemConsentPreferences["ctl_test_system"] == true
		})).
		Return(nil)
	mockTelemetry.
		On("RecordPreferencesSaved", "device-1", "session-1", "save", []string{"data_sales"}).
		Return(nil)

	request := model.PrivacyPreferencesRequest{
		BrowserIdentity:       model.CookieIdentity{FidesUserDeviceID: "device-1"},
		Method:                "save",
		ServedNoticeHistoryID: "session-1",
		Preferences: []model.NoticePreference{
			{NoticeKey: "data_sales", Preference: expmodel.PreferenceOptOut},
		},
		PurposeConsentPreferences: []model.TcfEntryPreference{
			{ID: "1", Preference: expmodel.PreferenceOptIn},
		},
	}

	updated, err := svc.SavePrivacyPreferences(request)

	require.NoError(t, err)
	assert.False(t, updated.Consent["data_sales"])
	mockStore.AssertExpectations(t)
	mockTelemetry.AssertExpectations(t)
}

func TestSavePrivacyPreferencesDoesNotMutateLoadedRecord(t *testing.T) {
	_ = log.Init("debug")

	existing := &model.ConsentCookie{
		Identity: model.CookieIdentity{FidesUserDeviceID: "device-1"},
		Consent:  map[string]bool{"analytics": true},
	}
	mockStore := new(MockConsentStore)
	mockTelemetry := new(MockTelemetryService)
	svc := ConsentService{store: mockStore, telemetry: mockTelemetry}

	mockStore.On("GetConsentRecord", "device-1").Return(existing, nil)
	mockStore.On("UpdateConsentRecord", mock.Anything).Return(nil)
	mockTelemetry.On("RecordPreferencesSaved", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	request := model.PrivacyPreferencesRequest{
		BrowserIdentity: model.CookieIdentity{FidesUserDeviceID: "device-1"},
		Preferences: []model.NoticePreference{
			{NoticeKey: "analytics", Preference: expmodel.PreferenceOptOut},
		},
	}

	_, err := svc.SavePrivacyPreferences(request)

	require.NoError(t, err)
	assert.True(t, existing.Consent["analytics"])
}

func TestSavePrivacyPreferencesRejectsUnknownMethod(t *testing.T) {
	_ = log.Init("debug")

	svc := ConsentService{store: new(MockConsentStore), telemetry: new(MockTelemetryService)}

	_, err := svc.SavePrivacyPreferences(model.PrivacyPreferencesRequest{Method: "telepathy"})

	var clientErr *errors2.ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
}

func TestSavePrivacyPreferencesRejectsInvalidPreferenceValue(t *testing.T) {
	_ = log.Init("debug")

	svc := ConsentService{store: new(MockConsentStore), telemetry: new(MockTelemetryService)}

	_, err := svc.SavePrivacyPreferences(model.PrivacyPreferencesRequest{
		Preferences: []model.NoticePreference{
			{NoticeKey: "analytics", Preference: "acknowledged"},
		},
	})

	var clientErr *errors2.ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, errors2.PREFERENCE_VALIDATION.Code, clientErr.Code)
}

func TestSavePrivacyPreferencesNumericIDsStoreStringKeys(t *testing.T) {
	_ = log.Init("debug")

	existing := &model.ConsentCookie{
		Identity: model.CookieIdentity{FidesUserDeviceID: "device-1"},
	}
	mockStore := new(MockConsentStore)
	mockTelemetry := new(MockTelemetryService)
	svc := ConsentService{store: mockStore, telemetry: mockTelemetry}

	mockStore.On("GetConsentRecord", "device-1").Return(existing, nil)
	mockStore.
		On("UpdateConsentRecord", mock.MatchedBy(func(r *model.ConsentCookie) bool {
			return r.TcfConsent.SystemConsentPreferences["1111"] == true
		})).
		Return(nil)
	mockTelemetry.On("RecordPreferencesSaved", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	payload := `{
		"browser_identity": {"fides_user_device_id": "device-1"},
		"served_notice_history_id": "session-1",
		"system_consent_preferences": [{"id": 1111, "preference": "opt_in"}]
	}`
	var request model.PrivacyPreferencesRequest
	require.NoError(t, json.Unmarshal([]byte(payload), &request))

	_, err := svc.SavePrivacyPreferences(request)

	require.NoError(t, err)
	mockStore.AssertExpectations(t)
}
