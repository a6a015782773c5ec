package service

import (
	"net/http"
	"testing"
	"time"

	consentmodel "github.com/ethyca/fides-consent-service/internal/consent/model"
	model "github.com/ethyca/fides-consent-service/internal/experience/model"
	"github.com/ethyca/fides-consent-service/internal/system/cache"
	errors2 "github.com/ethyca/fides-consent-service/internal/system/errors"
	"github.com/ethyca/fides-consent-service/internal/system/log"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockExperienceStore implements store.ExperienceStoreInterface for testing
type MockExperienceStore struct {
	mock.Mock
}

func (m *MockExperienceStore) UpsertExperience(experience *model.PrivacyExperience) error {
	args := m.Called(experience)
	return args.Error(0)
}

func (m *MockExperienceStore) GetExperienceByRegion(region string) (*model.PrivacyExperience, error) {
	args := m.Called(region)
	experience, _ := args.Get(0).(*model.PrivacyExperience)
	return experience, args.Error(1)
}

func (m *MockExperienceStore) GetExperienceByID(experienceID string) (*model.PrivacyExperience, error) {
	args := m.Called(experienceID)
	experience, _ := args.Get(0).(*model.PrivacyExperience)
	return experience, args.Error(1)
}

func (m *MockExperienceStore) ListExperiences() ([]model.PrivacyExperience, error) {
	args := m.Called()
	experiences, _ := args.Get(0).([]model.PrivacyExperience)
	return experiences, args.Error(1)
}

func (m *MockExperienceStore) DeleteExperience(experienceID string) error {
	args := m.Called(experienceID)
	return args.Error(0)
}

// MockConsentService implements consent service.ConsentServiceInterface
type MockConsentService struct {
	mock.Mock
}

func (m *MockConsentService) GetConsentRecord(deviceID string) (*consentmodel.ConsentCookie, error) {
	args := m.Called(deviceID)
	record, _ := args.Get(0).(*consentmodel.ConsentCookie)
	return record, args.Error(1)
}

func (m *MockConsentService) GetOrCreateConsentRecord(deviceID string) (*consentmodel.ConsentCookie, error) {
	args := m.Called(deviceID)
	record, _ := args.Get(0).(*consentmodel.ConsentCookie)
	return record, args.Error(1)
}

func (m *MockConsentService) SavePrivacyPreferences(request consentmodel.PrivacyPreferencesRequest) (*consentmodel.ConsentCookie, error) {
	args := m.Called(request)
	record, _ := args.Get(0).(*consentmodel.ConsentCookie)
	return record, args.Error(1)
}

func newTestService(store *MockExperienceStore, consent *MockConsentService) *ExperienceService {
	return &ExperienceService{
		store:           store,
		consent:         consent,
		validate:        validator.New(),
		experienceCache: cache.NewCache(time.Minute),
		sessionCache:    cache.NewCache(time.Minute),
	}
}

func testExperience() *model.PrivacyExperience {
	return &model.PrivacyExperience{
		ID:        "exp-1",
		Region:    "us_ca",
		Component: "tcf_overlay",
		TcfSystemConsents: []model.TcfEntry{
			{ID: "1111"},
			{ID: "ctl_test_system"},
		},
		PrivacyNotices: []model.PrivacyNotice{
			{
				NoticeKey:   "data_sales",
				Description: "__GPC_START__Your GPC signal applies.__GPC_END____NO_GPC_START__You may opt out below.__NO_GPC_END__",
			},
		},
	}
}

func testRecord() *consentmodel.ConsentCookie {
	return &consentmodel.ConsentCookie{
		Identity: consentmodel.CookieIdentity{FidesUserDeviceID: "device-1"},
		TcfConsent: consentmodel.TcfConsent{
			SystemConsentPreferences: map[string]bool{"1111": true, "ctl_test_system": false},
		},
	}
}

func TestGetExperienceMergesAndResolvesCopy(t *testing.T) {
	_ = log.Init("debug")

	mockStore := new(MockExperienceStore)
	mockConsent := new(MockConsentService)
	svc := newTestService(mockStore, mockConsent)

	mockStore.On("GetExperienceByRegion", "us_ca").Return(testExperience(), nil).Once()
	mockConsent.On("GetOrCreateConsentRecord", "device-1").Return(testRecord(), nil)

	response, err := svc.GetExperience("us_ca", "device-1", true)

	require.NoError(t, err)
	assert.Equal(t, "device-1", response.FidesUserDeviceID)
	assert.True(t, response.GPCApplied)
	assert.NotEmpty(t, response.ServedNoticeHistoryID)

	require.NotNil(t, response.Experience.TcfSystemConsents[0].CurrentPreference)
	assert.Equal(t, model.PreferenceOptIn, *response.Experience.TcfSystemConsents[0].CurrentPreference)
	require.NotNil(t, response.Experience.TcfSystemConsents[1].CurrentPreference)
	assert.Equal(t, model.PreferenceOptOut, *response.Experience.TcfSystemConsents[1].CurrentPreference)

	assert.Equal(t, "Your GPC signal applies.", response.Experience.PrivacyNotices[0].Description)
}

func TestGetExperienceWithoutGPCSignal(t *testing.T) {
	_ = log.Init("debug")

	mockStore := new(MockExperienceStore)
	mockConsent := new(MockConsentService)
	svc := newTestService(mockStore, mockConsent)

	mockStore.On("GetExperienceByRegion", "us_ca").Return(testExperience(), nil).Once()
	mockConsent.On("GetOrCreateConsentRecord", "device-1").Return(testRecord(), nil)

	response, err := svc.GetExperience("us_ca", "device-1", false)

	require.NoError(t, err)
	assert.False(t, response.GPCApplied)
	assert.Equal(t, "You may opt out below.", response.Experience.PrivacyNotices[0].Description)
}

func TestGetExperienceSessionIDStableForDevice(t *testing.T) {
	_ = log.Init("debug")

	mockStore := new(MockExperienceStore)
	mockConsent := new(MockConsentService)
	svc := newTestService(mockStore, mockConsent)

	mockStore.On("GetExperienceByRegion", "us_ca").Return(testExperience(), nil).Once()
	mockConsent.On("GetOrCreateConsentRecord", "device-1").Return(testRecord(), nil)

	first, err := svc.GetExperience("us_ca", "device-1", false)
	require.NoError(t, err)
	second, err := svc.GetExperience("us_ca", "device-1", false)
	require.NoError(t, err)

	assert.Equal(t, first.ServedNoticeHistoryID, second.ServedNoticeHistoryID)
}

func TestGetExperienceDoesNotMutateCachedCatalog(t *testing.T) {
	_ = log.Init("debug")

	mockStore := new(MockExperienceStore)
	mockConsent := new(MockConsentService)
	svc := newTestService(mockStore, mockConsent)

	catalog := testExperience()
	mockStore.On("GetExperienceByRegion", "us_ca").Return(catalog, nil).Once()
	mockConsent.On("GetOrCreateConsentRecord", "device-1").Return(testRecord(), nil)

	_, err := svc.GetExperience("us_ca", "device-1", true)
	require.NoError(t, err)

	// The stored catalog keeps its raw marker text and unset preferences.
	assert.Contains(t, catalog.PrivacyNotices[0].Description, "__GPC_START__")
	assert.Nil(t, catalog.TcfSystemConsents[0].CurrentPreference)
}

func TestGetExperienceRequiresRegion(t *testing.T) {
	_ = log.Init("debug")

	svc := newTestService(new(MockExperienceStore), new(MockConsentService))

	_, err := svc.GetExperience("", "device-1", false)

	var clientErr *errors2.ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
}

func TestGetExperienceUnknownRegion(t *testing.T) {
	_ = log.Init("debug")

	mockStore := new(MockExperienceStore)
	svc := newTestService(mockStore, new(MockConsentService))

	mockStore.On("GetExperienceByRegion", "atlantis").Return(nil, nil)

	_, err := svc.GetExperience("atlantis", "device-1", false)

	var clientErr *errors2.ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, http.StatusNotFound, clientErr.StatusCode)
}

func TestUpsertExperienceValidation(t *testing.T) {
	_ = log.Init("debug")

	svc := newTestService(new(MockExperienceStore), new(MockConsentService))

	err := svc.UpsertExperience(&model.PrivacyExperience{ID: "exp-1", Component: "overlay"})

	var clientErr *errors2.ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, errors2.EXPERIENCE_VALIDATION.Code, clientErr.Code)
}

func TestUpsertExperienceRejectsUnknownComponent(t *testing.T) {
	_ = log.Init("debug")

	svc := newTestService(new(MockExperienceStore), new(MockConsentService))

	err := svc.UpsertExperience(&model.PrivacyExperience{ID: "exp-1", Region: "us_ca", Component: "popup"})

	var clientErr *errors2.ClientError
	require.ErrorAs(t, err, &clientErr)
}

func TestUpsertExperienceInvalidatesRegionCache(t *testing.T) {
	_ = log.Init("debug")

	mockStore := new(MockExperienceStore)
	mockConsent := new(MockConsentService)
	svc := newTestService(mockStore, mockConsent)

	mockStore.On("GetExperienceByRegion", "us_ca").Return(testExperience(), nil).Twice()
	mockStore.On("UpsertExperience", mock.Anything).Return(nil)
	mockConsent.On("GetOrCreateConsentRecord", "device-1").Return(testRecord(), nil)

	_, err := svc.GetExperience("us_ca", "device-1", false)
	require.NoError(t, err)

	require.NoError(t, svc.UpsertExperience(testExperience()))

	_, err = svc.GetExperience("us_ca", "device-1", false)
	require.NoError(t, err)

	mockStore.AssertExpectations(t)
}

func TestDeleteExperienceUnknownID(t *testing.T) {
	_ = log.Init("debug")

	mockStore := new(MockExperienceStore)
	svc := newTestService(mockStore, new(MockConsentService))

	mockStore.On("GetExperienceByID", "missing").Return(nil, nil)

	err := svc.DeleteExperience("missing")

	var clientErr *errors2.ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, http.StatusNotFound, clientErr.StatusCode)
}
