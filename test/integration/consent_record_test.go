package integration

import (
	"testing"
	"time"

	model "github.com/ethyca/fides-consent-service/internal/consent/model"
	"github.com/ethyca/fides-consent-service/internal/consent/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsentRecordRoundTrip(t *testing.T) {
	consentStore := &store.ConsentStore{}
	now := time.Now().Unix()

	record := &model.ConsentCookie{
		Identity: model.CookieIdentity{FidesUserDeviceID: "it-device-1"},
		Consent:  map[string]bool{"data_sales": false},
		TcfConsent: model.TcfConsent{
			PurposeConsentPreferences: map[string]bool{"1": true},
			SystemConsentPreferences:  map[string]bool{"1111": true, "ctl_test_system": false},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	require.NoError(t, consentStore.InsertConsentRecord(record))

	loaded, err := consentStore.GetConsentRecord("it-device-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, record.Identity.FidesUserDeviceID, loaded.Identity.FidesUserDeviceID)
	assert.Equal(t, record.Consent, loaded.Consent)
	assert.Equal(t, record.TcfConsent.SystemConsentPreferences, loaded.TcfConsent.SystemConsentPreferences)
	assert.Equal(t, now, loaded.CreatedAt)
}

func TestConsentRecordUpdate(t *testing.T) {
	consentStore := &store.ConsentStore{}
	now := time.Now().Unix()

	record := &model.ConsentCookie{
		Identity:  model.CookieIdentity{FidesUserDeviceID: "it-device-2"},
		Consent:   map[string]bool{"analytics": true},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, consentStore.InsertConsentRecord(record))

	record.Consent["analytics"] = false
	record.UpdatedAt = now + 10
	require.NoError(t, consentStore.UpdateConsentRecord(record))

	loaded, err := consentStore.GetConsentRecord("it-device-2")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.False(t, loaded.Consent["analytics"])
	assert.Equal(t, now+10, loaded.UpdatedAt)
}

func TestConsentRecordMissingDevice(t *testing.T) {
	consentStore := &store.ConsentStore{}

	loaded, err := consentStore.GetConsentRecord("it-device-unknown")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}
