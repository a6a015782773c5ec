package integration

import (
	"testing"

	model "github.com/ethyca/fides-consent-service/internal/experience/model"
	"github.com/ethyca/fides-consent-service/internal/experience/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testExperience(id, region string) *model.PrivacyExperience {
	return &model.PrivacyExperience{
		ID:        id,
		Region:    region,
		Component: "tcf_overlay",
		TcfSystemConsents: []model.TcfEntry{
			{ID: "1111", Name: "Numeric-keyed system"},
			{ID: "ctl_test_system", Name: "String-keyed system"},
		},
		PrivacyNotices: []model.PrivacyNotice{
			{NoticeKey: "data_sales", Name: "Data Sales and Sharing"},
		},
	}
}

func TestExperienceUpsertAndFetch(t *testing.T) {
	experienceStore := &store.ExperienceStore{}

	require.NoError(t, experienceStore.UpsertExperience(testExperience("it-exp-1", "it_us_ca")))

	byRegion, err := experienceStore.GetExperienceByRegion("it_us_ca")
	require.NoError(t, err)
	require.NotNil(t, byRegion)
	assert.Equal(t, "it-exp-1", byRegion.ID)
	assert.Len(t, byRegion.TcfSystemConsents, 2)
	assert.Equal(t, "1111", byRegion.TcfSystemConsents[0].ID.String())

	byID, err := experienceStore.GetExperienceByID("it-exp-1")
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "it_us_ca", byID.Region)
}

func TestExperienceUpsertReplaces(t *testing.T) {
	experienceStore := &store.ExperienceStore{}

	require.NoError(t, experienceStore.UpsertExperience(testExperience("it-exp-2", "it_eu_fr")))

	updated := testExperience("it-exp-2", "it_eu_fr")
	updated.PrivacyNotices = append(updated.PrivacyNotices, model.PrivacyNotice{NoticeKey: "analytics"})
	require.NoError(t, experienceStore.UpsertExperience(updated))

	loaded, err := experienceStore.GetExperienceByRegion("it_eu_fr")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Len(t, loaded.PrivacyNotices, 2)
}

func TestExperienceDelete(t *testing.T) {
	experienceStore := &store.ExperienceStore{}

	require.NoError(t, experienceStore.UpsertExperience(testExperience("it-exp-3", "it_us_co")))
	require.NoError(t, experienceStore.DeleteExperience("it-exp-3"))

	loaded, err := experienceStore.GetExperienceByRegion("it_us_co")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestExperienceUnknownRegion(t *testing.T) {
	experienceStore := &store.ExperienceStore{}

	loaded, err := experienceStore.GetExperienceByRegion("it_nowhere")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}
