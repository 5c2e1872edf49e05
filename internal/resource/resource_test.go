package resource

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureMeta_CreatesOnce(t *testing.T) {
	r := New("Patient")
	assert.Nil(t, r.Meta)

	m := r.EnsureMeta()
	require.NotNil(t, m)
	assert.Same(t, m, r.EnsureMeta(), "second call should return the same block")
}

func TestLastUpdated_NoMeta(t *testing.T) {
	r := New("Patient")
	assert.Nil(t, r.LastUpdated())
	assert.Nil(t, r.Meta, "reading must not create metadata")
}

func TestSetLastUpdated(t *testing.T) {
	r := New("Patient")
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	r.SetLastUpdated(&ts)
	require.NotNil(t, r.Meta)
	require.NotNil(t, r.LastUpdated())
	assert.True(t, ts.Equal(*r.LastUpdated()))

	// Stored value is a copy
	ts = ts.Add(time.Hour)
	assert.False(t, ts.Equal(*r.LastUpdated()))

	r.SetLastUpdated(nil)
	assert.NotNil(t, r.Meta)
	assert.Nil(t, r.LastUpdated())
}

func TestVersionID(t *testing.T) {
	r := New("Patient")
	assert.Equal(t, "", r.VersionID())

	r.EnsureMeta().VersionID = "3"
	assert.Equal(t, "3", r.VersionID())
}

func TestClone_Deep(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	orig := &Resource{
		Base:     "https://example.org/fhir",
		TypeName: "Patient",
		ID:       "1",
		Meta:     &Meta{VersionID: "2", LastUpdated: &ts},
		Body: map[string]any{
			"name":   []any{map[string]any{"family": "Chalmers"}},
			"active": true,
		},
	}

	c := orig.Clone()
	require.NotNil(t, c)
	assert.Equal(t, orig, c)

	c.ID = "9"
	c.Base = ""
	c.Meta.VersionID = "7"
	*c.Meta.LastUpdated = ts.Add(time.Hour)
	c.Body["name"].([]any)[0].(map[string]any)["family"] = "Windsor"

	assert.Equal(t, "1", orig.ID)
	assert.Equal(t, "https://example.org/fhir", orig.Base)
	assert.Equal(t, "2", orig.Meta.VersionID)
	assert.True(t, ts.Equal(*orig.Meta.LastUpdated))
	assert.Equal(t, "Chalmers", orig.Body["name"].([]any)[0].(map[string]any)["family"])
}

func TestClone_Nil(t *testing.T) {
	var r *Resource
	assert.Nil(t, r.Clone())
}
