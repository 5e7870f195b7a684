package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord(name string) CountryRecord {
	return CountryRecord{
		Name:             name,
		Overview:         "**" + name + "** overview",
		KeyAreas:         []string{"Comercio: uno", "Seguridad: dos"},
		ImpactCategories: []string{"Comercio", "Inversión", "Migración", "Seguridad"},
		ImpactValues:     []float64{1, 2, 3, 4},
	}
}

func TestNewRegistry_PreservesOrder(t *testing.T) {
	reg, err := NewRegistry(testRecord("Perú"), testRecord("Brasil"), testRecord("Argentina"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Perú", "Brasil", "Argentina"}, reg.Keys())
	assert.Equal(t, 3, reg.Len())
}

func TestNewRegistry_RejectsDuplicate(t *testing.T) {
	_, err := NewRegistry(testRecord("Chile"), testRecord("Chile"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRecord))
}

func TestNewRegistry_RejectsInvalidRecords(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CountryRecord)
	}{
		{"empty name", func(r *CountryRecord) { r.Name = "" }},
		{"misaligned vector", func(r *CountryRecord) { r.ImpactValues = r.ImpactValues[:3] }},
		{"three dimensions", func(r *CountryRecord) {
			r.ImpactCategories = r.ImpactCategories[:3]
			r.ImpactValues = r.ImpactValues[:3]
		}},
		{"five dimensions", func(r *CountryRecord) {
			r.ImpactCategories = append(r.ImpactCategories, "Energía")
			r.ImpactValues = append(r.ImpactValues, 5)
		}},
		{"value above scale", func(r *CountryRecord) { r.ImpactValues[0] = 10.1 }},
		{"negative value", func(r *CountryRecord) { r.ImpactValues[2] = -0.5 }},
		{"empty label", func(r *CountryRecord) { r.ImpactCategories[1] = "" }},
		{"duplicate label", func(r *CountryRecord) { r.ImpactCategories[3] = "Comercio" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := testRecord("México")
			tc.mutate(&rec)
			_, err := NewRegistry(rec)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidRecord)
		})
	}
}

func TestNewRegistry_AcceptsScaleBounds(t *testing.T) {
	rec := testRecord("México")
	rec.ImpactValues = []float64{0, 10, 0, 10}
	_, err := NewRegistry(rec)
	require.NoError(t, err)
}

func TestRegistry_GetNotFound(t *testing.T) {
	reg, err := NewRegistry(testRecord("México"))
	require.NoError(t, err)

	_, err = reg.Get("Atlantis")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, reg.Has("Atlantis"))
}

func TestRegistry_GetReturnsCopy(t *testing.T) {
	reg, err := NewRegistry(testRecord("México"))
	require.NoError(t, err)

	rec, err := reg.Get("México")
	require.NoError(t, err)
	rec.KeyAreas[0] = "mutated"
	rec.ImpactValues[0] = 99

	again, err := reg.Get("México")
	require.NoError(t, err)
	assert.Equal(t, "Comercio: uno", again.KeyAreas[0])
	assert.InDelta(t, 1.0, again.ImpactValues[0], 1e-9)
}

func TestRegistry_KeysDeterministic(t *testing.T) {
	reg, err := NewRegistry(testRecord("México"), testRecord("Brasil"))
	require.NoError(t, err)

	first := reg.Keys()
	first[0] = "mutated"
	for range 5 {
		assert.Equal(t, []string{"México", "Brasil"}, reg.Keys())
	}
}

func TestRegistry_KeepsDuplicateKeyAreas(t *testing.T) {
	rec := testRecord("México")
	rec.KeyAreas = []string{"Comercio", "Comercio"}
	reg, err := NewRegistry(rec)
	require.NoError(t, err)

	got, err := reg.Get("México")
	require.NoError(t, err)
	assert.Equal(t, []string{"Comercio", "Comercio"}, got.KeyAreas)
}
