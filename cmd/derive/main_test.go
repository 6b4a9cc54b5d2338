package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/clima-metrics-etl/internal/domain"
)

const hourlyFixture = "../../data/mock/cordoba_horario_240115.json"

func TestRun_HourlyFixture(t *testing.T) {
	var stdout bytes.Buffer
	err := run([]string{"-in", hourlyFixture, "-now", "2024-01-15T15:20:00-03:00"}, &stdout)
	require.NoError(t, err)

	var out output
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))

	cur := out.Current
	assert.Equal(t, "Córdoba", cur.Provincia)
	require.NotNil(t, cur.TemperatureC)
	assert.InDelta(t, 30.0, *cur.TemperatureC, 1e-9)
	require.NotNil(t, cur.Derived.FeelsLikeC)
	assert.InDelta(t, 31.0, *cur.Derived.FeelsLikeC, 1e-9)
	require.NotNil(t, cur.Derived.UVEstimate)
	assert.InDelta(t, 9.6, *cur.Derived.UVEstimate, 1e-9)
	assert.Equal(t, "Muy alto", cur.Classifications.UV.Label)
	assert.Equal(t, "clear.svg", cur.Icon)
	assert.Equal(t, domain.GeoSourceTable, cur.GeoSource)
	assert.Equal(t, 2024, cur.ProcessedAt.Year())

	labels := make([]string, 0, len(out.Hourly))
	icons := make([]string, 0, len(out.Hourly))
	for _, s := range out.Hourly {
		labels = append(labels, s.Label)
		icons = append(icons, s.Icon)
	}
	assert.Equal(t, []string{domain.NowLabel, "4 PM", "5 PM", "6 PM", "7 PM", "8 PM"}, labels)
	assert.Equal(t, []string{"clear.svg", "clear.svg", "cloudy.svg", "cloudy.svg", "light_rain.svg", "light_rain.svg"}, icons)
}

func TestRun_SlotsFlag(t *testing.T) {
	var stdout bytes.Buffer
	err := run([]string{"-in", hourlyFixture, "-now", "2024-01-15T19:05:00-03:00", "-slots", "3"}, &stdout)
	require.NoError(t, err)

	var out output
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
	assert.Len(t, out.Hourly, 2)
	assert.Equal(t, "light_rain.svg", out.Current.Icon)
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	noTimes := filepath.Join(dir, "no_times.json")
	require.NoError(t, os.WriteFile(noTimes, []byte(`[{"provincia":"Salta","temperatura":20}]`), 0o600))
	notArray := filepath.Join(dir, "object.json")
	require.NoError(t, os.WriteFile(notArray, []byte(`{"provincia":"Salta"}`), 0o600))

	tests := []struct {
		name string
		args []string
	}{
		{"missing -in", nil},
		{"missing file", []string{"-in", filepath.Join(dir, "absent.json")}},
		{"not an array", []string{"-in", notArray}},
		{"no timestamps", []string{"-in", noTimes}},
		{"bad -now", []string{"-in", hourlyFixture, "-now", "yesterday"}},
		{"bad -tz", []string{"-in", hourlyFixture, "-tz", "Nowhere/Land"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout bytes.Buffer
			assert.Error(t, run(tt.args, &stdout))
		})
	}
}
