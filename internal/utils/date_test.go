package util

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	var payload struct {
		Due *Date `json:"due"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"due":"2026-10-17"}`), &payload))
	require.NotNil(t, payload.Due)
	assert.Equal(t, NewDate(2026, time.October, 17), *payload.Due)

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"due":"2026-10-17"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"due":"17/10/2026"}`), &payload))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, "2026-03-01", d.String())

	require.NoError(t, d.Scan("2025-12-31"))
	assert.Equal(t, NewDate(2025, time.December, 31), d)

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
}

func TestDateOfUsesLocation(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)
	instant := time.Date(2026, 1, 2, 1, 30, 0, 0, time.UTC)

	assert.Equal(t, NewDate(2026, time.January, 1), DateOf(instant, saoPaulo))
	assert.Equal(t, NewDate(2026, time.January, 2), DateOf(instant, time.UTC))
}

func TestBetween(t *testing.T) {
	today := NewDate(2026, time.October, 17)
	assert.True(t, today.Between(today, today.AddDays(7)))
	assert.True(t, today.AddDays(7).Between(today, today.AddDays(7)))
	assert.False(t, today.AddDays(8).Between(today, today.AddDays(7)))
	assert.False(t, today.AddDays(-1).Between(today, today.AddDays(7)))
}
