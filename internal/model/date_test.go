package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_AcceptedForms(t *testing.T) {
	cases := map[string]string{
		"1965-07-31":                "1965-07-31",
		"2007-07-21T00:00:00Z":      "2007-07-21",
		"2007-07-21T10:30:00.123Z":  "2007-07-21",
		"2007-07-21T23:30:00-02:00": "2007-07-22",
		"2007-07-21T10:30":          "2007-07-21",
		"2007-07":                   "2007-07-01",
		"2007":                      "2007-01-01",
	}

	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			d, err := ParseDate(in)
			require.NoError(t, err)
			assert.Equal(t, want, d.String())
			assert.Equal(t, time.UTC, d.Location())
		})
	}
}

func TestParseDate_Rejects(t *testing.T) {
	for _, in := range []string{"", "not-a-date", "31/07/1965", "1965-13-01", "July 31, 1965"} {
		_, err := ParseDate(in)
		assert.Error(t, err, in)
	}
}

func TestDate_JSON(t *testing.T) {
	var payload struct {
		Birthdate Date  `json:"birthdate"`
		Optional  *Date `json:"optional"`
	}

	err := json.Unmarshal([]byte(`{"birthdate":"1965-07-31T00:00:00.000Z","optional":null}`), &payload)
	require.NoError(t, err)
	assert.Nil(t, payload.Optional)

	out, err := json.Marshal(payload.Birthdate)
	require.NoError(t, err)
	assert.JSONEq(t, `"1965-07-31"`, string(out))

	out, err = json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestDate_Scan(t *testing.T) {
	var d Date

	require.NoError(t, d.Scan(time.Date(2007, 7, 21, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2007-07-21", d.String())

	require.NoError(t, d.Scan("2007-07-21 00:00:00+00:00"))
	assert.Equal(t, "2007-07-21", d.String())

	require.NoError(t, d.Scan([]byte("1965-07-31")))
	assert.Equal(t, "1965-07-31", d.String())

	assert.Error(t, d.Scan(42))
}
