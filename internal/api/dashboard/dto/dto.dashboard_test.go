package dashboarddto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardIDUnmarshal(t *testing.T) {
	cases := map[string]DashboardID{
		`{"id":"7"}`:          "7",
		`{"id":7}`:            "7",
		`{"id":"64b7f0c2a1"}`: "64b7f0c2a1",
		`{"id":null}`:         "",
		`{}`:                  "",
	}
	for body, want := range cases {
		var in DashboardUpdateInput
		require.NoError(t, json.Unmarshal([]byte(body), &in), body)
		assert.Equal(t, want, in.BodyID, body)
		assert.Empty(t, in.ID, body)
	}

	var in DashboardUpdateInput
	assert.Error(t, json.Unmarshal([]byte(`{"id":true}`), &in))
}
