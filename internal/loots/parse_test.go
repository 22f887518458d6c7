package loots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_GuestScenario(t *testing.T) {
	body := `{"data":{"ok":[{"id":"t1","type":"tip","attachments":{"message":"gg"},"from":{"account":{"name":"guest_Alice12345"}}}],"running":[]}}`

	batch, err := Parse([]byte(body))
	require.NoError(t, err)
	require.Len(t, batch.Completed, 1)
	assert.Nil(t, batch.Running)

	tip := batch.Completed[0]
	assert.Equal(t, "t1", tip.ID)
	assert.Equal(t, "Alice", tip.LootsName)
	assert.Equal(t, "gg", tip.Message)
	assert.False(t, tip.Credited)
}

func TestParse_DropsAutoTips(t *testing.T) {
	body := `{"data":{"ok":[
		{"_id":"a","type":"TIP_AUTO","attachments":{"message":"auto"},"from":{"account":{"name":"bot"}}},
		{"_id":"b","type":"tip","attachments":{"message":"hi"},"from":{"account":{"name":"Ferret Fan"}}}
	],"running":[]}}`

	batch, err := Parse([]byte(body))
	require.NoError(t, err)
	require.Len(t, batch.Completed, 1)
	assert.Equal(t, "b", batch.Completed[0].ID)
	assert.Equal(t, "FerretFan", batch.Completed[0].LootsName)
}

func TestParse_RunningTip(t *testing.T) {
	body := `{"data":{"ok":[],"running":[
		{"_id":"r1","attachments":{"message":"live"},"from":{"account":{"name":"viewer1"}}},
		{"_id":"r2","attachments":{"message":"ignored"},"from":{"account":{"name":"viewer2"}}}
	]}}`

	batch, err := Parse([]byte(body))
	require.NoError(t, err)
	require.NotNil(t, batch.Running)
	assert.Equal(t, "r1", batch.Running.ID)
	assert.Equal(t, "live", batch.Running.Message)
	assert.Equal(t, "viewer1", batch.Running.LootsName)
	assert.Empty(t, batch.Warnings)

	candidates := batch.Candidates()
	require.Len(t, candidates, 1)
	assert.Equal(t, "r1", candidates[0].ID)
}

func TestParse_MalformedRunningTipIsSkipped(t *testing.T) {
	body := `{"data":{"ok":[{"_id":"ok1","type":"tip","attachments":{"message":"x"},"from":{"account":{"name":"a"}}}],
		"running":[{"_id":"r1","attachments":"oops","from":{"account":{"name":7}}}]}}`

	batch, err := Parse([]byte(body))
	require.NoError(t, err)
	assert.Nil(t, batch.Running)
	require.Len(t, batch.Completed, 1)

	var paths []string
	for _, w := range batch.Warnings {
		var fe *FieldError
		require.ErrorAs(t, w, &fe)
		paths = append(paths, fe.Path)
	}
	assert.ElementsMatch(t, []string{"attachments", "from.account.name"}, paths)
}

func TestParse_RunningNotAnObject(t *testing.T) {
	batch, err := Parse([]byte(`{"data":{"ok":[],"running":["text"]}}`))
	require.NoError(t, err)
	assert.Nil(t, batch.Running)
	assert.Len(t, batch.Warnings, 1)
}

func TestParse_SkipsEntryWithoutID(t *testing.T) {
	batch, err := Parse([]byte(`{"data":{"ok":[{"type":"tip","attachments":{"message":"x"},"from":{"account":{"name":"a"}}}],"running":[]}}`))
	require.NoError(t, err)
	assert.Empty(t, batch.Completed)
	require.Len(t, batch.Warnings, 1)
	var fe *FieldError
	assert.ErrorAs(t, batch.Warnings[0], &fe)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty", body: ""},
		{name: "whitespace", body: "  \n"},
		{name: "null", body: "null"},
		{name: "malformed", body: `{"data":`},
		{name: "missing data", body: `{"status":"ok"}`},
		{name: "html", body: `<html><body>login</body></html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.body))
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}
