package capture

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/stepreport/internal/testutil"
)

func TestDecode_FullDocument(t *testing.T) {
	data := []byte(`{
		"app": "Panera", "bundle": "com.panerabread", "app-version": "4.71",
		"tasks": [{
			"id": "t1",
			"phrases": "Order a bagel",
			"prereq-info": {"zebra": "first", "apple": "second"},
			"steps": [
				{"id": "s1",
				 "action": {
					"phrases": ["Tap Menu"],
					"action": {"type": "tap", "x": 0.25, "y": 0.75},
					"target": {"x": 5, "y": 6, "width": 70, "height": 80}},
				 "image": {"id": "img-1"}},
				{"id": "s2",
				 "action": {
					"phrases": ["Swipe up"],
					"action": {"type": "swipe", "startX": 0.5, "startY": 0.8, "endX": 0.5, "endY": 0.2}},
				 "image": {"id": "img-2"}}
			]
		}]
	}`)

	c, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "Panera", c.AppName)
	assert.Equal(t, "com.panerabread", c.BundleID)
	assert.Equal(t, "4.71", c.AppVersion)
	require.Len(t, c.Tasks, 1)

	task := c.Tasks[0]
	assert.Equal(t, "t1", task.ID)
	assert.Equal(t, "Order a bagel", task.Phrases)
	// Document order preserved, not sorted.
	require.Len(t, task.Prereqs, 2)
	assert.Equal(t, Prereq{Key: "zebra", Value: "first"}, task.Prereqs[0])
	assert.Equal(t, Prereq{Key: "apple", Value: "second"}, task.Prereqs[1])

	require.Len(t, task.Steps, 2)
	tap := task.Steps[0]
	assert.Equal(t, "img-1", tap.ImageID)
	require.NotNil(t, tap.Action)
	assert.Equal(t, ActionTap, tap.Action.Type)
	assert.InDelta(t, 0.25, tap.Action.X, 1e-12)
	assert.InDelta(t, 0.75, tap.Action.Y, 1e-12)
	require.NotNil(t, tap.Action.Target)
	assert.InDelta(t, 70.0, tap.Action.Target.Width, 1e-12)

	swipe := task.Steps[1].Action
	require.NotNil(t, swipe)
	assert.Equal(t, ActionSwipe, swipe.Type)
	assert.InDelta(t, 0.8, swipe.StartY, 1e-12)
	assert.InDelta(t, 0.2, swipe.EndY, 1e-12)
}

func TestDecode_MissingTopLevelFieldsDefault(t *testing.T) {
	c, err := Decode([]byte(`{"tasks": []}`))
	require.NoError(t, err)
	assert.Equal(t, DefaultAppName, c.AppName)
	assert.Equal(t, DefaultBundleID, c.BundleID)
	assert.Equal(t, DefaultAppVersion, c.AppVersion)
	assert.Empty(t, c.Tasks)
}

func TestDecode_PhrasesArray(t *testing.T) {
	c, err := Decode([]byte(`{"tasks": [{"id": "t1", "phrases": ["Log in", "Sign in"], "steps": []}]}`))
	require.NoError(t, err)
	assert.Equal(t, "Log in, Sign in", c.Tasks[0].Phrases)
}

func TestDecode_PhrasesMissing(t *testing.T) {
	c, err := Decode([]byte(`{"tasks": [{"id": "t1", "steps": []}]}`))
	require.NoError(t, err)
	assert.Equal(t, DefaultPhrase, c.Tasks[0].Phrases)
}

func TestDecode_TextEntryVariants(t *testing.T) {
	data := []byte(`{"tasks": [{"id": "t1", "steps": [
		{"id": "s1", "action": {"phrases": ["Enter user"], "action": {"type": "textEntry", "key": "username"}}},
		{"id": "s2", "action": {"phrases": ["Enter city"], "action": {"type": "textEntry", "text": "Berlin"}}},
		{"id": "s3", "action": {"phrases": ["Enter nothing"], "action": {"type": "textEntry"}}}
	]}]}`)

	c, err := Decode(data)
	require.NoError(t, err)
	steps := c.Tasks[0].Steps

	withKey := steps[0].Action
	assert.Equal(t, ActionTextEntry, withKey.Type)
	assert.True(t, withKey.HasKey)
	assert.Equal(t, "username", withKey.Key)

	withText := steps[1].Action
	assert.False(t, withText.HasKey)
	assert.Equal(t, "Berlin", withText.Text)

	empty := steps[2].Action
	assert.Equal(t, DefaultText, empty.Text)
}

func TestDecode_SuccessDefaults(t *testing.T) {
	data := []byte(`{"tasks": [{"id": "t1", "steps": [
		{"id": "s1", "action": {"action": {"type": "success"}}}
	]}]}`)

	c, err := Decode(data)
	require.NoError(t, err)
	a := c.Tasks[0].Steps[0].Action
	assert.Equal(t, ActionSuccess, a.Type)
	assert.Equal(t, DefaultDescription, a.SuccessDescription)
	assert.False(t, a.IsText)
	assert.Equal(t, DefaultPhrase, a.Phrase)
}

func TestDecode_UnknownActionType(t *testing.T) {
	data := []byte(`{"tasks": [{"id": "t1", "steps": [
		{"id": "s1", "action": {"phrases": ["Wave"], "action": {"type": "gesture"}}},
		{"id": "s2", "action": {"phrases": ["Wait"]}}
	]}]}`)

	c, err := Decode(data)
	require.NoError(t, err)
	steps := c.Tasks[0].Steps

	assert.Equal(t, ActionUnknown, steps[0].Action.Type)
	assert.Equal(t, "gesture", steps[0].Action.RawType)

	assert.Equal(t, ActionUnknown, steps[1].Action.Type)
	assert.Equal(t, DefaultTypeLabel, steps[1].Action.RawType)
}

func TestDecode_MissingIDs(t *testing.T) {
	_, err := Decode([]byte(`{"tasks": [{"phrases": "x", "steps": []}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing id")

	_, err = Decode([]byte(`{"tasks": [{"id": "t1", "steps": [{"action": {}}]}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 0")
}

func TestDecode_InvalidJSON(t *testing.T) {
	_, err := Decode([]byte(`{not json`))
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "capture.json")
	testutil.WriteFile(t, path, testutil.SampleCaptureJSON("img-1"))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Demo App", c.AppName)
	require.Len(t, c.Tasks, 1)
	assert.Len(t, c.Tasks[0].Steps, 2)

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}
