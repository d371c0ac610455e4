package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/fxamacker/cbor/v2"
	"github.com/retroenv/ff6events/internal/action"
	"github.com/retroenv/ff6events/internal/field"
	"github.com/retroenv/ff6events/internal/location"
	"github.com/retroenv/ff6events/internal/scanner"
	"github.com/retroenv/ff6events/internal/worldchar"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
	"go.yaml.in/yaml/v3"
)

func testEntries() []scanner.Entry {
	return []scanner.Entry{
		{
			Offset:  0x0a0010,
			Start:   0x0a0010,
			End:     0x0a0018,
			Dialect: scanner.Field,
			Field: &field.Script{Events: []field.Event{
				field.Dialog{Msg: 0x0b85, Wait: true},
				field.ActionQueue{QueueID: 0x31, Len: 1, Actions: []action.Action{action.CenterOnScreen}},
				field.DialogWait{},
			}},
		},
		{
			Offset:  0x0a0020,
			Start:   0x0a0020,
			End:     0x0a0023,
			Dialect: scanner.WorldChar,
			WorldChar: &worldchar.Script{Events: []worldchar.Event{
				worldchar.EntitySpeed{Speed: worldchar.Fast},
				worldchar.FadeScreen{},
			}},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name     string
		expected Format
		wantErr  bool
	}{
		{name: "yaml", expected: YAML},
		{name: "TOML", expected: TOML},
		{name: "cbor", expected: CBOR},
		{name: "ron", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ParseFormat(tt.name)
			if tt.wantErr {
				assert.ErrorContains(t, err, "unsupported export format 'ron'")
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, f)
		})
	}
}

func TestNew_UnsupportedFormat(t *testing.T) {
	_, err := New(log.NewTestLogger(t), t.TempDir(), Format("xml"))
	assert.ErrorContains(t, err, "unsupported export format")
}

func TestNewScriptDocument(t *testing.T) {
	doc := NewScriptDocument(testEntries()[0])

	assert.Equal(t, "field", doc.Dialect)
	assert.Equal(t, 0x0a0010, doc.Start)
	assert.Equal(t, 0x0a0018, doc.End)
	assert.Len(t, doc.Events, 3)
	assert.Equal(t, "dialog", doc.Events[0].Op)
	assert.Equal(t, any(field.Dialog{Msg: 0x0b85, Wait: true}), doc.Events[0].Args)
	assert.Equal(t, "action_queue", doc.Events[1].Op)
	assert.Equal(t, "dialog_wait", doc.Events[2].Op)
	assert.True(t, doc.Events[2].Args == nil)
}

func TestScripts_YAML(t *testing.T) {
	dir := t.TempDir()
	e, err := New(log.NewTestLogger(t), dir, YAML)
	assert.NoError(t, err)
	assert.NoError(t, e.Scripts(ScriptsDir, testEntries()))

	data, err := os.ReadFile(filepath.Join(dir, ScriptsDir, "0a0010.yaml"))
	assert.NoError(t, err)

	var doc ScriptDocument
	assert.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, "field", doc.Dialect)
	assert.Equal(t, 0x0a0018, doc.End)
	assert.Len(t, doc.Events, 3)
	assert.Contains(t, string(data), "msg: 2949")
	assert.Contains(t, string(data), "- center_on_screen")

	data, err = os.ReadFile(filepath.Join(dir, ScriptsDir, "0a0020.yaml"))
	assert.NoError(t, err)
	assert.Contains(t, string(data), "dialect: world_char")
	assert.Contains(t, string(data), "speed: fast")
	assert.Contains(t, string(data), "op: fade_screen")
}

func TestScripts_TOML(t *testing.T) {
	dir := t.TempDir()
	e, err := New(log.NewTestLogger(t), dir, TOML)
	assert.NoError(t, err)
	assert.NoError(t, e.Scripts("regions/intro", testEntries()))

	var doc ScriptDocument
	_, err = toml.DecodeFile(filepath.Join(dir, "regions", "intro", "0a0020.toml"), &doc)
	assert.NoError(t, err)
	assert.Equal(t, "world_char", doc.Dialect)
	assert.Equal(t, 0x0a0020, doc.Start)
	assert.Len(t, doc.Events, 2)
	assert.Equal(t, "entity_speed", doc.Events[0].Op)
	assert.Equal(t, any(map[string]any{"speed": "fast"}), doc.Events[0].Args)
	assert.Equal(t, "fade_screen", doc.Events[1].Op)
}

func TestScripts_CBOR(t *testing.T) {
	dir := t.TempDir()
	e, err := New(log.NewTestLogger(t), dir, CBOR)
	assert.NoError(t, err)
	assert.NoError(t, e.Scripts(ScriptsDir, testEntries()[:1]))

	data, err := os.ReadFile(filepath.Join(dir, ScriptsDir, "0a0010.cbor"))
	assert.NoError(t, err)

	var doc ScriptDocument
	assert.NoError(t, cbor.Unmarshal(data, &doc))
	assert.Equal(t, "field", doc.Dialect)
	assert.Equal(t, 0x0a0010, doc.Start)
	assert.Len(t, doc.Events, 3)
	assert.Equal(t, "dialog_wait", doc.Events[2].Op)
}

func TestLocations(t *testing.T) {
	locations := []location.Location{
		{Index: 0},
		{
			Index:    0x1a,
			NPCs:     []location.NPC{{EventAddr: 0x12345, X: 3, Y: 4}},
			Triggers: []location.Trigger{{X: 1, Y: 2, EventAddr: 0x2000}},
			Properties: location.Properties{
				MapWidth:  31,
				Bg1Height: location.Bg512,
			},
		},
	}

	dir := t.TempDir()
	e, err := New(log.NewTestLogger(t), dir, TOML)
	assert.NoError(t, err)
	assert.NoError(t, e.Locations(locations))

	_, err = os.Stat(filepath.Join(dir, LocationsDir, "000.toml"))
	assert.NoError(t, err)

	var loc location.Location
	_, err = toml.DecodeFile(filepath.Join(dir, LocationsDir, "01a.toml"), &loc)
	assert.NoError(t, err)
	assert.Equal(t, locations[1], loc)
}

func TestWrite_Error(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	assert.NoError(t, os.WriteFile(file, nil, 0o644))

	e, err := New(log.NewTestLogger(t), file, YAML)
	assert.NoError(t, err)
	err = e.Locations([]location.Location{{}})
	assert.ErrorContains(t, err, "exporting location 0x000: creating directory")
}
