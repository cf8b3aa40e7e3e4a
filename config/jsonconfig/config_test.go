package jsonconfig_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IgorRikhard/GameArchitecture/config/jsonconfig"
	"github.com/IgorRikhard/GameArchitecture/ice"
)

var installed []string

type fooDefaultConfig struct {
	Type string
}

func (c *fooDefaultConfig) Install(e *ice.Container) { installed = append(installed, "foo:default") }

type fooNoargConfig struct {
	Type string
}

func (c *fooNoargConfig) Install(e *ice.Container) { installed = append(installed, "foo:noarg") }

type barDefaultConfig struct {
	Type string
	Arg3 string
	Arg4 map[string]string
}

func (c *barDefaultConfig) Install(e *ice.Container) { installed = append(installed, "bar:default") }

type barTwoargConfig struct {
	Type string
	Arg1 int
	Arg2 []int
}

func (c *barTwoargConfig) Install(e *ice.Container) { installed = append(installed, "bar:twoarg") }

const (
	defaultConfig = `{
 "Bar": {
  "Arg3": "3",
  "Arg4": {
   "a": "b"
  },
  "Enabled": true,
  "Priority": 0,
  "Type": "default"
 },
 "Foo": {
  "Enabled": true,
  "Priority": 0,
  "Type": "default"
 }
}`
	config1 = `{
 "Bar": {
  "Arg1": 1,
  "Arg2": [
   1,
   2,
   3
  ],
  "Enabled": true,
  "Priority": 2,
  "Type": "twoarg"
 },
 "Foo": {
  "Enabled": false,
  "Priority": 0,
  "Type": "noarg"
 }
}`
	config2 = `{
 "Bar": {
  "Arg1": 1,
  "Arg2": [
   1,
   2,
   3,
   4
  ],
  "Enabled": true,
  "Priority": 0,
  "Type": "twoarg"
 },
 "Foo": {
  "Enabled": true,
  "Priority": 0,
  "Type": "default"
 }
}`
	config3 = `{
 "Bar": {
  "Type": "twoarg",
  "Arg1": 1,
  "Arg2": [1,2,3,4]
 }
}`
)

func schema() jsonconfig.Schema {
	return jsonconfig.Schema(map[string]jsonconfig.Implementations{
		"Foo": {
			"default": &fooDefaultConfig{},
			"noarg":   &fooNoargConfig{},
			"":        &fooDefaultConfig{Type: "default"},
		},
		"Bar": {
			"default": &barDefaultConfig{},
			"twoarg":  &barTwoargConfig{},
			"": &barDefaultConfig{
				Type: "default",
				Arg3: "3",
				Arg4: map[string]string{"a": "b"},
			},
		},
	})
}

func TestParse(t *testing.T) {
	tests := []struct {
		input  string
		output string
	}{
		{defaultConfig, defaultConfig},
		{"", defaultConfig},
		{config1, config1},
		{config2, config2},
		{config3, config2},
	}
	for _, test := range tests {
		m, err := schema().Parse([]byte(test.input))
		require.NoError(t, err, "input %v", test.input)
		bytes, err := json.MarshalIndent(&m, "", " ")
		require.NoError(t, err)
		assert.Equal(t, test.output, string(bytes))
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		`{`,
		`{"Foo": {"Type": "nope"}}`,
		`{"Baz": {}}`,
		`{"Bar": {"Type": "twoarg", "Arg1": "one"}}`,
	} {
		_, err := schema().Parse([]byte(input))
		assert.Error(t, err, input)
	}
}

func TestInstallOrder(t *testing.T) {
	installed = nil
	conf, err := schema().Parse([]byte(`{
 "Bar": {"Type": "twoarg", "Priority": -1},
 "Foo": {"Type": "noarg"}
}`))
	require.NoError(t, err)
	require.NoError(t, ice.NewContainer().InstallModule(conf))
	assert.Equal(t, []string{"bar:twoarg", "foo:noarg"}, installed)

	installed = nil
	conf, err = schema().Parse([]byte(config1))
	require.NoError(t, err)
	require.NoError(t, ice.NewContainer().InstallModule(conf))
	assert.Equal(t, []string{"bar:twoarg"}, installed, "disabled sections are skipped")

	entries := conf.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Bar", entries[0].Name)
	assert.Equal(t, "Foo", entries[1].Name)
}

func TestGetConfigText(t *testing.T) {
	asset := func(name string) ([]byte, error) {
		if name == "config/local.json" {
			return []byte(`{"Foo": {}}`), nil
		}
		return nil, errors.New("no such asset")
	}

	text, err := jsonconfig.GetConfigText("local.json", asset)
	require.NoError(t, err)
	assert.Equal(t, `{"Foo": {}}`, string(text))

	_, err = jsonconfig.GetConfigText("missing.json", asset)
	assert.Error(t, err)

	text, err = jsonconfig.GetConfigText(`{"Bar": {}}`, asset)
	require.NoError(t, err)
	assert.Equal(t, `{"Bar": {}}`, string(text))
}
