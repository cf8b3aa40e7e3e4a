package jsonconfig

import (
	"encoding/json"
	"path"
	"regexp"
	"sort"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/IgorRikhard/GameArchitecture/ice"
)

// Schema holds the different Implementations the client wants to configure,
// keyed by section name.
type Schema map[string]Implementations

// EmptySchema returns an empty Schema, needed if you don't allow configuration
func EmptySchema() Schema {
	return map[string]Implementations{}
}

// Implementations maps the names of implementations to the Implementation.
// As a special case, "" maps to a default implementation that is used when a
// section is absent from the config text, and so is used as-is.
type Implementations map[string]Implementation

// An Implementation is parsed from its section's JSON (json.Unmarshal), prints
// its configuration (json.Marshal) and installs its bindings (ice.Module).
type Implementation interface {
	ice.Module
}

// Section is one configured Implementation plus the settings deciding whether
// and when it is installed.
type Section struct {
	Enabled  bool
	Priority int
	Module   ice.Module
}

// Configuration is itself a Module that installs each enabled Section as a
// Module, lowest Priority first; sections of equal priority install in name order.
type Configuration map[string]Section

// Entries returns the sections as module entries, sorted by name.
func (c Configuration) Entries() []ice.ModuleEntry {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	entries := make([]ice.ModuleEntry, 0, len(names))
	for _, name := range names {
		s := c[name]
		entries = append(entries, ice.ModuleEntry{Name: name, Enabled: s.Enabled, Priority: s.Priority, Module: s.Module})
	}
	return entries
}

// Install installs the configuration. A failing section panics, which
// Container.InstallModule returns as an error.
func (c Configuration) Install(ctr *ice.Container) {
	if err := ice.InstallAll(ctr, c.Entries()...); err != nil {
		panic(err)
	}
}

// MarshalJSON prints each section as its Implementation's JSON together with
// its Enabled and Priority settings.
func (c Configuration) MarshalJSON() ([]byte, error) {
	out := make(map[string]map[string]json.RawMessage, len(c))
	for name, s := range c {
		fields := make(map[string]json.RawMessage)
		implJSON, err := json.Marshal(s.Module)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(implJSON, &fields); err != nil {
			return nil, errors.Wrapf(err, "section %v does not marshal to an object", name)
		}
		fields["Enabled"], _ = json.Marshal(s.Enabled)
		fields["Priority"], _ = json.Marshal(s.Priority)
		out[name] = fields
	}
	return json.Marshal(out)
}

var emptyJson = []byte("{}")

// Parse picks and fills an Implementation for every section of the schema.
// A section absent from text uses the "" Implementation.
func (schema Schema) Parse(text []byte) (Configuration, error) {
	var parsedConfig map[string]json.RawMessage
	if len(text) == 0 {
		text = emptyJson
	}
	if err := json.Unmarshal(text, &parsedConfig); err != nil {
		return nil, errors.Wrap(err, "Couldn't parse top-level config")
	}
	for name := range parsedConfig {
		if _, ok := schema[name]; !ok {
			return nil, errors.Errorf("Unknown config section %q", name)
		}
	}
	log.Debugf("config parsed to:%+v", parsedConfig)

	result := Configuration(make(map[string]Section))
	for sectionName, impls := range schema {
		sectionText := parsedConfig[sectionName]
		// Parse this section's JSON just enough to get the header
		h, err := parseHeader(sectionText)
		if err != nil {
			return nil, errors.Wrapf(err, "Error parsing type for section %v", sectionName)
		}
		impl, ok := impls[h.Type]
		if !ok {
			return nil, errors.Errorf("Error parsing section %v: %q is not a valid Implementation", sectionName, h.Type)
		}
		if len(sectionText) > 0 {
			// Now parse it fully, with the right Implementation
			if err := json.Unmarshal(sectionText, &impl); err != nil {
				return nil, errors.Wrapf(err, "Error parsing section %v", sectionName)
			}
		}
		result[sectionName] = Section{Enabled: h.enabled(), Priority: h.Priority, Module: impl}
	}
	return result, nil
}

type header struct {
	Type     string
	Enabled  *bool
	Priority int
}

// Sections are enabled unless they say otherwise.
func (h header) enabled() bool {
	return h.Enabled == nil || *h.Enabled
}

func parseHeader(data json.RawMessage) (header, error) {
	var h header
	if len(data) == 0 {
		return h, nil
	}
	err := json.Unmarshal(data, &h)
	return h, err
}

// GetConfigText finds the right text for a configFlag.
// If configFlag looks like a filename (of the form foo.bar where foo and bar
// are just alphanumeric), read it as an asset under config/.
// Otherwise, assume it's the literal json text.
func GetConfigText(configFlag string, asset func(string) ([]byte, error)) ([]byte, error) {
	if matched, _ := regexp.MatchString(`^[[:alnum:]_-]*\.[[:alnum:]]*$`, configFlag); matched {
		configFileName := path.Join("config", configFlag)
		log.Infof("reading config filename %v", configFileName)
		configText, err := asset(configFileName)
		if err != nil {
			return nil, errors.Wrapf(err, "Error Loading Config File %v", configFileName)
		}
		return configText, nil
	}
	log.Debugf("using config flag as JSON config: %v", configFlag)
	return []byte(configFlag), nil
}
