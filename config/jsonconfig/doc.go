/*
Jsonconfig implements configuration, reading json into ice Modules.

To use:

 1. Create the Schema. List your configurable sections. Each section
    can be backed by several named Implementations.
 2. Schema.Parse parses bytes and creates a Configuration.
    a) for each section, pick the Implementation named by "Type".
    b) json.Unmarshal the section into that Implementation.
    c) read "Enabled" (default true) and "Priority" (default 0).
 3. Configuration is an ice Module that installs the enabled Implementations,
    lowest Priority first.

Example:

1) Create the Schema

	schema := jsonconfig.Schema(map[string]jsonconfig.Implementations{
	 "Loading": {
	  "default": &loading.LoadingConfig{},
	  "": &loading.LoadingConfig{Type: "default"},
	 },
	 "Simulation": {
	  "simulated": &loading.SimulationConfig{},
	  "": &loading.SimulationConfig{Type: "simulated"},
	 },
	})

2) Parse

	conf, _ := schema.Parse([]byte(`{
	 "Simulation": {
	  "Type": "simulated",
	  "Priority": 10,
	  "Operations": [{"Description": "Warm up", "Duration": "1s"}]
	 }
	}`))

3) Install the Configuration

	container.InstallModule(conf)
*/
package jsonconfig
