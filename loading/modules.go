package loading

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/IgorRikhard/GameArchitecture/common/stats"
	"github.com/IgorRikhard/GameArchitecture/config/jsonconfig"
	"github.com/IgorRikhard/GameArchitecture/ice"
)

// Schema returns the sections a loader configuration may contain.
func Schema() jsonconfig.Schema {
	return jsonconfig.Schema{
		"Loading": jsonconfig.Implementations{
			"default": &LoadingConfig{},
			"":        &LoadingConfig{Type: "default"},
		},
		"Simulation": jsonconfig.Implementations{
			"simulated": &SimulationConfig{},
			"":          &SimulationConfig{Type: "simulated"},
		},
	}
}

// LoadingConfig binds the loading pipeline: a progress reporter, the
// collection of operations, the Runner and the Service.
type LoadingConfig struct {
	Type        string
	ReportLevel string `json:",omitempty"`
}

func (c *LoadingConfig) Install(ctr *ice.Container) {
	declare(ctr)
	level := log.InfoLevel
	if c.ReportLevel != "" {
		l, err := log.ParseLevel(c.ReportLevel)
		if err != nil {
			panic(errors.Wrap(err, "ReportLevel"))
		}
		level = l
	}

	check(ice.BindCollection[Operation](ctr))
	must(ice.InstantiateAndBind[*LogReporter](ctr, ReporterSettings{Level: level}))
	must(ice.InstantiateAndBind[*Runner](ctr))
	must(ice.InstantiateAndBind[*Service](ctr))
}

// SimulatedStep configures one SimulatedOperation. Duration uses
// time.ParseDuration syntax. A step with Retries is wrapped in a RetryOperation.
type SimulatedStep struct {
	Description   string
	Duration      string
	Failures      int    `json:",omitempty"`
	Retries       uint64 `json:",omitempty"`
	RetryInterval string `json:",omitempty"`
}

func (s SimulatedStep) settings() (SimulatedSettings, RetryPolicy, error) {
	settings := SimulatedSettings{Description: s.Description, Failures: s.Failures}
	policy := RetryPolicy{MaxRetries: s.Retries}
	var err error
	if s.Duration != "" {
		if settings.Duration, err = time.ParseDuration(s.Duration); err != nil {
			return settings, policy, errors.Wrapf(err, "step %q", s.Description)
		}
	}
	if s.RetryInterval != "" {
		if policy.InitialInterval, err = time.ParseDuration(s.RetryInterval); err != nil {
			return settings, policy, errors.Wrapf(err, "step %q", s.Description)
		}
	}
	return settings, policy, nil
}

// SimulationConfig binds one SimulatedOperation per step, in order.
type SimulationConfig struct {
	Type       string
	Operations []SimulatedStep
}

func (c *SimulationConfig) Install(ctr *ice.Container) {
	declare(ctr)
	// Every bound step is appended to the collection as it is bound, even
	// though each one replaces the previous *SimulatedOperation binding.
	check(ice.BindCollection[Operation](ctr))
	for _, step := range c.Operations {
		settings, policy, err := step.settings()
		check(err)
		if policy.MaxRetries == 0 {
			must(ice.InstantiateAndBind[*SimulatedOperation](ctr, settings))
			continue
		}
		op := must(ice.Instantiate[*SimulatedOperation](ctr, settings))
		must(ice.InstantiateAndBind[*RetryOperation](ctr, op, policy))
	}
}

// declare puts the constructors of the loading types, and binds the logger
// and stats receiver they are constructed with unless the program already has.
func declare(ctr *ice.Container) {
	ctr.PutMany(NewLogReporter, NewRunner, NewService, NewSimulatedOperation, NewRetryOperation)
	if !ctr.IsRegistered(ice.TypeOf[log.FieldLogger]()) {
		ice.BindInstance[log.FieldLogger](ctr, log.StandardLogger())
	}
	if !ctr.IsRegistered(ice.TypeOf[stats.StatsReceiver]()) {
		ice.BindInstance[stats.StatsReceiver](ctr, stats.NilStatsReceiver())
	}
}

func must[T any](v T, err error) T {
	check(err)
	return v
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}
