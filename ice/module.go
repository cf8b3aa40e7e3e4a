package ice

import (
	"sort"

	"github.com/pkg/errors"
)

// Module can install many bindings at once.
// It could be just a func, but this lets Module code look a little nicer.
type Module interface {
	Install(c *Container)
}

// ModuleFunc adapts a function to a Module.
type ModuleFunc func(c *Container)

func (f ModuleFunc) Install(c *Container) { f(c) }

// InstallModule installs m. A panic during installation, including one from
// MustResolve, is returned as an error.
func (c *Container) InstallModule(m Module) (err error) {
	if m == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrapf(asError(r), "ice: installing %T", m)
		}
	}()
	m.Install(c)
	c.log.Debugf("Installed: %T", m)
	return nil
}

// ModuleEntry is a Module with the settings that decide whether and when it
// is installed.
type ModuleEntry struct {
	Name     string
	Enabled  bool
	Priority int
	Module   Module
}

// InstallAll installs the enabled entries, lowest Priority first. Entries
// with equal priority are installed in the order given.
func InstallAll(c *Container, entries ...ModuleEntry) error {
	enabled := make([]ModuleEntry, 0, len(entries))
	for _, e := range entries {
		if e.Enabled && e.Module != nil {
			enabled = append(enabled, e)
		}
	}
	sort.SliceStable(enabled, func(i, j int) bool {
		return enabled[i].Priority < enabled[j].Priority
	})
	for _, e := range enabled {
		if err := c.InstallModule(e.Module); err != nil {
			return errors.Wrapf(err, "module %q", e.Name)
		}
	}
	return nil
}
