package ice

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingModule struct {
	name  string
	order *[]string
}

func (m *recordingModule) Install(c *Container) {
	*m.order = append(*m.order, m.name)
}

func TestInstallModule(t *testing.T) {
	c := NewContainer()
	err := c.InstallModule(ModuleFunc(func(c *Container) {
		c.Put(NewDB)
		Bind[*memStorage](c)
		BindInstance[Auther](c, &yesAuther{})
	}))
	require.NoError(t, err)
	db, err := Resolve[*DB](c)
	require.NoError(t, err)
	assert.NotNil(t, db.s)

	assert.NoError(t, c.InstallModule(nil))
}

func TestInstallModuleRecoversPanics(t *testing.T) {
	c := NewContainer()
	err := c.InstallModule(ModuleFunc(func(c *Container) {
		c.Put("not a func")
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be a func")

	err = c.InstallModule(ModuleFunc(func(c *Container) {
		MustResolve[Storage](c)
	}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnresolvableType))
}

func TestInstallAllOrdersByPriority(t *testing.T) {
	c := NewContainer()
	var order []string
	mod := func(name string) Module { return &recordingModule{name: name, order: &order} }

	err := InstallAll(c,
		ModuleEntry{Name: "late", Enabled: true, Priority: 10, Module: mod("late")},
		ModuleEntry{Name: "off", Enabled: false, Priority: 0, Module: mod("off")},
		ModuleEntry{Name: "early", Enabled: true, Priority: -1, Module: mod("early")},
		ModuleEntry{Name: "tie1", Enabled: true, Priority: 5, Module: mod("tie1")},
		ModuleEntry{Name: "tie2", Enabled: true, Priority: 5, Module: mod("tie2")},
		ModuleEntry{Name: "nil", Enabled: true, Priority: 1},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"early", "tie1", "tie2", "late"}, order)
}

func TestInstallAllStopsAtFirstFailure(t *testing.T) {
	c := NewContainer()
	var order []string
	err := InstallAll(c,
		ModuleEntry{Name: "bad", Enabled: true, Priority: 1, Module: ModuleFunc(func(c *Container) { panic("broken") })},
		ModuleEntry{Name: "good", Enabled: true, Priority: 2, Module: &recordingModule{name: "good", order: &order}},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `module "bad"`)
	assert.Contains(t, err.Error(), "broken")
	assert.Empty(t, order)
}
