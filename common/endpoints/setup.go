package endpoints

import (
	"context"

	"github.com/pkg/errors"

	"github.com/IgorRikhard/GameArchitecture/config/jsonconfig"
	"github.com/IgorRikhard/GameArchitecture/ice"
)

// Module lets the container it is installed in build an AdminServer for
// itself. The program binds the stats.StatsReceiver to serve.
func Module(addr string) ice.Module {
	return module{addr: Addr(addr)}
}

type module struct {
	addr Addr
}

func (m module) Install(c *ice.Container) {
	ice.BindInstance(c, c)
	ice.BindInstance(c, m.addr)
	c.Put(NewAdminServer)
}

// RunServer installs the configuration parsed from config, then serves the
// admin endpoints until ctx is done or the server fails.
func RunServer(ctx context.Context, ctr *ice.Container, schema jsonconfig.Schema, config []byte) error {
	mod, err := schema.Parse(config)
	if err != nil {
		return errors.Wrap(err, "Error configuring loader")
	}
	if err := ctr.InstallModule(mod); err != nil {
		return err
	}

	var server *AdminServer
	if err := ctr.Extract(&server); err != nil {
		return errors.Wrap(err, "Error injecting server")
	}
	return server.Serve(ctx)
}
