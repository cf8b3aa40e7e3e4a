// Package cli is the loader command line: it builds a container from the
// module configuration and runs the loading pipeline or the admin server on it.
package cli

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/IgorRikhard/GameArchitecture/common/endpoints"
	loadererror "github.com/IgorRikhard/GameArchitecture/common/errors"
	"github.com/IgorRikhard/GameArchitecture/common/stats"
	"github.com/IgorRikhard/GameArchitecture/config/envconfig"
	"github.com/IgorRikhard/GameArchitecture/config/jsonconfig"
	"github.com/IgorRikhard/GameArchitecture/ice"
	"github.com/IgorRikhard/GameArchitecture/loading"
)

type CliClient interface {
	Cli() error
}

type cliClient struct {
	settings *envconfig.Settings
	log      *logrus.Logger
	out      io.Writer
	rootCmd  *cobra.Command

	// context for a command; canceled on interrupt
	context func() (context.Context, context.CancelFunc)

	// Flags
	config string
}

func NewCliClient(settings *envconfig.Settings, logger *logrus.Logger, out io.Writer) CliClient {
	return newCliClient(settings, logger, out)
}

func newCliClient(settings *envconfig.Settings, logger *logrus.Logger, out io.Writer) *cliClient {
	c := &cliClient{
		settings: settings,
		log:      logger,
		out:      out,
		context: func() (context.Context, context.CancelFunc) {
			return signal.NotifyContext(context.Background(), os.Interrupt)
		},
	}

	c.rootCmd = &cobra.Command{
		Use:           "loader",
		Short:         "loader builds a container from module configuration and loads it",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	c.rootCmd.PersistentFlags().StringVar(&c.config, "config", settings.ModuleConfig,
		"module configuration: a file name under <config dir>/config, or literal JSON")

	c.addCmd(&runCmd{c: c}, &cobra.Command{
		Use:   "run",
		Short: "runs every configured loading operation",
	})
	c.addCmd(&bindingsCmd{c: c}, &cobra.Command{
		Use:   "bindings",
		Short: "prints the bindings the configuration produces",
	})
	c.addCmd(&serveCmd{c: c}, &cobra.Command{
		Use:   "serve",
		Short: "serves health, metrics and bindings over http",
	})
	return c
}

func (c *cliClient) Cli() error {
	return c.rootCmd.Execute()
}

func (c *cliClient) addCmd(cmd command, cobraCmd *cobra.Command) {
	cmd.registerFlags(cobraCmd)
	cobraCmd.RunE = cmd.run
	c.rootCmd.AddCommand(cobraCmd)
}

type command interface {
	registerFlags(cmd *cobra.Command)
	run(cmd *cobra.Command, args []string) error
}

// container returns a container with the process logger and stats bound.
// The returned func stops the stats latch.
func (c *cliClient) container() (*ice.Container, stats.StatsReceiver, func()) {
	stat, cancel := endpoints.MakeStatsReceiver(c.settings.StatsLatch)
	ctr := ice.NewContainer(ice.WithLogger(c.log), ice.WithStats(stat))
	ice.BindInstance[logrus.FieldLogger](ctr, c.log)
	ice.BindInstance[stats.StatsReceiver](ctr, stat)
	return ctr, stat, cancel
}

func (c *cliClient) configText() ([]byte, error) {
	return jsonconfig.GetConfigText(c.config, c.settings.Asset)
}

func (c *cliClient) parseConfig() (jsonconfig.Configuration, error) {
	text, err := c.configText()
	if err != nil {
		return nil, loadererror.NewError(err, loadererror.ConfigFailureExitCode)
	}
	cfg, err := loading.Schema().Parse(text)
	if err != nil {
		return nil, loadererror.NewError(errors.Wrap(err, "Error configuring loader"), loadererror.ConfigFailureExitCode)
	}
	return cfg, nil
}

// install builds a container and installs the configured modules in it.
func (c *cliClient) install() (*ice.Container, func(), error) {
	cfg, err := c.parseConfig()
	if err != nil {
		return nil, nil, err
	}
	ctr, _, stop := c.container()
	if err := ctr.InstallModule(cfg); err != nil {
		stop()
		return nil, nil, loadererror.NewError(err, loadererror.InstallFailureExitCode)
	}
	return ctr, stop, nil
}
