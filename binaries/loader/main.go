package main

import (
	"os"

	"github.com/IgorRikhard/GameArchitecture/cli"
	loadererror "github.com/IgorRikhard/GameArchitecture/common/errors"
	"github.com/IgorRikhard/GameArchitecture/common/log"
	"github.com/IgorRikhard/GameArchitecture/config/envconfig"
)

// Binary that builds a container from module configuration and loads it.
// Process settings come from the environment and .env (see envconfig).
func main() {
	settings, err := envconfig.Load()
	if err != nil {
		log.Log.Error("error reading settings ", err)
		os.Exit(loadererror.SettingsFailureExitCode)
	}
	if err := log.Configure(settings.LogLevel, os.Stderr); err != nil {
		log.Log.Error("error configuring log ", err)
		os.Exit(loadererror.SettingsFailureExitCode)
	}

	client := cli.NewCliClient(settings, log.Log, os.Stdout)
	if err := client.Cli(); err != nil {
		log.Log.Error("error running loader ", err)
		os.Exit(int(loadererror.ExitCodeOf(err)))
	}
}
