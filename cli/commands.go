package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/IgorRikhard/GameArchitecture/common/endpoints"
	loadererror "github.com/IgorRikhard/GameArchitecture/common/errors"
	"github.com/IgorRikhard/GameArchitecture/ice"
	"github.com/IgorRikhard/GameArchitecture/loading"
)

// Run
type runCmd struct {
	c *cliClient

	// Flags
	timeout time.Duration
}

func (r *runCmd) registerFlags(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&r.timeout, "timeout", 0, "how long to let loading run (0 for infinite)")
}

func (r *runCmd) run(cmd *cobra.Command, args []string) error {
	ctr, stop, err := r.c.install()
	if err != nil {
		return err
	}
	defer stop()

	svc, err := ice.Resolve[*loading.Service](ctr)
	if err != nil {
		return loadererror.NewError(err, loadererror.InstallFailureExitCode)
	}

	ctx, cancel := r.c.context()
	defer cancel()
	if r.timeout > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, r.timeout)
		defer cancelTimeout()
	}

	start := time.Now()
	if err := svc.StartLoading(ctx); err != nil {
		if ctx.Err() != nil {
			return loadererror.NewError(err, loadererror.LoadingCanceledExitCode)
		}
		return loadererror.NewError(err, loadererror.LoadingFailureExitCode)
	}
	fmt.Fprintf(r.c.out, "Loaded %d operations in %v\n", len(svc.Operations()), time.Since(start).Round(time.Millisecond))
	return nil
}

// Bindings
type bindingsCmd struct {
	c *cliClient

	// Flags
	asJSON  bool
	verbose bool
}

func (b *bindingsCmd) registerFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&b.asJSON, "json", false, "print bindings as JSON")
	cmd.Flags().BoolVar(&b.verbose, "verbose", false, "also dump the parsed module configuration")
}

func (b *bindingsCmd) run(cmd *cobra.Command, args []string) error {
	if b.verbose {
		cfg, err := b.c.parseConfig()
		if err != nil {
			return err
		}
		fmt.Fprint(b.c.out, spew.Sdump(cfg))
	}
	ctr, stop, err := b.c.install()
	if err != nil {
		return err
	}
	defer stop()

	bindings := endpoints.DescribeBindings(ctr)
	if b.asJSON {
		enc := json.NewEncoder(b.c.out)
		enc.SetIndent("", "  ")
		return enc.Encode(bindings)
	}

	w := tabwriter.NewWriter(b.c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "SEQ\tKIND\tKEY\tIMPLEMENTATION\n")
	for _, e := range bindings.Bindings {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", e.Sequence, e.Kind, e.Key, e.Implementation)
	}
	return w.Flush()
}

// Serve
type serveCmd struct {
	c *cliClient

	// Flags
	addr string
}

func (s *serveCmd) registerFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.addr, "admin_addr", s.c.settings.AdminAddr, "address to serve the admin endpoints on")
}

func (s *serveCmd) run(cmd *cobra.Command, args []string) error {
	text, err := s.c.configText()
	if err != nil {
		return loadererror.NewError(err, loadererror.ConfigFailureExitCode)
	}
	ctr, _, stop := s.c.container()
	defer stop()
	if err := ctr.InstallModule(endpoints.Module(s.addr)); err != nil {
		return loadererror.NewError(err, loadererror.InstallFailureExitCode)
	}

	ctx, cancel := s.c.context()
	defer cancel()
	if err := endpoints.RunServer(ctx, ctr, loading.Schema(), text); err != nil {
		return loadererror.NewError(err, loadererror.ServeFailureExitCode)
	}
	return nil
}
