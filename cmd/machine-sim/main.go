// SPDX-License-Identifier: GPL-2.0-or-later

// Command machine-sim replays a block-access trace against a
// simulated tiered-storage machine and reports the achieved
// throughput.
package main

import (
	"context"
	"os"

	"github.com/datawire/dlib/dgroup"
	"github.com/datawire/dlib/dlog"
	"github.com/datawire/ocibuild/pkg/cliutil"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/seojungmin/machine/lib/textui"
)

type logLevelFlag struct {
	logrus.Level
}

func (lvl *logLevelFlag) Type() string { return "loglevel" }
func (lvl *logLevelFlag) Set(str string) error {
	var err error
	lvl.Level, err = logrus.ParseLevel(str)
	return err
}

var _ pflag.Value = (*logLevelFlag)(nil)

var verbosity = logLevelFlag{Level: logrus.InfoLevel}

// withRuntime wraps a subcommand's RunE with the logger/dgroup/panic
// boundary every subcommand shares: a logrus-backed dlog logger, a
// signal-handling dgroup (the replay loop itself does not check the
// context, so a signal does not stop a replay between trace lines),
// and a single derror.PanicToError recovery point converting a fatal
// InvariantViolation panic back into a returned error.
func withRuntime(fn func(ctx context.Context, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		logger := logrus.New()
		logger.SetLevel(verbosity.Level)
		ctx := dlog.WithLogger(cmd.Context(), dlog.WrapLogrus(logger))

		grp := dgroup.NewGroup(ctx, dgroup.GroupConfig{
			EnableSignalHandling: true,
		})
		grp.Go("main", func(ctx context.Context) error {
			return runRecovered(ctx, cmd, args, fn)
		})
		return grp.Wait()
	}
}

func main() {
	argparser := &cobra.Command{
		Use:   "machine-sim {[flags]|SUBCOMMAND}",
		Short: "Simulate a tiered-storage machine replaying a block-access trace",

		Args: cliutil.WrapPositionalArgs(cliutil.OnlySubcommands),
		RunE: cliutil.RunSubcommands,

		SilenceErrors: true,
		SilenceUsage:  true,

		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	argparser.SetFlagErrorFunc(cliutil.FlagErrorFunc)
	argparser.SetHelpTemplate(cliutil.HelpTemplate)
	argparser.PersistentFlags().Var(&verbosity, "verbosity", "set the log verbosity")

	argparser.AddCommand(newRunCommand())
	argparser.AddCommand(newGenTraceCommand())

	if err := argparser.ExecuteContext(context.Background()); err != nil {
		textui.Fprintf(os.Stderr, "%v: error: %v\n", argparser.CommandPath(), err)
		os.Exit(1)
	}
}
