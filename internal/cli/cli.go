// Package cli implements the allot command: read one instance, print one
// integer.
//
// Exit status is 0 for every data outcome, including malformed input and
// infeasible instances (both print -1). Only unusable flags, configuration or
// an unreadable input file make the command fail.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katalvlaran/allot"
	"github.com/katalvlaran/allot/instance"
	"github.com/katalvlaran/allot/internal/config"
	"github.com/katalvlaran/allot/internal/logging"
	"github.com/katalvlaran/allot/lp"
	"github.com/katalvlaran/allot/metrics"
)

// NewCommand returns the root command wired to the given streams.
func NewCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var (
		v          = viper.New()
		configPath string
	)
	cmd := &cobra.Command{
		Use:   "allot",
		Short: "Optimal allocation of scarce units under export quotas and regional minimums",
		Long: `allot reads an instance (N M T, then N producer, M region and T requester
lines) and prints the maximum number of requesters that can be served, or -1
if the instance is infeasible or malformed.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v, configPath)
			if err != nil {
				return err
			}

			return run(cmd, cfg, stdin, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.Flags().StringVar(&configPath, "config", "", "YAML file with default settings")
	if err := config.BindFlags(cmd.Flags(), v); err != nil {
		panic(err)
	}

	return cmd
}

func run(cmd *cobra.Command, cfg config.Config, stdin io.Reader, stdout, stderr io.Writer) error {
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat, stderr)
	if err != nil {
		return err
	}
	ctx := logr.NewContext(cmd.Context(), log)

	relaxer, err := lp.New(cfg.Relaxation, lp.DefaultOptions())
	if err != nil {
		return err
	}

	r := stdin
	if cfg.Input != "" && cfg.Input != "-" {
		f, err := os.Open(cfg.Input)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	opts := allot.DefaultOptions()
	opts.RegionFlow = cfg.RegionFlow
	opts.Search.Workers = cfg.Workers
	opts.Search.TimeLimit = cfg.TimeLimit
	opts.Search.Relaxer = relaxer
	if cfg.Format == config.FormatYAML {
		opts.Decode = instance.DecodeYAML
	}

	var reg *prometheus.Registry
	if cfg.MetricsOut != "" {
		reg = prometheus.NewRegistry()
		c := metrics.New()
		reg.MustRegister(c)
		opts.Observer = c
	}

	res := allot.SolveReader(ctx, r, opts)
	if _, err = fmt.Fprintln(stdout, res.Value); err != nil {
		return err
	}
	log.Info("solved", "value", res.Value, "status", res.Status.String(),
		"nodes", res.Search.Nodes, "elapsed", res.Elapsed.String())
	if res.Err != nil {
		log.V(logging.DEBUG).Info("input not solved", "error", res.Err.Error())
	}

	if cfg.Assignment {
		for _, p := range res.Assignment {
			fmt.Fprintf(stderr, "requester %d <- producer %d\n", p.Requester, p.Producer)
		}
	}
	if reg != nil {
		if err = metrics.WriteFile(cfg.MetricsOut, reg); err != nil {
			return err
		}
	}

	return nil
}

// Execute runs the command against the process streams and returns the
// exit code.
func Execute() int {
	cmd := NewCommand(os.Stdin, os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "allot:", err)
		return 1
	}

	return 0
}
