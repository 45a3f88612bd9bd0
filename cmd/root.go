// Package cmd wires the GTP session to a KataGo subprocess named on the
// command line.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kaorahi/DIY-on-kata/config"
	"github.com/kaorahi/DIY-on-kata/gtp"
	"github.com/kaorahi/DIY-on-kata/nnet"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "diy-on-kata [flags] -- katago analysis -model MODEL -config CFG",
	Short: "GTP engine backed by a KataGo-evaluated Monte-Carlo tree search",
	Long: `diy-on-kata speaks GTP on stdin/stdout and thinks with a naive
Monte-Carlo tree search whose leaf evaluations come from a KataGo analysis
engine run as a subprocess. Everything after -- is the KataGo command line; a
single (quoted) argument is run through the shell.`,
	Args:         cobra.MinimumNArgs(1),
	RunE:         run,
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "engine config file (YAML)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log evaluator traffic")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	client, err := nnet.NewClient(args)
	if err != nil {
		return err
	}
	defer client.Close()
	client.SetRules(cfg.Rules)
	client.SetKomi(cfg.Komi)
	client.SetBoardSize(cfg.BoardSize)

	budget := time.Duration(cfg.GenmoveSeconds * float64(time.Second))
	session := gtp.NewSession(os.Stdin, os.Stdout, client, gtp.WithGenmoveTime(budget))
	session.Run()
	return nil
}
