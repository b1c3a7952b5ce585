package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/amGusforshort/MineCweeper/config"
	"github.com/amGusforshort/MineCweeper/session"
)

type playFlags struct {
	seed       int64
	noColor    bool
	difficulty string
}

func newRootCmd() *cobra.Command {
	var flags playFlags

	rootCmd := &cobra.Command{
		Use:   "minecweeper",
		Short: "Play Minesweeper in the terminal",
		Long: `Play Minesweeper in the terminal.

Commands during a game:
  r <row> <col>   reveal a cell
  f <row> <col>   flag or unflag a cell
  hint            suggest a move
  help            list commands
  quit            leave the game

Examples:
  minecweeper
  minecweeper --difficulty hard
  minecweeper --seed 42 --no-color`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, flags)
		},
	}

	addPlayFlags(rootCmd, &flags)

	rootCmd.AddCommand(newPlayCmd(), newSimCmd())
	return rootCmd
}

// newPlayCmd is the explicit form of the root command.
func newPlayCmd() *cobra.Command {
	var flags playFlags

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "Start a game (the default command)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, flags)
		},
	}
	addPlayFlags(playCmd, &flags)
	return playCmd
}

func addPlayFlags(cmd *cobra.Command, flags *playFlags) {
	cmd.Flags().Int64Var(&flags.seed, "seed", 0, "Seed for mine placement (0 = random, overrides MINECWEEPER_SEED)")
	cmd.Flags().BoolVar(&flags.noColor, "no-color", false, "Disable ANSI colours and screen clearing")
	cmd.Flags().StringVarP(&flags.difficulty, "difficulty", "d", "", "Start directly at easy, medium or hard")
}

// setup loads configuration and the logger shared by every command.
func setup() (config.Config, *logrus.Logger, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, nil, fmt.Errorf("loading configuration: %w", err)
	}
	log, closer, err := config.NewLogger(cfg)
	if err != nil {
		return config.Config{}, nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return cfg, log, func() { _ = closer.Close() }, nil
}

func runPlay(cmd *cobra.Command, flags playFlags) error {
	cfg, log, closeLog, err := setup()
	if err != nil {
		return err
	}
	defer closeLog()

	opts := session.Options{
		In:     cmd.InOrStdin(),
		Out:    cmd.OutOrStdout(),
		Logger: log,
		Seed:   cfg.Seed,
		ANSI:   !cfg.NoColor,
	}
	if cmd.Flags().Changed("seed") {
		opts.Seed = flags.seed
	}
	if cmd.Flags().Changed("no-color") {
		opts.ANSI = !flags.noColor
	}
	if flags.difficulty != "" {
		d, ok := session.LookupDifficulty(flags.difficulty)
		if !ok {
			return fmt.Errorf("unknown difficulty %q (use easy, medium or hard)", flags.difficulty)
		}
		opts.Difficulty = &d
	}

	log.WithFields(logrus.Fields{
		"seed": opts.Seed,
		"ansi": opts.ANSI,
	}).Debug("starting session")
	return session.New(opts).Run()
}
