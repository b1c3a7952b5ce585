package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/amGusforshort/MineCweeper/game"
	"github.com/amGusforshort/MineCweeper/session"
	"github.com/amGusforshort/MineCweeper/solver"
)

var simHeader = []string{"game_id", "seed", "width", "height", "mines", "result", "moves", "guesses", "flags", "revealed"}

type simOptions struct {
	games      int
	difficulty session.Difficulty
	seed       int64
}

type simSummary struct {
	games int
	won   int
}

func (s simSummary) winRate() float64 {
	if s.games == 0 {
		return 0
	}
	return float64(s.won) / float64(s.games) * 100
}

func newSimCmd() *cobra.Command {
	var (
		numGames   int
		difficulty string
		seed       int64
		outputFile string
	)

	simCmd := &cobra.Command{
		Use:   "sim",
		Short: "Let the solver play games and report how it did",
		Long: `Let the built-in solver play many games and report its win rate.

With --output every game is written as one CSV row.

Examples:
  minecweeper sim -n 500
  minecweeper sim -d hard -n 100 -o hard.csv
  minecweeper sim --seed 7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, closeLog, err := setup()
			if err != nil {
				return err
			}
			defer closeLog()

			d, ok := session.LookupDifficulty(difficulty)
			if !ok {
				return fmt.Errorf("unknown difficulty %q (use easy, medium or hard)", difficulty)
			}
			opts := simOptions{games: cfg.SimGames, difficulty: d, seed: cfg.Seed}
			if cmd.Flags().Changed("number") {
				opts.games = numGames
			}
			if cmd.Flags().Changed("seed") {
				opts.seed = seed
			}
			if opts.games < 1 {
				return fmt.Errorf("number of games must be positive, got %d", opts.games)
			}

			out := io.Discard
			if outputFile != "" {
				file, err := os.Create(outputFile)
				if err != nil {
					return fmt.Errorf("failed to create CSV file: %w", err)
				}
				defer file.Close()
				out = file
			}

			summary, err := simulate(out, opts, log)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Played %d %s games: %d won (%.1f%%)\n",
				summary.games, d.Name, summary.won, summary.winRate())
			if outputFile != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Saved to %s\n", outputFile)
			}
			return nil
		},
	}

	simCmd.Flags().IntVarP(&numGames, "number", "n", 1000, "Number of games to play (overrides MINECWEEPER_SIM_GAMES)")
	simCmd.Flags().StringVarP(&difficulty, "difficulty", "d", session.Easy.Name, "Difficulty: easy, medium or hard")
	simCmd.Flags().Int64Var(&seed, "seed", 0, "Seed for the whole run (0 = random)")
	simCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write one CSV row per game to this file")

	return simCmd
}

// simulate plays opts.games games with the solver and writes a CSV row for
// each one to w.
func simulate(w io.Writer, opts simOptions, log *logrus.Logger) (simSummary, error) {
	seed := opts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	writer := csv.NewWriter(w)
	if err := writer.Write(simHeader); err != nil {
		return simSummary{}, err
	}

	var summary simSummary
	d := opts.difficulty
	for i := 0; i < opts.games; i++ {
		gameSeed := rng.Int63()
		b, err := game.NewBoard(d.Width, d.Height, d.Mines, rand.NewSource(gameSeed))
		if err != nil {
			return summary, err
		}

		res, err := solver.New(b, rand.New(rand.NewSource(gameSeed))).Play()
		if err != nil {
			return summary, fmt.Errorf("game %d: %w", i, err)
		}

		summary.games++
		if res.Phase == game.Won {
			summary.won++
		}

		id := uuid.New().String()
		log.WithFields(logrus.Fields{
			"game_id": id,
			"result":  res.Phase.String(),
			"moves":   res.Moves,
			"guesses": res.Guesses,
		}).Debug("simulated game")

		row := []string{
			id,
			strconv.FormatInt(gameSeed, 10),
			strconv.Itoa(d.Width),
			strconv.Itoa(d.Height),
			strconv.Itoa(d.Mines),
			res.Phase.String(),
			strconv.Itoa(res.Moves),
			strconv.Itoa(res.Guesses),
			strconv.Itoa(res.Flags),
			strconv.Itoa(b.RevealedCount()),
		}
		if err := writer.Write(row); err != nil {
			return summary, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return summary, err
	}

	log.WithFields(logrus.Fields{
		"games":      summary.games,
		"won":        summary.won,
		"difficulty": d.Name,
	}).Info("simulation finished")
	return summary, nil
}
