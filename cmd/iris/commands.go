package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"iris/internal/catalog"
	"iris/internal/config"
	"iris/internal/intent"
	"iris/internal/recommend"
	"iris/internal/session"
)

// buildEngine loads config and catalog and wires an engine for one-shot use.
func buildEngine(configPath string) (*recommend.Engine, *catalog.Catalog, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	cat := catalog.Builtin()
	if cfg.CatalogPath != "" {
		cat, err = catalog.LoadFile(cfg.CatalogPath)
		if err != nil {
			return nil, nil, err
		}
	}

	engine, err := recommend.NewEngine(recommend.Config{
		Catalog:         cat,
		SignalCacheSize: cfg.Engine.SignalCacheSize,
	})
	if err != nil {
		return nil, nil, err
	}
	return engine, cat, nil
}

func newRecommendCmd(configPath *string) *cobra.Command {
	var (
		priorIntent string
		turn        int
		debug       bool
	)

	cmd := &cobra.Command{
		Use:   "recommend [message]",
		Short: "Run one decision against a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, _, err := buildEngine(*configPath)
			if err != nil {
				return err
			}

			sess := session.NewContext()
			sess.CurrentTurn = turn
			if priorIntent != "" {
				prior, err := intent.Parse(priorIntent)
				if err != nil {
					return err
				}
				sess.PreviousIntents = []intent.Intent{prior}
			}

			res := engine.Recommend(context.Background(), args[0], sess)
			printResult(res, debug)
			return nil
		},
	}

	cmd.Flags().StringVar(&priorIntent, "prior-intent", "", "primary intent of the previous turn")
	cmd.Flags().IntVar(&turn, "turn", 0, "current turn index")
	cmd.Flags().BoolVar(&debug, "debug", false, "print signals and the full scored list")
	return cmd
}

func newCatalogCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the lens catalog",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all lenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cat, err := buildEngine(*configPath)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCOST\tSCOPE\tDOMAINS")
			for _, e := range cat.Entries() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					e.ID, e.Name, e.Cost, e.Scope, strings.Join(e.DomainTags, ","))
			}
			return w.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show [id]",
		Short: "Show one lens in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cat, err := buildEngine(*configPath)
			if err != nil {
				return err
			}

			entry, ok := cat.Get(args[0])
			if !ok {
				return fmt.Errorf("lens %q not found", args[0])
			}

			fmt.Printf("%s %s\n", bold(entry.ID), entry.Name)
			fmt.Printf("  %s %s\n", cyan("cost:"), entry.Cost)
			fmt.Printf("  %s %s\n", cyan("scope:"), entry.Scope)
			fmt.Printf("  %s %s\n", cyan("domains:"), strings.Join(entry.DomainTags, ", "))
			fmt.Printf("  %s %v\n", cyan("intents:"), entry.IntentTags)
			fmt.Printf("  %s %s\n", cyan("actions:"), strings.Join(entry.Actions, ", "))
			return nil
		},
	})

	return cmd
}

// newReplayCmd feeds a transcript, one message per line, through a fresh
// session and prints the decision for every turn. Useful when tuning
// trigger and scoring tables against recorded conversations.
func newReplayCmd(configPath *string) *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "replay [transcript]",
		Short: "Replay a conversation transcript through the pipeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, _, err := buildEngine(*configPath)
			if err != nil {
				return err
			}

			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()

			sess := session.NewContext()
			scanner := bufio.NewScanner(file)
			for scanner.Scan() {
				message := strings.TrimSpace(scanner.Text())
				if message == "" {
					continue
				}

				fmt.Printf("%s %s\n", bold(fmt.Sprintf("turn %d:", sess.CurrentTurn)), gray(message))
				res := engine.Recommend(cmd.Context(), message, sess)
				printResult(res, debug)

				sess.Advance(message, res.Debug.Signals.Primary(), res.RecommendedIDs())
			}
			return scanner.Err()
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "print signals and the full scored list")
	return cmd
}
