package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	tconfig "github.com/taggsonomy/tagengine/internal/config"
	"github.com/taggsonomy/tagengine/pkg/tagengine"
)

const (
	groupTags    = "tags"
	groupTagSets = "tagsets"
	groupSetup   = "setup"
)

var (
	dbPath     string
	configDir  string
	jsonOutput bool
	verbose    bool
	memOnly    bool

	rootCtx context.Context
	engine  *tagengine.Engine
)

var rootCmd = &cobra.Command{
	Use:   "tagctl",
	Short: "Manage a constrained tag universe: inclusion, exclusion, and tag sets",
	Long: `tagctl is a command-line front end over the tagging engine: a universe of
named tags related by INCLUDES (directed) and EXCLUDES (symmetric), and
tag sets attached to host entities, kept consistent by a validating
engine that rejects any mutation breaking those relations.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		rootCtx = cmd.Context()
		if rootCtx == nil {
			rootCtx = context.Background()
		}

		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		var handler slog.Handler
		if jsonOutput {
			handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
		} else {
			handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
		}
		slog.SetDefault(slog.New(handler))

		if memOnly {
			engine = tagengine.OpenMem()
			return nil
		}

		rt, err := tconfig.Load(configDir, false, nil)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		path := dbPath
		if path == "" {
			path = rt.DBPath()
		}

		engine, err = tagengine.Open(rootCtx, path)
		if err != nil {
			return fmt.Errorf("open engine: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if engine != nil {
			return engine.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: groupTags, Title: "Tags & Relations:"},
		&cobra.Group{ID: groupTagSets, Title: "Tag Sets:"},
		&cobra.Group{ID: groupSetup, Title: "Setup & Configuration:"},
	)

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: .tagengine/tagengine.db)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".tagengine", "directory holding config.yaml and policy files")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose/debug logging")
	rootCmd.PersistentFlags().BoolVar(&memOnly, "mem", false, "use a throwaway in-memory store instead of --db")

	rootCmd.AddCommand(tagCmd, tagSetCmd, policyCmd)
}
