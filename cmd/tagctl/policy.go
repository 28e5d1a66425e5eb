package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/taggsonomy/tagengine/internal/policy"
)

var policyFile string

var policyCmd = &cobra.Command{
	Use:     "policy",
	Short:   "Apply declarative mutual-exclusion policy files",
	GroupID: groupSetup,
}

var policyApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Resolve and pairwise-exclude every group in a TOML policy file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := policyFile
		if path == "" {
			path = filepath.Join(configDir, "policies", "mutex.toml")
		}
		groups, err := policy.Load(path)
		if err != nil {
			return err
		}

		// *tagengine.Engine already satisfies policy.Resolver and
		// policy.Excluder: its Resolve/Exclude signatures are built on
		// the same tagmodel aliases those interfaces name.
		failures := policy.Apply(rootCtx, engine, engine, groups)
		for name, err := range failures {
			fmt.Printf("%s %s: %v\n", failStyle.Render("failed"), name, err)
		}
		fmt.Printf("%s applied %d group(s), %d failure(s)\n", okStyle.Render("done"), len(groups), len(failures))
		if len(failures) > 0 {
			return fmt.Errorf("policy apply: %d group(s) failed", len(failures))
		}
		return nil
	},
}

func init() {
	policyApplyCmd.Flags().StringVar(&policyFile, "file", "", "policy TOML path (default: <config-dir>/policies/mutex.toml)")
	policyCmd.AddCommand(policyApplyCmd)
}
