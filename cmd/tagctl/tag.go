package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taggsonomy/tagengine/internal/tagmodel"
)

// parseRef interprets a CLI argument as a tag reference: a bare integer
// is a numeric identifier, anything else is a name.
func parseRef(s string) tagmodel.Ref {
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return tagmodel.RefByID(tagmodel.TagID(id))
	}
	return tagmodel.RefByName(s)
}

var tagCmd = &cobra.Command{
	Use:     "tag",
	Short:   "Create tags and manage INCLUDES/EXCLUDES relations",
	GroupID: groupTags,
}

var tagCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a tag by name, or return it if it already exists",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := engine.CreateTag(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s %s (id %d)\n", okStyle.Render("created"), boldStyle.Render(t.Name), t.ID)
		return nil
	},
}

var propagateFlag bool

var tagIncludeCmd = &cobra.Command{
	Use:   "include SUPERTAG SUBTAG",
	Short: "Add SUPERTAG INCLUDES SUBTAG",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sup, err := engine.Resolve(parseRef(args[0]), true)
		if err != nil {
			return err
		}
		sub, err := engine.Resolve(parseRef(args[1]), true)
		if err != nil {
			return err
		}
		if err := engine.Include(rootCtx, sup.ID, sub.ID, propagateFlag); err != nil {
			return err
		}
		fmt.Printf("%s %s includes %s\n", okStyle.Render("ok"), boldStyle.Render(sup.Name), boldStyle.Render(sub.Name))
		return nil
	},
}

var tagExcludeCmd = &cobra.Command{
	Use:   "exclude TAG_A TAG_B",
	Short: "Add TAG_A EXCLUDES TAG_B (symmetric)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := engine.Resolve(parseRef(args[0]), true)
		if err != nil {
			return err
		}
		b, err := engine.Resolve(parseRef(args[1]), true)
		if err != nil {
			return err
		}
		if err := engine.Exclude(rootCtx, a.ID, b.ID); err != nil {
			return err
		}
		fmt.Printf("%s %s excludes %s\n", okStyle.Render("ok"), boldStyle.Render(a.Name), boldStyle.Render(b.Name))
		return nil
	},
}

var tagUnincludeCmd = &cobra.Command{
	Use:   "uninclude SUPERTAG SUBTAG",
	Short: "Remove SUPERTAG INCLUDES SUBTAG if present",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sup, err := engine.Resolve(parseRef(args[0]), false)
		if err != nil {
			return err
		}
		sub, err := engine.Resolve(parseRef(args[1]), false)
		if err != nil {
			return err
		}
		return engine.Uninclude(rootCtx, sup.ID, sub.ID)
	},
}

var tagUnexcludeCmd = &cobra.Command{
	Use:   "unexclude TAG_A TAG_B",
	Short: "Remove TAG_A EXCLUDES TAG_B if present",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := engine.Resolve(parseRef(args[0]), false)
		if err != nil {
			return err
		}
		b, err := engine.Resolve(parseRef(args[1]), false)
		if err != nil {
			return err
		}
		return engine.Unexclude(rootCtx, a.ID, b.ID)
	},
}

var tagShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Show a tag's direct and transitive relations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := engine.Resolve(parseRef(args[0]), false)
		if err != nil {
			return err
		}
		fmt.Printf("%s (id %d)\n", boldStyle.Render(t.Name), t.ID)
		printRelation("direct supertags", engine.DirectSupertags(t.ID))
		printRelation("direct subtags", engine.DirectSubtags(t.ID))
		printSet("all supertags", engine.AllSupertags(t.ID))
		printSet("all subtags", engine.AllSubtags(t.ID))
		return nil
	},
}

func printRelation(label string, ids []tagmodel.TagID) {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if t, err := engine.Resolve(tagmodel.RefByID(id), false); err == nil {
			names = append(names, t.Name)
		}
	}
	fmt.Printf("  %s: %s\n", mutedStyle.Render(label), strings.Join(names, ", "))
}

func printSet(label string, ids map[tagmodel.TagID]struct{}) {
	names := make([]string, 0, len(ids))
	for id := range ids {
		if t, err := engine.Resolve(tagmodel.RefByID(id), false); err == nil {
			names = append(names, t.Name)
		}
	}
	fmt.Printf("  %s: %s\n", mutedStyle.Render(label), strings.Join(names, ", "))
}

func init() {
	tagIncludeCmd.Flags().BoolVar(&propagateFlag, "propagate", false, "propagate the new supertag into existing tag sets containing the subtag")
	tagCmd.AddCommand(tagCreateCmd, tagIncludeCmd, tagExcludeCmd, tagUnincludeCmd, tagUnexcludeCmd, tagShowCmd)
}
