package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taggsonomy/tagengine/internal/tagmodel"
	"github.com/taggsonomy/tagengine/internal/tagtext"
)

var (
	hostKind  string
	hostID    string
	createNew bool
	commaList string
)

var tagSetCmd = &cobra.Command{
	Use:     "tagset",
	Short:   "Manage tag sets attached to host entities",
	GroupID: groupTagSets,
}

func resolveTagSet(cmd *cobra.Command, args []string) (tagmodel.TagSetID, error) {
	if hostKind == "" || hostID == "" {
		return 0, fmt.Errorf("tagset: --host-kind and --host-id are required")
	}
	ts, err := engine.GetOrCreateTagSetFor(rootCtx, hostKind, hostID)
	return ts.ID, err
}

var tagSetAddCmd = &cobra.Command{
	Use:   "add [NAME...]",
	Short: "Resolve references and add them, with supertag closure, to a tag set",
	RunE: func(cmd *cobra.Command, args []string) error {
		ts, err := resolveTagSet(cmd, args)
		if err != nil {
			return err
		}

		var refs []tagmodel.Ref
		create := createNew
		if commaList != "" {
			refs = tagtext.ParseCommaList(commaList)
			create = true
		} else {
			for _, a := range args {
				refs = append(refs, parseRef(a))
			}
		}

		if err := engine.TagSetAdd(rootCtx, ts, refs, create); err != nil {
			return err
		}
		fmt.Println(okStyle.Render("ok"))
		return nil
	},
}

var tagSetRemoveCmd = &cobra.Command{
	Use:   "remove NAME...",
	Short: "Resolve references and remove them from a tag set",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ts, err := resolveTagSet(cmd, args)
		if err != nil {
			return err
		}
		refs := make([]tagmodel.Ref, 0, len(args))
		for _, a := range args {
			refs = append(refs, parseRef(a))
		}
		if err := engine.TagSetRemove(rootCtx, ts, refs); err != nil {
			return err
		}
		fmt.Println(okStyle.Render("ok"))
		return nil
	},
}

var tagSetShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List the current members of a tag set",
	RunE: func(cmd *cobra.Command, args []string) error {
		ts, err := resolveTagSet(cmd, args)
		if err != nil {
			return err
		}
		members := engine.TagSetMembers(ts)
		names := make([]string, 0, len(members))
		for _, id := range members {
			if t, err := engine.Resolve(tagmodel.RefByID(id), false); err == nil {
				names = append(names, t.Name)
			}
		}
		sort.Strings(names)
		fmt.Printf("%s (%d): %s\n", boldStyle.Render(fmt.Sprintf("%s/%s", hostKind, hostID)), len(names), strings.Join(names, ", "))
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{tagSetAddCmd, tagSetRemoveCmd, tagSetShowCmd} {
		c.Flags().StringVar(&hostKind, "host-kind", "", "host entity kind this tag set is attached to")
		c.Flags().StringVar(&hostID, "host-id", "", "host entity id this tag set is attached to")
	}
	tagSetAddCmd.Flags().BoolVar(&createNew, "create", false, "create unresolvable names instead of failing")
	tagSetAddCmd.Flags().StringVar(&commaList, "csv", "", "comma-separated names, trimmed and bulk-added with create=true (form-style entry point)")

	tagSetCmd.AddCommand(tagSetAddCmd, tagSetRemoveCmd, tagSetShowCmd)
}
