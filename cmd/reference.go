package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"nightcircle/internal/reference"
	"nightcircle/internal/ui/terminal"
	"nightcircle/resources"
)

func newBossesCommand(options *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "bosses [name]",
		Short: "List bosses or show one boss in detail",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			terminal.ConfigureColorProfile(out)
			catalog := reference.Load(resources.Data(), options.logger)

			if len(args) == 0 {
				return terminal.WriteBossList(out, catalog.Bosses)
			}
			boss, ok := reference.FindBoss(catalog.Bosses, args[0])
			if !ok {
				return fmt.Errorf("unknown boss %q", args[0])
			}
			return terminal.WriteBossDetail(out, boss)
		},
	}
}

func newWeaponsCommand(options *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "weapons [query]",
		Short: "Show weapon attack power per character",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			terminal.ConfigureColorProfile(out)
			catalog := reference.Load(resources.Data(), options.logger)

			query := strings.Join(args, " ")
			matches := reference.SearchWeapons(catalog.Weapons, query)
			if len(matches) == 0 {
				_, err := fmt.Fprintf(out, "no weapons match %q\n", query)
				return err
			}
			return terminal.WriteWeapons(out, matches)
		},
	}
}

func newPowersCommand(options *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "powers <query>",
		Short: "Search special powers by name or effect",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			terminal.ConfigureColorProfile(out)
			catalog := reference.Load(resources.Data(), options.logger)

			query := strings.Join(args, " ")
			matches := reference.SearchPowers(catalog.Powers, query)
			if len(matches) == 0 {
				_, err := fmt.Fprintf(out, "no powers match %q\n", query)
				return err
			}
			return terminal.WritePowers(out, matches)
		},
	}
}
