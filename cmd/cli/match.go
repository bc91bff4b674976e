package main

import (
	"fmt"

	"github.com/himanishpuri/ringabell/pkg/utils"
	"github.com/spf13/cobra"
)

var matchJSON bool

var matchCmd = &cobra.Command{
	Use:   "match <query> <recording>...",
	Short: "Register recordings and match a query clip against them",
	Long: `Registers every recording under its file name without extension, then
searches the query clip. Prints "Not found" when no recording reaches the
minimum score.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)
	matchCmd.Flags().BoolVar(&matchJSON, "json", false, "print the result as JSON")
}

func runMatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	query, catalog := args[0], args[1:]

	svc, err := newService()
	if err != nil {
		return err
	}
	defer svc.Close()

	for _, path := range catalog {
		raw, err := readInput(path)
		if err != nil {
			return err
		}
		if _, err := svc.Register(ctx, utils.LabelFromPath(path), raw); err != nil {
			return fmt.Errorf("registering %s: %w", path, err)
		}
	}

	raw, err := readInput(query)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if matchJSON {
		s, err := svc.SearchJSON(ctx, raw)
		if err != nil {
			return fmt.Errorf("searching %s: %w", query, err)
		}
		fmt.Fprintln(out, s)
		return nil
	}

	result, err := svc.Search(ctx, raw)
	if err != nil {
		return fmt.Errorf("searching %s: %w", query, err)
	}
	if !result.Found() {
		fmt.Fprintf(out, "%s (searched %d recordings)\n", result.SongName, len(catalog))
		return nil
	}
	fmt.Fprintf(out, "%s (score %d)\n", result.SongName, result.Score)
	return nil
}
