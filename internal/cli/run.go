package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/alimgiray/gitmentor/internal/models"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	keyColor     = color.New(color.FgYellow, color.Bold)
	cachedColor  = color.New(color.FgHiBlack)
)

var runCmd = &cobra.Command{
	Use:       "run <action>",
	Short:     "Run one feedback action against your GitHub profile.",
	Long:      `Actions: analyze, suggest, improve, roast, judge. Only judge reads commit messages.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: actionNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, collector, err := newCollector()
		if err != nil {
			return err
		}
		service, err := newActionService(collector)
		if err != nil {
			return err
		}

		identity, err := resolveIdentity(cmd.Context(), client)
		if err != nil {
			return err
		}

		outcome, err := service.Run(cmd.Context(), identity, args[0])
		if err != nil {
			var invalid *models.InvalidModelOutputError
			if errors.As(err, &invalid) {
				fmt.Fprintln(cmd.ErrOrStderr(), invalid.Raw)
			}
			return err
		}

		return printResult(cmd.OutOrStdout(), identity.Username, outcome.Action, outcome.Result, outcome.Cached)
	},
}

func actionNames() []string {
	names := make([]string, 0, len(models.SupportedActions))
	for _, action := range models.SupportedActions {
		names = append(names, string(action))
	}
	return names
}

// printResult prints every field of result under a colored heading, in key order
func printResult(w io.Writer, username string, action models.Action, result models.ActionResult, cached bool) error {
	encoded, err := json.Marshal(result)
	if err != nil {
		return err
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(encoded, &fields); err != nil {
		return err
	}

	headingColor.Fprintf(w, "%s for %s\n", strings.ToUpper(string(action)), username)
	if cached {
		cachedColor.Fprintln(w, "(cached)")
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		keyColor.Fprintf(w, "\n%s\n", key)
		switch value := fields[key].(type) {
		case []interface{}:
			for _, item := range value {
				fmt.Fprintf(w, "  - %v\n", item)
			}
		default:
			fmt.Fprintf(w, "  %v\n", value)
		}
	}
	return nil
}
