package main

import (
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var extractSave bool

var extractCmd = &cobra.Command{
	Use:   "extract <url>",
	Short: "Extract one company record and print it as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		if !extractSave {
			svc, err := newScraper(cfg, zap.L())
			if err != nil {
				return err
			}
			return printJSON(out, svc.ScrapeCompany(ctx, args[0]))
		}

		a, err := initApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		outcome, err := a.Tracker.Track(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "save record")
		}
		if outcome.Stored() {
			zap.L().Info("record saved", zap.String("key", outcome.Key), zap.String("logo", outcome.LogoPath))
		} else {
			zap.L().Warn("record not saved", zap.String("reason", outcome.Message))
		}
		return printJSON(out, outcome)
	},
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return eris.Wrap(enc.Encode(v), "encode output")
}

func init() {
	extractCmd.Flags().BoolVar(&extractSave, "save", false, "store the record and its logo")
	rootCmd.AddCommand(extractCmd)
}
