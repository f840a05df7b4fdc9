// Package cli wires the cobra command tree for the candlestick session tool.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Aliyansayz/candlestick-realtime/config"
	"github.com/Aliyansayz/candlestick-realtime/journal"
)

// RootConfig carries the persistent flags shared by all subcommands.
type RootConfig struct {
	ConfigPath string
	JournalDB  string
	Interval   string
}

// Load returns the effective configuration: the file named by --config (or
// the defaults when no file is given) with the persistent flag overrides
// applied on top.
func (rc *RootConfig) Load() (*config.Config, error) {
	cfg := config.Default()
	if rc.ConfigPath != "" {
		var err error
		cfg, err = config.LoadFromFile(rc.ConfigPath)
		if err != nil {
			return nil, err
		}
	}
	if rc.JournalDB != "" {
		cfg.Journal = config.JournalConfig{Type: "sqlite", DBPath: rc.JournalDB}
	}
	if rc.Interval != "" {
		cfg.Playback.Interval = rc.Interval
		if _, err := cfg.Playback.ParseInterval(); err != nil {
			return nil, fmt.Errorf("--interval: %w", err)
		}
	}
	return cfg, nil
}

func NewRootCmd() *cobra.Command {
	rc := &RootConfig{}

	cmd := &cobra.Command{
		Use:           "candlestick",
		Short:         "Candlestick — streaming OHLC playback, indicators, and replay",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&rc.ConfigPath, "config", "", "Path to config file (optional)")
	cmd.PersistentFlags().StringVar(&rc.JournalDB, "journal-db", "", "Journal the session to this SQLite database")
	cmd.PersistentFlags().StringVar(&rc.Interval, "interval", "", "Override the tick interval (e.g. 250ms)")

	cmd.AddCommand(
		newPlayCmd(rc),
		newReplayCmd(rc),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("candlestick (dev)")
		},
	})

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// openJournal builds the journal sink named by the config.
func openJournal(jc config.JournalConfig) (journal.Journal, error) {
	switch jc.Type {
	case "", "none":
		return journal.Nop{}, nil
	case "csv":
		return journal.NewCSV(jc.CandlesFile, jc.RunsFile)
	case "sqlite":
		return journal.NewSQLite(jc.DBPath)
	default:
		return nil, fmt.Errorf("unknown journal type %q", jc.Type)
	}
}
