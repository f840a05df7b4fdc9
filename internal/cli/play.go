package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Aliyansayz/candlestick-realtime/chart"
	"github.com/Aliyansayz/candlestick-realtime/config"
	"github.com/Aliyansayz/candlestick-realtime/indicators"
	"github.com/Aliyansayz/candlestick-realtime/playback"
)

func newPlayCmd(rc *RootConfig) *cobra.Command {
	var (
		ticks int
		seed  int64
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Run a synthetic candle session and print frame summaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rc.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				cfg.Playback.Seed = seed
			}

			ctrl, cleanup, err := buildController(cfg, "")
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			go ctrl.Run(ctx)

			fmt.Printf("run %s (seed %d)\n", ctrl.RunID(), cfg.Playback.Seed)

			seen := 0
			for {
				select {
				case <-ctx.Done():
					return nil
				case f := <-ctrl.Frames():
					printFrame(cmd, f)
					seen++
					if ticks > 0 && seen >= ticks {
						return nil
					}
				}
			}
		},
	}

	cmd.Flags().IntVar(&ticks, "ticks", 0, "Stop after this many frames (0 = run until interrupted)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Override the synthetic walk seed")

	return cmd
}

// buildController assembles a playback controller from the file config.
// source overrides the journal run label for replay sessions; cleanup closes
// the journal.
func buildController(cfg *config.Config, source string) (*playback.Controller, func(), error) {
	interval, err := cfg.Playback.ParseInterval()
	if err != nil {
		return nil, nil, err
	}

	jrnl, err := openJournal(cfg.Journal)
	if err != nil {
		return nil, nil, err
	}

	pcfg := playback.Config{
		Interval:   interval,
		Seed:       cfg.Playback.Seed,
		StartPrice: cfg.Playback.StartPrice,
		NoiseSigma: cfg.Playback.NoiseSigma,
		History:    cfg.Playback.History,
		WindowSize: cfg.View.WindowSize,
		ZoomBuffer: cfg.View.ZoomBuffer,
		Source:     source,
		Indicators: map[string]indicators.Params{
			indicators.EMAName: {Period: cfg.Indicators.EMA.Period},
			indicators.RSIName: {Period: cfg.Indicators.RSI.Period},
			indicators.SupertrendName: {
				Period:     cfg.Indicators.Supertrend.Period,
				Multiplier: cfg.Indicators.Supertrend.Multiplier,
			},
			indicators.ATRBandsName: {
				Period:     cfg.Indicators.ATRBands.Period,
				Multiplier: cfg.Indicators.ATRBands.Multiplier,
			},
		},
	}
	pruneZeroParams(pcfg.Indicators)
	if source != "" {
		pcfg.History = -1
	}

	ctrl, err := playback.New(pcfg, jrnl)
	if err != nil {
		jrnl.Close()
		return nil, nil, err
	}

	for name, enabled := range map[string]bool{
		indicators.EMAName:        cfg.Indicators.EMA.Enabled,
		indicators.RSIName:        cfg.Indicators.RSI.Enabled,
		indicators.SupertrendName: cfg.Indicators.Supertrend.Enabled,
		indicators.ATRBandsName:   cfg.Indicators.ATRBands.Enabled,
	} {
		if !enabled {
			if err := ctrl.ToggleIndicator(name, false); err != nil {
				jrnl.Close()
				return nil, nil, err
			}
		}
	}

	return ctrl, func() { jrnl.Close() }, nil
}

// pruneZeroParams drops unset indicator entries so the engine defaults apply.
func pruneZeroParams(params map[string]indicators.Params) {
	for name, p := range params {
		if p.Period == 0 {
			delete(params, name)
		}
	}
}

func printFrame(cmd *cobra.Command, f chart.Frame) {
	last := f.Candles[len(f.Candles)-1]
	cmd.Printf("%s  close=%.2f  window=%d  price=[%.2f, %.2f]",
		last.Time.Format("15:04:05"), last.Close, len(f.Candles),
		f.PriceRange.Min, f.PriceRange.Max)

	for _, name := range []string{indicators.EMAName, indicators.RSIName,
		indicators.SupertrendName, indicators.SeriesATRUpper, indicators.SeriesATRLower} {
		s, ok := f.Indicators[name]
		if !ok || len(s) == 0 || !s[len(s)-1].Valid {
			continue
		}
		cmd.Printf("  %s=%.2f", name, s[len(s)-1].Value)
	}
	cmd.Println()
}
