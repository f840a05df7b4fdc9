package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aliyansayz/candlestick-realtime/replay"
)

func newReplayCmd(rc *RootConfig) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "replay <candles.csv>",
		Short: "Replay a recorded candle CSV through the engine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rc.Load()
			if err != nil {
				return err
			}

			ctrl, cleanup, err := buildController(cfg, args[0])
			if err != nil {
				return err
			}
			defer cleanup()

			// No tick loop: candles come from the file.
			ctrl.Pause()

			if err := replay.CSV(cmd.Context(), args[0], ctrl, replay.Options{Strict: strict}); err != nil {
				return err
			}

			select {
			case f := <-ctrl.Frames():
				printFrame(cmd, f)
			default:
				return fmt.Errorf("no candles replayed from %s", args[0])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Stop at the first malformed or invalid row")

	return cmd
}
