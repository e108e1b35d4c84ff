package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lokesh7385/mudra/internal/app"
	"github.com/lokesh7385/mudra/internal/replay"
)

var replayCmd = &cobra.Command{
	Use:   "replay <file.jsonl>",
	Short: "Feed recorded landmark frames through the gesture pipeline",
	Long: `Replay reads a JSON Lines landmark recording ("-" for stdin), runs every
frame through the classifier and dispatcher at its recorded time and prints one
line per emitted action. With --execute the actions are also sent to the bound
plugins.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().Bool("execute", false, "Run emitted actions through their plugins")
	replayCmd.Flags().Bool("json", false, "Print actions as JSON lines")
	rootCmd.AddCommand(replayCmd)
}

type replayLine struct {
	OffsetMs float64 `json:"t_ms"`
	Gesture  string  `json:"gesture"`
	Action   any     `json:"action"`
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	execute, _ := cmd.Flags().GetBool("execute")
	asJSON, _ := cmd.Flags().GetBool("json")

	var in io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	var svc *services
	if execute {
		svc, err = openServices(cfg, log)
		if err != nil {
			return err
		}
		defer svc.Close()
	}

	// No executor: actions are reported, and run below only with --execute.
	pipeline := app.New(app.Config{
		Classifier: cfg.GestureConfig(),
		Dispatcher: cfg.DispatchConfig(),
		Logger:     log,
	})

	out := cmd.OutOrStdout()
	enc := json.NewEncoder(out)
	ctx := cmd.Context()

	res, err := replay.Run(ctx, replay.NewReader(in), pipeline, time.Now(), func(e replay.Emitted) {
		if asJSON {
			enc.Encode(replayLine{
				OffsetMs: float64(e.Offset) / float64(time.Millisecond),
				Gesture:  e.Gesture.Kind.String(),
				Action:   e.Action,
			})
		} else {
			fmt.Fprintf(out, "%9.3fs  %-14s  %s\n", e.Offset.Seconds(), e.Gesture.Kind, e.Action)
		}

		if svc != nil {
			if err := svc.actions.Execute(ctx, e.Action); err != nil {
				log.Error("action failed", "action", e.Action, "error", err)
			}
		}
	})
	if err != nil {
		return fmt.Errorf("replay %s: %w", args[0], err)
	}

	log.Info("replay finished", "frames", res.Frames, "dropped", res.Dropped, "actions", len(res.Actions))
	return nil
}
