package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"calltrace"
	"calltrace/internal/trace"
	"calltrace/internal/ui"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Watch the demo workload live in a terminal UI",
	Long: `View streams call events into a scrollable terminal UI while the demo
workload runs, then shows the finished call tree. Quit with q.`,
	Args: cobra.NoArgs,
	RunE: runView,
}

func init() {
	viewCmd.Flags().Int("fib", 0, "recursion depth for the fib workload (0 = config or 4)")
}

func runView(cmd *cobra.Command, args []string) error {
	configPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	fibN, err := cmd.Flags().GetInt("fib")
	if err != nil {
		return fmt.Errorf("failed to get fib flag: %w", err)
	}
	if fibN == 0 {
		if fibN, err = cfg.Demo.fibDepth(); err != nil {
			return err
		}
	}

	tr := calltrace.New()
	events := make(chan trace.Event, 256)
	tr.SetSink(trace.ChannelSink{Ch: events, Lvl: trace.LevelCalls})

	ctx := trace.WithTracer(cmd.Context(), tr)
	w := newDemoWorkload(ctx)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(events)
		return w.run(fibN)
	})

	model := ui.NewViewerModel("calltrace demo", events, func() string {
		return tr.Tree().String()
	})
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()

	if err := g.Wait(); err != nil {
		return err
	}
	return uiErr
}
