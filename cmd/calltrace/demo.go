package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"calltrace"
	"calltrace/internal/trace"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the canned instrumented workload and print its call tree",
	Long: `Demo traces a recursive free function and an account object (whose
last withdrawal fails) into a fresh tracer, then prints the resulting
call tree, optionally projected onto one function or the object.`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().Int("fib", 0, "recursion depth for the fib workload (0 = config or 4)")
	demoCmd.Flags().String("function", "", "project the tree onto one function (fib|deposit|withdraw)")
	demoCmd.Flags().Bool("object", false, "project the tree onto the demo account")
}

func runDemo(cmd *cobra.Command, args []string) error {
	configPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	sink, cleanup, err := setupEvents(cmd, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

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
	tr.SetSink(sink)

	w := newDemoWorkload(trace.WithTracer(cmd.Context(), tr))
	if err := w.run(fibN); err != nil {
		return err
	}

	fnName, err := cmd.Flags().GetString("function")
	if err != nil {
		return fmt.Errorf("failed to get function flag: %w", err)
	}
	objectView, err := cmd.Flags().GetBool("object")
	if err != nil {
		return fmt.Errorf("failed to get object flag: %w", err)
	}

	var title string
	var tree *calltrace.Node
	switch {
	case fnName != "":
		fn, ok := w.funcs[fnName]
		if !ok {
			return fmt.Errorf("unknown function %q (expected: fib|deposit|withdraw)", fnName)
		}
		title = fmt.Sprintf("calls of %s", fnName)
		tree = tr.ForFunction(fn)
	case objectView:
		title = "calls on the demo account"
		tree = w.proxy.CallTree()
	default:
		title = "full call log"
		tree = tr.Tree()
	}

	out := cmd.OutOrStdout()
	if useColor(cmd) {
		header := color.New(color.FgCyan, color.Bold)
		header.Fprintf(out, "%s\n", title)
	} else {
		fmt.Fprintf(out, "%s\n", title)
	}
	fmt.Fprintln(out, tree)

	// A ring sink holds its events until asked; dump them after the run.
	if ring := ringOf(sink); ring != nil {
		return ring.Dump(os.Stderr, trace.FormatText)
	}
	return nil
}

func ringOf(sink trace.Sink) *trace.RingSink {
	switch s := sink.(type) {
	case *trace.RingSink:
		return s
	case *trace.MultiSink:
		return s.Ring()
	default:
		return nil
	}
}

func useColor(cmd *cobra.Command) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color") //nolint:errcheck
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))
}
