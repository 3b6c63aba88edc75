package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"calltrace/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

var (
	versionFormat   string
	versionShowFull bool
)

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
	versionCmd.Flags().BoolVar(&versionShowFull, "full", false, "include commit hash and build date")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show calltrace build fingerprints",
	RunE: func(cmd *cobra.Command, args []string) error {
		switch strings.ToLower(versionFormat) {
		case "pretty":
			renderVersionPretty(cmd.OutOrStdout())
			return nil
		case "json":
			return renderVersionJSON(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
		}
	},
}

func renderVersionPretty(out io.Writer) {
	fmt.Fprintf(out, "calltrace %s\n", version.Version)
	if versionShowFull {
		fmt.Fprintf(out, "commit: %s\n", valueOrUnknown(version.GitCommit))
		fmt.Fprintf(out, "built:  %s\n", valueOrUnknown(version.BuildDate))
	}
}

func renderVersionJSON(out io.Writer) error {
	payload := versionPayload{
		Tool:    "calltrace",
		Version: strings.TrimSpace(version.Version),
	}
	if versionShowFull {
		payload.GitCommit = valueOrUnknown(version.GitCommit)
		payload.BuildDate = valueOrUnknown(version.BuildDate)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
