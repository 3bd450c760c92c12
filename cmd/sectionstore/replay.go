package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/sectionstore/internal/script"
)

// newReplayCommand creates the replay command
func (cli *CLI) newReplayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "replay <script.yaml>",
		Short: "Replay a mutation script and print the events and final layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadScript(args[0])
			if err != nil {
				return NewScriptError("replay script", args[0], err)
			}

			slog.Debug("replaying script",
				"path", args[0],
				"name", doc.Name,
				"sections", len(doc.Sections),
				"ops", len(doc.Ops))

			result, err := script.Run(doc)
			if err != nil {
				return NewScriptError("replay script", args[0], err)
			}

			return cli.printResult(cmd, doc, result)
		},
	}
}

func loadScript(path string) (*script.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return script.Parse(f)
}

// printResult renders the replay outcome in the configured format
func (cli *CLI) printResult(cmd *cobra.Command, doc *script.Document, result *script.Result) error {
	quiet := cli.viperInst.GetBool("quiet")
	out := cmd.OutOrStdout()

	switch format := cli.viperInst.GetString("format"); format {
	case "json", "yaml":
		payload := replayOutput{Name: doc.Name, Layout: result.Layout}
		if !quiet {
			payload.Events = result.Events
		}
		var (
			data []byte
			err  error
		)
		if format == "json" {
			data, err = json.MarshalIndent(payload, "", "  ")
		} else {
			data, err = yaml.Marshal(payload)
		}
		if err != nil {
			return NewOutputError("replay script", err)
		}
		_, _ = fmt.Fprintln(out, strings.TrimRight(string(data), "\n"))
		return nil

	case "text":
		if !quiet && len(result.Events) > 0 {
			_, _ = fmt.Fprintln(out, "events:")
			for _, line := range result.Events {
				_, _ = fmt.Fprintf(out, "  %s\n", line)
			}
		}
		_, _ = fmt.Fprintln(out, "layout:")
		for i, sec := range result.Layout {
			label := sec.Name
			if sec.IndexTitle != "" {
				label = fmt.Sprintf("%s (%s)", sec.Name, sec.IndexTitle)
			}
			_, _ = fmt.Fprintf(out, "  [%d] %s: %s\n", i, label, strings.Join(sec.Items, ", "))
		}
		return nil

	default:
		return &CLIError{
			Operation: "replay script",
			Cause:     fmt.Sprintf("unknown output format %q", format),
			Suggestions: []string{
				"Use --format text, json, or yaml",
			},
		}
	}
}

type replayOutput struct {
	Name   string                 `json:"name,omitempty" yaml:"name,omitempty"`
	Events []string               `json:"events,omitempty" yaml:"events,omitempty"`
	Layout []script.SectionLayout `json:"layout" yaml:"layout"`
}
