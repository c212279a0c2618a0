package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"doc-engine-be/pkg/lexical"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func main() {
	var cmdRoot = &cobra.Command{
		Use:   "docctl",
		Short: "document engine command line utility",
		Long:  `Inspect, validate and convert serialized editor states without a running server`,
	}
	cmdRoot.AddCommand(cmdConvert())
	cmdRoot.AddCommand(cmdValidate())
	cmdRoot.AddCommand(cmdInspect())

	if err := cmdRoot.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadState reads a serialized state file and imports it against the
// builtin registry, so every command shares the same schema checks.
func loadState(path string) (*lexical.Registry, *lexical.EditorState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	reg, err := lexical.NewRegistry(lexical.CoreNodes()...)
	if err != nil {
		return nil, nil, err
	}

	ser, err := lexical.ParseEditorState(data)
	if err != nil {
		return nil, nil, err
	}

	st, err := lexical.ImportEditorState(reg, ser)
	if err != nil {
		return nil, nil, err
	}

	return reg, st, nil
}

func cmdConvert() *cobra.Command {
	var format string
	var outputFile string
	var cmd = &cobra.Command{
		Use:          "convert <state-file>",
		Short:        "convert a serialized state to markdown, html or plain text",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, st, err := loadState(args[0])
			if err != nil {
				return err
			}

			var out string
			switch format {
			case "md", "markdown":
				out, err = lexical.ExportMarkdown(reg, st)
			case "html":
				out, err = lexical.RenderHTML(reg, st, lexical.Theme{})
			case "text":
				out = lexical.StateTextContent(reg, st)
			default:
				return fmt.Errorf("error: unknown format %q (want md, html or text)", format)
			}
			if err != nil {
				return err
			}

			if outputFile != "" {
				return os.WriteFile(outputFile, []byte(out), 0644)
			}
			fmt.Println(out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "md", "output format: md, html or text")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "save output to file")
	return cmd
}

func cmdValidate() *cobra.Command {
	var cmd = &cobra.Command{
		Use:          "validate <state-file>",
		Short:        "check a serialized state against the builtin registry",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, err := loadState(args[0])
			if err != nil {
				color.Red("✗ %s: %v", args[0], err)
				return err
			}
			color.Green("✅ %s: valid (%d nodes)", args[0], st.NodeCount())
			return nil
		},
	}
	return cmd
}

func cmdInspect() *cobra.Command {
	var cmd = &cobra.Command{
		Use:          "inspect <state-file>",
		Short:        "print the node tree of a serialized state",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, err := loadState(args[0])
			if err != nil {
				return err
			}

			return st.Walk(func(n lexical.Node, depth int) error {
				fmt.Printf("%s%s%s\n", strings.Repeat("  ", depth), nodeTag(n), nodeDetail(n))
				return nil
			})
		},
	}
	return cmd
}

func nodeTag(n lexical.Node) string {
	switch n.(type) {
	case *lexical.TextNode:
		return color.GreenString(n.Type())
	case *lexical.DecoratorNode:
		return color.MagentaString(n.Type())
	default:
		return color.CyanString(n.Type())
	}
}

func nodeDetail(n lexical.Node) string {
	switch v := n.(type) {
	case *lexical.TextNode:
		detail := " " + strconv.Quote(preview(v.Text))
		if v.Mode != lexical.ModeNormal {
			detail += color.YellowString(" [%s]", v.Mode)
		}
		return detail
	case *lexical.LinkNode:
		return " -> " + v.URL
	case *lexical.ListNode:
		return fmt.Sprintf(" (%s)", v.ListType)
	default:
		return ""
	}
}

func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= 40 {
		return text
	}
	return string(runes[:40]) + "…"
}
