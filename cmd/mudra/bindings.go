package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lokesh7385/mudra/internal/plugin"
	"github.com/lokesh7385/mudra/internal/store"
)

var bindingsCmd = &cobra.Command{
	Use:   "bindings",
	Short: "List the effective action to plugin bindings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		svc, err := openServices(cfg, log)
		if err != nil {
			return err
		}
		defer svc.Close()

		bindings, err := svc.actions.Effective()
		if err != nil {
			return err
		}

		md := bindingsMarkdown(bindings, installed(svc), svc.plugins.Skipped())
		plain, _ := cmd.Flags().GetBool("plain")
		return printMarkdown(cmd.OutOrStdout(), md, plain)
	},
}

func init() {
	bindingsCmd.Flags().Bool("plain", false, "Print raw markdown even on a terminal")
	rootCmd.AddCommand(bindingsCmd)
}

func installed(svc *services) map[string]bool {
	names := map[string]bool{}
	for _, p := range svc.plugins.List() {
		names[p.Manifest.Name] = true
	}
	return names
}

// bindingsMarkdown renders bindings as a markdown table. Plugins missing
// from the plugin dir are flagged and rejected plugin dirs listed below.
func bindingsMarkdown(bindings []store.Binding, plugins map[string]bool, skipped []plugin.Skipped) string {
	var b strings.Builder
	b.WriteString("| Action | Plugin | Plugin action | Params | Source | Enabled |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, bd := range bindings {
		source := "stored"
		if bd.ID == "" {
			source = "default"
		}
		name := bd.PluginName
		if !plugins[name] {
			name += " (missing)"
		}
		params := strings.TrimSpace(string(bd.Params))
		if params == "" {
			params = "{}"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | `%s` | %s | %t |\n",
			bd.Action, name, bd.PluginAction, strings.ReplaceAll(params, "|", `\|`), source, bd.Enabled)
	}
	if len(skipped) > 0 {
		b.WriteString("\nSkipped plugins:\n\n")
		for _, s := range skipped {
			fmt.Fprintf(&b, "- `%s`: %s\n", s.Dir, s.Reason)
		}
	}
	return b.String()
}

// printMarkdown renders md for the terminal when w is one.
func printMarkdown(w io.Writer, md string, plain bool) error {
	f, ok := w.(*os.File)
	if plain || !ok || !term.IsTerminal(int(f.Fd())) {
		_, err := io.WriteString(w, md)
		return err
	}

	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return err
	}
	out, err := r.Render(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
