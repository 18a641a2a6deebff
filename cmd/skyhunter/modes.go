package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"skyhunter/internal/game"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List the built-in game modes",
	RunE: func(cmd *cobra.Command, args []string) error {
		name := lipgloss.NewStyle().Bold(true).Width(16)
		dim := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		out := cmd.OutOrStdout()
		for _, m := range game.Modes() {
			r, err := game.Lookup(m)
			if err != nil {
				return err
			}
			rules := "untimed"
			if r.Timed() {
				rules = fmt.Sprintf("%.0fs", r.TimeLimit)
			}
			if r.TargetGoal > 0 {
				rules += fmt.Sprintf(", goal %d targets", r.TargetGoal)
			}
			fmt.Fprintf(out, "%s %s %s\n", name.Render(string(m)), r.Description, dim.Render("("+rules+")"))
		}
		return nil
	},
}
