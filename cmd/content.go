package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/Ri-Verma/portfolio/internal/content"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newContentCmd(a *app) *cobra.Command {
	var dir string

	contentCmd := &cobra.Command{
		Use:   "content",
		Short: "Inspect the portfolio content",
	}
	contentCmd.PersistentFlags().StringVar(&dir, "dir", "", "content directory (default is the bundled content)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Lists every project and certificate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			site, err := loadSite(a, dir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), itemTable(site))
			return nil
		},
	}

	var style string
	var width int
	showCmd := &cobra.Command{
		Use:   "show <kind> <slug>",
		Short: "Renders one card's text in the terminal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := loadSite(a, dir)
			if err != nil {
				return err
			}
			kind, ok := content.ParseKind(args[0])
			if !ok {
				return fmt.Errorf("unknown kind %q (want project or certificate)", args[0])
			}
			item, ok := site.Find(kind, args[1])
			if !ok {
				return fmt.Errorf("no %s named %q", kind, args[1])
			}

			r, err := glamour.NewTermRenderer(
				glamour.WithStandardStyle(style),
				glamour.WithWordWrap(width),
			)
			if err != nil {
				return err
			}
			out, err := r.Render(itemMarkdown(item))
			if err != nil {
				return fmt.Errorf("render %s: %w", item.Slug, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	showCmd.Flags().StringVar(&style, "style", styles.AutoStyle, "glamour style (auto, dark, light, notty)")
	showCmd.Flags().IntVar(&width, "width", 80, "word wrap width")

	contentCmd.AddCommand(listCmd, showCmd)
	return contentCmd
}

func loadSite(a *app, dir string) (*content.Site, error) {
	if dir == "" {
		dir = a.cfg.Content
	}
	site, err := content.Load(content.Source(dir))
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	return site, nil
}

func itemTable(site *content.Site) *table.Table {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("KIND", "ORDER", "SLUG", "TITLE", "URL").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, kind := range []content.Kind{content.KindProject, content.KindCertificate} {
		for _, it := range site.Items(kind) {
			t.Row(string(it.Kind), strconv.Itoa(it.Order), it.Slug, it.Title, it.URL)
		}
	}
	return t
}

func itemMarkdown(it content.Item) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", it.Title)
	if it.Icon != "" {
		fmt.Fprintf(&b, "*%s*\n\n", it.Icon)
	}
	fmt.Fprintf(&b, "%s\n\n%s\n", it.Description, it.URL)
	return b.String()
}
