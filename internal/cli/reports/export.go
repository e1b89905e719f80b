package reports

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/julianstephens/flowplanr/internal/cli"
	"github.com/julianstephens/flowplanr/internal/export"
	"github.com/julianstephens/flowplanr/internal/models"
)

// stdout receives printed reports.
var stdout io.Writer = os.Stdout

type ExportCmd struct {
	Kind  string `arg:"" help:"Report kind: productivity, blockers, insights, planning or trends." enum:"productivity,blockers,insights,planning,trends"`
	Copy  bool   `help:"Copy the report to the clipboard."`
	Out   string `help:"Directory to write the report to. Defaults to the export_dir setting." type:"path"`
	Print bool   `help:"Print the report instead of writing a file."`
}

// writesFile reports whether the report goes to disk. --print and --copy
// replace the file unless --out asks for one explicitly.
func (c *ExportCmd) writesFile() bool {
	return c.Out != "" || (!c.Print && !c.Copy)
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	kind, err := models.ParseReportKind(c.Kind)
	if err != nil {
		return err
	}
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	svc := ctx.Export()
	report, err := svc.Render(user.ID, kind)
	if err != nil {
		return err
	}

	if c.writesFile() {
		path, err := svc.Save(report, c.Out)
		if err != nil {
			return err
		}
		fmt.Printf("✓ %s written to %s\n", kind.Title(), path)
	}
	if c.Print {
		fmt.Fprint(stdout, report.Text)
		if !strings.HasSuffix(report.Text, "\n") {
			fmt.Fprintln(stdout)
		}
	}
	if c.Copy {
		if err := export.Copy(report.Text); err != nil {
			return err
		}
		fmt.Printf("✓ %s copied to clipboard\n", kind.Title())
	}
	return nil
}

type PromptsCmd struct {
	Kind string `arg:"" optional:"" help:"Only show the prompt for this report kind."`
	Copy bool   `help:"Copy the prompt to the clipboard (requires a kind)."`
}

func (c *PromptsCmd) Run(ctx *cli.Context) error {
	if c.Copy && c.Kind == "" {
		return fmt.Errorf("--copy needs a report kind")
	}
	user, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	prompts, err := ctx.Export().Prompts(user.ID)
	if err != nil {
		return err
	}

	if c.Kind != "" {
		kind, err := models.ParseReportKind(c.Kind)
		if err != nil {
			return err
		}
		fmt.Println(prompts[kind])
		if c.Copy {
			if err := export.Copy(prompts[kind]); err != nil {
				return err
			}
			fmt.Println(mutedStyle.Render("copied to clipboard"))
		}
		return nil
	}

	fmt.Print(formatPrompts(prompts))
	return nil
}

func formatPrompts(prompts map[models.ReportKind]string) string {
	var b strings.Builder
	for i, kind := range models.ReportKinds {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s\n", sectionStyle.UnsetMarginTop().Render(kind.Title()))
		fmt.Fprintf(&b, "%s\n", mutedStyle.Render(kind.Description()))
		fmt.Fprintf(&b, "%s\n", prompts[kind])
	}
	return b.String()
}
