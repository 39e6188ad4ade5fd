package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	domainauth "github.com/target/cipms/internal/domain/auth"
	"github.com/target/cipms/internal/domain/nav"
	"github.com/target/cipms/internal/http/uiutil"
	"github.com/target/cipms/internal/service"
)

type printer struct {
	out    io.Writer
	colors bool
	now    func() time.Time

	boldC   *color.Color
	headC   *color.Color
	accentC *color.Color
}

func newPrinter(out io.Writer, colors bool) *printer {
	p := &printer{
		out:     out,
		colors:  colors,
		now:     time.Now,
		boldC:   color.New(color.Bold),
		headC:   color.New(color.FgCyan, color.Bold),
		accentC: color.New(color.FgGreen),
	}
	if colors {
		for _, c := range []*color.Color{p.boldC, p.headC, p.accentC} {
			c.EnableColor()
		}
	}
	return p
}

func (p *printer) paint(c *color.Color, s string) string {
	if !p.colors {
		return s
	}
	return c.Sprint(s)
}

func (p *printer) bold(s string) string   { return p.paint(p.boldC, s) }
func (p *printer) accent(s string) string { return p.paint(p.accentC, s) }

func (p *printer) line(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *printer) heading(s string) {
	p.line("")
	p.line("%s", p.paint(p.headC, s))
}

func (p *printer) identity(id domainauth.Identity) {
	base := id.Base()
	tw := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Name\t%s\n", p.bold(domainauth.DisplayName(id)))
	fmt.Fprintf(tw, "Email\t%s\n", base.Email)
	fmt.Fprintf(tw, "Role\t%s\n", id.Role().Label())
	switch v := id.(type) {
	case *domainauth.Student:
		fmt.Fprintf(tw, "Student ID\t%s\n", v.StudentID)
		fmt.Fprintf(tw, "Department\t%s\n", v.Department)
	case *domainauth.Faculty:
		fmt.Fprintf(tw, "Department\t%s\n", v.Department)
		fmt.Fprintf(tw, "Designation\t%s\n", v.Designation)
	case *domainauth.PlacementOfficer:
		fmt.Fprintf(tw, "Position\t%s\n", v.Position)
	case *domainauth.Recruiter:
		fmt.Fprintf(tw, "Company\t%s\n", v.CompanyName)
		fmt.Fprintf(tw, "Position\t%s\n", v.Position)
	}
	fmt.Fprintf(tw, "Dashboard\t%s\n", nav.SelectDashboardFor(id))
	_ = tw.Flush()
}

func (p *printer) menu(items []nav.MenuItem) {
	if len(items) == 0 {
		p.line("No menu entries for this role.")
		return
	}
	tw := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\n", it.Label, p.accent(it.Target))
	}
	_ = tw.Flush()
}

func (p *printer) dashboard(id domainauth.Identity, sum service.DashboardSummary) {
	p.line("Welcome, %s", p.bold(id.Base().FirstName))
	if sum.Intro != "" {
		p.line("%s", sum.Intro)
	}
	if sum.Dashboard == nav.DashboardUnrecognizedRole {
		p.line("Your role %q has no dashboard yet. Contact the placement cell.", string(id.Role()))
		return
	}

	if len(sum.Stats) > 0 {
		p.heading("Overview")
		tw := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
		for _, s := range sum.Stats {
			fmt.Fprintf(tw, "  %s\t%d\n", s.Label, s.Value)
		}
		_ = tw.Flush()
	}

	if len(sum.Openings) > 0 {
		p.heading("Open internships")
		now := p.now()
		for _, in := range sum.Openings {
			p.line("  %s at %s (deadline %s, %s)",
				in.Title, in.Company,
				uiutil.FormatFriendlyDate(in.ApplicationDeadline),
				uiutil.FriendlyRelativeTime(in.ApplicationDeadline, now))
		}
	}

	if len(sum.Upcoming) > 0 {
		p.heading("Upcoming interviews")
		for _, u := range sum.Upcoming {
			title := "interview"
			if u.Internship != nil {
				title = strings.TrimSpace(u.Internship.Title + " at " + u.Internship.Company)
			}
			p.line("  %s: %s (%s)", uiutil.FormatFriendlyDateTime(u.Interview.At), title, u.Interview.Mode)
		}
	}
}
