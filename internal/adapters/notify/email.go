/*
Package notify mails a summary of each catalog run.
*/
package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	gomail "gopkg.in/mail.v2"

	"catalog_sync/internal/domain"
	"catalog_sync/internal/shared"
)

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailNotifier sends the run report through SMTP. With incomplete SMTP
// settings it does nothing.
type EmailNotifier struct {
	cfg  shared.NotifyConfig
	tmpl *template.Template
	dial func() sender
}

func NewEmailNotifier(cfg shared.NotifyConfig) *EmailNotifier {
	return &EmailNotifier{
		cfg:  cfg,
		tmpl: template.Must(template.New("report").Parse(reportHTMLTemplate)),
		dial: func() sender {
			d := gomail.NewDialer(cfg.SMTPServer, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
			d.Timeout = 10 * time.Second
			return d
		},
	}
}

func (n *EmailNotifier) Notify(ctx context.Context, r domain.RunReport) error {
	if !n.cfg.Enabled() {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m, err := n.message(r)
	if err != nil {
		return err
	}
	if err := n.dial().DialAndSend(m); err != nil {
		return fmt.Errorf("send run summary to %s: %w", n.cfg.ToEmail, err)
	}
	log.Info().Str("to", n.cfg.ToEmail).Msg("run summary sent")
	return nil
}

func (n *EmailNotifier) message(r domain.RunReport) (*gomail.Message, error) {
	var html bytes.Buffer
	if err := n.tmpl.Execute(&html, newView(r)); err != nil {
		return nil, fmt.Errorf("render run summary: %w", err)
	}
	from := n.cfg.FromEmail
	if from == "" {
		from = n.cfg.SMTPUser
	}
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", n.cfg.ToEmail)
	m.SetHeader("Subject", Subject(r))
	m.SetBody("text/plain", PlainText(r))
	m.AddAlternative("text/html", html.String())
	return m, nil
}

// Subject flags runs that skipped regions.
func Subject(r domain.RunReport) string {
	if skipped := len(r.SkippedRegions()); skipped > 0 {
		return fmt.Sprintf("Catalog update: %d region(s) skipped", skipped)
	}
	if !r.DocumentChanged {
		return "Catalog update: no changes"
	}
	return "Catalog update: page refreshed"
}

type countRow struct {
	Name  string
	Count int
}

type view struct {
	domain.RunReport
	CategoryRows []countRow
	CuratedRows  []countRow
	Took         string
}

func newView(r domain.RunReport) view {
	return view{
		RunReport:    r,
		CategoryRows: sortedCounts(r.Categories),
		CuratedRows:  sortedCounts(r.Curated),
		Took:         r.Duration.Round(time.Millisecond).String(),
	}
}

func sortedCounts(m map[string]int) []countRow {
	rows := make([]countRow, 0, len(m))
	for k, v := range m {
		rows = append(rows, countRow{Name: k, Count: v})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows
}

// PlainText is the text/plain part of the summary.
func PlainText(r domain.RunReport) string {
	var sb strings.Builder
	sb.WriteString(Subject(r) + "\n")
	sb.WriteString(strings.Repeat("=", 40) + "\n\n")
	fmt.Fprintf(&sb, "Started: %s (%s)\n", r.StartedAt.Format(time.RFC3339), r.Duration.Round(time.Millisecond))
	fmt.Fprintf(&sb, "Records: %d, eligible: %d\n", r.Records, r.Eligible)
	fmt.Fprintf(&sb, "Cache: %d checked, %d hits, %d fetched, %d failed\n",
		r.Fetch.Checked, r.Fetch.Hits, r.Fetch.Fetched, r.Fetch.Failed)
	fmt.Fprintf(&sb, "Page digest: %s\n\n", r.DocumentDigest)

	if rows := sortedCounts(r.Categories); len(rows) > 0 {
		sb.WriteString("CATEGORIES\n")
		for _, c := range rows {
			fmt.Fprintf(&sb, "\t- %s: %d\n", c.Name, c.Count)
		}
		sb.WriteString("\n")
	}
	if rows := sortedCounts(r.Curated); len(rows) > 0 {
		sb.WriteString("CURATED\n")
		for _, c := range rows {
			fmt.Fprintf(&sb, "\t- %s: %d\n", c.Name, c.Count)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("REGIONS\n")
	for _, reg := range r.Regions {
		if reg.OK() {
			fmt.Fprintf(&sb, "\t- %s: %d cards\n", reg.Region, reg.Cards)
		} else {
			fmt.Fprintf(&sb, "\t- %s: skipped (%s)\n", reg.Region, reg.Err)
		}
	}
	return sb.String()
}
