package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formfill/pkg/dom/rodpage"
	"github.com/goliatone/go-formfill/pkg/report"
)

type reportFlags struct {
	path   string
	format string
}

func (r *reportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&r.path, "report", "", "Write the fill report to this file instead of stdout")
	cmd.Flags().StringVar(&r.format, "format", "", "Report format: text, html or json (defaults to the config)")
}

func (a *app) writeReport(cmd *cobra.Command, flags reportFlags, entries []report.Entry) error {
	raw := flags.format
	if raw == "" {
		raw = a.config.Report.Format
	}
	format, err := report.ParseFormat(raw)
	if err != nil {
		return err
	}
	engine, err := report.New(report.WithBaseDir(a.config.Report.TemplateDir))
	if err != nil {
		return err
	}

	var out io.Writer = cmd.OutOrStdout()
	if flags.path != "" {
		f, err := os.Create(flags.path)
		if err != nil {
			return fmt.Errorf("create report: %w", err)
		}
		defer f.Close()
		out = f
	}
	return engine.Render(out, format, entries)
}

func (a *app) fillCmd() *cobra.Command {
	var (
		outDir    string
		formIndex int
		reports   reportFlags
	)
	cmd := &cobra.Command{
		Use:   "fill <glob...>",
		Short: "Fill the forms of static HTML files",
		Long: `Parses every HTML file matching the globs ("**" is supported), fills
the empty controls of each form and prints a report.

Example:
  formfill fill 'fixtures/**/*.html' --out filled/ --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := expandGlobs(args)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no files match %v", args)
			}
			if outDir != "" {
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					return fmt.Errorf("create output dir: %w", err)
				}
			}
			engine, err := a.engine(cmd)
			if err != nil {
				return err
			}

			var entries []report.Entry
			for _, file := range files {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				doc, filled, err := engine.FillHTML(cmd.Context(), f, formIndex)
				f.Close()
				if err != nil {
					return fmt.Errorf("%s: %w", file, err)
				}
				for i, r := range filled {
					entries = append(entries, report.Entry{Source: file, Form: entryForm(formIndex, i, len(filled)), Report: r})
				}
				a.logger.Debug("file filled", zap.String("file", file), zap.Int("forms", len(filled)))

				if outDir != "" {
					target := filepath.Join(outDir, filepath.Base(file))
					if err := os.WriteFile(target, []byte(doc.String()), 0o644); err != nil {
						return fmt.Errorf("write %s: %w", target, err)
					}
				}
			}
			return a.writeReport(cmd, reports, entries)
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Directory for the filled HTML files")
	cmd.Flags().IntVar(&formIndex, "form", -1, "Only fill the form at this index")
	reports.register(cmd)
	return cmd
}

func (a *app) browseCmd() *cobra.Command {
	var (
		formIndex int
		headful   bool
		hold      time.Duration
		outPath   string
		reports   reportFlags
	)
	cmd := &cobra.Command{
		Use:   "browse <url>",
		Short: "Fill the forms of a live page in a browser",
		Long: `Opens the URL in Chromium through the DevTools protocol and fills its
forms with real input and change events, so page scripts react as they
would to a user.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.engine(cmd)
			if err != nil {
				return err
			}
			browser := a.config.Browser
			session, err := rodpage.Open(cmd.Context(), args[0],
				rodpage.WithHeadless(browser.Headless && !headful),
				rodpage.WithBin(browser.Bin),
				rodpage.WithControlURL(browser.ControlURL),
				rodpage.WithTimeout(browser.Timeout),
				rodpage.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}
			defer session.Close()

			page := session.Page()
			var entries []report.Entry
			if formIndex >= 0 {
				form, err := page.Form(formIndex)
				if err != nil {
					return err
				}
				r, err := engine.Fill(cmd.Context(), form)
				if err != nil {
					return err
				}
				entries = append(entries, report.Entry{Source: args[0], Form: formIndex, Report: r})
			} else {
				forms := page.Forms()
				for i, form := range forms {
					r, err := engine.Fill(cmd.Context(), form)
					if err != nil {
						return err
					}
					entries = append(entries, report.Entry{Source: args[0], Form: entryForm(-1, i, len(forms)), Report: r})
				}
			}

			if outPath != "" {
				markup, err := page.HTML()
				if err != nil {
					return err
				}
				if err := os.WriteFile(outPath, []byte(markup), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", outPath, err)
				}
			}
			if err := a.writeReport(cmd, reports, entries); err != nil {
				return err
			}
			if hold > 0 {
				select {
				case <-cmd.Context().Done():
				case <-time.After(hold):
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&formIndex, "form", -1, "Only fill the form at this index")
	cmd.Flags().BoolVar(&headful, "headful", false, "Show the browser window")
	cmd.Flags().DurationVar(&hold, "hold", 0, "Keep the browser open this long after filling")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the filled page HTML to this file")
	reports.register(cmd)
	return cmd
}

// expandGlobs resolves doublestar patterns into a sorted, de-duplicated list.
func expandGlobs(patterns []string) ([]string, error) {
	seen := map[string]struct{}{}
	var out []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, match := range matches {
			if _, dup := seen[match]; dup {
				continue
			}
			seen[match] = struct{}{}
			out = append(out, match)
		}
	}
	sort.Strings(out)
	return out, nil
}

func entryForm(selected, i, total int) int {
	switch {
	case selected >= 0:
		return selected
	case total == 1:
		return -1
	default:
		return i
	}
}
