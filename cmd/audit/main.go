package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/goliatone/go-command/dispatcher"

	"github.com/bobbyhiddn/Veinity.Hub/cmd/internal/bootstrap"
	"github.com/bobbyhiddn/Veinity.Hub/internal/articles"
	librarycmd "github.com/bobbyhiddn/Veinity.Hub/internal/commands/library"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runAudit(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func runAudit(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("audit", flag.ContinueOnError)
	var (
		envFiles    = fs.String("env", ".env", "Comma separated .env files to load")
		basePath    = fs.String("base", "", "Base directory the library resolves against")
		articlesDir = fs.String("articles", "", "Article directory, relative to the base directory")
		category    = fs.String("category", "", "Only audit this category")
		maxIssues   = fs.Int("max-issues", 0, "Cap the number of issues reported (0 = all)")
		asJSON      = fs.Bool("json", false, "Print the report as JSON")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		EnvFiles:    bootstrap.SplitList(*envFiles),
		BasePath:    *basePath,
		ArticlesDir: *articlesDir,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	var report articles.AuditReport
	set, err := librarycmd.RegisterLibraryCommands(nil, module.Store(), module.Container().LoggerProvider(),
		librarycmd.WithReport(func(_ context.Context, _ librarycmd.AuditLibraryCommand, result articles.AuditReport) {
			report = result
		}),
	)
	if err != nil {
		return err
	}
	sub := dispatcher.SubscribeCommand(set.Audit)
	defer sub.Unsubscribe()

	msg := librarycmd.AuditLibraryCommand{Category: *category, MaxIssues: *maxIssues}
	if err := dispatcher.Dispatch(context.Background(), msg); err != nil {
		return fmt.Errorf("audit: %w", err)
	}

	if *asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return writeReport(out, report)
}

func writeReport(out io.Writer, report articles.AuditReport) error {
	fmt.Fprintf(out, "Articles: %d (%d listable)\n\n", report.Total, report.Listable)

	names := make([]string, 0, len(report.Categories))
	for name := range report.Categories {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tARTICLES")
	for _, name := range names {
		label := name
		if label == "" {
			label = "(root)"
		}
		fmt.Fprintf(tw, "%s\t%d\n", label, report.Categories[name])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(report.Issues) == 0 {
		fmt.Fprintln(out, "\nNo issues found.")
		return nil
	}
	fmt.Fprintln(out, "\nIssues:")
	for _, issue := range report.Issues {
		if issue.Detail != "" {
			fmt.Fprintf(out, "  %s: %s (%s)\n", issue.Path, issue.Problem, issue.Detail)
			continue
		}
		fmt.Fprintf(out, "  %s: %s\n", issue.Path, issue.Problem)
	}
	return nil
}
