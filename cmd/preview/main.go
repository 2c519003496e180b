package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	hub "github.com/bobbyhiddn/Veinity.Hub"
	"github.com/bobbyhiddn/Veinity.Hub/cmd/internal/bootstrap"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runPreview(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func runPreview(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	var (
		envFiles    = fs.String("env", ".env", "Comma separated .env files to load")
		basePath    = fs.String("base", "", "Base directory the library resolves against")
		articlesDir = fs.String("articles", "", "Article directory, relative to the base directory")
		filePath    = fs.String("file", "", "Article to preview, relative to the article root")
		renderHTML  = fs.Bool("render-html", true, "Render the body to HTML")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *filePath == "" {
		return errors.New("--file is required")
	}

	module, err := moduleBuilder(bootstrap.Options{
		EnvFiles:    bootstrap.SplitList(*envFiles),
		BasePath:    *basePath,
		ArticlesDir: *articlesDir,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	return preview(context.Background(), module, *filePath, *renderHTML, out)
}

func preview(ctx context.Context, module *hub.Module, path string, renderHTML bool, out io.Writer) error {
	if !renderHTML {
		article, err := module.Store().Get(ctx, path)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Path: %s\nModified: %s\n\n", article.Path, article.ModTime.Format("2006-01-02 15:04:05"))
		writeMetadata(out, article.Metadata)
		fmt.Fprintf(out, "Markdown Body:\n%s\n", article.Body)
		return nil
	}

	rendered, err := module.Articles().Render(ctx, path, 0)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Path: %s\n\n", rendered.Path)
	writeMetadata(out, rendered.Metadata)
	if len(rendered.Related) > 0 {
		fmt.Fprintln(out, "Related:")
		for _, related := range rendered.Related {
			fmt.Fprintf(out, "  - %s (%s)\n", related.Title(), related.Path())
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "Rendered HTML:\n%s\n", rendered.HTML)
	return nil
}

func writeMetadata(out io.Writer, meta map[string]any) {
	if len(meta) == 0 {
		fmt.Fprint(out, "Frontmatter: none\n\n")
		return
	}
	encoded, err := json.MarshalIndent(meta, "", "  ")
	if err == nil {
		fmt.Fprintf(out, "Frontmatter:\n%s\n\n", encoded)
	}
}
