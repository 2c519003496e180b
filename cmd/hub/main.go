package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bobbyhiddn/Veinity.Hub/cmd/internal/bootstrap"
)

func main() {
	var (
		envFiles    = flag.String("env", ".env", "Comma separated .env files to load before reading the environment")
		basePath    = flag.String("base", "", "Base directory the library and config paths resolve against")
		articlesDir = flag.String("articles", "", "Article directory, relative to the base directory")
		port        = flag.Int("port", 0, "Listen port (overrides PORT)")
		logLevel    = flag.String("log-level", "", "Log level (overrides HUB_LOG_LEVEL)")
	)
	flag.Parse()

	module, err := bootstrap.BuildModule(bootstrap.Options{
		EnvFiles:    bootstrap.SplitList(*envFiles),
		BasePath:    *basePath,
		ArticlesDir: *articlesDir,
		Port:        *port,
		LogLevel:    *logLevel,
	})
	if err != nil {
		log.Fatalf("bootstrap hub: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := module.Serve(ctx); err != nil {
		log.Fatalf("serve: %v", err)
	}
}
