package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	flag "github.com/spf13/pflag"

	"github.com/overcomingroom/bellbell/internal/config"
	"github.com/overcomingroom/bellbell/pkg/logger"
	"github.com/overcomingroom/bellbell/pkg/migration"
)

func main() {
	path := flag.StringP("path", "p", "", "migrations directory (defaults to migration.path)")
	force := flag.Int("force", -1, "set the schema version without running migrations")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: migrate [flags] up|down|version\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger.Setup(logger.Config{Level: cfg.Log.Level, Pretty: true})

	if *path == "" {
		*path = cfg.Migration.Path
	}
	runner := migration.NewRunner(migration.Config{
		MigrationsPath: *path,
		DatabaseURL:    cfg.Database.URL(),
	})

	if *force >= 0 {
		if err := runner.Force(*force); err != nil {
			log.Fatal().Err(err).Msg("force failed")
		}
		return
	}

	switch cmd := flag.Arg(0); cmd {
	case "up":
		err = runner.Up()
	case "down":
		err = runner.Down()
	case "version":
		var (
			version uint
			dirty   bool
		)
		version, dirty, err = runner.Version()
		if err == nil {
			log.Info().Uint("version", version).Bool("dirty", dirty).Msg("current schema version")
		}
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
}
