// Command migrate runs schema operations against the configured database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"quill/internal/config"
	"quill/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func usage() error {
	return fmt.Errorf("usage: migrate <up|auto|status|down> [version]")
}

func run() error {
	flag.Parse()
	if flag.NArg() < 1 {
		return usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.ConnectWithOptions(cfg, database.ConnectOptions{ApplySchema: false})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	ctx := context.Background()
	switch strings.ToLower(strings.TrimSpace(flag.Arg(0))) {
	case "up":
		if err := database.RunMigrations(ctx, db); err != nil {
			return fmt.Errorf("sql migrations failed: %w", err)
		}
		log.Println("sql migrations applied")
	case "auto":
		if err := db.AutoMigrate(database.PersistentModels()...); err != nil {
			return fmt.Errorf("automigrate failed: %w", err)
		}
		log.Println("automigrate complete")
	case "status":
		versions, err := database.AppliedVersions(ctx, db)
		if err != nil {
			return fmt.Errorf("read migration log: %w", err)
		}
		if len(versions) == 0 {
			log.Println("no migrations applied")
			return nil
		}
		for _, v := range versions {
			log.Printf("applied: %06d", v)
		}
	case "down":
		if flag.NArg() < 2 {
			return usage()
		}
		version, err := strconv.Atoi(flag.Arg(1))
		if err != nil {
			return fmt.Errorf("invalid version %q", flag.Arg(1))
		}
		if err := database.RollbackMigration(ctx, db, version); err != nil {
			return fmt.Errorf("rollback failed: %w", err)
		}
		log.Printf("rolled back migration %06d", version)
	default:
		return usage()
	}
	return nil
}
