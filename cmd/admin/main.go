// Command admin runs maintenance tasks against the configured database.
//
//	admin [--config config.yml] create-admin <email> <password> [name]
//	admin [--config config.yml] seed
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/linkfolio/core/internal/config"
	"github.com/linkfolio/core/internal/database"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "Path to YAML config file")
	envPath := flag.String("env-file", config.DefaultEnvPath, "Path to .env file")
	flag.Usage = usage
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	if err := config.LoadEnvFile(*envPath); err != nil {
		logger.Fatal("failed to load env file", zap.Error(err))
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	db, err := database.Connect(cfg, true)
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}
	defer database.Close(db)

	ctx := context.Background()
	args := flag.Args()
	switch args[0] {
	case "create-admin":
		if len(args) < 3 {
			usage()
			os.Exit(2)
		}
		name := strings.Join(args[3:], " ")
		user, created, err := database.EnsureAdmin(ctx, db, args[1], args[2], name)
		if err != nil {
			logger.Fatal("create-admin failed", zap.Error(err))
		}
		if created {
			logger.Info("admin created", zap.String("email", user.Email), zap.String("id", user.ID))
		} else {
			logger.Info("existing user promoted to admin", zap.String("email", user.Email), zap.String("id", user.ID))
		}
	case "seed":
		if err := database.Seed(ctx, db, logger); err != nil {
			logger.Fatal("seed failed", zap.Error(err))
		}
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] create-admin <email> <password> [name]\n", os.Args[0])
	fmt.Fprintf(flag.CommandLine.Output(), "       %s [flags] seed\n", os.Args[0])
	flag.PrintDefaults()
}
