package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/modabuy/storefront-backend/pkg/config"
	"github.com/modabuy/storefront-backend/pkg/migrate"
)

func main() {
	_ = godotenv.Load()

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: migrate [up|down|status]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}

	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	ctx := context.Background()
	switch command {
	case "up":
		err = migrate.Up(ctx, cfg.DB.DSN)
	case "down":
		err = migrate.Down(ctx, cfg.DB.DSN)
	case "status":
		err = migrate.Status(ctx, cfg.DB.DSN)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "migrate", command+":", err)
		os.Exit(1)
	}
}
