package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"instarecipe/internal/di"
	"instarecipe/internal/structures"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	// API keys and account credentials live in .env, not in the config.
	_ = godotenv.Load()

	flags := &structures.CliFlags{
		ConfigPath: *configPath,
		DebugMode:  *debug,
	}

	if _, err := di.InitApp(flags); err != nil {
		fmt.Fprintf(os.Stderr, "instarecipe: %v\n", err)
		os.Exit(1)
	}
}
