package main

import (
	"flag"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/joho/godotenv"

	"github.com/GustavoCaso/spendsort/internal/category"
	"github.com/GustavoCaso/spendsort/internal/category/sqlite"
	"github.com/GustavoCaso/spendsort/internal/cli"
	categoryCmd "github.com/GustavoCaso/spendsort/internal/cli/category"
	"github.com/GustavoCaso/spendsort/internal/cli/correct"
	importCmd "github.com/GustavoCaso/spendsort/internal/cli/import"
	"github.com/GustavoCaso/spendsort/internal/cli/report"
	"github.com/GustavoCaso/spendsort/internal/cli/tui"
	"github.com/GustavoCaso/spendsort/internal/cli/web"
	"github.com/GustavoCaso/spendsort/internal/config"
	"github.com/GustavoCaso/spendsort/internal/logger"
	"github.com/GustavoCaso/spendsort/internal/session"
)

var configPath string

var subcommands = map[string]cli.Command{
	"category": categoryCmd.NewCommand(),
	"correct":  correct.NewCommand(),
	"import":   importCmd.NewCommand(),
	"report":   report.NewCommand(),
	"tui":      tui.NewCommand(),
	"web":      web.NewCommand(),
}

var subcommandsFlagSets = map[string]*flag.FlagSet{}

func main() {
	if len(os.Args) < 2 {
		fmt.Printf("subcommand is required\n")
		printUsage()

		os.Exit(1)
	}

	// a missing .env file is fine
	_ = godotenv.Load()

	defaultConfig := os.Getenv("SPENDSORT_CONFIG")
	if defaultConfig == "" {
		defaultConfig = "spendsort.toml"
	}

	for c, cLogic := range subcommands {
		fset := flag.NewFlagSet(c, flag.ExitOnError)
		fset.StringVar(&configPath, "c", defaultConfig, "Configuration file")

		cLogic.SetFlags(fset)

		subcommandsFlagSets[c] = fset
	}

	commandName := os.Args[1]
	command, ok := subcommands[commandName]
	if !ok {
		if strings.Contains(commandName, "help") {
			printHelp()

			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "unsupported command %s.\nUse 'help' command to print information about supported commands\n", commandName)
		os.Exit(1)
	}

	_ = subcommandsFlagSets[commandName].Parse(os.Args[2:])

	conf, err := config.Parse(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to parse the configuration. %s\n", err.Error())
		os.Exit(1)
	}

	if err = conf.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration. %s\n", err.Error())
		os.Exit(1)
	}

	appLogger := logger.New(conf.Logger)

	backend, closeBackend, err := openBackend(conf, appLogger)
	if err != nil {
		appLogger.Fatal("Unable to open the category store", "error", err.Error())
	}

	store := category.Load(backend, appLogger)

	s := session.New(store, appLogger, session.Options{
		DateFormat: conf.DateFormat,
		Currency:   conf.Currency,
	})

	if configurable, ok := command.(cli.Configurable); ok {
		configurable.Configure(conf)
	}

	runErr := command.Run(s, appLogger)

	if err = closeBackend(); err != nil {
		appLogger.Error("Error closing the category store", "error", err)
	}

	if runErr != nil {
		appLogger.Error("Command failed", "command", commandName, "error", runErr)
		os.Exit(1)
	}
}

func openBackend(conf *config.Config, appLogger *logger.Logger) (category.Backend, func() error, error) {
	switch conf.Backend {
	case config.BackendSQLite:
		appLogger.Debug("Using database", "path", conf.DB)

		backend, err := sqlite.New(conf.DB)
		if err != nil {
			return nil, nil, err
		}
		return backend, backend.Close, nil
	default:
		appLogger.Debug("Using categories file", "path", conf.Categories)

		return category.NewJSONFile(conf.Categories), func() error { return nil }, nil
	}
}

func printHelp() {
	printUsage()

	for _, c := range slices.Sorted(maps.Keys(subcommands)) {
		fmt.Printf("subcommand <%s>: %s\n", c, subcommands[c].Description())
		subcommandsFlagSets[c].PrintDefaults()
		fmt.Println()
	}
}

func printUsage() {
	fmt.Printf("usage: spendsort <subcommand> [flags]\n\n")
}
