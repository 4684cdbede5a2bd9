package main

import (
	"context"
	"os"

	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/pathutil"
	"github.com/bitrise-io/junitparser/cli"
	"github.com/bitrise-io/junitparser/output"
	"github.com/bitrise-io/junitparser/source"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	logger := log.NewLogger()

	config, err := cli.ParseConfig()
	if err != nil {
		logger.Errorf("Issue with input: %s", err)
		return 1
	}

	logger.EnableDebugLog(config.Debug)
	if config.Debug {
		config.Print()
	}

	// Already validated by ParseConfig.
	maxSize, _ := config.MaxSourceBytes()

	fileManager := fileutil.NewFileManager()
	opener := source.NewOpener(logger, fileManager, maxSize, config.HTTPRetries)
	writer := output.NewWriter(pathutil.NewPathModifier(), pathutil.NewPathChecker(), fileManager, os.Stdout, config.Secrets(), logger)

	app := cli.New(logger, opener, writer, os.Stdout)
	err = app.Run(context.Background(), args)
	code := cli.ExitCode(err)
	if err != nil {
		if config.Debug {
			logger.Errorf("%+v", err)
		} else {
			logger.Errorf("%s", err)
		}
	}
	return code
}
