// Package cli implements the junitparser command line: merge, verify and summary.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/junitparser/junit"
	"github.com/bitrise-io/junitparser/junit/xunit2"
	"github.com/bitrise-io/junitparser/output"
	"github.com/bitrise-io/junitparser/source"
	"github.com/jessevdk/go-flags"
	pkgerrors "github.com/pkg/errors"
)

// Name is the name of the executable.
const Name = "junitparser"

// Version is set at build time.
var Version = "dev"

// Options are the options accepted before the command.
type Options struct {
	Version bool `short:"v" long:"version" description:"Print the version and exit"`
}

// App runs the commands against the injected collaborators.
type App struct {
	logger log.Logger
	opener source.Opener
	writer output.Writer
	stdout io.Writer

	ctx context.Context
}

// New ...
func New(logger log.Logger, opener source.Opener, writer output.Writer, stdout io.Writer) *App {
	return &App{
		logger: logger,
		opener: opener,
		writer: writer,
		stdout: stdout,
	}
}

// Run parses args (without the program name) and executes the selected command.
// Usage errors are returned as *flags.Error, see ExitCode.
func (a *App) Run(ctx context.Context, args []string) error {
	a.ctx = ctx

	var opts Options
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = Name
	parser.Usage = "[OPTIONS] <merge | summary | verify>"
	parser.SubcommandsOptional = true

	if _, err := parser.AddCommand("merge",
		"Merge reports",
		"Merges the suites of the given reports into one report, equal suites are folded together. The last argument is the output path, - writes to the standard output.",
		&mergeCommand{app: a}); err != nil {
		return err
	}
	if _, err := parser.AddCommand("verify",
		"Verify that every test case passed",
		"Exits with a non-zero code when a test case of the given reports failed or errored. Skipped test cases pass.",
		&verifyCommand{app: a}); err != nil {
		return err
	}
	if _, err := parser.AddCommand("summary",
		"Print the statistics of reports",
		"Merges the given reports and prints their statistics as text, json or yaml.",
		&summaryCommand{app: a}); err != nil {
		return err
	}

	parser.CommandHandler = func(command flags.Commander, args []string) error {
		if opts.Version || command == nil {
			return nil
		}
		return command.Execute(args)
	}

	rest, err := parser.ParseArgs(args)
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			_, err = fmt.Fprintln(a.stdout, flagsErr.Message)
		}
		return err
	}

	switch {
	case opts.Version:
		_, err = fmt.Fprintf(a.stdout, "%s %s\n", Name, Version)
		return err
	case parser.Active != nil:
		return nil
	case len(rest) > 0:
		return &flags.Error{Type: flags.ErrUnknownCommand, Message: fmt.Sprintf("Unknown command `%s'", rest[0])}
	default:
		return &flags.Error{Type: flags.ErrCommandRequired, Message: "Please specify one command of: merge, summary or verify"}
	}
}

// ExitCode maps the error returned by Run to the exit code of the process:
// 0 on success, 2 on usage errors and 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var flagsErr *flags.Error
	if errors.As(err, &flagsErr) {
		return 2
	}
	return 1
}

// InputOptions select and parse the reports of a command.
type InputOptions struct {
	Glob   bool   `long:"glob" description:"Expand the paths as glob patterns, ** matches any number of directories"`
	Schema string `long:"schema" choice:"junit" choice:"xunit2" default:"junit" description:"Dialect of the reports"`
}

func (o InputOptions) schema() *junit.Schema {
	if o.Schema == xunit2.Schema.Name {
		return xunit2.Schema
	}
	return junit.JUnit
}

// load reads every referenced report in order. A report that cannot be opened or parsed fails the whole load.
func (a *App) load(opts InputOptions, refs []string) ([]*junit.Report, error) {
	if opts.Glob {
		expanded, err := source.Expand(refs)
		if err != nil {
			return nil, err
		}
		if len(expanded) == 0 {
			return nil, fmt.Errorf("no reports match %v", refs)
		}
		refs = expanded
	}

	schema := opts.schema()
	var reports []*junit.Report
	for _, ref := range refs {
		r, err := a.loadOne(schema, ref)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}

func (a *App) loadOne(schema *junit.Schema, ref string) (*junit.Report, error) {
	rc, err := a.opener.Open(a.ctx, ref)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rc.Close(); err != nil {
			a.logger.Warnf("Failed to close %s: %s", ref, err)
		}
	}()

	r, err := schema.FromReader(rc)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to parse %s", ref)
	}
	a.logger.Debugf("Parsed %s: %d test suites", ref, r.Len())
	return r, nil
}
