package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/bitrise-io/junitparser/junit"
	"github.com/bitrise-io/junitparser/output"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type mergeCommand struct {
	app *App

	InputOptions
	SuiteName string `long:"suite-name" description:"Name of the merged report"`
	Pretty    bool   `long:"pretty" description:"Indent the merged report"`

	Args struct {
		Paths []string `positional-arg-name:"path" required:"2" description:"Reports to merge followed by the output path"`
	} `positional-args:"yes" required:"yes"`
}

func (c *mergeCommand) Execute(_ []string) error {
	a := c.app
	inputs := c.Args.Paths[:len(c.Args.Paths)-1]
	dest := c.Args.Paths[len(c.Args.Paths)-1]
	// The report itself goes to the standard output.
	quiet := dest == output.Stdout

	reports, err := a.load(c.InputOptions, inputs)
	if err != nil {
		return err
	}

	merged := junit.Merge(reports, c.SuiteName)

	var buf bytes.Buffer
	if err := merged.Encode(&buf, c.Pretty); err != nil {
		return errors.Wrap(err, "failed to encode the merged report")
	}
	if err := a.writer.Write(dest, buf.Bytes()); err != nil {
		return err
	}

	if !quiet {
		tests, _ := merged.Tests()
		a.logger.Donef("Merged %d reports (%d test suites, %d tests) into %s", len(reports), merged.Len(), tests, dest)
	}
	return nil
}

type verifyCommand struct {
	app *App

	InputOptions

	Args struct {
		Paths []string `positional-arg-name:"path" required:"1" description:"Reports to verify"`
	} `positional-args:"yes" required:"yes"`
}

func (c *verifyCommand) Execute(_ []string) error {
	a := c.app
	reports, err := a.load(c.InputOptions, c.Args.Paths)
	if err != nil {
		return err
	}

	if err := junit.Verify(reports...); err != nil {
		return err
	}

	a.logger.Donef("All test cases of %d reports passed", len(reports))
	return nil
}

type summaryCommand struct {
	app *App

	InputOptions
	Format string `long:"format" choice:"text" choice:"json" choice:"yaml" default:"text" description:"Output format"`

	Args struct {
		Paths []string `positional-arg-name:"path" required:"1" description:"Reports to summarize"`
	} `positional-args:"yes" required:"yes"`
}

func (c *summaryCommand) Execute(_ []string) error {
	a := c.app
	reports, err := a.load(c.InputOptions, c.Args.Paths)
	if err != nil {
		return err
	}

	summary := junit.Summarize(junit.Merge(reports, ""))

	switch c.Format {
	case "json":
		encoder := json.NewEncoder(a.stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(summary)
	case "yaml":
		encoder := yaml.NewEncoder(a.stdout)
		encoder.SetIndent(2)
		if err := encoder.Encode(summary); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return writeText(a.stdout, summary)
	}
}

func writeText(w io.Writer, s junit.Summary) error {
	if _, err := fmt.Fprintf(w, "%d tests, %d failures, %d errors, %d skipped in %ss\n",
		s.Tests, s.Failures, s.Errors, s.Skipped, formatSeconds(s.Time)); err != nil {
		return err
	}

	for _, suite := range s.Suites {
		if _, err := fmt.Fprintf(w, "%s: %d tests, %d failures, %d errors, %d skipped in %ss\n",
			suite.Name, suite.Tests, suite.Failures, suite.Errors, suite.Skipped, formatSeconds(suite.Time)); err != nil {
			return err
		}
		for _, failed := range suite.Failed {
			if _, err := fmt.Fprintf(w, "  FAILED %s\n", failed); err != nil {
				return err
			}
		}
	}
	return nil
}

func formatSeconds(t float64) string {
	return strconv.FormatFloat(t, 'f', -1, 64)
}
