// Package output writes rendered reports to a file or to the standard output.
package output

import (
	"bytes"
	"fmt"
	"io"

	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/pathutil"
	"github.com/bitrise-io/go-utils/v2/redactwriter"
)

// Stdout is the destination of the standard output.
const Stdout = "-"

// Writer is an interface for a structure which writes data to a destination, redacting the
// configured secrets first.
type Writer interface {
	Write(dest string, data []byte) error
}

type writer struct {
	pathModifier pathutil.PathModifier
	pathChecker  pathutil.PathChecker
	fileManager  fileutil.FileManager
	stdout       io.Writer
	secrets      []string
	logger       log.Logger
}

// NewWriter returns a structure that implements the Writer interface.
// Relative destinations are resolved against the working directory, and a destination
// which is an existing directory is rejected.
func NewWriter(modifier pathutil.PathModifier, checker pathutil.PathChecker, manager fileutil.FileManager, stdout io.Writer, secrets []string, logger log.Logger) Writer {
	return writer{
		pathModifier: modifier,
		pathChecker:  checker,
		fileManager:  manager,
		stdout:       stdout,
		secrets:      secrets,
		logger:       logger,
	}
}

func (w writer) Write(dest string, data []byte) error {
	if len(w.secrets) > 0 {
		redacted, err := w.redact(data)
		if err != nil {
			return err
		}
		data = redacted
	}

	if dest == Stdout {
		if _, err := w.stdout.Write(data); err != nil {
			return fmt.Errorf("failed to write to the standard output: %w", err)
		}
		return nil
	}

	path, err := w.resolve(dest)
	if err != nil {
		return err
	}

	w.logger.Debugf("Writing %d bytes to %s", len(data), path)
	if err := w.fileManager.WriteBytes(path, data); err != nil {
		return fmt.Errorf("failed to write file (%s): %w", path, err)
	}
	return nil
}

func (w writer) resolve(dest string) (string, error) {
	path, err := w.pathModifier.AbsPath(dest)
	if err != nil {
		return "", err
	}

	isDir, err := w.pathChecker.IsDirExists(path)
	if err != nil {
		return "", fmt.Errorf("failed to check if path (%s) is a directory: %w", path, err)
	}
	if isDir {
		return "", fmt.Errorf("path (%s) is a directory, please provide a file path as output", path)
	}

	return path, nil
}

func (w writer) redact(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	redactWriter := redactwriter.New(w.secrets, &buf, w.logger)
	if _, err := redactWriter.Write(data); err != nil {
		return nil, fmt.Errorf("failed to redact secrets: %w", err)
	}

	if err := redactWriter.Close(); err != nil {
		return nil, fmt.Errorf("failed to close redact writer: %w", err)
	}

	return buf.Bytes(), nil
}
