// Package source resolves report references given on the command line: file paths, globs,
// http(s) URLs and "-" for the standard input.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/retryhttp"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/docker/go-units"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
)

// Stdin is the reference of the standard input.
const Stdin = "-"

// Opener opens the content of a report reference.
type Opener interface {
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
}

type opener struct {
	logger      log.Logger
	fileManager fileutil.FileManager
	client      *retryablehttp.Client
	stdin       io.Reader
	maxSize     int64
}

// NewOpener returns an Opener reading files through fileManager and URLs with retries.
// Sources larger than maxSize bytes are rejected, maxSize <= 0 means no limit.
func NewOpener(logger log.Logger, fileManager fileutil.FileManager, maxSize int64, retryMax int) Opener {
	client := retryhttp.NewClient(logger)
	client.RetryMax = retryMax
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &opener{
		logger:      logger,
		fileManager: fileManager,
		client:      client,
		stdin:       os.Stdin,
		maxSize:     maxSize,
	}
}

// Open ...
func (o *opener) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	switch {
	case ref == Stdin:
		o.logger.Debugf("Reading report from the standard input")
		return o.limit(ref, io.NopCloser(o.stdin)), nil
	case IsURL(ref):
		return o.download(ctx, ref)
	default:
		return o.openFile(ref)
	}
}

func (o *opener) openFile(pth string) (io.ReadCloser, error) {
	if o.maxSize > 0 {
		size, err := o.fileManager.FileSizeInBytes(pth)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to get size of %s", pth)
		}
		if size > o.maxSize {
			return nil, sizeError(pth, o.maxSize)
		}
	}

	f, err := o.fileManager.Open(pth)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", pth)
	}
	return o.limit(pth, f), nil
}

func (o *opener) download(ctx context.Context, url string) (io.ReadCloser, error) {
	o.logger.Debugf("Downloading report: %s", url)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create request for %s", url)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to download %s", url)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		if err := resp.Body.Close(); err != nil {
			o.logger.Warnf("Failed to close response body: %s", err)
		}
		return nil, errors.Errorf("failed to download %s: status code %d", url, resp.StatusCode)
	}

	if o.maxSize > 0 && resp.ContentLength > o.maxSize {
		if err := resp.Body.Close(); err != nil {
			o.logger.Warnf("Failed to close response body: %s", err)
		}
		return nil, sizeError(url, o.maxSize)
	}

	return o.limit(url, resp.Body), nil
}

func (o *opener) limit(ref string, rc io.ReadCloser) io.ReadCloser {
	if o.maxSize <= 0 {
		return rc
	}
	return &limitedReadCloser{ReadCloser: rc, ref: ref, max: o.maxSize, remaining: o.maxSize}
}

// limitedReadCloser fails once more than max bytes were read.
type limitedReadCloser struct {
	io.ReadCloser
	ref       string
	max       int64
	remaining int64
}

func (l *limitedReadCloser) Read(p []byte) (int, error) {
	n, err := l.ReadCloser.Read(p)
	l.remaining -= int64(n)
	if l.remaining < 0 {
		return n, sizeError(l.ref, l.max)
	}
	return n, err
}

func sizeError(ref string, max int64) error {
	return fmt.Errorf("%s exceeds the maximum report size of %s", ref, units.HumanSize(float64(max)))
}

// IsURL reports whether ref is an http or https URL.
func IsURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// Expand treats every file path pattern as a glob, ** matching any number of directories.
// URLs and Stdin are passed through. Patterns without matches are dropped.
func Expand(patterns []string) ([]string, error) {
	var refs []string
	for _, pattern := range patterns {
		if pattern == Stdin || IsURL(pattern) {
			refs = append(refs, pattern)
			continue
		}

		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid glob pattern (%s)", pattern)
		}
		sort.Strings(matches)
		refs = append(refs, matches...)
	}
	return refs, nil
}
