package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

// Opener mocks source.Opener.
type Opener struct {
	mock.Mock
}

func (_m *Opener) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	args := _m.Called(ctx, ref)
	var rc io.ReadCloser
	if v := args.Get(0); v != nil {
		rc = v.(io.ReadCloser)
	}
	return rc, args.Error(1)
}
