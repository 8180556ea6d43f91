package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitCodePerKind(t *testing.T) {
	cases := []struct {
		kind Kind
		code int
	}{
		{KindAuth, 10},
		{KindNetwork, 11},
		{KindAPI, 12},
		{KindParse, 13},
		{KindFilesystem, 14},
		{KindIndexing, 15},
		{KindEmbedding, 16},
		{KindSummarization, 17},
	}
	for _, c := range cases {
		err := New(c.kind, "boom")
		assert.Equal(t, c.code, ExitCode(err))
	}
}

func TestExitCodeNilIsZero(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
}

func TestExitCodeUnknownErrorIsOne(t *testing.T) {
	assert.Equal(t, 1, ExitCode(errors.New("plain")))
}

func TestWrapPreservesCauseForUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	wrapped := Wrap(KindFilesystem, "write rendered document", cause)
	require.Error(t, wrapped)
	assert.True(t, errors.Is(wrapped, cause))
	assert.Equal(t, 14, ExitCode(wrapped))
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.NoError(t, Wrap(KindFilesystem, "no-op", nil))
}

func TestErrorMessageFormat(t *testing.T) {
	err := New(KindAPI, "non-2xx response")
	assert.Equal(t, "[api] non-2xx response", err.Error())

	cause := fmt.Errorf("timeout")
	wrapped := Wrap(KindNetwork, "list documents", cause)
	assert.Equal(t, "[network] list documents: timeout", wrapped.Error())
}
