package rankerr

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWrapsSentinel(t *testing.T) {
	err := New(Io, "reading %s", "words_fst")
	assert.True(t, errors.Is(err, ErrIo))
	assert.False(t, errors.Is(err, ErrEncoding))
	assert.Equal(t, Io, KindOf(err))
}

func TestFromContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := FromContext(ctx)
	assert.True(t, errors.Is(err, ErrCancelled))
	assert.Equal(t, Cancelled, KindOf(err))
}

func TestFromContextNilWhenLive(t *testing.T) {
	err := FromContext(context.Background())
	assert.NoError(t, err)
}

func TestKindOfDefaultsToCorruption(t *testing.T) {
	assert.Equal(t, Corruption, KindOf(errors.New("unrelated")))
}
