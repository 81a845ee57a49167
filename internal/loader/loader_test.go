package loader

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcornwell/universal-machine/internal/segment"
)

func TestLoadPopulatesSegmentZero(t *testing.T) {
	store := segment.New(4)
	data := []byte{
		0x00, 0x00, 0x00, 0x01,
		0xff, 0xee, 0xdd, 0xcc,
	}
	require.NoError(t, Load(store, bytes.NewReader(data)))

	n, err := store.Length(0)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), n)

	w0, err := store.Get(0, 0)
	require.NoError(t, err)
	assert.Equal(t, segment.Word(1), w0)

	w1, err := store.Get(0, 1)
	require.NoError(t, err)
	assert.Equal(t, segment.Word(0xffeeddcc), w1)
}

func TestLoadEmptyImage(t *testing.T) {
	store := segment.New(4)
	require.NoError(t, Load(store, bytes.NewReader(nil)))
	n, err := store.Length(0)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), n)
}

func TestLoadRejectsSizeNotMultipleOfFour(t *testing.T) {
	store := segment.New(4)
	err := Load(store, bytes.NewReader([]byte{1, 2, 3}))
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestLoadBytesSameAsLoad(t *testing.T) {
	store := segment.New(4)
	data := []byte{0, 0, 0, 42}
	require.NoError(t, LoadBytes(store, data))
	w, err := store.Get(0, 0)
	require.NoError(t, err)
	assert.Equal(t, segment.Word(42), w)
}
