package mock_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/fwojciec/trickle"
	"github.com/fwojciec/trickle/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackend_Stream(t *testing.T) {
	t.Parallel()
	var s mock.Stream
	b := mock.Backend{
		StreamFn: func(_ context.Context, prompt string) (trickle.Stream, error) {
			assert.Equal(t, "hi", prompt)
			return &s, nil
		},
	}
	got, err := b.Stream(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, &s, got)
}

func TestStream_Next(t *testing.T) {
	t.Parallel()
	t.Run("delegates to NextFn", func(t *testing.T) {
		t.Parallel()
		want := trickle.EventText{Delta: "hello"}
		s := mock.Stream{
			NextFn: func() (trickle.Event, error) {
				return want, nil
			},
		}
		got, err := s.Next()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("panics when NextFn not set", func(t *testing.T) {
		t.Parallel()
		s := mock.Stream{}
		assert.Panics(t, func() {
			_, _ = s.Next()
		})
	})
}

func TestStream_NilSafeMethods(t *testing.T) {
	t.Parallel()
	s := mock.Stream{}
	assert.Equal(t, trickle.StreamStateNew, s.State())
	assert.Equal(t, "", s.Content())
	assert.NoError(t, s.Close())
}

func TestEvents(t *testing.T) {
	t.Parallel()

	t.Run("yields events then EOF", func(t *testing.T) {
		t.Parallel()
		s := mock.Events(nil, trickle.EventText{Delta: "a"}, trickle.EventText{Delta: "b"})
		evt, err := s.Next()
		require.NoError(t, err)
		assert.Equal(t, trickle.EventText{Delta: "a"}, evt)
		evt, err = s.Next()
		require.NoError(t, err)
		assert.Equal(t, trickle.EventText{Delta: "b"}, evt)
		_, err = s.Next()
		assert.ErrorIs(t, err, io.EOF)
		_, err = s.Next()
		assert.ErrorIs(t, err, io.EOF)
	})

	t.Run("finishes with the given error", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		s := mock.Events(boom, trickle.EventText{Delta: "a"})
		_, err := s.Next()
		require.NoError(t, err)
		_, err = s.Next()
		assert.ErrorIs(t, err, boom)
	})
}
