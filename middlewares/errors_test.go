package middlewares_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/loom/middlewares"
)

func TestPanicError(t *testing.T) {
	t.Parallel()

	t.Run("message carries the panic value", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, "panic: boom", (&middlewares.PanicError{Value: "boom"}).Error())
		require.Equal(t, "panic: 42", (&middlewares.PanicError{Value: 42}).Error())
	})

	t.Run("detected through wrapping", func(t *testing.T) {
		t.Parallel()

		pe := &middlewares.PanicError{Value: "boom"}
		wrapped := fmt.Errorf("request aborted: %w", pe)

		require.True(t, middlewares.IsPanicError(wrapped))
		got, ok := middlewares.AsPanicError(wrapped)
		require.True(t, ok)
		require.Same(t, pe, got)
	})

	t.Run("unrelated errors are not panics", func(t *testing.T) {
		t.Parallel()

		err := errors.New("plain")
		require.False(t, middlewares.IsPanicError(err))
		_, ok := middlewares.AsPanicError(err)
		require.False(t, ok)
	})
}
