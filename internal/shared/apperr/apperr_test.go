package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPStatusPerKind(t *testing.T) {
	t.Parallel()

	require.Equal(t, http.StatusBadRequest, HTTPStatus(InvalidErr("x", nil)))
	require.Equal(t, http.StatusNotFound, HTTPStatus(NotFoundErr("x")))
	require.Equal(t, http.StatusUnauthorized, HTTPStatus(UnauthorizedErr("x")))
	require.Equal(t, http.StatusForbidden, HTTPStatus(ForbiddenErr("x")))
	require.Equal(t, http.StatusConflict, HTTPStatus(ConflictErr("x")))
	require.Equal(t, http.StatusUnprocessableEntity, HTTPStatus(PreconditionErr("x")))
	require.Equal(t, http.StatusServiceUnavailable, HTTPStatus(UnavailableErr("x")))
	require.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain")))
}

func TestWrapKeepsCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("db down")
	ae := Wrap(cause)
	require.ErrorIs(t, ae, cause)
	require.Equal(t, http.StatusInternalServerError, HTTPStatus(ae))

	require.Nil(t, Wrap(nil))
}

func TestPublicMessageNeverLeaksInternals(t *testing.T) {
	t.Parallel()

	ae := Wrap(errors.New("dial tcp 10.0.0.5:3306: connection refused"))
	msg := PublicMessage(ae)
	require.NotContains(t, msg, "10.0.0.5")

	require.Equal(t, "Something went wrong. Please try again.", PublicMessage(errors.New("raw")))
	require.Equal(t, "Try later.", PublicMessage(UnavailableErr("Try later.")))
}

func TestAsSeesWrappedAppError(t *testing.T) {
	t.Parallel()

	inner := NotFoundErr("Order not found.")
	wrapped := fmt.Errorf("handler: %w", inner)

	ae, ok := As(wrapped)
	require.True(t, ok)
	require.Equal(t, NotFound, ae.Kind)
	require.Equal(t, http.StatusNotFound, HTTPStatus(wrapped))
}
