package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalPutAndDelete(t *testing.T) {
	t.Parallel()

	l := NewLocal(t.TempDir(), "/proofs")
	ctx := context.Background()

	res, err := l.Put(ctx, strings.NewReader("fake-png-bytes"), PutInput{
		OrderID:     "order-1",
		Filename:    "screenshot.PNG",
		ContentType: "image/png",
		Size:        14,
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(res.Key, "order-1/"))
	require.True(t, strings.HasSuffix(res.Key, ".png"), "extension normalizes to lowercase")
	require.Equal(t, "/proofs/"+res.Key, res.URL)

	b, err := os.ReadFile(filepath.Join(l.BaseDir, res.Key))
	require.NoError(t, err)
	require.Equal(t, "fake-png-bytes", string(b))

	require.NoError(t, l.Delete(ctx, res.Key))
	_, err = os.Stat(filepath.Join(l.BaseDir, res.Key))
	require.True(t, os.IsNotExist(err))
}

func TestLocalPutRejectsNonImage(t *testing.T) {
	t.Parallel()

	l := NewLocal(t.TempDir(), "/proofs")
	_, err := l.Put(context.Background(), strings.NewReader("x"), PutInput{
		OrderID:  "order-1",
		Filename: "proof.pdf",
	})
	require.ErrorIs(t, err, ErrUnsupportedType)

	_, err = l.Put(context.Background(), strings.NewReader("x"), PutInput{
		OrderID:  "order-1",
		Filename: "noextension",
	})
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestLocalKeysAreUniquePerUpload(t *testing.T) {
	t.Parallel()

	l := NewLocal(t.TempDir(), "/proofs")
	ctx := context.Background()

	in := PutInput{OrderID: "order-1", Filename: "proof.jpg"}
	first, err := l.Put(ctx, strings.NewReader("a"), in)
	require.NoError(t, err)
	second, err := l.Put(ctx, strings.NewReader("b"), in)
	require.NoError(t, err)

	require.NotEqual(t, first.Key, second.Key)
}

func TestLocalDeleteIgnoresPathEscapes(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	outside := filepath.Join(base, "..", "victim.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep me"), 0o644))

	l := NewLocal(filepath.Join(base, "proofs"), "/proofs")
	_ = l.Delete(context.Background(), "../../victim.txt")

	_, err := os.Stat(outside)
	require.NoError(t, err, "delete must not reach outside the base dir")
}
