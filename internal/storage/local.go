package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type Local struct {
	BaseDir   string
	URLPrefix string
}

func NewLocal(baseDir, urlPrefix string) *Local {
	return &Local{BaseDir: baseDir, URLPrefix: urlPrefix}
}

func (l *Local) Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error) {
	_ = ctx

	ext, err := proofExt(in.Filename)
	if err != nil {
		return PutResult{}, err
	}

	dir := l.BaseDir
	if in.OrderID != "" {
		dir = filepath.Join(dir, in.OrderID)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return PutResult{}, err
	}

	name := uuid.NewString() + ext
	if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
		// vanishingly unlikely, but never overwrite a proof
		name = uuid.NewString() + ext
	}

	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return PutResult{}, err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return PutResult{}, err
	}

	key := name
	if in.OrderID != "" {
		key = in.OrderID + "/" + name
	}
	url := strings.TrimRight(l.URLPrefix, "/") + "/" + key
	return PutResult{Key: key, URL: url}, nil
}

func (l *Local) Delete(ctx context.Context, key string) error {
	_ = ctx
	key = filepath.Clean("/" + key) // no path escapes
	return os.Remove(filepath.Join(l.BaseDir, key))
}

func (l *Local) String() string { return fmt.Sprintf("local(%s)", l.BaseDir) }
