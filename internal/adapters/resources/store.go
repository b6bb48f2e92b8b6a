// Package resources provides the filesystem byte store behind downloads
//
// The tree is laid out as root/serviceName/version/key. Keys arrive as
// safekey.Key values, so the only strings spliced into paths here have
// already been certified traversal-free
package resources

import (
	"context"
	"encoding/hex"
	"errors"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"

	"devportal/internal/core/safekey"
	perr "devportal/internal/platform/errors"

	"github.com/zeebo/blake3"
)

// Resource is a fetched resource with its transport metadata
type Resource struct {
	Bytes       []byte
	ContentType string
	Digest      string // blake3 hex, doubles as the strong ETag value
}

// Store reads resources from a directory tree
type Store struct {
	root string
}

// NewStore builds a Store rooted at dir
func NewStore(root string) *Store { return &Store{root: root} }

// Fetch loads the resource for one version of one service
// absent file, directory hit, or dangling link all map to not-found
func (s *Store) Fetch(ctx context.Context, serviceName, version string, key safekey.Key) (*Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := safekey.ValidateSegment(serviceName); err != nil {
		return nil, err
	}
	if err := safekey.ValidateSegment(version); err != nil {
		return nil, err
	}

	p := filepath.Join(s.root, serviceName, version, filepath.FromSlash(key.String()))

	fi, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, perr.NotFoundf("resource %q not found", key)
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "resource stat failed")
	}
	if !fi.Mode().IsRegular() {
		return nil, perr.NotFoundf("resource %q not found", key)
	}

	b, err := os.ReadFile(p)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "resource read failed")
	}

	sum := blake3.Sum256(b)
	return &Resource{
		Bytes:       b,
		ContentType: contentType(key.String()),
		Digest:      hex.EncodeToString(sum[:]),
	}, nil
}

func contentType(key string) string {
	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
