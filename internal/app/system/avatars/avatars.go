// internal/app/system/avatars/avatars.go

// Package avatars manages profile images in the object store: uploading a
// new avatar under a unique path, and deleting one from either of the two
// reference formats that exist in the wild. Early profile documents stored
// a fully-qualified URL in icon_path; later ones store the bare relative
// object path. Both must resolve to something deletable.
package avatars

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"
	"github.com/scorepadhq/scorepad/internal/app/system/objstore"
)

// prefix is the directory all avatar objects live under.
const prefix = "avatars"

// Upload stores an avatar and returns the object path to record on the
// profile. The path embeds a fresh uuid so a re-upload never overwrites the
// previous object (the caller deletes the old path after the new write
// succeeds).
func Upload(ctx context.Context, store objstore.Store, filename string, r io.Reader, contentType string) (string, error) {
	name := fmt.Sprintf("%s-%s", uuid.New().String()[:8], sanitizeFilename(filename))
	p := path.Join(prefix, name)

	opts := &storage.PutOptions{ContentType: contentType}
	if err := store.Put(ctx, p, r, opts); err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}
	return p, nil
}

// Deleter is the slice of the object store Delete needs. Every objstore
// backend satisfies it; tests substitute fakes.
type Deleter interface {
	Delete(ctx context.Context, path string) error
}

// Delete removes the object behind ref, tolerating an already-absent
// object. Returns nil when there was nothing to delete.
func Delete(ctx context.Context, store Deleter, ref string) error {
	p := ResolvePath(ref)
	if p == "" {
		return nil
	}
	if err := store.Delete(ctx, p); err != nil && !isNotFound(err) {
		return err
	}
	return nil
}

// ResolvePath turns an avatar reference into a relative object path. A bare
// path passes through; a fully-qualified URL is reduced to the part of its
// path starting at the avatars directory.
func ResolvePath(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if !strings.Contains(ref, "://") {
		return strings.TrimPrefix(ref, "/")
	}

	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	p := strings.TrimPrefix(u.Path, "/")
	if idx := strings.Index(p, prefix+"/"); idx >= 0 {
		return p[idx:]
	}
	return p
}

func isNotFound(err error) bool {
	if errors.Is(err, objstore.ErrObjectNotFound) {
		return true
	}
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, os.ErrNotExist) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") ||
		strings.Contains(msg, "no such") ||
		strings.Contains(msg, "nosuchkey") ||
		strings.Contains(msg, "404")
}

func sanitizeFilename(filename string) string {
	filename = path.Base(filename)
	result := make([]byte, 0, len(filename))
	for i := 0; i < len(filename); i++ {
		c := filename[i]
		if isAllowedFilenameChar(c) {
			result = append(result, c)
		} else {
			result = append(result, '_')
		}
	}
	if len(result) == 0 {
		return "avatar"
	}
	if len(result) > 100 {
		ext := path.Ext(string(result))
		if len(ext) > 0 && len(ext) < 10 {
			result = append(result[:100-len(ext)], ext...)
		} else {
			result = result[:100]
		}
	}
	return string(result)
}

func isAllowedFilenameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '_' || c == '.'
}
