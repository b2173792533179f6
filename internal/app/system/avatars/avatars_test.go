package avatars_test

import (
	"context"
	"errors"
	"testing"

	"github.com/scorepadhq/scorepad/internal/app/system/avatars"
)

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		want string
	}{
		{"empty", "", ""},
		{"bare path", "avatars/abc-photo.png", "avatars/abc-photo.png"},
		{"leading slash", "/avatars/abc-photo.png", "avatars/abc-photo.png"},
		{"full url", "https://cdn.example.com/files/avatars/abc-photo.png", "avatars/abc-photo.png"},
		{"url without avatars dir", "https://cdn.example.com/misc/photo.png", "misc/photo.png"},
		{"whitespace", "  avatars/x.png  ", "avatars/x.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := avatars.ResolvePath(tt.ref); got != tt.want {
				t.Errorf("ResolvePath(%q) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}

type stubDeleter struct {
	err   error
	calls []string
}

func (s *stubDeleter) Delete(ctx context.Context, path string) error {
	s.calls = append(s.calls, path)
	return s.err
}

func TestDeleteToleratesMissingObject(t *testing.T) {
	for _, msg := range []string{"object not found", "NoSuchKey: the key does not exist", "404 not found"} {
		d := &stubDeleter{err: errors.New(msg)}
		if err := avatars.Delete(context.Background(), d, "avatars/gone.png"); err != nil {
			t.Errorf("Delete with %q error = %v, want nil", msg, err)
		}
	}
}

func TestDeletePropagatesRealFailures(t *testing.T) {
	d := &stubDeleter{err: errors.New("connection refused")}
	if err := avatars.Delete(context.Background(), d, "avatars/x.png"); err == nil {
		t.Error("Delete swallowed a non-missing error")
	}
}

func TestDeleteEmptyRefIsNoOp(t *testing.T) {
	d := &stubDeleter{}
	if err := avatars.Delete(context.Background(), d, ""); err != nil {
		t.Errorf("Delete(\"\") = %v, want nil", err)
	}
	if len(d.calls) != 0 {
		t.Errorf("Delete(\"\") reached the object store: %v", d.calls)
	}
}
