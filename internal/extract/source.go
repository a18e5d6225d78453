package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"resume-o-matic/internal/shared/storage/object"
	"resume-o-matic/internal/shared/telemetry"
)

const (
	defaultResumeFile = "resume.pdf"
	defaultCVFile     = "cv.pdf"
	extractedSuffix   = ".extracted.txt"
)

// Document is the candidate text resolved for one generation request.
type Document struct {
	Text string
	// StorageKey is the object store key of a stored upload, empty otherwise.
	StorageKey string
	// Source names where the text came from: "upload", "stored", a default file name, or "" when none.
	Source string
}

// Loader resolves candidate documents from uploads, stored objects, or default files.
type Loader struct {
	Store     object.ObjectStore
	ResumeDir string
	Now       func() time.Time
}

// FromUpload extracts text from uploaded bytes. Nothing is stored; see Persist.
func (l *Loader) FromUpload(ctx context.Context, fileName string, data []byte) (Document, error) {
	text, err := ExtractTextFromBytes(ctx, data, "", fileName)
	if err != nil {
		return Document{}, fmt.Errorf("extract upload %s: %w", fileName, err)
	}
	return Document{Text: text, Source: "upload"}, nil
}

// Persist stores the original upload plus an extracted-text sidecar and returns
// the storage key. Without a store it returns "".
func (l *Loader) Persist(ctx context.Context, fileName string, data []byte, text string) (string, error) {
	if l.Store == nil {
		return "", nil
	}
	key, _, _, err := l.Store.Save(ctx, l.namespace(), fileName, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("store upload %s: %w", fileName, err)
	}
	if _, err := l.Store.SaveWithKey(ctx, key+extractedSuffix, "text/plain; charset=utf-8", strings.NewReader(text)); err != nil {
		telemetry.Warn("extract.sidecar_failed", map[string]any{"key": key, "error": err.Error()})
	}
	return key, nil
}

// Discard removes an upload written by Persist together with its sidecar.
func (l *Loader) Discard(ctx context.Context, key string) error {
	if l.Store == nil || key == "" {
		return nil
	}
	if err := l.Store.Delete(ctx, key+extractedSuffix); err != nil {
		return err
	}
	return l.Store.Delete(ctx, key)
}

// FromStored returns the text of a previously uploaded object, preferring its sidecar.
func (l *Loader) FromStored(ctx context.Context, key string) (Document, error) {
	if l.Store == nil {
		return Document{}, fmt.Errorf("no object store configured for %s", key)
	}
	if text, err := l.readAll(ctx, key+extractedSuffix); err == nil {
		return Document{Text: string(text), StorageKey: key, Source: "stored"}, nil
	} else if !errors.Is(err, object.ErrNotFound) {
		return Document{}, err
	}

	data, err := l.readAll(ctx, key)
	if err != nil {
		return Document{}, err
	}
	text, err := ExtractTextFromBytes(ctx, data, "", filepath.Base(key))
	if err != nil {
		return Document{}, fmt.Errorf("extract stored %s: %w", key, err)
	}
	return Document{Text: text, StorageKey: key, Source: "stored"}, nil
}

// Default reads the fallback document for mode: cv.pdf in CV mode when present,
// otherwise resume.pdf. With neither file the text is empty.
func (l *Loader) Default(ctx context.Context, mode string) (Document, error) {
	path := DefaultPath(l.ResumeDir, mode)
	if path == "" {
		return Document{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read default %s: %w", path, err)
	}
	text, err := ExtractTextFromBytes(ctx, data, "application/pdf", filepath.Base(path))
	if err != nil {
		return Document{}, fmt.Errorf("extract default %s: %w", path, err)
	}
	return Document{Text: text, Source: filepath.Base(path)}, nil
}

// DefaultPath returns the default file path for mode, or "" when none exists.
func DefaultPath(dir, mode string) string {
	if dir == "" {
		dir = "."
	}
	if mode == "CV" {
		if p := filepath.Join(dir, defaultCVFile); fileExists(p) {
			return p
		}
	}
	if p := filepath.Join(dir, defaultResumeFile); fileExists(p) {
		return p
	}
	return ""
}

func (l *Loader) readAll(ctx context.Context, key string) ([]byte, error) {
	rc, err := l.Store.Open(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

func (l *Loader) namespace() string {
	now := time.Now().UTC()
	if l.Now != nil {
		now = l.Now()
	}
	return "uploads-" + now.Format("2006-01")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
