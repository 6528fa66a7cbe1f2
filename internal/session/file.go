package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	serrors "github.com/scribehq/scribe/internal/errors"
	"github.com/scribehq/scribe/internal/logger"
)

// newFile returns a freshly-initialized empty session file.
func newFile() *File {
	now := time.Now().UTC()
	return &File{
		FileVersion:    FileVersion,
		CurrentSession: nil,
		Operations:     []LogEntry{},
		TimeRange:      TimeRange{StartDate: now, EndDate: now},
		CreatedAt:      now,
		LastUpdated:    now,
	}
}

// LoadFile reads a session file from disk. It never fails: a missing,
// empty, or unparseable file degrades to a fresh default, the unified
// shape is returned as-is, and the legacy bare-session shape is wrapped
// into a unified file with a synthetic migration entry.
func LoadFile(path string) *File {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Session: Failed to read %s, starting fresh: %v", path, err)
		}
		return newFile()
	}

	if len(data) == 0 {
		return newFile()
	}

	if f, ok := decodeUnified(data); ok {
		return f
	}

	if legacy, ok := decodeLegacy(data); ok {
		logger.Info("Session: Migrating legacy session file %s", path)
		return migrateLegacy(legacy)
	}

	logger.Warn("Session: Unrecognized or corrupt session file %s, starting fresh", path)
	return newFile()
}

// decodeUnified parses data as a unified session file. The shape is
// recognized by a fileVersion tag or an operations array.
func decodeUnified(data []byte) (*File, bool) {
	var probe struct {
		FileVersion string          `json:"fileVersion"`
		Operations  json.RawMessage `json:"operations"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, false
	}
	if probe.FileVersion == "" && probe.Operations == nil {
		return nil, false
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, false
	}
	if f.Operations == nil {
		f.Operations = []LogEntry{}
	}
	if f.FileVersion == "" {
		f.FileVersion = FileVersion
	}
	return &f, true
}

// decodeLegacy parses data as a bare Context, the pre-unified on-disk
// shape. It is recognized by metadata.created, metadata.version, and an
// activeFiles array all being present.
func decodeLegacy(data []byte) (*Context, bool) {
	var probe struct {
		ActiveFiles json.RawMessage `json:"activeFiles"`
		Metadata    *struct {
			Created json.RawMessage `json:"created"`
			Version string          `json:"version"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, false
	}
	if probe.ActiveFiles == nil || probe.Metadata == nil ||
		probe.Metadata.Created == nil || probe.Metadata.Version == "" {
		return nil, false
	}

	var c Context
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, false
	}
	if c.ActiveFiles == nil {
		c.ActiveFiles = []string{}
	}
	return &c, true
}

// migrateLegacy wraps a legacy bare session into a unified file with a
// single synthetic entry recording the migration.
func migrateLegacy(legacy *Context) *File {
	f := newFile()
	f.CurrentSession = legacy

	entry := newLogEntry(legacy.ID, OpDataMigration, "Migrated legacy session file to unified format")
	f.Operations = append(f.Operations, entry)

	if !legacy.Metadata.Created.IsZero() {
		f.TimeRange.StartDate = legacy.Metadata.Created
		f.CreatedAt = legacy.Metadata.Created
	}
	return f
}

// writeFile persists a session file whole, via a temp file and rename in
// the same directory so a crash mid-write cannot clobber the previous
// contents.
func writeFile(path string, f *File) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return serrors.SessionSaveFailed(path, err)
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return serrors.SessionSaveFailed(path, err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*.tmp")
	if err != nil {
		return serrors.SessionSaveFailed(path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return serrors.SessionSaveFailed(path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return serrors.SessionSaveFailed(path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return serrors.SessionSaveFailed(path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return serrors.SessionSaveFailed(path, err)
	}
	return nil
}
