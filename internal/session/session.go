// Package session records what a run did to a vault: a log file, backups of
// every file touched, and a YAML report, all kept under
// .obsidian-tools/sessions/<id>/ so any apply can be audited or undone by
// hand.
package session

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	goslug "github.com/gosimple/slug"
	"gopkg.in/yaml.v3"

	"github.com/crypdick/obsidian-tools/internal/vault"
)

// Session is a single apply run against a vault.
type Session struct {
	ID      string
	Op      string
	Started time.Time
	Log     *Logger

	root    string
	dir     string
	logFile *os.File
}

// NewID builds a session identifier from the operation name, the current
// time, and a short random hash. IDs double as directory names.
func NewID(op string, now time.Time) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s:%d", op, now.UnixNano())
	short := hex.EncodeToString(h.Sum(nil)[:4])
	return fmt.Sprintf("%s-%s-%s", goslug.Make(op), now.Format("20060102-150405"), short)
}

// New creates the session directory under <root>/.obsidian-tools/sessions
// and opens its log file. Callers must Close the session when done.
func New(root, op string, verbose bool) (*Session, error) {
	now := time.Now()
	id := NewID(op, now)
	dir := filepath.Join(root, ".obsidian-tools", "sessions", id)
	if err := os.MkdirAll(filepath.Join(dir, "backups"), 0755); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	logFile, err := os.Create(filepath.Join(dir, "session.log"))
	if err != nil {
		return nil, fmt.Errorf("failed to create session log: %w", err)
	}

	s := &Session{
		ID:      id,
		Op:      op,
		Started: now,
		Log:     newLogger(logFile, verbose),
		root:    root,
		dir:     dir,
		logFile: logFile,
	}
	s.Log.Debug("session started", "id", id, "op", op, "vault", root)
	return s, nil
}

// Dir returns the session directory.
func (s *Session) Dir() string {
	return s.dir
}

// Backup copies a vault file into the session's backups directory,
// preserving its vault-relative path. Returns the backup location.
func (s *Session) Backup(f vault.File) (string, error) {
	backups := filepath.Join(s.dir, "backups")
	dst := filepath.Join(backups, filepath.FromSlash(f.RelPath))
	if err := vault.EnsureWithin(backups, dst); err != nil {
		return "", fmt.Errorf("refusing to back up %s: %w", f.RelPath, err)
	}
	if err := vault.CopyFile(f.Path, dst); err != nil {
		return "", fmt.Errorf("failed to back up %s: %w", f.RelPath, err)
	}
	s.Log.Debug("backed up", "path", f.RelPath)
	return dst, nil
}

// WriteReport writes report.yaml into the session directory and records the
// session in the vault-wide index.
func (s *Session) WriteReport(r *Report) error {
	r.Session = s.ID
	r.Operation = s.Op
	r.Started = s.Started
	if r.Finished.IsZero() {
		r.Finished = time.Now()
	}

	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, "report.yaml"), data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return updateIndex(s.root, IndexEntry{
		Session:   s.ID,
		Operation: s.Op,
		Created:   s.Started,
		Scanned:   r.Scanned,
		Changed:   r.Changed,
	})
}

// Close flushes and closes the session log.
func (s *Session) Close() error {
	s.Log.Debug("session closed", "id", s.ID)
	return s.logFile.Close()
}

// Report summarizes a run for report.yaml.
type Report struct {
	Session   string    `yaml:"session"`
	Operation string    `yaml:"operation"`
	Started   time.Time `yaml:"started"`
	Finished  time.Time `yaml:"finished"`
	Scanned   int       `yaml:"scanned"`
	Changed   int       `yaml:"changed"`
	Skipped   int       `yaml:"skipped,omitempty"`
	Failed    int       `yaml:"failed,omitempty"`
	Changes   []Change  `yaml:"changes,omitempty"`
}

// Change is one file-level outcome within a run.
type Change struct {
	Path   string `yaml:"path"`
	Action string `yaml:"action"`
	Detail string `yaml:"detail,omitempty"`
	Backup string `yaml:"backup,omitempty"`
}

// IndexEntry is one session in sessions/index.yaml.
type IndexEntry struct {
	Session   string    `yaml:"session"`
	Operation string    `yaml:"operation"`
	Created   time.Time `yaml:"created"`
	Scanned   int       `yaml:"scanned"`
	Changed   int       `yaml:"changed"`
}

// Index is the sessions/index.yaml file, newest first.
type Index struct {
	Sessions []IndexEntry `yaml:"sessions"`
}

// IndexPath returns the location of the session index for a vault.
func IndexPath(root string) string {
	return filepath.Join(root, ".obsidian-tools", "sessions", "index.yaml")
}

// ReadIndex loads the session index. A missing index is an empty one.
func ReadIndex(root string) (*Index, error) {
	data, err := os.ReadFile(IndexPath(root))
	if err != nil {
		if os.IsNotExist(err) {
			return &Index{}, nil
		}
		return nil, fmt.Errorf("failed to read session index: %w", err)
	}
	var idx Index
	if err := yaml.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("failed to parse session index: %w", err)
	}
	return &idx, nil
}

func updateIndex(root string, entry IndexEntry) error {
	idx, err := ReadIndex(root)
	if err != nil {
		return err
	}

	found := false
	for i, s := range idx.Sessions {
		if s.Session == entry.Session {
			idx.Sessions[i] = entry
			found = true
			break
		}
	}
	if !found {
		idx.Sessions = append(idx.Sessions, entry)
	}

	sort.Slice(idx.Sessions, func(i, j int) bool {
		return idx.Sessions[i].Created.After(idx.Sessions[j].Created)
	})

	data, err := yaml.Marshal(idx)
	if err != nil {
		return fmt.Errorf("failed to marshal session index: %w", err)
	}
	if err := vault.WriteFileAtomic(IndexPath(root), data); err != nil {
		return fmt.Errorf("failed to write session index: %w", err)
	}
	return nil
}
