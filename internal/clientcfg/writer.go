package clientcfg

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"mcpup/internal/clients"
	mcperrors "mcpup/internal/errors"
	"mcpup/internal/paths"
	"mcpup/pkg/fileutil"
)

// BackupSuffix is appended to the config path when a backup is taken.
const BackupSuffix = ".backup"

// Result reports what happened to one client's config file.
type Result struct {
	// Kind identifies the client.
	Kind clients.Kind

	// Path is the config file acted on, empty when no location was usable.
	Path string

	// BackupPath is the backup copy taken before writing, if any.
	BackupPath string

	// Existed reports whether the server entry was already present.
	Existed bool

	// Err is the per-client failure, nil on success.
	Err error
}

// Writer registers server entries in client config files. Writes are
// merges: only the named server's entry is replaced, every other key in
// the file survives byte for byte.
type Writer struct {
	logger *slog.Logger
	backup bool
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithBackup makes every write of an existing file take a backup copy first.
func WithBackup(enabled bool) WriterOption {
	return func(w *Writer) {
		w.backup = enabled
	}
}

// NewWriter creates a Writer.
func NewWriter(logger *slog.Logger, opts ...WriterOption) *Writer {
	w := &Writer{logger: logger}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// shapeKey returns the top-level key a client expects its server table
// under. Claude Desktop uses "mcpServers"; every other client follows
// the plain "servers" convention.
func shapeKey(kind clients.Kind) string {
	if kind == clients.KindClaudeDesktop {
		return "mcpServers"
	}
	return "servers"
}

// Write merges entry into the integration's first writable location
// under serverName. Unparseable existing files are treated as empty
// rather than aborting, so a corrupt config gets repaired instead of
// blocking registration.
func (w *Writer) Write(integration clients.Integration, serverName string, entry ServerEntry) Result {
	res := Result{Kind: integration.Kind}

	loc := integration.FirstWritable()
	if loc == nil {
		res.Err = errors.Wrapf(mcperrors.ErrNoWritableLocation, "client %s", integration.Kind)
		return res
	}
	res.Path = loc.Path

	doc, servers := w.load(integration.Kind, loc.Path)
	_, res.Existed = servers[serverName]

	if w.backup && loc.Exists {
		backupPath, err := backupFile(loc.Path)
		if err != nil {
			w.logger.Warn("backup failed, writing anyway", "path", loc.Path, "error", err)
		} else {
			res.BackupPath = backupPath
		}
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		res.Err = errors.Wrap(err, "encoding server entry")
		return res
	}
	servers[serverName] = raw

	if err := w.store(loc.Path, shapeKey(integration.Kind), doc, servers); err != nil {
		res.Err = err
		return res
	}

	w.logger.Info("client configured",
		"client", integration.Kind,
		"path", loc.Path,
		"server", serverName)
	return res
}

// Remove deletes serverName's entry from the integration's first
// writable location. A missing file or entry is not an error; Existed
// tells the caller whether anything was removed.
func (w *Writer) Remove(integration clients.Integration, serverName string) Result {
	res := Result{Kind: integration.Kind}

	loc := integration.FirstWritable()
	if loc == nil {
		res.Err = errors.Wrapf(mcperrors.ErrNoWritableLocation, "client %s", integration.Kind)
		return res
	}
	res.Path = loc.Path

	if !loc.Exists {
		return res
	}

	doc, servers := w.load(integration.Kind, loc.Path)
	if _, ok := servers[serverName]; !ok {
		return res
	}
	res.Existed = true

	if w.backup {
		backupPath, err := backupFile(loc.Path)
		if err != nil {
			w.logger.Warn("backup failed, writing anyway", "path", loc.Path, "error", err)
		} else {
			res.BackupPath = backupPath
		}
	}

	delete(servers, serverName)
	if err := w.store(loc.Path, shapeKey(integration.Kind), doc, servers); err != nil {
		res.Err = err
		return res
	}

	w.logger.Info("client entry removed",
		"client", integration.Kind,
		"path", loc.Path,
		"server", serverName)
	return res
}

// Verify reads back serverName's entry from the first existing
// location, confirming the registration a client would see.
func (w *Writer) Verify(integration clients.Integration, serverName string) (ServerEntry, error) {
	var entry ServerEntry

	// Re-read from disk rather than trusting the integration snapshot,
	// which may predate the write being verified.
	for _, loc := range integration.Locations {
		_, servers := w.load(integration.Kind, loc.Path)
		raw, ok := servers[serverName]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &entry); err != nil {
			return entry, errors.Wrapf(err, "entry %s in %s", serverName, loc.Path)
		}
		return entry, nil
	}

	return entry, errors.Newf("server %s is not registered with %s", serverName, integration.Kind)
}

// Configure writes entry to every integration, collecting per-client
// results. One client failing never stops the rest.
func (w *Writer) Configure(integrations []clients.Integration, serverName string, entry ServerEntry) []Result {
	results := make([]Result, 0, len(integrations))
	for _, integration := range integrations {
		results = append(results, w.Write(integration, serverName, entry))
	}
	return results
}

// load reads path into the raw document plus its decoded server table.
// Both come back empty, never nil, when the file is missing or corrupt.
func (w *Writer) load(kind clients.Kind, path string) (map[string]json.RawMessage, map[string]json.RawMessage) {
	doc := map[string]json.RawMessage{}
	servers := map[string]json.RawMessage{}

	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			w.logger.Warn("unreadable client config, starting fresh", "path", path, "error", err)
		}
		return doc, servers
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		w.logger.Warn("unparseable client config, starting fresh", "path", path, "error", err)
		return map[string]json.RawMessage{}, servers
	}

	if raw, ok := doc[shapeKey(kind)]; ok {
		if err := json.Unmarshal(raw, &servers); err != nil {
			w.logger.Warn("unparseable server table, rebuilding", "path", path, "error", err)
			servers = map[string]json.RawMessage{}
		}
	}
	return doc, servers
}

func (w *Writer) store(path, key string, doc, servers map[string]json.RawMessage) error {
	raw, err := json.Marshal(servers)
	if err != nil {
		return errors.Wrap(err, "encoding server table")
	}
	doc[key] = raw

	if err := paths.EnsureDir(filepath.Dir(path), paths.DefaultDirPerm); err != nil {
		return err
	}
	if err := fileutil.AtomicWriteJSON(path, doc); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}

func backupFile(path string) (string, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return "", err
	}
	backupPath := path + BackupSuffix
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		return "", errors.Wrapf(err, "writing backup %s", backupPath)
	}
	return backupPath, nil
}
