// Package registry manages macOS /etc/resolver files.
//
// macOS reads files under /etc/resolver/<domain> to route DNS queries for
// specific domain suffixes to designated nameservers. Each file written by
// this package starts with an ownership marker line (e.g., "# managed by
// myapp"), optionally tagged with the PID of the creating process. The
// marker makes deletion safe: the registry never removes a file created by
// another tool, and the PID enables orphan cleanup after a crash.
//
// # Crash recovery
//
// A process that exits without unregistering leaves its resolver files
// behind. On the next start, CleanupOrphaned removes files whose creating
// PID is no longer running. Files registered without a PID (via
// RegisterPermanent) are never swept.
//
// # Permissions
//
// /etc/resolver requires root. The caller handles elevation; every
// operation surfaces permission failures, which callers can detect with
// IsPermissionDenied.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/munichmade/resolvctl/internal/logging"
	"github.com/munichmade/resolvctl/internal/proc"
)

// DefaultDir is where macOS looks for per-domain resolver configurations.
const DefaultDir = "/etc/resolver"

// Registry manages resolver files under a single directory, identified by
// a fixed ownership marker. The marker never changes for the lifetime of a
// Registry; files whose content contains it are considered owned.
type Registry struct {
	dir    string
	marker string
	alive  func(pid int) bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithDir overrides the resolver directory. Mainly for tests and
// embedding; takes precedence over the environment override.
func WithDir(dir string) Option {
	return func(r *Registry) { r.dir = dir }
}

// WithLiveness overrides the process-liveness check used by
// CleanupOrphaned.
func WithLiveness(alive func(pid int) bool) Option {
	return func(r *Registry) { r.alive = alive }
}

// New creates a Registry for the given application prefix.
//
// The prefix serves two purposes: files are tagged with the marker
// "# managed by <prefix>", and the environment variable
// <PREFIX>_RESOLVER_DIR (prefix uppercased, "-" replaced by "_") overrides
// the default /etc/resolver directory.
//
// No filesystem access happens here; the directory is created lazily on
// the first write.
func New(prefix string, opts ...Option) *Registry {
	dir := DefaultDir
	if env := os.Getenv(EnvPrefix(prefix) + "_RESOLVER_DIR"); env != "" {
		dir = env
	}
	r := &Registry{
		dir:    dir,
		marker: "# managed by " + prefix,
		alive:  proc.Alive,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewWithMarker creates a Registry using the exact marker string, written
// to files as-is. No environment override is consulted.
func NewWithMarker(marker string, opts ...Option) *Registry {
	r := &Registry{
		dir:    DefaultDir,
		marker: marker,
		alive:  proc.Alive,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// EnvPrefix converts an application prefix like "my-app" to its
// environment variable namespace "MY_APP".
func EnvPrefix(prefix string) string {
	return strings.ReplaceAll(strings.ToUpper(prefix), "-", "_")
}

// Dir returns the resolver directory path.
func (r *Registry) Dir() string {
	return r.dir
}

// Marker returns the marker string identifying managed files.
func (r *Registry) Marker() string {
	return r.marker
}

// Register writes the resolver file for e.Domain, tagged with pid as the
// creating process (callers normally pass os.Getpid()). The file is
// eligible for orphan cleanup once that process exits.
//
// The write is an unconditional create-or-truncate: registering the same
// entry twice is a no-op, and registering a changed entry for the same
// domain replaces it. Any existing file at the path is overwritten,
// managed or not.
func (r *Registry) Register(e Entry, pid int) error {
	if err := r.write(e, pid); err != nil {
		return err
	}
	logging.Info("registered resolver entry",
		"domain", e.Domain,
		"nameserver", e.Nameserver,
		"port", e.Port,
		"pid", pid)
	return nil
}

// RegisterPermanent writes the resolver file for e.Domain with no PID in
// the marker line. The file survives process restarts and is never removed
// by CleanupOrphaned; use Unregister to delete it. Intended for one-shot
// installation commands.
func (r *Registry) RegisterPermanent(e Entry) error {
	if err := r.write(e, 0); err != nil {
		return err
	}
	logging.Info("registered permanent resolver entry",
		"domain", e.Domain,
		"nameserver", e.Nameserver,
		"port", e.Port)
	return nil
}

func (r *Registry) write(e Entry, pid int) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("creating resolver directory %s: %w", r.dir, err)
	}
	path := r.path(e.Domain)
	if err := os.WriteFile(path, []byte(e.encode(r.marker, pid)), 0o644); err != nil {
		return fmt.Errorf("writing resolver file %s: %w", path, err)
	}
	return nil
}

// Unregister removes the resolver file for domain.
//
// A missing file is a no-op. A file without the ownership marker is left
// untouched and a *NotManagedError is returned, so entries created by
// other tools are never deleted by mistake.
func (r *Registry) Unregister(domain string) error {
	path := r.path(domain)

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logging.Debug("resolver file already absent", "domain", domain)
			return nil
		}
		return fmt.Errorf("reading resolver file %s: %w", path, err)
	}

	if !r.isManaged(string(content)) {
		logging.Warn("refusing to remove unmanaged resolver file",
			"domain", domain, "path", path)
		return &NotManagedError{Domain: domain}
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("removing resolver file %s: %w", path, err)
	}
	logging.Info("unregistered resolver entry", "domain", domain)
	return nil
}

// List returns the domains of all managed resolver files. A nonexistent
// directory yields an empty result, not an error. Order follows the
// directory listing; callers needing determinism must sort.
func (r *Registry) List() ([]string, error) {
	return r.scan(func(content string) bool { return r.isManaged(content) })
}

// ListAll returns every regular file in the resolver directory, managed or
// not. Useful for showing entries owned by other tools alongside ours.
func (r *Registry) ListAll() ([]string, error) {
	return r.scan(func(string) bool { return true })
}

func (r *Registry) scan(keep func(content string) bool) ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading resolver directory %s: %w", r.dir, err)
	}

	var domains []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		content, err := os.ReadFile(r.path(entry.Name()))
		if err != nil {
			continue
		}
		if keep(string(content)) {
			domains = append(domains, entry.Name())
		}
	}
	return domains, nil
}

// IsRegistered reports whether domain has a managed resolver file. It
// returns false both for a missing file and for a file owned by another
// tool; callers needing the distinction use Read.
func (r *Registry) IsRegistered(domain string) bool {
	content, err := os.ReadFile(r.path(domain))
	return err == nil && r.isManaged(string(content))
}

// Read parses the managed resolver file for domain back into an Entry and
// the PID recorded at registration (0 for permanent entries). A file
// without the ownership marker yields a *NotManagedError.
func (r *Registry) Read(domain string) (Entry, int, error) {
	path := r.path(domain)
	content, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, 0, fmt.Errorf("reading resolver file %s: %w", path, err)
	}
	if !r.isManaged(string(content)) {
		return Entry{}, 0, &NotManagedError{Domain: domain}
	}
	return parseEntry(domain, string(content)), parsePID(r.marker, string(content)), nil
}

// CleanupOrphaned removes managed resolver files whose creating process is
// no longer running, returning the number of files removed.
//
// Files without a parseable PID (permanent entries or hand-edited marker
// lines) are skipped. Removal failures for individual files are logged and
// skipped rather than aborting the sweep, so one stuck file cannot block
// cleanup of the rest.
func (r *Registry) CleanupOrphaned() (int, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading resolver directory %s: %w", r.dir, err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		domain := entry.Name()
		path := r.path(domain)
		content, err := os.ReadFile(path)
		if err != nil || !r.isManaged(string(content)) {
			continue
		}

		pid := parsePID(r.marker, string(content))
		if pid == 0 || r.alive(pid) {
			continue
		}

		if err := os.Remove(path); err != nil {
			logging.Warn("failed to remove orphaned resolver file",
				"domain", domain, "error", err)
			continue
		}
		logging.Info("removed orphaned resolver file", "domain", domain, "pid", pid)
		removed++
	}
	return removed, nil
}

func (r *Registry) path(domain string) string {
	return filepath.Join(r.dir, domain)
}

// isManaged is the single ownership predicate: a file is ours iff its
// content contains the marker string.
func (r *Registry) isManaged(content string) bool {
	return strings.Contains(content, r.marker)
}
