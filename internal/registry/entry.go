package registry

import (
	"fmt"
	"strconv"
	"strings"
)

// Entry describes a single resolver file: queries for Domain are routed
// to Nameserver:Port. The domain doubles as the filename under the
// registry directory.
type Entry struct {
	// Domain suffix (e.g., "myapp.local"). Used verbatim as the filename.
	Domain string

	// Nameserver IP address (e.g., "127.0.0.1"). Not validated here.
	Nameserver string

	// Port the nameserver listens on. Standard DNS uses 53; custom
	// resolvers typically use a high port to avoid conflicts.
	Port uint16

	// SearchOrder priority. Lower values are tried first.
	SearchOrder uint32
}

// NewEntry creates an Entry with SearchOrder set to 1.
func NewEntry(domain, nameserver string, port uint16) Entry {
	return Entry{
		Domain:      domain,
		Nameserver:  nameserver,
		Port:        port,
		SearchOrder: 1,
	}
}

// WithSearchOrder returns a copy of the entry with the given search order.
func (e Entry) WithSearchOrder(order uint32) Entry {
	e.SearchOrder = order
	return e
}

// Validate checks that the entry can be written safely. The domain becomes
// a filename under a privileged directory, so it must be a plain name.
func (e Entry) Validate() error {
	if e.Domain == "" {
		return fmt.Errorf("entry: domain must not be empty")
	}
	if strings.ContainsAny(e.Domain, "/\x00") || e.Domain == "." || e.Domain == ".." {
		return fmt.Errorf("entry: invalid domain %q", e.Domain)
	}
	return nil
}

// encode renders the resolver file content. A pid of 0 produces a
// permanent entry (no PID suffix on the marker line).
func (e Entry) encode(marker string, pid int) string {
	var b strings.Builder
	b.WriteString(marker)
	if pid > 0 {
		fmt.Fprintf(&b, " (pid=%d)", pid)
	}
	fmt.Fprintf(&b, "\nnameserver %s\nport %d\nsearch_order %d\n", e.Nameserver, e.Port, e.SearchOrder)
	return b.String()
}

// parseEntry reads an entry back from resolver file content. Lines other
// than nameserver/port/search_order are ignored.
func parseEntry(domain, content string) Entry {
	e := Entry{Domain: domain, SearchOrder: 1}
	for _, line := range strings.Split(content, "\n") {
		key, value, found := strings.Cut(strings.TrimSpace(line), " ")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)
		switch key {
		case "nameserver":
			e.Nameserver = value
		case "port":
			if p, err := strconv.ParseUint(value, 10, 16); err == nil {
				e.Port = uint16(p)
			}
		case "search_order":
			if o, err := strconv.ParseUint(value, 10, 32); err == nil {
				e.SearchOrder = uint32(o)
			}
		}
	}
	return e
}

// parsePID extracts the creator PID from the marker line, e.g.
// "# managed by myapp (pid=123)". Returns 0 if the content has no
// marker line with a well-formed PID suffix, which marks the file
// as permanent for cleanup purposes.
func parsePID(marker, content string) int {
	for _, line := range strings.Split(content, "\n") {
		rest, ok := strings.CutPrefix(line, marker)
		if !ok {
			continue
		}
		rest, ok = strings.CutPrefix(strings.TrimSpace(rest), "(pid=")
		if !ok {
			return 0
		}
		rest, ok = strings.CutSuffix(rest, ")")
		if !ok {
			return 0
		}
		pid, err := strconv.ParseUint(rest, 10, 32)
		if err != nil {
			return 0
		}
		return int(pid)
	}
	return 0
}
