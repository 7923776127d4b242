// Package dnscheck verifies that the nameserver behind a resolver entry
// actually answers. It queries the nameserver directly over UDP, bypassing
// the system resolver, so it works regardless of whether macOS has picked
// up the resolver file yet.
package dnscheck

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/miekg/dns"
)

// DefaultTimeout bounds a single probe exchange.
const DefaultTimeout = 2 * time.Second

// Result describes one probe exchange.
type Result struct {
	// Rcode is the textual response code (e.g., "NOERROR", "NXDOMAIN").
	Rcode string

	// Answers holds the string form of any A/AAAA answers.
	Answers []string

	// RTT is the round-trip time of the exchange.
	RTT time.Duration
}

// OK reports whether the nameserver produced a usable response. NXDOMAIN
// still counts: the server is up and answering, it just has no record for
// the probed name.
func (r *Result) OK() bool {
	return r.Rcode == dns.RcodeToString[dns.RcodeSuccess] ||
		r.Rcode == dns.RcodeToString[dns.RcodeNameError]
}

// Probe sends a single A query for name to nameserver:port and reports the
// outcome. A transport-level failure (timeout, refused) returns an error;
// any DNS response, including NXDOMAIN, returns a Result.
func Probe(nameserver string, port uint16, name string, timeout time.Duration) (*Result, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := &dns.Client{Timeout: timeout}

	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(name), dns.TypeA)

	addr := net.JoinHostPort(nameserver, strconv.Itoa(int(port)))
	resp, rtt, err := client.Exchange(msg, addr)
	if err != nil {
		return nil, fmt.Errorf("querying %s for %s: %w", addr, name, err)
	}

	result := &Result{
		Rcode: dns.RcodeToString[resp.Rcode],
		RTT:   rtt,
	}
	for _, rr := range resp.Answer {
		switch record := rr.(type) {
		case *dns.A:
			result.Answers = append(result.Answers, record.A.String())
		case *dns.AAAA:
			result.Answers = append(result.Answers, record.AAAA.String())
		}
	}
	return result, nil
}
