package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/munichmade/resolvctl/internal/dnscheck"
	"github.com/munichmade/resolvctl/internal/proc"
	"github.com/munichmade/resolvctl/internal/registry"
)

// CheckResult represents the result of a single check.
type CheckResult struct {
	Name       string
	Passed     bool
	Message    string
	Suggestion string
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run diagnostic checks",
	Long: `Run diagnostic checks over the resolver directory.

Checks include:
  - Resolver directory exists
  - Managed entries are present
  - No orphaned entries (creating process still running)
  - Each entry's nameserver answers DNS queries`,
	Run: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	reg := newRegistry(cfg)

	fmt.Println("\nChecking resolver configuration...")

	var failures int
	for _, result := range runChecks(reg) {
		printResult(result)
		if !result.Passed {
			failures++
		}
	}

	fmt.Println()
	if failures == 0 {
		fmt.Println("All checks passed!")
	} else {
		fmt.Printf("%d check(s) failed\n", failures)
		os.Exit(1)
	}
}

func printResult(r CheckResult) {
	if r.Passed {
		fmt.Printf("  ✓ %s\n", r.Message)
	} else {
		fmt.Printf("  ✗ %s\n", r.Message)
		if r.Suggestion != "" {
			fmt.Printf("    → %s\n", r.Suggestion)
		}
	}
}

func runChecks(reg *registry.Registry) []CheckResult {
	results := []CheckResult{checkDirExists(reg)}

	domains, err := reg.List()
	if err != nil {
		return append(results, CheckResult{
			Name:       "entries_listable",
			Passed:     false,
			Message:    fmt.Sprintf("Cannot list resolver entries: %v", err),
			Suggestion: "Check directory permissions",
		})
	}

	results = append(results, checkEntriesPresent(domains))
	for _, domain := range domains {
		results = append(results, checkEntry(reg, domain)...)
	}
	return results
}

func checkDirExists(reg *registry.Registry) CheckResult {
	result := CheckResult{Name: "dir_exists"}

	info, err := os.Stat(reg.Dir())
	if err != nil || !info.IsDir() {
		result.Passed = false
		result.Message = fmt.Sprintf("Resolver directory %s does not exist", reg.Dir())
		result.Suggestion = "Run: sudo resolvctl register <domain>"
		return result
	}

	result.Passed = true
	result.Message = fmt.Sprintf("Resolver directory %s exists", reg.Dir())
	return result
}

func checkEntriesPresent(domains []string) CheckResult {
	result := CheckResult{Name: "entries_present"}

	if len(domains) == 0 {
		result.Passed = false
		result.Message = "No managed resolver entries found"
		result.Suggestion = "Run: sudo resolvctl register <domain>"
		return result
	}

	result.Passed = true
	result.Message = fmt.Sprintf("%d managed entr%s found", len(domains), plural(len(domains), "y", "ies"))
	return result
}

// checkEntry verifies one entry: its creator is alive (or it is permanent)
// and its nameserver answers a direct query.
func checkEntry(reg *registry.Registry, domain string) []CheckResult {
	entry, pid, err := reg.Read(domain)
	if err != nil {
		return []CheckResult{{
			Name:    "entry_readable",
			Passed:  false,
			Message: fmt.Sprintf("Cannot read entry for *.%s: %v", domain, err),
		}}
	}

	var results []CheckResult

	if pid > 0 && !proc.Alive(pid) {
		results = append(results, CheckResult{
			Name:       "entry_owner",
			Passed:     false,
			Message:    fmt.Sprintf("*.%s was registered by pid %d, which is no longer running", domain, pid),
			Suggestion: "Run: sudo resolvctl cleanup",
		})
	}

	probe, err := dnscheck.Probe(entry.Nameserver, entry.Port, "probe."+domain, dnscheck.DefaultTimeout)
	if err != nil {
		results = append(results, CheckResult{
			Name:       "entry_nameserver",
			Passed:     false,
			Message:    fmt.Sprintf("Nameserver %s:%d for *.%s is not answering", entry.Nameserver, entry.Port, domain),
			Suggestion: "Start the DNS server this entry points at, or unregister the entry",
		})
		return results
	}

	results = append(results, CheckResult{
		Name:    "entry_nameserver",
		Passed:  probe.OK(),
		Message: fmt.Sprintf("Nameserver %s:%d for *.%s answered %s in %s", entry.Nameserver, entry.Port, domain, probe.Rcode, probe.RTT),
	})
	return results
}

func plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
