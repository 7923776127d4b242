package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/munichmade/resolvctl/internal/proc"
	"github.com/munichmade/resolvctl/internal/registry"
)

var statusJSONOutput bool

var statusCmd = &cobra.Command{
	Use:   "status <domain>...",
	Short: "Show the state of resolver entries",
	Long: `Show the on-disk state of resolver entries for the given domains:
whether an entry exists, whether resolvctl owns it, its nameserver, port
and search order, and whether the creating process is still running.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		reg := newRegistry(cfg)

		statuses := make([]domainStatus, 0, len(args))
		for _, domain := range args {
			statuses = append(statuses, getDomainStatus(reg, domain))
		}

		if statusJSONOutput {
			outputStatusJSON(statuses)
		} else {
			outputStatusText(statuses)
		}
	},
}

// domainStatus describes one domain's resolver entry.
type domainStatus struct {
	Domain      string `json:"domain"`
	State       string `json:"state"` // "registered", "foreign", or "absent"
	Nameserver  string `json:"nameserver,omitempty"`
	Port        uint16 `json:"port,omitempty"`
	SearchOrder uint32 `json:"search_order,omitempty"`
	PID         int    `json:"pid,omitempty"`
	PIDAlive    bool   `json:"pid_alive,omitempty"`
	Permanent   bool   `json:"permanent,omitempty"`
}

func getDomainStatus(reg *registry.Registry, domain string) domainStatus {
	entry, pid, err := reg.Read(domain)
	switch {
	case registry.IsNotManaged(err):
		return domainStatus{Domain: domain, State: "foreign"}
	case err != nil:
		return domainStatus{Domain: domain, State: "absent"}
	}

	s := domainStatus{
		Domain:      domain,
		State:       "registered",
		Nameserver:  entry.Nameserver,
		Port:        entry.Port,
		SearchOrder: entry.SearchOrder,
		PID:         pid,
		Permanent:   pid == 0,
	}
	if pid > 0 {
		s.PIDAlive = proc.Alive(pid)
	}
	return s
}

func outputStatusJSON(statuses []domainStatus) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(statuses); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}

func outputStatusText(statuses []domainStatus) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DOMAIN\tSTATE\tNAMESERVER\tPORT\tORDER\tOWNER")
	for _, s := range statuses {
		owner := "-"
		switch {
		case s.State != "registered":
		case s.Permanent:
			owner = "permanent"
		case s.PIDAlive:
			owner = fmt.Sprintf("pid %d (running)", s.PID)
		default:
			owner = fmt.Sprintf("pid %d (dead)", s.PID)
		}

		nameserver, port, order := "-", "-", "-"
		if s.State == "registered" {
			nameserver = s.Nameserver
			port = fmt.Sprintf("%d", s.Port)
			order = fmt.Sprintf("%d", s.SearchOrder)
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", s.Domain, s.State, nameserver, port, order, owner)
	}
	w.Flush()
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSONOutput, "json", false, "output status as JSON")
	rootCmd.AddCommand(statusCmd)
}
