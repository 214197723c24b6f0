package fetcher

import (
	"fmt"
	"log/slog"

	"github.com/miekg/dns"
)

// DNS performs a live TXT lookup per label, generalizing the teacher's
// cmd/stego-receive resolver wiring and the Rust reference's
// trust_dns_resolver-based DNSRecordFetcher to github.com/miekg/dns.
// Exactly one exchange is attempted per label — no retry or rate-limit
// policy lives here (spec §1 Non-goals); a failed or empty answer
// simply yields no strings, which the Parser turns into ErrEmptyResult.
type DNS struct {
	domain string
	server string
	client *dns.Client
	logger *slog.Logger
}

// NewDNS builds a fetcher for labels under domain, querying server
// (host:port). If server is empty, the first nameserver in
// /etc/resolv.conf is used, matching how the teacher's dns-server
// tooling falls back to the system resolver configuration.
func NewDNS(domain, server string, logger *slog.Logger) (*DNS, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if server == "" {
		cfg, err := dns.ClientConfigFromFile("/etc/resolv.conf")
		if err != nil || len(cfg.Servers) == 0 {
			return nil, fmt.Errorf("fetcher: no DNS server given and /etc/resolv.conf unusable: %w", err)
		}
		server = cfg.Servers[0] + ":" + cfg.Port
	}

	return &DNS{
		domain: dns.Fqdn(domain),
		server: server,
		client: &dns.Client{},
		logger: logger,
	}, nil
}

// Record implements polyseme.RecordFetcher.
func (d *DNS) Record(name string) []string {
	fqdn := dns.Fqdn(name) + d.domain

	query := new(dns.Msg)
	query.SetQuestion(fqdn, dns.TypeTXT)
	query.RecursionDesired = true

	resp, _, err := d.client.Exchange(query, d.server)
	if err != nil {
		d.logger.Warn("txt lookup failed", "name", fqdn, "server", d.server, "error", err)
		return nil
	}
	if resp.Rcode != dns.RcodeSuccess {
		d.logger.Debug("txt lookup non-success rcode", "name", fqdn, "rcode", dns.RcodeToString[resp.Rcode])
		return nil
	}

	var out []string
	for _, rr := range resp.Answer {
		if txt, ok := rr.(*dns.TXT); ok {
			out = append(out, txt.Txt...)
		}
	}
	return out
}
