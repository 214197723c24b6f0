// Command polyseme-decode reads a zone file (or queries a live
// nameserver) and streams the hidden payload back out through the
// Parser, generalizing the teacher's cmd/decoder flag wiring from "PNG
// steganography" to "DNS TXT covert channel".
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/faanross/polyseme/internal/fetcher"
	"github.com/faanross/polyseme/internal/metrics"
	"github.com/faanross/polyseme/internal/polyseme"
	"github.com/faanross/polyseme/internal/secretkit"
	"github.com/faanross/polyseme/internal/store"
	"github.com/faanross/polyseme/internal/zonefile"
)

func main() {
	zoneFile := flag.String("zone", "", "Zone file to read (mutually exclusive with -live)")
	live := flag.Bool("live", false, "Resolve records against a live nameserver instead of a zone file")
	domain := flag.String("domain", "example.com", "Domain the records are published under")
	server := flag.String("server", "", "DNS server host:port for -live (defaults to system resolver)")
	outputFile := flag.String("output", "", "Write recovered bytes here instead of stdout")
	password := flag.String("password", "", "Passphrase (prompted if not provided)")
	salt := flag.String("salt", "polyseme-default-salt", "PBKDF2 salt, must match the encode side")

	flag.Parse()

	fmt.Println("\n🧬 Polyseme Decoder")
	fmt.Println("=" + strings.Repeat("=", 40))

	if *zoneFile == "" && !*live {
		log.Fatal("❌ Provide -zone <file> or -live")
	}
	if *zoneFile != "" && *live {
		log.Fatal("❌ -zone and -live are mutually exclusive")
	}

	var pass []byte
	var err error
	if *password != "" {
		pass = []byte(*password)
	} else {
		pass, err = secretkit.PromptPassphrase("\n🔑 Enter passphrase: ")
		if err != nil {
			log.Fatalf("❌ Passphrase error: %v", err)
		}
	}
	secret := secretkit.DeriveSecret(pass, []byte(*salt))

	var rf polyseme.RecordFetcher
	if *live {
		fmt.Printf("\n🌐 Resolving live records under %s\n", *domain)
		d, err := fetcher.NewDNS(*domain, *server, slog.Default())
		if err != nil {
			log.Fatalf("❌ DNS fetcher init failed: %v", err)
		}
		rf = d
	} else {
		fmt.Printf("\n📂 Reading zone file %s\n", *zoneFile)
		f, err := os.Open(*zoneFile)
		if err != nil {
			log.Fatalf("❌ Opening %s: %v", *zoneFile, err)
		}
		defer f.Close()

		records, err := zonefile.Parse(f)
		if err != nil {
			log.Fatalf("❌ Parsing zone file: %v", err)
		}

		mem := store.NewMemoryStore()
		for _, rec := range records {
			if err := mem.Put(rec.Label, rec.Strings); err != nil {
				log.Fatalf("❌ Loading record %s: %v", rec.Label, err)
			}
		}
		fmt.Printf("   %d records loaded\n", len(records))
		rf = mem
	}

	metricsAddr := os.Getenv("POLYSEME_METRICS_ADDR")
	if metricsAddr != "" {
		go serveMetrics(metricsAddr)
	}

	parser, err := polyseme.NewParser(secret, rf)
	if err != nil {
		log.Fatalf("❌ Parser init failed: %v", err)
	}
	parser = parser.WithMetrics(metrics.Registry{})

	fmt.Println("\n⚙️  Decoding...")
	payload, err := parser.ReadToEnd()
	if err != nil {
		log.Fatalf("❌ Decode failed: %v", err)
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, payload, 0o644); err != nil {
			log.Fatalf("❌ Writing %s: %v", *outputFile, err)
		}
		fmt.Printf("\n✅ Recovered %d bytes -> %s\n", len(payload), *outputFile)
		return
	}

	os.Stdout.Write(payload)
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Printf("⚠️  metrics server stopped: %v", err)
	}
}
