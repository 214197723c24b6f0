// Command polyseme-encode streams an input file through the Builder and
// writes the resulting ContentSets as a zone file (spec §6), generalizing
// the teacher's cmd/encoder flag/password wiring from "PNG steganography"
// to "DNS TXT covert channel".
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/faanross/polyseme/internal/metrics"
	"github.com/faanross/polyseme/internal/polyseme"
	"github.com/faanross/polyseme/internal/secretkit"
	"github.com/faanross/polyseme/internal/zonefile"
)

func main() {
	inputFile := flag.String("input", "", "Path to input file to hide (required)")
	outputFile := flag.String("output", "zone.txt", "Zone file to write")
	domain := flag.String("domain", "example.com", "Domain the records are published under")
	password := flag.String("password", "", "Passphrase (prompted if not provided)")
	salt := flag.String("salt", "polyseme-default-salt", "PBKDF2 salt, must match on the decode side")
	metricsAddr := flag.String("metrics-addr", "", "If set, serve Prometheus metrics on this address (e.g. :9091) until done")

	flag.Parse()

	if *inputFile == "" {
		log.Fatal("❌ Please provide input file with -input flag")
	}

	fmt.Println("\n🧬 Polyseme Encoder")
	fmt.Println("=" + strings.Repeat("=", 40))

	message, err := os.ReadFile(*inputFile)
	if err != nil {
		log.Fatalf("❌ Error reading file: %v", err)
	}
	fmt.Printf("\n📄 Input file: %s (%d bytes)\n", *inputFile, len(message))

	var pass []byte
	if *password != "" {
		pass = []byte(*password)
		if len(pass) < 8 {
			log.Fatal("❌ Password must be at least 8 characters")
		}
	} else {
		pass, err = secretkit.PromptPassphrase("\n🔑 Enter passphrase (min 8 chars): ")
		if err != nil {
			log.Fatalf("❌ Passphrase error: %v", err)
		}
		confirm, err := secretkit.PromptPassphrase("🔑 Confirm passphrase: ")
		if err != nil {
			log.Fatalf("❌ Passphrase error: %v", err)
		}
		if !bytes.Equal(pass, confirm) {
			log.Fatal("❌ Passphrases do not match")
		}
	}

	if *metricsAddr != "" {
		go serveMetrics(*metricsAddr)
	}

	secret := secretkit.DeriveSecret(pass, []byte(*salt))

	builder, err := polyseme.NewBuilder(secret)
	if err != nil {
		log.Fatalf("❌ Builder init failed: %v", err)
	}
	builder = builder.WithMetrics(metrics.Registry{})

	fmt.Println("\n⚙️  Building ContentSets...")
	sets := builder.Consume(message)
	sets = append(sets, builder.Finalize()...)
	fmt.Printf("   %d sets produced\n", len(sets))

	f, err := os.Create(*outputFile)
	if err != nil {
		log.Fatalf("❌ Creating %s: %v", *outputFile, err)
	}
	defer f.Close()

	if err := zonefile.Write(f, *domain, sets); err != nil {
		log.Fatalf("❌ Writing zone file: %v", err)
	}

	fmt.Printf("\n✅ Wrote %s (%d records under %s)\n", *outputFile, len(sets), *domain)
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	fmt.Printf("   📊 metrics on http://%s/metrics\n", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Printf("⚠️  metrics server stopped: %v", err)
	}
}
