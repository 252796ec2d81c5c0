package config

import (
	"flag"
	"os"
	"time"

	"github.com/ablinov/lifevault/internal/flagx"
)

var serverFlags = []string{"-a", "-d", "-k", "-t", "-m"}

// parseFlags overlays command-line flag values on cfg. Unknown flags (the
// config-file flags among them) are filtered out first, so the flag set
// never aborts on them.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], serverFlags)

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	addr := fs.String("a", "", "HTTP listen address")
	dsn := fs.String("d", "", "database DSN")
	key := fs.String("k", "", "token secret key")
	importTimeout := fs.Int("t", 0, "import timeout, seconds")
	maxBytes := fs.Int64("m", 0, "max uploaded document size, bytes")

	_ = fs.Parse(args)

	if *addr != "" {
		cfg.EndpointAddrHTTP = *addr
	}
	if *dsn != "" {
		cfg.DatabaseDSN = *dsn
	}
	if *key != "" {
		cfg.SecretKey = *key
	}
	if *importTimeout > 0 {
		cfg.ImportTimeout = time.Duration(*importTimeout) * time.Second
	}
	if *maxBytes > 0 {
		cfg.MaxDocumentBytes = *maxBytes
	}
}
