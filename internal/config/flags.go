package config

import (
	"flag"
	"os"
	"time"

	"libradesk/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-u string   base URL of the users service
//	-b string   base URL of the books service
//	-o string   base URL of the orchestrator service
//	-t string   base URL of the transaction ledger
//	-i int      online check interval in seconds
//	-n int      notification lifetime in seconds
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-u", "-b", "-o", "-t", "-i", "-n"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.UsersAddr, "u", cfg.UsersAddr, "base URL of the users service")
	fs.StringVar(&cfg.BooksAddr, "b", cfg.BooksAddr, "base URL of the books service")
	fs.StringVar(&cfg.OrchestratorAddr, "o", cfg.OrchestratorAddr, "base URL of the orchestrator service")
	fs.StringVar(&cfg.TransactionsAddr, "t", cfg.TransactionsAddr, "base URL of the transaction ledger")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	notificationTTL := fs.Int("n", int(cfg.NotificationTTL.Seconds()), "notification lifetime (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	cfg.NotificationTTL = time.Duration(*notificationTTL) * time.Second
}
