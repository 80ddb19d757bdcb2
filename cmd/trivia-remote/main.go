package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"trivia-app/internal/cli"
	"trivia-app/internal/client"
	"trivia-app/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	player := flag.String("player", cfg.Player, "player name for games on the server")
	server := flag.String("server", cfg.Remote.ServerURL, "trivia service base URL")
	timeout := flag.Duration("timeout", cfg.Remote.HTTPTimeout, "HTTP timeout")
	showStats := flag.Bool("stats", false, "print the player's results and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	games := client.NewHTTPClient(*server, &http.Client{Timeout: *timeout})

	if *showStats {
		stats, err := games.PlayerStats(ctx, *player)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", client.DescribeError(err, *server))
			os.Exit(1)
		}
		fmt.Printf("%s: played %d, won %d, lost %d\n", stats.Player, stats.Played, stats.Won, stats.Lost)
		return
	}

	if err := cli.Run(ctx, os.Stdin, os.Stdout, games, *player); err != nil {
		fmt.Fprintln(os.Stderr, "error:", client.DescribeError(err, *server))
		os.Exit(1)
	}
}
