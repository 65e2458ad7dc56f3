package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/IT-Nick/trivia/internal/app"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	configPath = kingpin.Flag("config", "Path to the YAML config file").Envar("CONFIG_PATH").String()

	playCmd    = kingpin.Command("play", "Play a quiz in the terminal")
	playReport = playCmd.Flag("report", "Save a PDF report of the finished quiz to this file").String()
	fetchCmd   = kingpin.Command("fetch", "Fetch a question set and print it as JSON")
	botCmd     = kingpin.Command("bot", "Serve quizzes in Telegram together with the status HTTP server")
)

func main() {
	kingpin.UsageTemplate(kingpin.CompactUsageTemplate).Version("0.1")
	kingpin.CommandLine.Help = "Trivia quiz client"
	command := kingpin.Parse()

	a, err := app.NewApp(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := a.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch command {
	case playCmd.FullCommand():
		err = a.Play(ctx, os.Stdin, os.Stdout, *playReport)
	case fetchCmd.FullCommand():
		err = a.Fetch(ctx, os.Stdout)
	case botCmd.FullCommand():
		err = a.ListenAndServe(ctx)
	default:
		log.Fatal("Unknown command")
	}

	if err != nil {
		log.Fatalf("%s failed: %s", command, err)
	}
}
