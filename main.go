package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"nestris/client"
	"nestris/terminal"
	"nestris/tetris"

	"golang.org/x/term"
)

func main() {
	remote := flag.String("remote", "", "address of a nestris server to play on, e.g. localhost:9000")
	bag := flag.Bool("bag", false, "deal tetrominoes from a shuffled bag of seven instead of uniformly")
	noGhost := flag.Bool("noghost", false, "hide the ghost piece")
	logFile := flag.String("log", "", "write debug logs to this file")
	flag.Parse()

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		log.Fatal("nestris needs to run in a terminal")
	}

	logger := slog.New(slog.DiscardHandler)
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("unable to open log file: %v", err)
		}
		defer f.Close()
		logger = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	var engine terminal.Engine
	if *remote != "" {
		r, err := client.Dial(*remote, logger)
		if err != nil {
			log.Fatal(err)
		}
		engine = r
	} else {
		o := &tetris.Options{Logger: logger}
		if *bag {
			o.Randomizer = tetris.NewBagRandomizer()
		}
		engine = tetris.NewGame(o)
	}

	t, err := terminal.New(engine, &terminal.Options{Logger: logger, NoGhost: *noGhost})
	if err != nil {
		log.Fatal(err)
	}
	t.Run()
	if err := t.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "unable to close the keyboard: %v\n", err)
	}
}
