// Command osushell is the CLI front-end: a readline-driven REPL over
// the kernel's command interpreter.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/sirupsen/logrus"

	"github.com/osushell/osushell/internal/config"
	"github.com/osushell/osushell/internal/kernel"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	k, err := kernel.New(cfg, os.Stdout)
	if err != nil {
		logrus.WithError(err).Error("osushell: failed to start")
		return 1
	}
	fmt.Fprint(os.Stdout, cfg.Banner())

	prompt := ""
	if readline.IsTerminal(int(os.Stdin.Fd())) {
		prompt = "$ "
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:              prompt,
		HistoryFile:         "",
		InterruptPrompt:     "^C",
		EOFPrompt:           "",
		DisableAutoSaveHistory: true,
	})
	if err != nil {
		logrus.WithError(err).Error("osushell: failed to start readline")
		return 1
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
				break
			}
			logrus.WithError(err).Warn("osushell: readline error")
			break
		}

		k.Interp.Execute(line)
		if k.QuitRequested() {
			break
		}
	}

	k.Shutdown()
	return 0
}
