package cmd

import (
	"os"

	"github.com/chzyer/readline"
)

// noBellStdout filters the terminal bell character that promptui emits on
// every keystroke in search mode.
type noBellStdout struct{}

func (n *noBellStdout) Write(p []byte) (int, error) {
	if len(p) == 1 && p[0] == readline.CharBell {
		return 0, nil
	}
	return readline.Stdout.Write(p)
}

func (n *noBellStdout) Close() error {
	return os.Stdout.Close()
}

// NoBellStdout is handed to promptui prompts as their Stdout.
var NoBellStdout = &noBellStdout{}
