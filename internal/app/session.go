package app

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// Gate is the passcode session gate in front of all library commands.
// It has two states, locked and unlocked, and one forward transition:
// a correct code unlocks it for the rest of the process. An empty
// configured passcode disables the gate entirely.
type Gate struct {
	passcode string
	unlocked bool
}

// NewGate creates a Gate for the configured passcode.
func NewGate(passcode string) *Gate {
	return &Gate{
		passcode: passcode,
		unlocked: passcode == "",
	}
}

// Unlocked reports whether the gate has been opened.
func (g *Gate) Unlocked() bool { return g.unlocked }

// Unlock attempts the forward transition. A wrong code leaves the gate
// locked; once unlocked, further calls are no-ops.
func (g *Gate) Unlock(code string) bool {
	if g.unlocked {
		return true
	}
	if code == g.passcode {
		g.unlocked = true
	}
	return g.unlocked
}

// PromptUnlock reads the passcode from the terminal without echo and
// attempts to unlock, allowing up to three tries.
func (g *Gate) PromptUnlock() error {
	if g.unlocked {
		return nil
	}

	for attempt := 0; attempt < 3; attempt++ {
		fmt.Fprint(os.Stderr, "Passcode: ")
		code, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return fmt.Errorf("reading passcode: %w", err)
		}
		if g.Unlock(string(code)) {
			return nil
		}
		fmt.Fprintln(os.Stderr, "Wrong passcode.")
	}
	return fmt.Errorf("too many failed passcode attempts")
}
