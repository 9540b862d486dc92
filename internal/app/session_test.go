package app

import "testing"

func TestGate(t *testing.T) {
	t.Run("empty passcode disables the gate", func(t *testing.T) {
		g := NewGate("")
		if !g.Unlocked() {
			t.Error("Unlocked() = false, want true for empty passcode")
		}
	})

	t.Run("starts locked when a passcode is set", func(t *testing.T) {
		g := NewGate("0810")
		if g.Unlocked() {
			t.Error("Unlocked() = true, want false before any attempt")
		}
	})

	t.Run("wrong code stays locked", func(t *testing.T) {
		g := NewGate("0810")
		if g.Unlock("1234") {
			t.Error("Unlock(wrong) = true, want false")
		}
		if g.Unlocked() {
			t.Error("gate unlocked after wrong code")
		}
	})

	t.Run("correct code unlocks", func(t *testing.T) {
		g := NewGate("0810")
		if !g.Unlock("0810") {
			t.Error("Unlock(correct) = false, want true")
		}
		if !g.Unlocked() {
			t.Error("gate still locked after correct code")
		}
	})

	t.Run("stays unlocked for further calls", func(t *testing.T) {
		g := NewGate("0810")
		g.Unlock("0810")

		// Later attempts, even with the wrong code, never re-lock.
		if !g.Unlock("9999") {
			t.Error("Unlock() after unlocking = false, want true")
		}
		if !g.Unlocked() {
			t.Error("gate re-locked by a later wrong attempt")
		}
	})
}
