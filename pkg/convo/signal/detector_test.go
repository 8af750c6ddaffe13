package signal

import (
	"testing"

	"persona-chat-be/internal/constant"
	"persona-chat-be/pkg/convo/state"
	"persona-chat-be/pkg/store"
)

func runTurn(d *Detector, sess *store.Session, query string) *state.TurnState {
	st := state.NewTurnState(constant.RoleRecruiter, query, nil)
	d.Run(sess, st)
	return st
}

func TestSignalAccumulation(t *testing.T) {
	d := NewDetector(DefaultKindsRequired)
	sess := store.NewSession("s1", constant.RoleRecruiter)

	// Turn 1: hiring intent only
	runTurn(d, sess, "We're hiring for a new project")
	if d.HasSufficientSignal(sess) {
		t.Fatal("one signal kind must not be sufficient")
	}
	if sess.SignalCounts[constant.SignalHiringIntent] != 1 {
		t.Errorf("hiring intent count = %d, want 1", sess.SignalCounts[constant.SignalHiringIntent])
	}

	// Turn 2: role description
	runTurn(d, sess, "The role involves building backend services")
	if !d.HasSufficientSignal(sess) {
		t.Fatal("two distinct kinds must be sufficient")
	}

	// Turn 3: neutral query changes nothing
	runTurn(d, sess, "What's the weather like?")
	if sess.DistinctSignalKinds() != 2 {
		t.Errorf("distinct kinds = %d, want 2", sess.DistinctSignalKinds())
	}
	if !d.HasSufficientSignal(sess) {
		t.Error("signal must never reset within a session")
	}
}

func TestNoDoubleCountingWithinTurn(t *testing.T) {
	d := NewDetector(DefaultKindsRequired)
	sess := store.NewSession("s1", constant.RoleRecruiter)

	// Two hiring-intent phrases in one query still count once
	runTurn(d, sess, "We're hiring and looking to hire for an open position")
	if got := sess.SignalCounts[constant.SignalHiringIntent]; got != 1 {
		t.Errorf("hiring intent count = %d, want 1 (no double counting per turn)", got)
	}
}

func TestAllThreeKindsInOneTurn(t *testing.T) {
	d := NewDetector(DefaultKindsRequired)
	sess := store.NewSession("s1", constant.RoleRecruiter)

	st := runTurn(d, sess, "We're hiring on our team, the role involves Go services")
	if sess.DistinctSignalKinds() != 3 {
		t.Errorf("distinct kinds = %d, want 3", sess.DistinctSignalKinds())
	}
	if len(st.Stash.SignalKinds) != 3 {
		t.Errorf("stash kinds = %d, want 3", len(st.Stash.SignalKinds))
	}
	if !d.HasSufficientSignal(sess) {
		t.Error("three kinds must be sufficient")
	}
}

func TestConfigurableThreshold(t *testing.T) {
	d := NewDetector(3)
	sess := store.NewSession("s1", constant.RoleRecruiter)

	runTurn(d, sess, "We're hiring")
	runTurn(d, sess, "The role involves backend work")
	if d.HasSufficientSignal(sess) {
		t.Error("threshold of 3 must not be met by 2 kinds")
	}
}
