package session

import "testing"

func TestRenderGateGenerations(t *testing.T) {
	var g renderGate
	first := g.begin()
	if !g.current(first) {
		t.Fatalf("fresh generation should be current")
	}
	second := g.begin()
	if g.current(first) {
		t.Fatalf("older generation should be superseded")
	}
	if !g.current(second) {
		t.Fatalf("newest generation should be current")
	}
}
