package twerr

import "errors"

import "testing"

func TestIsMatchesOnKindOnly(t *testing.T) {
	a := New(ZeroWrapAmount, "amount was 0")
	b := New(ZeroWrapAmount, "a different detail")
	if !errors.Is(a, b) {
		t.Fatalf("expected errors with the same Kind to match via errors.Is")
	}
	c := New(EscrowInGoodState, "")
	if errors.Is(a, c) {
		t.Fatalf("errors with different Kind must not match")
	}
}

func TestStringRendersKnownNames(t *testing.T) {
	if ZeroWrapAmount.String() != "ZeroWrapAmount" {
		t.Fatalf("unexpected name: %s", ZeroWrapAmount.String())
	}
}
