package sim

import "testing"

func TestModifierProduct(t *testing.T) {
	var s ModifierStack
	if s.Product() != 1.0 {
		t.Fatalf("empty stack Product = %v, want 1", s.Product())
	}
	s.Push(0.5, 2)
	s.Push(2.0, 2)
	if s.Product() != 1.0 {
		t.Fatalf("Product = %v, want 1 (0.5 * 2.0)", s.Product())
	}
}

func TestModifierExpiry(t *testing.T) {
	var s ModifierStack
	s.Push(0.5, 1.0)
	s.Push(0.25, 3.0)

	s.Tick(1.5)
	if s.Len() != 1 {
		t.Fatalf("Len = %d after expiry, want 1", s.Len())
	}
	if s.Product() != 0.25 {
		t.Fatalf("Product = %v, want 0.25", s.Product())
	}

	s.Tick(2.0)
	if s.Len() != 0 || s.Product() != 1.0 {
		t.Fatalf("stack not empty after all expiries: len=%d product=%v", s.Len(), s.Product())
	}
}

func TestModifierIgnoresNonPositiveDuration(t *testing.T) {
	var s ModifierStack
	s.Push(0.5, 0)
	s.Push(0.5, -1)
	if s.Len() != 0 {
		t.Fatalf("Len = %d, want 0", s.Len())
	}
}

func TestModifierReset(t *testing.T) {
	var s ModifierStack
	s.Push(0.5, 10)
	s.Reset()
	if s.Len() != 0 || s.Product() != 1.0 {
		t.Fatal("Reset did not clear the stack")
	}
}
