package sim

import "testing"

func TestPoolPrewarm(t *testing.T) {
	p := NewPool(4, NewEnemy)
	if p.FreeCount() != 4 {
		t.Fatalf("FreeCount = %d, want 4", p.FreeCount())
	}
	if p.Created() != 4 {
		t.Fatalf("Created = %d, want 4", p.Created())
	}
}

func TestPoolGetPutConservation(t *testing.T) {
	p := NewPool(2, NewEnemy)

	a := p.Get()
	b := p.Get()
	c := p.Get() // pool empty, fresh instance
	if p.Created() != 3 {
		t.Fatalf("Created = %d, want 3", p.Created())
	}
	if p.FreeCount() != 0 {
		t.Fatalf("FreeCount = %d, want 0", p.FreeCount())
	}

	for _, e := range []*Enemy{a, b, c} {
		if !p.Put(e) {
			t.Fatal("Put returned false for a live instance")
		}
	}
	if p.FreeCount() != 3 {
		t.Fatalf("FreeCount = %d, want 3", p.FreeCount())
	}
	if p.Created() != 3 {
		t.Fatalf("Created grew on Put: %d", p.Created())
	}
}

func TestPoolDoublePut(t *testing.T) {
	p := NewPool(0, NewEnemy)
	e := p.Get()
	if !p.Put(e) {
		t.Fatal("first Put returned false")
	}
	if p.Put(e) {
		t.Fatal("second Put of same instance returned true")
	}
	if p.FreeCount() != 1 {
		t.Fatalf("FreeCount = %d after double Put, want 1", p.FreeCount())
	}
}

func TestPoolLIFOReuse(t *testing.T) {
	p := NewPool(0, NewEnemy)
	a := p.Get()
	p.Put(a)
	if got := p.Get(); got != a {
		t.Fatal("pool did not reuse the most recently released instance")
	}
}
