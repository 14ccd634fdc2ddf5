package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestEmbeddedFormulas(t *testing.T) {
	e, err := NewEngine("", zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	defer e.Close()

	if got := e.ContactDamage(10, 2); got != 20 {
		t.Fatalf("ContactDamage(10, 2) = %v, want 20", got)
	}
	if got := e.ProjectileDamage(10, 2); got != 22 {
		t.Fatalf("ProjectileDamage(10, 2) = %v, want 22", got)
	}
}

func TestScriptDirOverride(t *testing.T) {
	dir := t.TempDir()
	script := `
function calc_contact_damage(ctx)
    return ctx.base + 100
end
`
	if err := os.WriteFile(filepath.Join(dir, "override.lua"), []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}

	e, err := NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	defer e.Close()

	if got := e.ContactDamage(10, 2); got != 110 {
		t.Fatalf("overridden ContactDamage = %v, want 110", got)
	}
	// Formulas not overridden keep the embedded definition.
	if got := e.ProjectileDamage(10, 2); got != 22 {
		t.Fatalf("ProjectileDamage = %v, want 22", got)
	}
}

func TestMissingScriptDirIsIgnored(t *testing.T) {
	e, err := NewEngine("no/such/dir", zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngine with missing dir: %v", err)
	}
	e.Close()
}

func TestBrokenScriptFails(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.lua"), []byte("function ("), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewEngine(dir, zap.NewNop()); err == nil {
		t.Fatal("syntax error accepted")
	}
}

func TestNegativeResultClampedToZero(t *testing.T) {
	dir := t.TempDir()
	script := `
function calc_contact_damage(ctx)
    return -5
end
`
	if err := os.WriteFile(filepath.Join(dir, "neg.lua"), []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}
	e, err := NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	defer e.Close()
	if got := e.ContactDamage(10, 2); got != 0 {
		t.Fatalf("negative formula result = %v, want clamp to 0", got)
	}
}

func TestNonNumberResultFallsBack(t *testing.T) {
	dir := t.TempDir()
	script := `
function calc_contact_damage(ctx)
    return "a lot"
end
`
	if err := os.WriteFile(filepath.Join(dir, "str.lua"), []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}
	e, err := NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	defer e.Close()
	if got := e.ContactDamage(10, 2); got != 20 {
		t.Fatalf("fallback = %v, want base*mult = 20", got)
	}
}
