package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func writePolicyFile(t *testing.T, dir, share string) string {
	t.Helper()
	path := filepath.Join(dir, "policy.yml")
	body := "policy:\n  vendor:\n    recommended_share: " + share + "\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write policy: %v", err)
	}
	return path
}

func TestPolicyHolderDefaultsWithoutFile(t *testing.T) {
	cfg := Config{PolicyPath: filepath.Join(t.TempDir(), "policy.yml")}

	holder, err := NewPolicyHolder(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("new holder: %v", err)
	}
	if got := holder.Get(); got != DefaultPolicy() {
		t.Fatalf("missing file should fall back to defaults, got %+v", got)
	}
}

func TestPolicyHolderReadsFile(t *testing.T) {
	dir := t.TempDir()
	writePolicyFile(t, dir, "0.9")

	holder, err := NewPolicyHolder(Config{PolicyPath: filepath.Join(dir, "policy.yml")}, zap.NewNop())
	if err != nil {
		t.Fatalf("new holder: %v", err)
	}
	if got := holder.Get().Vendor.RecommendedShare; got != 0.9 {
		t.Fatalf("recommended_share = %v, want 0.9", got)
	}
}

func TestPolicyHolderHotReload(t *testing.T) {
	dir := t.TempDir()
	path := writePolicyFile(t, dir, "0.9")

	core, logs := observer.New(zap.InfoLevel)
	holder, err := NewPolicyHolder(Config{PolicyPath: path}, zap.New(core))
	if err != nil {
		t.Fatalf("new holder: %v", err)
	}

	writePolicyFile(t, dir, "0.7")

	deadline := time.Now().Add(5 * time.Second)
	for holder.Get().Vendor.RecommendedShare != 0.7 {
		if time.Now().After(deadline) {
			t.Fatalf("reload not applied, share = %v", holder.Get().Vendor.RecommendedShare)
		}
		time.Sleep(20 * time.Millisecond)
	}

	if logs.FilterMessage("policy reloaded").Len() == 0 {
		t.Fatal("reload should be logged")
	}
}

func TestValidatePolicyRejectsBadValues(t *testing.T) {
	p := DefaultPolicy()
	p.Sizing.AreaPerKwM2 = 0
	if err := validatePolicy(p); err == nil {
		t.Fatal("zero area per kw should be rejected")
	}

	p = DefaultPolicy()
	p.Vendor.RecommendedShare = 1.5
	if err := validatePolicy(p); err == nil {
		t.Fatal("share above 1 should be rejected")
	}
}
