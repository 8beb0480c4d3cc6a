package service

import (
	"errors"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vaultpass/passgen/internal/crypto"
	"github.com/vaultpass/passgen/internal/metrics"
	"github.com/vaultpass/passgen/internal/model"
)

var testConfig = GeneratorConfig{
	DefaultLength:       12,
	MaxLength:           128,
	DefaultSpecialChars: crypto.DefaultSpecialChars,
}

func TestGenerate_Defaults(t *testing.T) {
	svc := NewGeneratorService(testConfig, nil)
	resp, err := svc.Generate(model.GenerateRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Length != 12 {
		t.Errorf("expected length 12, got %d", resp.Length)
	}
	if len(resp.Password) != 12 {
		t.Errorf("expected password length 12, got %d", len(resp.Password))
	}
}

func TestGenerate_DefaultSpecialChars(t *testing.T) {
	svc := NewGeneratorService(GeneratorConfig{DefaultLength: 12, MaxLength: 128, DefaultSpecialChars: "~"}, nil)
	for i := 0; i < 20; i++ {
		resp, err := svc.Generate(model.GenerateRequest{Length: 8, Special: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Count(resp.Password, "~") != 1 {
			t.Fatalf("expected exactly one '~' in %q", resp.Password)
		}
	}
}

func TestGenerate_CustomOptions(t *testing.T) {
	svc := NewGeneratorService(testConfig, nil)
	resp, err := svc.Generate(model.GenerateRequest{
		Length:       20,
		Digits:       true,
		Special:      true,
		SpecialChars: "+",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Length != 20 {
		t.Errorf("expected length 20, got %d", resp.Length)
	}
	if !strings.Contains(resp.Password, "+") {
		t.Errorf("expected '+' in %q", resp.Password)
	}
	if !strings.ContainsAny(resp.Password, "0123456789") {
		t.Errorf("expected digits in %q", resp.Password)
	}
}

func TestGenerate_LengthTooShort(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	svc := NewGeneratorService(testConfig, m)
	svc.newRand = func() (*rand.Rand, error) {
		t.Fatal("random source must not be created for rejected requests")
		return nil, nil
	}

	_, err := svc.Generate(model.GenerateRequest{Length: 6, Digits: true, Special: true})
	if !errors.Is(err, crypto.ErrBaseTooShort) {
		t.Fatalf("expected ErrBaseTooShort, got %v", err)
	}
	if got := testutil.ToFloat64(m.RequestsRejected.WithLabelValues("configuration")); got != 1 {
		t.Errorf("expected 1 rejected request, got %v", got)
	}
}

func TestGenerate_LengthTooLong(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	svc := NewGeneratorService(testConfig, m)
	svc.newRand = func() (*rand.Rand, error) {
		t.Fatal("random source must not be created for rejected requests")
		return nil, nil
	}

	_, err := svc.Generate(model.GenerateRequest{Length: 200000000})
	if !errors.Is(err, ErrLengthTooLong) {
		t.Fatalf("expected ErrLengthTooLong, got %v", err)
	}
	if !crypto.IsConfigurationError(err) {
		t.Error("length above the maximum must be a configuration error")
	}
	if got := testutil.ToFloat64(m.RequestsRejected.WithLabelValues("configuration")); got != 1 {
		t.Errorf("expected 1 rejected request, got %v", got)
	}
}

func TestGenerate_MaxLengthAllowed(t *testing.T) {
	svc := NewGeneratorService(testConfig, nil)
	resp, err := svc.Generate(model.GenerateRequest{Length: 128, Digits: true, Special: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Length != 128 {
		t.Errorf("expected length 128, got %d", resp.Length)
	}
}

func TestGenerate_NegativeLength(t *testing.T) {
	svc := NewGeneratorService(testConfig, nil)
	_, err := svc.Generate(model.GenerateRequest{Length: -1})
	if !errors.Is(err, crypto.ErrLengthNotPositive) {
		t.Fatalf("expected ErrLengthNotPositive, got %v", err)
	}
}

func TestGenerate_RandomSourceFailure(t *testing.T) {
	svc := NewGeneratorService(testConfig, nil)
	boom := errors.New("boom")
	svc.newRand = func() (*rand.Rand, error) { return nil, boom }

	_, err := svc.Generate(model.GenerateRequest{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected random source error, got %v", err)
	}
	if crypto.IsConfigurationError(err) {
		t.Error("random source failure must not be reported as a configuration error")
	}
}

func TestGenerate_CountsGenerated(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	svc := NewGeneratorService(testConfig, m)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Generate(model.GenerateRequest{Digits: true}); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(m.PasswordsGenerated); got != 16 {
		t.Errorf("expected 16 generated, got %v", got)
	}
}
