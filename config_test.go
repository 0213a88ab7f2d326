package airlock_test

import (
	"testing"
	"time"

	airlock "github.com/ep-infosec/31-uber-airlock"
)

func TestNewDefaults(t *testing.T) {
	p, err := airlock.New(airlock.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if want, have := true, p.Enabled(); want != have {
		t.Errorf("Enabled: want %v, have %v", want, have)
	}
	if want, have := airlock.DefaultWaitPeriod, p.WaitPeriod(); want != have {
		t.Errorf("WaitPeriod: want %v, have %v", want, have)
	}

	// Default window and threshold are both 5: the prober turns healthy
	// on exactly the fifth healthy outcome.
	for i := 0; i < airlock.DefaultWindow-1; i++ {
		p.Ok()
		if p.Healthy() {
			t.Fatalf("healthy after %d outcomes", i+1)
		}
	}
	p.Ok()
	if want, have := true, p.Healthy(); want != have {
		t.Errorf("Healthy: want %v, have %v", want, have)
	}
}

func TestNewInvalidConfig(t *testing.T) {
	for _, tc := range []struct {
		name   string
		config airlock.Config
	}{
		{"negative window", airlock.Config{Window: -1}},
		{"negative threshold", airlock.Config{Threshold: -1}},
		{"threshold above window", airlock.Config{Window: 5, Threshold: 7}},
		{"negative wait period", airlock.Config{WaitPeriod: -time.Second}},
		{"max below initial wait period", airlock.Config{WaitPeriod: 2 * time.Second, MaxWaitPeriod: time.Second}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := airlock.New(tc.config); err == nil {
				t.Error("want error, have nil")
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	if err := (airlock.Config{}).Validate(); err != nil {
		t.Errorf("zero config: %v", err)
	}
	if err := (airlock.Config{Window: 10, Threshold: 6}).Validate(); err != nil {
		t.Errorf("valid config: %v", err)
	}
	if err := (airlock.Config{Window: 3, Threshold: 4}).Validate(); err == nil {
		t.Error("want error, have nil")
	}
}
