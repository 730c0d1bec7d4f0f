package integration

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetProfileByName(t *testing.T) {
	require := require.New(t)

	for _, name := range []string{"smoke", "lottery", "stacking", "default"} {
		profile, err := GetProfileByName(name)
		require.NoError(err, name)
		require.Equal(name, profile.Name)
		require.NoError(profile.Validate(), name)
	}

	_, err := GetProfileByName("bogus")
	require.Error(err)
}

func TestProfileValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SimProfile)
		ok     bool
	}{
		{"default is valid", func(p *SimProfile) {}, true},
		{"no miners", func(p *SimProfile) { p.Miners = 0 }, false},
		{"no stackers", func(p *SimProfile) { p.Stackers = 0 }, false},
		{"zero commit amount", func(p *SimProfile) { p.CommitAmount = 0 }, false},
		{"zero stack amount", func(p *SimProfile) { p.StackAmount = 0 }, false},
		{"zero lock period", func(p *SimProfile) { p.LockPeriod = 0 }, false},
		{"no cycles", func(p *SimProfile) { p.Cycles = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultProfile()
			tt.mutate(&p)
			err := p.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}
