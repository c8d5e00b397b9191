package types //nolint:revive // types is a valid package name

import "testing"

func TestJoblogEntry_Failed(t *testing.T) {
	tests := []struct {
		name    string
		exitval string
		signal  string
		want    bool
	}{
		{"clean exit", "0", "0", false},
		{"nonzero exit", "1", "0", true},
		{"killed by signal", "0", "9", true},
		{"both nonzero", "255", "15", true},
		{"empty exitval", "", "0", true},
		{"padded zero is not zero", " 0", "0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := JoblogEntry{Exitval: tt.exitval, Signal: tt.signal, Command: "true"}
			if got := e.Failed(); got != tt.want {
				t.Errorf("Failed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJoblogColumns(t *testing.T) {
	if JoblogColExitval != 6 || JoblogColSignal != 7 || JoblogColCommand != 8 {
		t.Errorf("unexpected joblog column layout: exitval=%d signal=%d command=%d",
			JoblogColExitval, JoblogColSignal, JoblogColCommand)
	}
}
