package binding

import "testing"

func TestUsageOf(t *testing.T) {
	tests := []struct {
		path      string
		wantUsage string
		wantOK    bool
	}{
		{"*/{Submit}", "Submit", true},
		{" */{Cancel} ", "Cancel", true},
		{"*/{}", "", false},
		{"<Gamepad>/buttonSouth", "", false},
		{"*/buttonSouth", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		usage, ok := UsageOf(tt.path)
		if usage != tt.wantUsage || ok != tt.wantOK {
			t.Errorf("UsageOf(%q) = (%q, %v), want (%q, %v)", tt.path, usage, ok, tt.wantUsage, tt.wantOK)
		}
	}
}

func TestDescriptorUsage(t *testing.T) {
	if _, ok := (Descriptor{Path: "<Keyboard>/enter"}).Usage(); ok {
		t.Error("concrete path reported a usage")
	}
	if u, ok := (Descriptor{Path: "*/{Submit}"}).Usage(); !ok || u != "Submit" {
		t.Errorf("Usage() = (%q, %v)", u, ok)
	}
}

func TestLastSegment(t *testing.T) {
	tests := map[string]string{
		"<Gamepad>/buttonSouth": "buttonSouth",
		"<Keyboard>/space":      "space",
		"a/b/c":                 "c",
		"enter":                 "enter",
		"trailing/":             "",
	}
	for path, want := range tests {
		if got := LastSegment(path); got != want {
			t.Errorf("LastSegment(%q) = %q, want %q", path, got, want)
		}
	}
}
