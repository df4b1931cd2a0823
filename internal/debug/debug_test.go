package debug

import "testing"

func TestVerboseToggle(t *testing.T) {
	orig := verboseMode
	defer SetVerbose(orig)

	SetVerbose(true)
	if !Enabled() {
		t.Error("Enabled() should be true after SetVerbose(true)")
	}
	SetVerbose(false)
	if enabled {
		t.Skip("TODOSCAN_DEBUG set in environment")
	}
	if Enabled() {
		t.Error("Enabled() should be false after SetVerbose(false)")
	}
}

func TestQuietToggle(t *testing.T) {
	orig := quietMode
	defer SetQuiet(orig)

	SetQuiet(true)
	if !IsQuiet() {
		t.Error("IsQuiet() should be true after SetQuiet(true)")
	}
}
