package dyld

import "testing"

func TestOpenNoNames(t *testing.T) {
	_, _, err := Open(nil)
	if err == nil {
		t.Fatal("Expected error for empty name list")
	}
}

func TestOpenMissingLibrary(t *testing.T) {
	_, _, err := Open([]string{"libnosuchcapturelib-probe.so.999"})
	if err == nil {
		t.Fatal("Expected error for nonexistent library")
	}
}

func TestOpenAllCandidatesFail(t *testing.T) {
	_, _, err := Open([]string{
		"libnosuchcapturelib-first.so.999",
		"libnosuchcapturelib-second.so.999",
	})
	if err == nil {
		t.Fatal("Expected error when no candidate loads")
	}
}

func TestLookupZeroHandle(t *testing.T) {
	_, err := Lookup(0, "AnySymbol")
	if err == nil {
		t.Fatal("Expected error for zero handle")
	}
}
