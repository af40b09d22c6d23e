package whatlang

import (
	"errors"
	"testing"
)

func TestDetectEnglish(t *testing.T) {
	code, err := New(0).Detect("This agreement is made between the supplier and the customer and governs the supply of services.")
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if code != "en" {
		t.Fatalf("expected en, got %s", code)
	}
}

func TestDetectDevanagari(t *testing.T) {
	code, err := New(0).Detect("यह समझौता दोनों पक्षों के बीच गोपनीयता बनाए रखने के लिए किया गया है और इसकी सभी शर्तें बाध्यकारी हैं")
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	switch code {
	case "hi", "mr", "ne":
	default:
		t.Fatalf("expected a Devanagari language, got %s", code)
	}
}

func TestDetectEmptyText(t *testing.T) {
	if _, err := New(0).Detect("   "); !errors.Is(err, ErrUndetected) {
		t.Fatalf("expected ErrUndetected, got %v", err)
	}
}

func TestDetectRespectsConfidence(t *testing.T) {
	if _, err := New(1.01).Detect("This agreement is made between the parties."); !errors.Is(err, ErrUndetected) {
		t.Fatalf("expected ErrUndetected above max confidence, got %v", err)
	}
}
