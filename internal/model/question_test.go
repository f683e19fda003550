package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestOptionSetWireFormat(t *testing.T) {
	set := OptionSet{"alpha", "beta", "gamma", "delta", "epsilon"}

	data, err := json.Marshal(set)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal wire object: %v", err)
	}
	if len(m) != 5 || m["A"] != "alpha" || m["E"] != "epsilon" {
		t.Fatalf("unexpected wire object %v", m)
	}

	var decoded OptionSet
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal OptionSet: %v", err)
	}
	if decoded != set {
		t.Fatalf("round trip mismatch: %v", decoded)
	}
}

func TestOptionSetRequiresAllLabels(t *testing.T) {
	var set OptionSet
	err := json.Unmarshal([]byte(`{"A":"a","B":"b","C":"c","D":"d"}`), &set)
	if err == nil || !strings.Contains(err.Error(), `"E"`) {
		t.Fatalf("expected missing-label error for E, got %v", err)
	}
}

func TestValidOptionLabel(t *testing.T) {
	for _, label := range OptionLabels {
		if !ValidOptionLabel(label) {
			t.Fatalf("%q should be valid", label)
		}
	}
	for _, label := range []string{"", "F", "a", "AB"} {
		if ValidOptionLabel(label) {
			t.Fatalf("%q should be invalid", label)
		}
	}
}

func TestStudentViewCarriesNoCorrectAnswer(t *testing.T) {
	q := Question{
		ID:            3,
		Text:          "pick one",
		Options:       OptionSet{"a", "b", "c", "d", "e"},
		CorrectAnswer: "B",
	}

	data, err := json.Marshal(q.StudentView())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if strings.Contains(string(data), "correct") {
		t.Fatalf("redacted view leaked the answer: %s", data)
	}
	if !strings.Contains(string(data), `"question":"pick one"`) {
		t.Fatalf("unexpected view payload: %s", data)
	}
}
