package protocol

import (
	"errors"
	"testing"
)

func codeOf(t *testing.T, err error) string {
	t.Helper()
	var pe *Error
	if !errors.As(err, &pe) {
		t.Fatalf("expected *Error, got %T %v", err, err)
	}
	return pe.Code
}

func TestValidateWorldJSON_AcceptsSample(t *testing.T) {
	doc := `{
	  "meta": {"tick": 0, "clock": 0, "week": 0, "seed": 42, "config": {"dt": 0.05}},
	  "agents": [
	    {"id": "r1", "type": "R", "pos": {"x": 2.5, "y": 4.3}, "vitals": {"hp": 100, "xp": 0}, "status": "alive"},
	    {"id": "g1", "type": "g", "pos": {"x": -5, "y": 0}, "vel": {"x": 0, "y": 0}, "vitals": {"hp": 0}, "status": "fainted"}
	  ],
	  "food": [{"pos": {"x": 0, "y": 0}, "value": 15, "biome": "B"}]
	}`
	if err := ValidateWorldJSON([]byte(doc)); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestValidateWorldJSON_Rejects(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		code string
	}{
		{"not json", `{"meta":`, ErrBadRequest},
		{"missing agents", `{"meta":{}}`, ErrSchema},
		{"unknown type", `{"meta":{},"agents":[{"id":"x","type":"Q","pos":{"x":0,"y":0},"vitals":{"hp":1},"status":"alive"}]}`, ErrSchema},
		{"missing hp", `{"meta":{},"agents":[{"id":"x","type":"R","pos":{"x":0,"y":0},"vitals":{},"status":"alive"}]}`, ErrSchema},
		{"bad status", `{"meta":{},"agents":[{"id":"x","type":"R","pos":{"x":0,"y":0},"vitals":{"hp":1},"status":"asleep"}]}`, ErrSchema},
		{"zero dt", `{"meta":{"config":{"dt":0}},"agents":[]}`, ErrSchema},
		{"unknown config key", `{"meta":{"config":{"gravity":1}},"agents":[]}`, ErrSchema},
	}
	for _, tc := range cases {
		err := ValidateWorldJSON([]byte(tc.doc))
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if got := codeOf(t, err); got != tc.code {
			t.Fatalf("%s: code=%q want %q (%v)", tc.name, got, tc.code, err)
		}
	}
}
