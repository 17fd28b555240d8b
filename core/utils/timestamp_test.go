package utils

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimestampUnmarshal(t *testing.T) {
	want := time.Unix(1700000000, 0).UTC()
	tests := []struct {
		name string
		in   string
	}{
		{"unix number", `1700000000`},
		{"unix string", `"1700000000"`},
		{"rfc3339", `"2023-11-14T22:13:20Z"`},
		{"rfc3339 offset", `"2023-11-14T23:13:20+01:00"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			if err := json.Unmarshal([]byte(tt.in), &ts); err != nil {
				t.Fatal(err)
			}
			if !ts.Equal(want) {
				t.Fatalf("got %s, want %s", ts.Time, want)
			}
		})
	}
}

func TestTimestampUnmarshalRejectsGarbage(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`"next tuesday"`), &ts); err == nil {
		t.Fatal("expected error")
	}
}

func TestTimestampNullLeavesZero(t *testing.T) {
	var body struct {
		At *Timestamp `json:"at"`
	}
	if err := json.Unmarshal([]byte(`{"at":null}`), &body); err != nil {
		t.Fatal(err)
	}
	if body.At != nil {
		t.Fatalf("At = %v, want nil", body.At)
	}
}
