package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestOHLC_UnmarshalTimeFormats(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
	}{
		{`"2026-02-20T09:15:00+05:30"`, time.Date(2026, 2, 20, 3, 45, 0, 0, time.UTC)},
		{`"2026-02-20T03:45:00Z"`, time.Date(2026, 2, 20, 3, 45, 0, 0, time.UTC)},
		{`"2026-02-20T03:45:00"`, time.Date(2026, 2, 20, 3, 45, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		var b OHLC
		body := `{"time":` + tt.raw + `,"open":1,"high":2,"low":0.5,"close":1.5}`
		if err := json.Unmarshal([]byte(body), &b); err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.raw, err)
		}
		if !b.Time.Equal(tt.want) {
			t.Errorf("%s: got %v, want %v", tt.raw, b.Time, tt.want)
		}
		if b.Close != 1.5 || b.High != 2 {
			t.Errorf("%s: prices not decoded: %+v", tt.raw, b)
		}
	}
}

func TestOHLC_UnmarshalBadTime(t *testing.T) {
	var b OHLC
	if err := json.Unmarshal([]byte(`{"time":"yesterday","close":1}`), &b); err == nil {
		t.Error("expected error for unparseable time")
	}
}
