package stats

import "testing"

func TestUnframe(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
		wantOK  bool
	}{
		{"socket.io event", `42["statistics",{"en":5}]`, `["statistics",{"en":5}]`, true},
		{"bare array", `["x"]`, `["x"]`, true},
		{"envelope discarded unvalidated", `garbage]{[1,2]`, `[1,2]`, true},
		{"first bracket wins", `4[[1],[2]]`, `[[1],[2]]`, true},
		{"ping", `3`, "", false},
		{"open packet", `0{"sid":"abc","pingInterval":25000}`, "", false},
		{"empty", ``, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Unframe(tt.payload)
			if ok != tt.wantOK {
				t.Fatalf("ok: got %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("text: got %q, want %q", got, tt.want)
			}
		})
	}
}
