package statsview

import "testing"

func TestURL(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{"", "http://localhost:12600/debug/statsview"},
		{"127.0.0.1:9000", "http://127.0.0.1:9000/debug/statsview"},
	}
	for _, test := range tests {
		if got := URL(test.addr); got != test.want {
			t.Errorf("URL(%q): got %q want %q", test.addr, got, test.want)
		}
	}
}
