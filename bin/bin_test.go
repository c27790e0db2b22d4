package bin

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func TestBounds(t *testing.T) {
	i := New(4)
	for a := uint32(0); a < 4; a++ {
		i.Set(a, uint8(a+1))
	}
	i.Set(4, 0x55)
	i.Set(0xFFFFFFFF, 0x55)
	for a := uint32(0); a < 4; a++ {
		if got, want := i.Get(a), uint8(a+1); got != want {
			t.Errorf("Get(%d): got %.2X want %.2X", a, got, want)
		}
	}
	for _, a := range []uint32{4, 5, 0x1FFFFF, 0xFFFFFFFF} {
		if got, want := i.Get(a), Fill; got != want {
			t.Errorf("Get(%.8X) out of range: got %.2X want %.2X", a, got, want)
		}
	}
	if got, want := i.Len(), 4; got != want {
		t.Errorf("Len: got %d want %d", got, want)
	}
}

func TestLoad(t *testing.T) {
	dir, err := ioutil.TempDir("", "bin")
	if err != nil {
		t.Fatalf("can't make temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	tests := []struct {
		name  string
		size  int
		first uint8
		len   int
	}{
		{"plain", BankSize * 2, 0x00, BankSize * 2},
		{"header", BankSize + HeaderSize, HeaderSize % 256, BankSize},
		{"odd", 100, 0x00, 100},
	}
	for _, test := range tests {
		b := make([]uint8, test.size)
		for j := range b {
			b[j] = uint8(j)
		}
		fn := filepath.Join(dir, test.name)
		if err := ioutil.WriteFile(fn, b, 0644); err != nil {
			t.Fatalf("%s: can't write: %v", test.name, err)
		}
		i, err := Load(fn)
		if err != nil {
			t.Fatalf("%s: can't load: %v", test.name, err)
		}
		if got, want := i.Len(), test.len; got != want {
			t.Errorf("%s: bad len got %d want %d", test.name, got, want)
		}
		if got, want := i.Get(0), test.first; got != want {
			t.Errorf("%s: bad first byte got %.2X want %.2X", test.name, got, want)
		}
	}
	if _, err := Load(filepath.Join(dir, "missing")); err == nil {
		t.Error("no error loading a missing file")
	}
}

func TestSave(t *testing.T) {
	dir, err := ioutil.TempDir("", "bin")
	if err != nil {
		t.Fatalf("can't make temp dir: %v", err)
	}
	defer os.RemoveAll(dir)
	i := FromBytes([]uint8{0xA9, 0x10, 0x60})
	fn := filepath.Join(dir, "out.pce")
	if err := i.Save(fn); err != nil {
		t.Fatalf("can't save: %v", err)
	}
	n, err := Load(fn)
	if err != nil {
		t.Fatalf("can't reload: %v", err)
	}
	if got, want := n.Get(2), uint8(0x60); got != want {
		t.Errorf("reloaded image wrong: got %.2X want %.2X", got, want)
	}
}
