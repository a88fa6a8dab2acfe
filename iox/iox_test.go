package iox

import (
	"bytes"
	"errors"
	"slices"
	"testing"
	"testing/iotest"
)

type spyCloser struct{ closed bool }

func (s *spyCloser) Close() error { s.closed = true; return errors.New("ignored") }

func TestDiscardClose(t *testing.T) {
	s := &spyCloser{}
	DiscardClose(s)
	if !s.closed {
		t.Fatal("Close was not called")
	}
}

func TestCloseFunc(t *testing.T) {
	s := &spyCloser{}
	fn := CloseFunc(s)
	if s.closed {
		t.Fatal("Close called before invoking returned func")
	}
	fn()
	if !s.closed {
		t.Fatal("Close was not called")
	}
}

func TestDiscardErr(t *testing.T) {
	called := false
	DiscardErr(func() error {
		called = true
		return errors.New("ignored")
	})
	if !called {
		t.Fatal("fn was not called")
	}
}

func TestReadChunks(t *testing.T) {
	data := bytes.Repeat([]byte("abcdefg"), 10) // 70 bytes

	tests := []struct {
		name      string
		size      int
		wantSizes []int
	}{
		{"exact multiple", 7, []int{7, 7, 7, 7, 7, 7, 7, 7, 7, 7}},
		{"short final chunk", 32, []int{32, 32, 6}},
		{"larger than input", 2048, []int{70}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []int
			var joined []byte
			// iotest.OneByteReader forces ReadChunks to fill each chunk.
			err := ReadChunks(iotest.OneByteReader(bytes.NewReader(data)), tt.size, func(chunk []byte) error {
				got = append(got, len(chunk))
				joined = append(joined, chunk...)
				return nil
			})
			if err != nil {
				t.Fatalf("ReadChunks() error = %v", err)
			}
			if !slices.Equal(got, tt.wantSizes) {
				t.Errorf("chunk sizes = %v, want %v", got, tt.wantSizes)
			}
			if !bytes.Equal(joined, data) {
				t.Error("chunks do not reassemble the input")
			}
		})
	}
}

func TestReadChunks_Empty(t *testing.T) {
	calls := 0
	err := ReadChunks(bytes.NewReader(nil), 16, func([]byte) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("ReadChunks() error = %v", err)
	}
	if calls != 0 {
		t.Errorf("fn called %d times for empty input", calls)
	}
}

func TestReadChunks_Errors(t *testing.T) {
	readErr := errors.New("disk gone")
	err := ReadChunks(iotest.ErrReader(readErr), 16, func([]byte) error { return nil })
	if !errors.Is(err, readErr) {
		t.Errorf("read error = %v, want %v", err, readErr)
	}

	stop := errors.New("stop")
	calls := 0
	err = ReadChunks(bytes.NewReader(make([]byte, 64)), 16, func([]byte) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) || calls != 1 {
		t.Errorf("callback error = %v after %d calls, want %v after 1", err, calls, stop)
	}

	if err := ReadChunks(bytes.NewReader(nil), 0, nil); err == nil {
		t.Error("expected error for zero chunk size")
	}
}
