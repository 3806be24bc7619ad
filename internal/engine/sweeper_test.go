package engine

import (
	"testing"
)

type fakeRescorer struct {
	calls int
}

func (f *fakeRescorer) RescoreAll() (int, error) {
	f.calls++
	return 0, nil
}

func TestSweeperRunsImmediately(t *testing.T) {
	f := &fakeRescorer{}
	s := NewSweeper(f)
	s.Start()
	defer s.Stop()

	if f.calls != 1 {
		t.Errorf("RescoreAll called %d times after Start, want 1", f.calls)
	}
}
