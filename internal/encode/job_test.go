package encode

import "testing"

func TestJob_AdvanceUntilDone(t *testing.T) {
	j := NewJob(3)
	if j.ID.String() == "" || j.Started.IsZero() {
		t.Fatalf("job not initialized: %+v", j)
	}
	if j.Done() {
		t.Error("new job reports done")
	}
	for want := 1; want <= 3; want++ {
		if got := j.Advance(); got != want {
			t.Errorf("Advance() = %d, want %d", got, want)
		}
	}
	if !j.Done() {
		t.Errorf("job with %d/%d written is not done", j.Written, j.Total)
	}
}

func TestJob_IDsAreUnique(t *testing.T) {
	if NewJob(1).ID == NewJob(1).ID {
		t.Error("two jobs share an ID")
	}
}
