package editor_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dalemusser/kemahasiswaan/internal/domain/editor"
)

func TestEditor_OperationsThroughSession(t *testing.T) {
	e := editor.New()
	if e.State() != editor.Editing {
		t.Fatalf("initial state: got %s, want editing", e.State())
	}

	steps := []func() error{
		e.AddGroup,
		func() error { return e.SetGroupName(0, "Komisi A") },
		func() error { return e.AddMember(0) },
		func() error { return e.SetMemberName(0, 0, "Andi") },
		func() error { return e.AddNote(0) },
		func() error { return e.SetNote(0, 0, "Rapat kerja") },
		func() error { return e.SetLeaderName(0, "Rina") },
		e.AddPosition,
		func() error { return e.SetPositionTitle(0, "Ketua") },
		func() error { return e.SetOccupantName(0, "Budi") },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	s := e.Structure()
	if s.Groups[0].Name != "Komisi A" || s.Groups[0].Members[0].Name != "Andi" ||
		s.Groups[0].Notes[0] != "Rapat kerja" || s.Groups[0].Leader.Name != "Rina" {
		t.Errorf("group not built as expected: %+v", s.Groups[0])
	}
	if s.Positions[0].Title != "Ketua" || s.Positions[0].Occupant.Name != "Budi" {
		t.Errorf("position not built as expected: %+v", s.Positions[0])
	}
}

func TestEditor_FailedOpKeepsStructure(t *testing.T) {
	e := editor.Load(sample())
	before := e.Structure()
	if err := e.RemoveMember(1, 5); !errors.Is(err, editor.ErrIndexOutOfRange) {
		t.Fatalf("got %v, want ErrIndexOutOfRange", err)
	}
	if !e.Structure().Equal(before) {
		t.Error("structure changed after failed op")
	}
}

func TestEditor_SnapshotsAreStable(t *testing.T) {
	e := editor.Load(sample())
	snap := e.Structure()
	if err := e.SetGroupName(0, "Komisi Z"); err != nil {
		t.Fatal(err)
	}
	if snap.Groups[0].Name != "Komisi A" {
		t.Errorf("earlier snapshot changed: got %q", snap.Groups[0].Name)
	}
}

func TestEditor_SubmitFailureReturnsToEditing(t *testing.T) {
	e := editor.Load(sample())
	boom := errors.New("network down")

	err := e.Submit(context.Background(), editor.TransmitterFunc(func(context.Context, editor.Submission) error {
		return boom
	}))
	if !errors.Is(err, boom) {
		t.Fatalf("Submit error: got %v, want %v", err, boom)
	}
	if e.State() != editor.Editing {
		t.Errorf("state: got %s, want editing", e.State())
	}
	if !e.Structure().Equal(sample()) {
		t.Error("structure not preserved after failed submit")
	}
	if err := e.AddGroup(); err != nil {
		t.Errorf("mutation after failed submit: %v", err)
	}
}

func TestEditor_PanickingTransmitterReturnsToEditing(t *testing.T) {
	e := editor.Load(sample())

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Fatal("expected transmitter panic to propagate")
			}
		}()
		_ = e.Submit(context.Background(), editor.TransmitterFunc(func(context.Context, editor.Submission) error {
			panic("transport exploded")
		}))
	}()

	if e.State() != editor.Editing {
		t.Errorf("state: got %s, want editing", e.State())
	}
	if !e.Structure().Equal(sample()) {
		t.Error("structure not preserved after panicking submit")
	}
	if err := e.AddGroup(); err != nil {
		t.Errorf("mutation after panicking submit: %v", err)
	}
}

func TestEditor_RejectsWorkWhileSubmitting(t *testing.T) {
	e := editor.Load(sample())
	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- e.Submit(context.Background(), editor.TransmitterFunc(func(context.Context, editor.Submission) error {
			close(entered)
			<-release
			return nil
		}))
	}()
	<-entered

	if e.State() != editor.Submitting {
		t.Errorf("state: got %s, want submitting", e.State())
	}
	if err := e.AddGroup(); !errors.Is(err, editor.ErrSubmitting) {
		t.Errorf("mutation during submit: got %v, want ErrSubmitting", err)
	}
	second := e.Submit(context.Background(), editor.TransmitterFunc(func(context.Context, editor.Submission) error {
		t.Error("second transmitter must not run")
		return nil
	}))
	if !errors.Is(second, editor.ErrSubmitting) {
		t.Errorf("re-entrant submit: got %v, want ErrSubmitting", second)
	}
	if err := e.Resync(editor.Structure{}); !errors.Is(err, editor.ErrSubmitting) {
		t.Errorf("resync during submit: got %v, want ErrSubmitting", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if e.State() != editor.Terminated {
		t.Errorf("state: got %s, want terminated", e.State())
	}
}

func TestEditor_TerminatedUntilResync(t *testing.T) {
	e := editor.New()
	var got editor.Submission
	err := e.Submit(context.Background(), editor.TransmitterFunc(func(_ context.Context, sub editor.Submission) error {
		got = sub
		return nil
	}))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(got.Metadata.Groups) != 0 || len(got.Assets) != 0 {
		t.Errorf("empty structure should submit empty: %+v", got)
	}

	if err := e.AddGroup(); !errors.Is(err, editor.ErrTerminated) {
		t.Errorf("mutation after success: got %v, want ErrTerminated", err)
	}

	canonical := sample()
	if err := e.Resync(canonical); err != nil {
		t.Fatalf("Resync: %v", err)
	}
	if e.State() != editor.Editing {
		t.Errorf("state after resync: got %s, want editing", e.State())
	}
	if !e.Structure().Equal(canonical) {
		t.Error("structure not replaced by canonical copy")
	}
}
