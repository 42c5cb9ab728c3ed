// internal/domain/editor/editor.go
package editor

import (
	"context"
	"errors"
	"sync"
)

// State is the lifecycle state of an editing session.
type State uint8

const (
	Editing State = iota
	Submitting
	Terminated
)

func (s State) String() string {
	switch s {
	case Submitting:
		return "submitting"
	case Terminated:
		return "terminated"
	default:
		return "editing"
	}
}

var (
	// ErrSubmitting rejects mutations and second submits while a save is in flight.
	ErrSubmitting = errors.New("editor: submission in progress")
	// ErrTerminated rejects everything after a successful save until Resync.
	ErrTerminated = errors.New("editor: session terminated")
)

// Transmitter hands a submission to the persistence side. Its error is
// returned to the Submit caller untouched.
type Transmitter interface {
	Transmit(ctx context.Context, sub Submission) error
}

// TransmitterFunc adapts a function to Transmitter.
type TransmitterFunc func(ctx context.Context, sub Submission) error

func (f TransmitterFunc) Transmit(ctx context.Context, sub Submission) error { return f(ctx, sub) }

// Editor is one editing session. It exclusively owns its Structure; callers
// read snapshots through Structure and change it only through Apply and the
// operation wrappers.
type Editor struct {
	mu    sync.Mutex
	state State
	s     Structure
}

// New starts a session on an empty structure.
func New() *Editor {
	return &Editor{}
}

// Load starts a session on previously persisted data.
func Load(s Structure) *Editor {
	return &Editor{s: s}
}

func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Structure returns the current snapshot. Snapshots are immutable, so the
// caller may keep it across later operations.
func (e *Editor) Structure() Structure {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.s
}

// Apply runs op against the current structure and keeps the result. If op
// fails the structure is left as it was.
func (e *Editor) Apply(op func(Structure) (Structure, error)) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.editable(); err != nil {
		return err
	}
	next, err := op(e.s)
	if err != nil {
		return err
	}
	e.s = next
	return nil
}

func (e *Editor) editable() error {
	switch e.state {
	case Submitting:
		return ErrSubmitting
	case Terminated:
		return ErrTerminated
	}
	return nil
}

// Submit serializes the whole structure and transmits it. While the
// transmitter runs, mutations and further submits fail with ErrSubmitting.
// On failure the session returns to Editing with its structure intact; on
// success it is Terminated. If the transmitter panics the session is
// returned to Editing before the panic continues.
func (e *Editor) Submit(ctx context.Context, t Transmitter) (err error) {
	e.mu.Lock()
	if err := e.editable(); err != nil {
		e.mu.Unlock()
		return err
	}
	e.state = Submitting
	snapshot := e.s
	e.mu.Unlock()

	done := false
	defer func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if done && err == nil {
			e.state = Terminated
			return
		}
		e.state = Editing
	}()

	err = t.Transmit(ctx, BuildSubmission(snapshot))
	done = true
	return err
}

// Resync replaces the structure with the server's canonical copy and resumes
// editing. It is refused while a submission is in flight.
func (e *Editor) Resync(s Structure) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == Submitting {
		return ErrSubmitting
	}
	e.s = s
	e.state = Editing
	return nil
}

/* ----------------------------- operation wrappers ----------------------------- */

func (e *Editor) AddGroup() error {
	return e.Apply(func(s Structure) (Structure, error) { return s.AddGroup(), nil })
}

func (e *Editor) RemoveGroup(i int) error {
	return e.Apply(func(s Structure) (Structure, error) { return s.RemoveGroup(i) })
}

func (e *Editor) SetGroupName(i int, name string) error {
	return e.Apply(func(s Structure) (Structure, error) { return s.SetGroupName(i, name) })
}

func (e *Editor) SetLeaderName(i int, name string) error {
	return e.Apply(func(s Structure) (Structure, error) { return s.SetLeaderName(i, name) })
}

func (e *Editor) SetLeaderPhoto(i int, p Photo) error {
	return e.Apply(func(s Structure) (Structure, error) { return s.SetLeaderPhoto(i, p) })
}

func (e *Editor) RemoveLeader(i int) error {
	return e.Apply(func(s Structure) (Structure, error) { return s.RemoveLeader(i) })
}

func (e *Editor) AddMember(i int) error {
	return e.Apply(func(s Structure) (Structure, error) { return s.AddMember(i) })
}

func (e *Editor) RemoveMember(i, j int) error {
	return e.Apply(func(s Structure) (Structure, error) { return s.RemoveMember(i, j) })
}

func (e *Editor) SetMemberName(i, j int, name string) error {
	return e.Apply(func(s Structure) (Structure, error) { return s.SetMemberName(i, j, name) })
}

func (e *Editor) SetMemberPhoto(i, j int, p Photo) error {
	return e.Apply(func(s Structure) (Structure, error) { return s.SetMemberPhoto(i, j, p) })
}

func (e *Editor) AddNote(i int) error {
	return e.Apply(func(s Structure) (Structure, error) { return s.AddNote(i) })
}

func (e *Editor) RemoveNote(i, k int) error {
	return e.Apply(func(s Structure) (Structure, error) { return s.RemoveNote(i, k) })
}

func (e *Editor) SetNote(i, k int, value string) error {
	return e.Apply(func(s Structure) (Structure, error) { return s.SetNote(i, k, value) })
}

func (e *Editor) AddPosition() error {
	return e.Apply(func(s Structure) (Structure, error) { return s.AddPosition(), nil })
}

func (e *Editor) RemovePosition(p int) error {
	return e.Apply(func(s Structure) (Structure, error) { return s.RemovePosition(p) })
}

func (e *Editor) SetPositionTitle(p int, title string) error {
	return e.Apply(func(s Structure) (Structure, error) { return s.SetPositionTitle(p, title) })
}

func (e *Editor) SetOccupantName(p int, name string) error {
	return e.Apply(func(s Structure) (Structure, error) { return s.SetOccupantName(p, name) })
}

func (e *Editor) SetOccupantPhoto(p int, photo Photo) error {
	return e.Apply(func(s Structure) (Structure, error) { return s.SetOccupantPhoto(p, photo) })
}
