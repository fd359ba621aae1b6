// Package remap implements the table translating the object handles recorded
// in a trace (virtual handles) to the handles of the objects created during
// replay.
//
// Handles are categorized by object type: the same virtual value may be bound
// in two categories without conflict. Null handles are never bound.
package remap

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/LunarG/VulkanTools-sub014/internal/vkapi"
)

// State is the state of a virtual handle in the table.
type State uint8

const (
	Unmapped State = iota
	Bound
	// Pending is the state of memory objects whose allocation was deferred
	// until the first bind of a resource to them.
	Pending
	// Resolved is the state of previously pending memory objects which have
	// been allocated.
	Resolved
)

func (s State) String() string {
	switch s {
	case Unmapped:
		return "unmapped"
	case Bound:
		return "bound"
	case Pending:
		return "pending"
	case Resolved:
		return "resolved"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

type entry struct {
	replay uint64
	state  State
}

// Table is a bidirectional mapping between virtual and replay handles.
//
// Objects owned by another object (for example the command buffers of a
// command pool) are registered with Own, and are unbound when their owner is.
//
// Table values are not safe for concurrent use.
type Table struct {
	entries  map[vkapi.Object]entry
	reverse  map[vkapi.Object]uint64
	parent   map[vkapi.Object]vkapi.Object
	children map[vkapi.Object]map[vkapi.Object]struct{}
}

func New() *Table {
	return &Table{
		entries:  make(map[vkapi.Object]entry),
		reverse:  make(map[vkapi.Object]uint64),
		parent:   make(map[vkapi.Object]vkapi.Object),
		children: make(map[vkapi.Object]map[vkapi.Object]struct{}),
	}
}

// Len returns the number of virtual handles in the table, pending ones
// included.
func (t *Table) Len() int { return len(t.entries) }

// State returns the state of the virtual handle.
func (t *Table) State(virtual vkapi.Object) State {
	return t.entries[virtual].state
}

// Bind associates the virtual handle with a replay handle. Binding a null
// virtual or replay handle has no effect.
func (t *Table) Bind(virtual vkapi.Object, replay uint64) error {
	if virtual.Handle == 0 || replay == 0 {
		return nil
	}
	if e, ok := t.entries[virtual]; ok {
		return &DuplicateBindingError{Object: virtual, Replay: e.replay}
	}
	t.entries[virtual] = entry{replay: replay, state: Bound}
	t.reverse[vkapi.Object{Type: virtual.Type, Handle: replay}] = virtual.Handle
	return nil
}

// BindPending records that the allocation of the virtual handle was
// deferred. The handle must be resolved before it can be looked up.
func (t *Table) BindPending(virtual vkapi.Object) error {
	if virtual.Handle == 0 {
		return nil
	}
	if e, ok := t.entries[virtual]; ok {
		return &DuplicateBindingError{Object: virtual, Replay: e.replay}
	}
	t.entries[virtual] = entry{state: Pending}
	return nil
}

// Resolve binds a pending virtual handle to the replay handle that was
// eventually created for it.
func (t *Table) Resolve(virtual vkapi.Object, replay uint64) error {
	e, ok := t.entries[virtual]
	switch {
	case !ok:
		return &UnmappedHandleError{Object: virtual}
	case e.state != Pending:
		return &DuplicateBindingError{Object: virtual, Replay: e.replay}
	}
	t.entries[virtual] = entry{replay: replay, state: Resolved}
	t.reverse[vkapi.Object{Type: virtual.Type, Handle: replay}] = virtual.Handle
	return nil
}

// Lookup returns the replay handle bound to the virtual handle.
func (t *Table) Lookup(virtual vkapi.Object) (uint64, error) {
	e, ok := t.entries[virtual]
	switch {
	case !ok:
		return 0, &UnmappedHandleError{Object: virtual}
	case e.state == Pending:
		return 0, &PendingAllocationError{Object: virtual}
	}
	return e.replay, nil
}

// LookupOptional is like Lookup but maps the null handle to itself.
func (t *Table) LookupOptional(virtual vkapi.Object) (uint64, error) {
	if virtual.Handle == 0 {
		return 0, nil
	}
	return t.Lookup(virtual)
}

// Reverse returns the virtual handle bound to a replay handle.
func (t *Table) Reverse(replay vkapi.Object) (uint64, bool) {
	virtual, ok := t.reverse[replay]
	return virtual, ok
}

// Own registers child as owned by owner. The child is unbound when the owner
// is unbound.
func (t *Table) Own(owner, child vkapi.Object) {
	if owner.Handle == 0 || child.Handle == 0 {
		return
	}
	if prev, ok := t.parent[child]; ok {
		delete(t.children[prev], child)
	}
	set := t.children[owner]
	if set == nil {
		set = make(map[vkapi.Object]struct{})
		t.children[owner] = set
	}
	set[child] = struct{}{}
	t.parent[child] = owner
}

// Owned returns the objects currently owned by owner, sorted by type and
// handle.
func (t *Table) Owned(owner vkapi.Object) []vkapi.Object {
	owned := make([]vkapi.Object, 0, len(t.children[owner]))
	for child := range t.children[owner] {
		owned = append(owned, child)
	}
	sortObjects(owned)
	return owned
}

// Unbind removes the virtual handle from the table, along with every object
// that it owns, recursively. The method returns the list of objects that
// were unbound as a side effect.
func (t *Table) Unbind(virtual vkapi.Object) []vkapi.Object {
	var cascade []vkapi.Object
	t.unbind(virtual, &cascade)
	sortObjects(cascade)
	return cascade
}

func (t *Table) unbind(virtual vkapi.Object, cascade *[]vkapi.Object) {
	if e, ok := t.entries[virtual]; ok {
		delete(t.entries, virtual)
		replay := vkapi.Object{Type: virtual.Type, Handle: e.replay}
		if t.reverse[replay] == virtual.Handle {
			delete(t.reverse, replay)
		}
	}
	if owner, ok := t.parent[virtual]; ok {
		delete(t.children[owner], virtual)
		delete(t.parent, virtual)
	}
	children := t.children[virtual]
	delete(t.children, virtual)
	for child := range children {
		delete(t.parent, child)
		if _, ok := t.entries[child]; ok {
			*cascade = append(*cascade, child)
		}
		t.unbind(child, cascade)
	}
}

func sortObjects(objects []vkapi.Object) {
	slices.SortFunc(objects, func(a, b vkapi.Object) int {
		switch {
		case a.Type < b.Type:
			return -1
		case a.Type > b.Type:
			return +1
		case a.Handle < b.Handle:
			return -1
		case a.Handle > b.Handle:
			return +1
		default:
			return 0
		}
	})
}

// Bind is a type safe version of Table.Bind.
func Bind[H vkapi.Handle](t *Table, virtual, replay H) error {
	return t.Bind(vkapi.ObjectOf(virtual), uint64(replay))
}

// Unbind is a type safe version of Table.Unbind.
func Unbind[H vkapi.Handle](t *Table, virtual H) []vkapi.Object {
	return t.Unbind(vkapi.ObjectOf(virtual))
}

// Lookup is a type safe version of Table.Lookup.
func Lookup[H vkapi.Handle](t *Table, virtual H) (H, error) {
	replay, err := t.Lookup(vkapi.ObjectOf(virtual))
	return H(replay), err
}

// LookupOptional is a type safe version of Table.LookupOptional.
func LookupOptional[H vkapi.Handle](t *Table, virtual H) (H, error) {
	replay, err := t.LookupOptional(vkapi.ObjectOf(virtual))
	return H(replay), err
}

// LookupAll translates a list of virtual handles. The returned slice is a new
// allocation; a nil input produces a nil output.
func LookupAll[H vkapi.Handle](t *Table, virtual []H) ([]H, error) {
	if virtual == nil {
		return nil, nil
	}
	replay := make([]H, len(virtual))
	for i, h := range virtual {
		r, err := Lookup(t, h)
		if err != nil {
			return nil, err
		}
		replay[i] = r
	}
	return replay, nil
}

// Own is a type safe version of Table.Own.
func Own[P, C vkapi.Handle](t *Table, owner P, child C) {
	t.Own(vkapi.ObjectOf(owner), vkapi.ObjectOf(child))
}

// UnmappedHandleError is returned when looking up a virtual handle which is
// not bound in the table.
type UnmappedHandleError struct {
	Object vkapi.Object
}

func (e *UnmappedHandleError) Error() string {
	return fmt.Sprintf("%s is not mapped to any replay object", e.Object)
}

// DuplicateBindingError is returned when binding a virtual handle which is
// already bound.
type DuplicateBindingError struct {
	Object vkapi.Object
	Replay uint64
}

func (e *DuplicateBindingError) Error() string {
	return fmt.Sprintf("%s is already bound to replay handle %#x", e.Object, e.Replay)
}

// PendingAllocationError is returned when looking up a memory object whose
// allocation has been deferred and not resolved yet.
type PendingAllocationError struct {
	Object vkapi.Object
}

func (e *PendingAllocationError) Error() string {
	return fmt.Sprintf("%s has a pending allocation", e.Object)
}
