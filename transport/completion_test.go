package transport

import "testing"

func TestCompletion_InitiallyPending(t *testing.T) {
	c := &Completion{}
	if c.Completed() {
		t.Fatal("fresh completion should be pending")
	}
}

func TestCompletion_Immediate(t *testing.T) {
	c := newCompleted()
	if !c.Completed() {
		t.Fatal("immediate completion should report completed from creation")
	}
}

func TestRequestPool_CompleteFiresOnce(t *testing.T) {
	rp := newRequestPool()
	c := &Completion{}
	r := rp.get(c)

	if c.Completed() {
		t.Fatal("completion flipped before callback")
	}
	rp.complete(r)
	if !c.Completed() {
		t.Fatal("completion callback did not flip the flag")
	}
}

func TestRequestPool_RecycledBlockIsClean(t *testing.T) {
	rp := newRequestPool()

	first := &Completion{}
	r := rp.get(first)
	rp.complete(r)

	// A recycled block must not reference the previous completion.
	second := &Completion{}
	r2 := rp.get(second)
	if r2.comp != second {
		t.Fatal("recycled request carries stale completion slot")
	}
	rp.put(r2)
	if second.Completed() {
		t.Fatal("put must not complete the operation")
	}
}
