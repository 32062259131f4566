package simevent

import "testing"

type probe struct {
	fired bool
	step  int
	arg   int
}

func TestAddEventFiresAtCorrectTime(t *testing.T) {
	s := New()
	var stepCount int
	var a probe
	s.AddEvent(1, 10, 1, func(arg int) { a.fired, a.step, a.arg = true, stepCount, arg })

	for i := 0; i < 20; i++ {
		stepCount++
		s.Advance(1)
	}
	if !a.fired || a.step != 10 || a.arg != 1 {
		t.Errorf("a = %+v, want fired at step 10 with arg 1", a)
	}
}

func TestAddEventTwoEventsIndependentTimers(t *testing.T) {
	s := New()
	var stepCount int
	var a, b probe
	s.AddEvent(1, 10, 1, func(arg int) { a.fired, a.step, a.arg = true, stepCount, arg })
	s.AddEvent(2, 5, 2, func(arg int) { b.fired, b.step, b.arg = true, stepCount, arg })

	for i := 0; i < 20; i++ {
		stepCount++
		s.Advance(1)
	}
	if !a.fired || a.step != 10 || a.arg != 1 {
		t.Errorf("a = %+v, want fired at step 10 with arg 1", a)
	}
	if !b.fired || b.step != 5 || b.arg != 2 {
		t.Errorf("b = %+v, want fired at step 5 with arg 2", b)
	}
}

func TestAddEventSameTimeBothFire(t *testing.T) {
	s := New()
	var stepCount int
	var a, b probe
	s.AddEvent(1, 10, 1, func(arg int) { a.fired, a.step, a.arg = true, stepCount, arg })
	s.AddEvent(2, 10, 2, func(arg int) { b.fired, b.step, b.arg = true, stepCount, arg })

	for i := 0; i < 20; i++ {
		stepCount++
		s.Advance(1)
	}
	if !a.fired || a.step != 10 {
		t.Errorf("a = %+v, want fired at step 10", a)
	}
	if !b.fired || b.step != 10 {
		t.Errorf("b = %+v, want fired at step 10", b)
	}
}

func TestAddEventDuringCallback(t *testing.T) {
	s := New()
	var stepCount int
	var a, c probe
	s.AddEvent(1, 20, 5, func(arg int) { a.fired, a.step, a.arg = true, stepCount, arg })
	s.AddEvent(2, 10, 2, func(arg int) {
		c.fired, c.step, c.arg = true, stepCount, arg
		s.AddEvent(3, 5, 9, func(int) {}) // scheduling mid-callback must not corrupt the list
	})

	for i := 0; i < 30; i++ {
		stepCount++
		s.Advance(1)
	}
	if !a.fired || a.step != 20 || a.arg != 5 {
		t.Errorf("a = %+v, want fired at step 20 with arg 5", a)
	}
	if !c.fired || c.step != 10 || c.arg != 2 {
		t.Errorf("c = %+v, want fired at step 10 with arg 2", c)
	}
}

func TestCancelEventRemovesPending(t *testing.T) {
	s := New()
	var stepCount int
	var a, b probe
	s.AddEvent(1, 10, 5, func(arg int) {
		a.fired, a.step, a.arg = true, stepCount, arg
		s.CancelEvent(2, 2)
	})
	s.AddEvent(2, 20, 2, func(arg int) { b.fired, b.step, b.arg = true, stepCount, arg })

	for i := 0; i < 30; i++ {
		stepCount++
		s.Advance(1)
	}
	if !a.fired || a.step != 10 {
		t.Errorf("a = %+v, want fired at step 10", a)
	}
	if b.fired {
		t.Errorf("b = %+v, expected cancelled event never to fire", b)
	}
	if s.Pending() {
		t.Error("scheduler should be empty after both events resolved")
	}
}
