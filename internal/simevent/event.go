/*
   simevent - relative-time event scheduler driving interrupt wake-ups.

   Copyright (c) 2026

   Permission is hereby granted, free of charge, to any person obtaining a
   copy of this software and associated documentation files (the "Software"),
   to deal in the Software without restriction, including without limitation
   the rights to use, copy, modify, merge, publish, distribute, sublicense,
   and/or sell copies of the Software, and to permit persons to whom the
   Software is furnished to do so, subject to the following conditions:

   The above copyright notice and this permission notice shall be included in
   all copies or substantial portions of the Software.

   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.

*/

// Package simevent implements a doubly linked, relative-time event
// queue: each entry stores the number of simulated steps remaining
// until it fires *relative to the entry before it*, so advancing time
// by t only ever touches the head of the list.
package simevent

// Callback runs when its event fires. arg is opaque, passed through
// from AddEvent.
type Callback func(arg int)

type event struct {
	delta int // steps remaining after the previous entry fires
	owner int // caller-defined identity, used by CancelEvent
	cb    Callback
	arg   int
	prev  *event
	next  *event
}

// Scheduler is a per-core event queue. Unlike the package-global
// singleton this is adapted from, a Scheduler is a value any number of
// independently-clocked cores can own one of.
type Scheduler struct {
	head, tail *event
}

// New returns an empty Scheduler.
func New() *Scheduler { return &Scheduler{} }

// AddEvent schedules cb to run in steps simulated steps, tagged with
// owner (for later cancellation) and arg (passed through to cb). A
// delay of 0 runs cb immediately, inline, and schedules nothing.
func (s *Scheduler) AddEvent(owner int, steps int, arg int, cb Callback) {
	if steps <= 0 {
		cb(arg)
		return
	}
	ev := &event{delta: steps, owner: owner, cb: cb, arg: arg}

	cur := s.head
	if cur == nil {
		s.head, s.tail = ev, ev
		return
	}
	for cur != nil {
		if ev.delta <= cur.delta {
			cur.delta -= ev.delta
			ev.prev = cur.prev
			ev.next = cur
			cur.prev = ev
			if ev.prev != nil {
				ev.prev.next = ev
			} else {
				s.head = ev
			}
			return
		}
		ev.delta -= cur.delta
		cur = cur.next
	}
	ev.prev = s.tail
	s.tail.next = ev
	s.tail = ev
}

// CancelEvent removes the first still-pending event matching owner and
// arg, folding its remaining delta into the following entry so total
// elapsed time to later events is unaffected.
func (s *Scheduler) CancelEvent(owner, arg int) {
	for cur := s.head; cur != nil; cur = cur.next {
		if cur.owner != owner || cur.arg != arg {
			continue
		}
		if cur.next != nil {
			cur.next.delta += cur.delta
			cur.next.prev = cur.prev
		} else {
			s.tail = cur.prev
		}
		if cur.prev != nil {
			cur.prev.next = cur.next
		} else {
			s.head = cur.next
		}
		return
	}
}

// Pending reports whether any event is still queued.
func (s *Scheduler) Pending() bool { return s.head != nil }

// Advance moves simulated time forward by steps, firing every event
// whose delta reaches zero or below, in order.
func (s *Scheduler) Advance(steps int) {
	if s.head == nil {
		return
	}
	s.head.delta -= steps
	for s.head != nil && s.head.delta <= 0 {
		fired := s.head
		s.head = fired.next
		if s.head != nil {
			s.head.prev = nil
		} else {
			s.tail = nil
		}
		fired.cb(fired.arg)
	}
}
