package lrustore

// Recency-list operations on the intrusive entry links. Head is the
// most-recently-used entry, tail the least. These touch no lock of their
// own; callers must hold s.mu.

// detach unlinks e from the list, fixing neighbor links and the head/tail
// pointers. Detaching an entry that is not linked is a no-op.
func (s *Store) detach(e *entry) {
	if e == nil {
		return
	}

	if e.prev != nil {
		e.prev.next = e.next
	} else if s.head == e {
		s.head = e.next
	}

	if e.next != nil {
		e.next.prev = e.prev
	} else if s.tail == e {
		s.tail = e.prev
	}

	e.prev = nil
	e.next = nil
}

// attachHead links e as the new head. If the list was empty, e becomes the
// tail as well.
func (s *Store) attachHead(e *entry) {
	if e == nil {
		return
	}

	e.prev = nil
	e.next = s.head

	if s.head != nil {
		s.head.prev = e
	}
	s.head = e

	if s.tail == nil {
		s.tail = e
	}
}
