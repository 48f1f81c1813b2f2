// Copyright © 2018 The ELPS authors

package lisp

// Car returns the first element of a pair. Calling Car on anything but an
// LCons is a usage error in the Go API (use the car primitive, which
// returns an LError, for Lisp-level callers).
func Car(v *LVal) *LVal {
	if v.Type != LCons {
		return Nil
	}
	return v.Car
}

// Cdr returns the rest of a pair. See Car's caveat about non-cons values.
func Cdr(v *LVal) *LVal {
	if v.Type != LCons {
		return Nil
	}
	return v.Cdr
}

// ListLength returns the number of Cons cells traversed before reaching a
// non-cons tail (an improper list's final non-nil element is not itself
// counted; only cells are counted).
func ListLength(v *LVal) int {
	n := 0
	for v.Type == LCons {
		n++
		v = v.Cdr
	}
	return n
}

// ListToSlice collects the elements of a proper (or improper, up to its
// non-cons tail) list into a slice, in order.
func ListToSlice(v *LVal) []*LVal {
	var out []*LVal
	for v.Type == LCons {
		out = append(out, v.Car)
		v = v.Cdr
	}
	return out
}

// SliceToList builds a right-nested Cons chain terminated by Nil from
// elems, allocating each cell in a.
func SliceToList(a Allocator, elems []*LVal) *LVal {
	list := Nil
	for i := len(elems) - 1; i >= 0; i-- {
		list = Cons(a, elems[i], list)
	}
	return list
}
