package sched

// VisibilitySource emits "became visible" events for placeholders. It
// abstracts whatever platform mechanism tracks viewport intersection; in the
// browser this is an IntersectionObserver, in simulations it is a scripted
// event feed.
//
// Subscribe registers fn to be invoked every time the placeholder with the
// given id enters the viewport, and returns a cancel function that stops
// further notifications. Implementations may invoke fn synchronously from
// within Subscribe when the placeholder is already visible at attach time.
// Subscribe returns an error when the placeholder cannot be tracked at all;
// the scheduler treats that as "always visible" and renders eagerly rather
// than never.
type VisibilitySource interface {
	Subscribe(id string, fn func()) (cancel func(), err error)
}

// FuncSource adapts a plain function to the VisibilitySource interface.
type FuncSource func(id string, fn func()) (func(), error)

// Subscribe calls f.
func (f FuncSource) Subscribe(id string, fn func()) (func(), error) {
	return f(id, fn)
}
