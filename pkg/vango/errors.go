package vango

import "errors"

// ErrRefUnresolved is returned by Ref.Resolve when the ref has not been
// bound to a mounted element.
var ErrRefUnresolved = errors.New("vango: ref is not bound to a mounted element")
