package reactivity

import "reflect"

// refDefaultEqual is the default change-detection comparator for Ref[T]
// when T is not constrained to be comparable (Go generics have no
// "comparable or DeepEqual" constraint that spans both value and pointer
// types cleanly). reflect.DeepEqual is the closest stdlib equivalent to
// spec's "writes compare by identity" for arbitrary T; callers that need
// true pointer-identity semantics should supply their own equality function
// via NewRefWithEqual.
func refDefaultEqual[T any](a, b T) bool {
	return reflect.DeepEqual(a, b)
}
