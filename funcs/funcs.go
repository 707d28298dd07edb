// Package funcs provides the pure collection toolkit the capability engine
// builds on: traversal, aggregation, and copying primitives over slices and
// maps. All functions allocate their results; outputs never alias inputs.
package funcs

// Fold aggregates items left to right, starting from init.
func Fold[T, A any](items []T, init A, fn func(A, T) A) A {
	acc := init
	for _, item := range items {
		acc = fn(acc, item)
	}
	return acc
}

// FoldRight aggregates items right to left, starting from init.
func FoldRight[T, A any](items []T, init A, fn func(T, A) A) A {
	acc := init
	for i := len(items) - 1; i >= 0; i-- {
		acc = fn(items[i], acc)
	}
	return acc
}

// Map transforms every item through fn.
func Map[T, U any](items []T, fn func(T) U) []U {
	if items == nil {
		return nil
	}
	out := make([]U, len(items))
	for i, item := range items {
		out[i] = fn(item)
	}
	return out
}

// Filter returns the items for which pred holds, preserving order.
func Filter[T any](items []T, pred func(T) bool) []T {
	if items == nil {
		return nil
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}

// All reports whether pred holds for every item. True for empty input.
func All[T any](items []T, pred func(T) bool) bool {
	for _, item := range items {
		if !pred(item) {
			return false
		}
	}
	return true
}

// Any reports whether pred holds for at least one item.
func Any[T any](items []T, pred func(T) bool) bool {
	for _, item := range items {
		if pred(item) {
			return true
		}
	}
	return false
}

// Contains reports whether v occurs in items.
func Contains[T comparable](items []T, v T) bool {
	return Any(items, func(item T) bool { return item == v })
}

// Reverse returns a new slice with the items in reverse order.
func Reverse[T any](items []T) []T {
	if items == nil {
		return nil
	}
	out := make([]T, len(items))
	for i, item := range items {
		out[len(items)-1-i] = item
	}
	return out
}

// Pair holds one element from each of two zipped slices.
type Pair[T, U any] struct {
	First  T
	Second U
}

// Zip pairs elements positionally, stopping at the shorter input.
func Zip[T, U any](a []T, b []U) []Pair[T, U] {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	out := make([]Pair[T, U], n)
	for i := 0; i < n; i++ {
		out[i] = Pair[T, U]{First: a[i], Second: b[i]}
	}
	return out
}

// Curry2 converts a two-argument function into chained single-argument form.
func Curry2[A, B, R any](fn func(A, B) R) func(A) func(B) R {
	return func(a A) func(B) R {
		return func(b B) R {
			return fn(a, b)
		}
	}
}

// Curry3 converts a three-argument function into chained single-argument form.
func Curry3[A, B, C, R any](fn func(A, B, C) R) func(A) func(B) func(C) R {
	return func(a A) func(B) func(C) R {
		return func(b B) func(C) R {
			return func(c C) R {
				return fn(a, b, c)
			}
		}
	}
}
