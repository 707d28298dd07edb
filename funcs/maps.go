package funcs

import "reflect"

// Keys returns the map's keys in unspecified order.
func Keys[K comparable, V any](m map[K]V) []K {
	if m == nil {
		return nil
	}
	out := make([]K, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// Values returns the map's values in unspecified order.
func Values[K comparable, V any](m map[K]V) []V {
	if m == nil {
		return nil
	}
	out := make([]V, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}

// ContainsKey reports whether k is present in m.
func ContainsKey[K comparable, V any](m map[K]V, k K) bool {
	_, ok := m[k]
	return ok
}

// FilterMap returns the entries for which pred holds.
func FilterMap[K comparable, V any](m map[K]V, pred func(K, V) bool) map[K]V {
	if m == nil {
		return nil
	}
	out := make(map[K]V, len(m))
	for k, v := range m {
		if pred(k, v) {
			out[k] = v
		}
	}
	return out
}

// CloneMap returns a shallow copy of m. The returned map never aliases m.
func CloneMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return nil
	}
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// MergeAbsent copies entries of src whose keys are absent in dst, returning
// dst (allocated if nil). Existing entries are never overwritten.
func MergeAbsent[K comparable, V any](dst, src map[K]V) map[K]V {
	if dst == nil {
		dst = make(map[K]V, len(src))
	}
	for k, v := range src {
		if !ContainsKey(dst, k) {
			dst[k] = v
		}
	}
	return dst
}

// DeepCopy returns a copy of v with maps and slices duplicated recursively.
// Scalars, funcs, and channels are returned as-is; pointers are shared, not
// duplicated.
func DeepCopy(v any) any {
	if v == nil {
		return nil
	}
	return deepCopyValue(reflect.ValueOf(v)).Interface()
}

func deepCopyValue(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Map:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), deepCopyElem(iter.Value()))
		}
		return out
	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			out.Index(i).Set(deepCopyElem(v.Index(i)))
		}
		return out
	default:
		return v
	}
}

// deepCopyElem unwraps interface elements so nested composites are copied.
func deepCopyElem(v reflect.Value) reflect.Value {
	if v.Kind() == reflect.Interface && !v.IsNil() {
		copied := deepCopyValue(v.Elem())
		out := reflect.New(v.Type()).Elem()
		out.Set(copied)
		return out
	}
	return deepCopyValue(v)
}
