package jsonutils

// Convenience functions for working with the fastjson API, used by cmd/jql2's
// `--explain --vars vars.json` preview mode to resolve a QOM BindVariable's
// name against a JSON object of supplied values (SPEC_FULL.md §9).
//
// ExtractValue additionally consumes the looked-up entry, which `--explain`
// uses to report any supplied vars that no bind variable in the query
// referenced.

import (
	"strings"

	"github.com/valyala/fastjson"
)

// LookupValue looks up the JSON value identified by the dotted property path
// in `names`.
//
// A bind variable value can be supplied either dotted:
//    {"user.id": 42}
// or nested:
//    {"user": {"id": 42}}
//
// Assumption: there are no conflicts. E.g. given both `{"user.id": 42,
// "user": {"id": 43}}` and a lookup of `user`, `id`, the result is
// unspecified — *one* of the two paths wins.
func LookupValue(obj *fastjson.Value, names ...string) *fastjson.Value {
	if obj == nil {
		return nil
	} else if len(names) == 0 {
		return obj
	}

	o := obj.GetObject()
	if o == nil {
		return nil
	}

	if len(names) == 1 {
		return o.Get(names[0])
	}

	// Otherwise, we have multiple names to resolve.
	//
	// E.g.: Given: names=["a", "b", "c"]
	// first try:   LookupValue(obj["a"], "b", "c")
	// then try:    LookupValue(obj["a.b"], "c")
	// then try:    LookupValue(obj["a.b.c"])
	var val *fastjson.Value
	var key string
	for i := 1; i <= len(names); i++ {
		key = strings.Join(names[:i], ".")
		val = LookupValue(o.Get(key), names[i:]...)
		if val != nil {
			return val
		}
	}

	return nil
}

// ExtractValue looks up the JSON value identified by the dotted property
// path in `names` (the same as LookupValue), and then *removes* that
// property from the object. If removing that property results in an empty
// object, that object is removed as well — except the top-level object is
// never changed to nil.
func ExtractValue(obj *fastjson.Value, names ...string) *fastjson.Value {
	var val *fastjson.Value
	var key string

	if obj == nil {
		return nil
	} else if len(names) == 0 {
		return obj
	}

	o := obj.GetObject()
	if o == nil {
		return nil
	}

	if len(names) == 1 {
		val = o.Get(names[0])
		if val != nil {
			o.Del(names[0])
		}
		return val
	}

	for i := 1; i <= len(names); i++ {
		key = strings.Join(names[:i], ".")
		subO := o.Get(key)
		val = ExtractValue(subO, names[i:]...)
		if val != nil {
			if i == len(names) {
				o.Del(key)
			} else if subO.GetObject().Len() == 0 {
				o.Del(key)
			}
			return val
		}
	}

	return nil
}
