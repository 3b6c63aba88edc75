package trace

import (
	"github.com/vmihailenco/msgpack/v5"
)

// Clone returns a deep, independent copy of v by round-tripping it
// through msgpack. Containers come back as generic maps and slices,
// which is all the trace needs: snapshots are display-only. Values
// msgpack cannot encode (functions, channels) are kept as-is.
func Clone(v any) any {
	if v == nil {
		return nil
	}
	data, err := msgpack.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := msgpack.Unmarshal(data, &out); err != nil {
		return v
	}
	return out
}

func cloneSlice(args []any) []any {
	if args == nil {
		return nil
	}
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = Clone(a)
	}
	return out
}

func cloneKVs(kwargs []KV) []KV {
	if kwargs == nil {
		return nil
	}
	out := make([]KV, len(kwargs))
	for i, kv := range kwargs {
		out[i] = KV{Key: kv.Key, Value: Clone(kv.Value)}
	}
	return out
}
