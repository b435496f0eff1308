// Package jsonbridge implements the external contract described by the
// codec's JSON bridge component: a mapping between a document tree and the
// plain interface{} values encoding/json produces and consumes. It is
// deliberately external-contract-only (see spec) — it does not replace the
// tree codec, only adapts it to a JSON AST.
package jsonbridge

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"

	"github.com/scigolib/msgpack/msgpack"
)

// ToJSON converts a document tree into a value encoding/json can marshal:
// map[string]interface{}, []interface{}, string, float64/int64/uint64, bool,
// or nil. Blob renders as a hex string; Ext renders as {"etype": n, "data":
// "<hex>"}.
func ToJSON(n *msgpack.Node) (interface{}, error) {
	switch n.Kind() {
	case msgpack.KindNil:
		return nil, nil
	case msgpack.KindBool:
		return n.Bool(), nil
	case msgpack.KindInt:
		if n.IsUnsigned() {
			return n.Uint64(), nil
		}
		return n.Int64(), nil
	case msgpack.KindFloat:
		return n.Float64(), nil
	case msgpack.KindStr:
		return string(n.Bytes()), nil
	case msgpack.KindBlob:
		return hex.EncodeToString(n.Bytes()), nil
	case msgpack.KindExt:
		return map[string]interface{}{
			"etype": n.ExtType(),
			"data":  hex.EncodeToString(n.Bytes()),
		}, nil
	case msgpack.KindArray:
		out := make([]interface{}, 0, n.Len())
		size, err := msgpack.Size(n)
		if err != nil {
			return nil, err
		}
		for i := 0; i < size; i++ {
			c, err := msgpack.Index(n, i)
			if err != nil {
				return nil, err
			}
			v, err := ToJSON(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case msgpack.KindMap:
		out := make(map[string]interface{}, n.Len())
		size, err := msgpack.Size(n)
		if err != nil {
			return nil, err
		}
		for i := 0; i < size; i++ {
			c, err := msgpack.Index(n, i)
			if err != nil {
				return nil, err
			}
			key := c.Key()
			if key == nil || key.Kind() != msgpack.KindStr {
				return nil, fmt.Errorf("jsonbridge: map entry %d has no string key", i)
			}
			v, err := ToJSON(c)
			if err != nil {
				return nil, err
			}
			out[string(key.Bytes())] = v
		}
		return out, nil
	default:
		return nil, fmt.Errorf("jsonbridge: unknown node kind %v", n.Kind())
	}
}

// WrapRoots applies the "more than one top-level value" rule: a single
// decoded root passes through untouched, while multiple sibling roots are
// wrapped in a synthetic JSON array in decode order.
func WrapRoots(root *msgpack.Node, count int) (interface{}, error) {
	if count == 1 {
		return ToJSON(root)
	}
	out := make([]interface{}, 0, count)
	for n := root; n != nil; n = msgpack.NextSibling(n) {
		v, err := ToJSON(n)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// orderedEntry is one key/value pair from a JSON object, in the order it
// appeared on the wire.
type orderedEntry struct {
	Key   string
	Value interface{}
}

// orderedObject is a JSON object decoded by DecodeOrdered, with field order
// preserved. encoding/json's default interface{} target decodes an object
// into map[string]interface{}, whose iteration order is randomized at
// runtime — building a Map node from that would make json2msgpack's output
// non-deterministic, contradicting the wire's map-insertion-order contract
// (spec §4.D). FromJSON builds a Map node by walking an orderedObject in
// order instead.
type orderedObject []orderedEntry

// DecodeOrdered reads one JSON value from dec, preserving object field
// order by walking the decoder's own token stream rather than decoding into
// an interface{} (which loses order for objects). Use this in place of
// dec.Decode(&v) whenever the result will be built into a document tree.
func DecodeOrdered(dec *json.Decoder) (interface{}, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeOrderedValue(dec, tok)
}

func decodeOrderedValue(dec *json.Decoder, tok json.Token) (interface{}, error) {
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil // nil, bool, float64, string
	}

	switch delim {
	case '{':
		obj := orderedObject{}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("jsonbridge: object key is not a string: %v", keyTok)
			}
			valTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			val, err := decodeOrderedValue(dec, valTok)
			if err != nil {
				return nil, err
			}
			obj = append(obj, orderedEntry{Key: key, Value: val})
		}
		if _, err := dec.Token(); err != nil { // consume '}'
			return nil, err
		}
		return obj, nil
	case '[':
		arr := []interface{}{}
		for dec.More() {
			valTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			val, err := decodeOrderedValue(dec, valTok)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		if _, err := dec.Token(); err != nil { // consume ']'
			return nil, err
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("jsonbridge: unexpected delimiter %v", delim)
	}
}

// FromJSON converts a decoded JSON value into a document tree. Numbers
// arrive as float64 from encoding/json; values whose integer part fits
// exactly and losslessly are built as Int nodes, matching the 64-bit
// fidelity the redesign note calls for (the reference JSON bridge only
// checked 32 bits). Blob/Ext are never reconstructed from a hex string on
// this direction — see spec's documented hex round-trip limitation — a JSON
// string always becomes a Str node, never a Blob.
//
// Objects should arrive as orderedObject (via DecodeOrdered) so Map entries
// preserve JSON source order. map[string]interface{} is also accepted for
// callers building trees directly from an in-memory value rather than a
// parsed document — its entries are appended in Go's (unspecified) map
// iteration order, which callers needing a specific wire order must avoid.
func FromJSON(v interface{}) (*msgpack.Node, error) {
	switch val := v.(type) {
	case nil:
		return msgpack.NewNil(), nil
	case bool:
		return msgpack.NewBool(val), nil
	case string:
		return msgpack.NewStr(val), nil
	case float64:
		return numberToNode(val), nil
	case []interface{}:
		arr := msgpack.NewArray()
		for _, item := range val {
			child, err := FromJSON(item)
			if err != nil {
				return nil, err
			}
			if err := msgpack.ArrayAppend(arr, child); err != nil {
				return nil, err
			}
		}
		return arr, nil
	case orderedObject:
		m := msgpack.NewMap()
		for _, entry := range val {
			child, err := FromJSON(entry.Value)
			if err != nil {
				return nil, err
			}
			if err := msgpack.MapPut(m, entry.Key, child); err != nil {
				return nil, err
			}
		}
		return m, nil
	case map[string]interface{}:
		m := msgpack.NewMap()
		for k, item := range val {
			child, err := FromJSON(item)
			if err != nil {
				return nil, err
			}
			if err := msgpack.MapPut(m, k, child); err != nil {
				return nil, err
			}
		}
		return m, nil
	default:
		return nil, fmt.Errorf("jsonbridge: unsupported JSON value type %T", v)
	}
}

// numberToNode widens the reference bridge's ±2^31 integer check to full
// 64-bit fidelity (spec §9): any float64 whose value is an exact integer in
// [-2^63, 2^63) round-trips as an Int node; everything else becomes Float.
func numberToNode(f float64) *msgpack.Node {
	if f == math.Trunc(f) && !math.IsInf(f, 0) {
		const maxExact = 1 << 63
		if f >= -maxExact && f < maxExact {
			return msgpack.NewInt(int64(f))
		}
	}
	return msgpack.NewFloat(f)
}
