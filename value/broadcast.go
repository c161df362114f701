package value

import "github.com/xenharmonic-devs/sonic-weave-sub001/sweerr"

// Broadcast applies scalarOp elementwise across a and b following spec
// §4.6: arrays broadcast against arrays of equal length (error otherwise),
// a scalar broadcasts against every element of an array, and records
// broadcast by matching key sets exactly. Nested containers are never
// implicitly flattened. charge is called once per element actually visited,
// so the caller can meter gas (spec §5 "1 per element of a broadcast").
func Broadcast(a, b Value, charge func() error, scalarOp func(a, b Value) (Value, error)) (Value, error) {
	aArr, aIsArr := a.(Array)
	bArr, bIsArr := b.(Array)
	aRec, aIsRec := a.(Record)
	bRec, bIsRec := b.(Record)

	switch {
	case aIsArr && bIsArr:
		if len(aArr) != len(bArr) {
			return nil, sweerr.NewValueError("cannot broadcast arrays of different lengths (%d vs %d)", len(aArr), len(bArr))
		}
		out := make(Array, len(aArr))
		for i := range aArr {
			if err := charge(); err != nil {
				return nil, err
			}
			v, err := Broadcast(aArr[i], bArr[i], charge, scalarOp)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case aIsArr && !bIsArr:
		out := make(Array, len(aArr))
		for i := range aArr {
			if err := charge(); err != nil {
				return nil, err
			}
			v, err := Broadcast(aArr[i], b, charge, scalarOp)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case !aIsArr && bIsArr:
		out := make(Array, len(bArr))
		for i := range bArr {
			if err := charge(); err != nil {
				return nil, err
			}
			v, err := Broadcast(a, bArr[i], charge, scalarOp)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case aIsRec && bIsRec:
		if len(aRec.Keys) != len(bRec.Keys) {
			return nil, sweerr.NewValueError("cannot broadcast records with different key sets")
		}
		for _, k := range aRec.Keys {
			if _, ok := bRec.Values[k]; !ok {
				return nil, sweerr.NewValueError("cannot broadcast records with different key sets (missing %q)", k)
			}
		}
		values := make(map[string]Value, len(aRec.Keys))
		for _, k := range aRec.Keys {
			if err := charge(); err != nil {
				return nil, err
			}
			v, err := Broadcast(aRec.Values[k], bRec.Values[k], charge, scalarOp)
			if err != nil {
				return nil, err
			}
			values[k] = v
		}
		return Record{Keys: append([]string(nil), aRec.Keys...), Values: values}, nil
	case aIsRec && !bIsRec:
		return nil, sweerr.NewTypeError("cannot broadcast a record against a %s", b.Kind())
	case !aIsRec && bIsRec:
		return nil, sweerr.NewTypeError("cannot broadcast a %s against a record", a.Kind())
	default:
		return scalarOp(a, b)
	}
}
