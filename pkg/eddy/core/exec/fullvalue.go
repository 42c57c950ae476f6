package exec

import "fmt"

// FullValue is the internal representation of an element. For Single
// collections only Elm is set. For KV collections Elm is the key and Elm2
// the value. For Grouped collections Elm is the key and Elm2 is the []any of
// values for that key.
type FullValue struct {
	Elm  any
	Elm2 any
}

func (v FullValue) String() string {
	if v.Elm2 == nil {
		return fmt.Sprintf("%v", v.Elm)
	}
	return fmt.Sprintf("KV<%v,%v>", v.Elm, v.Elm2)
}
