// Package funcx contains functions and types used to perform type analysis
// of user functions.
package funcx

import (
	"context"
	"reflect"

	"github.com/eddyline/eddy/pkg/eddy/internal/errors"
)

// FnParamKind represents the kinds of parameters a user function may take.
type FnParamKind int

const (
	// FnIllegal is an illegal function input parameter type.
	FnIllegal FnParamKind = 0x0
	// FnContext marks a function input parameter of type context.Context.
	FnContext FnParamKind = 0x1
	// FnValue indicates a function input parameter of an ordinary Go type.
	FnValue FnParamKind = 0x2
	// FnIter indicates a function input parameter that is an iterator.
	// Examples of iterators:
	//       "func (*int) bool"
	//       "func (*string, *T) bool"
	// If there are 2 parameters, a KV input is implied.
	FnIter FnParamKind = 0x4
	// FnEmit indicates a function input parameter that is an emitter.
	// Examples of emitters:
	//       "func (int)"
	//       "func (string, T)"
	// If there are 2 parameters, a KV output is implied. Emitters cannot
	// fail.
	FnEmit FnParamKind = 0x8
)

func (k FnParamKind) String() string {
	switch k {
	case FnContext:
		return "Context"
	case FnValue:
		return "Value"
	case FnIter:
		return "Iter"
	case FnEmit:
		return "Emit"
	default:
		return "Illegal"
	}
}

// FnParam captures the kind and type of a single user function parameter.
type FnParam struct {
	Kind FnParamKind
	T    reflect.Type
}

// ReturnKind represents the kinds of return values a user function may
// provide.
type ReturnKind int

// The supported types of ReturnKind.
const (
	RetIllegal ReturnKind = 0x0
	RetValue   ReturnKind = 0x1
	RetError   ReturnKind = 0x2
)

// ReturnParam captures the kind and type of a single user function return
// value.
type ReturnParam struct {
	Kind ReturnKind
	T    reflect.Type
}

// Fn is the reflected user function or method, preprocessed. This wrapper is
// useful both at graph construction time as well as execution time.
type Fn struct {
	Fn    reflect.Value
	Name  string
	Param []FnParam
	Ret   []ReturnParam
}

// Context returns (index, true) iff the function expects a context.Context.
// The context must be the first parameter by convention.
func (u *Fn) Context() (pos int, exists bool) {
	for i, p := range u.Param {
		if p.Kind == FnContext {
			return i, true
		}
	}
	return -1, false
}

// Emits returns (index, num, true) iff the function expects one or more
// emitters. The index returned is the index of the first emitter param in
// the signature. The num return value is the number of emitters in the
// signature. Emitters are always contiguous and trailing.
func (u *Fn) Emits() (pos int, num int, exists bool) {
	pos = -1
	for i, p := range u.Param {
		if p.Kind == FnEmit {
			if !exists {
				pos = i
				exists = true
			}
			num++
		}
	}
	return pos, num, exists
}

// Inputs returns (index, num, true) iff the function expects one or more
// value or iterator inputs. The index returned is the index of the first
// input parameter.
func (u *Fn) Inputs() (pos int, num int, exists bool) {
	pos = -1
	for i, p := range u.Param {
		if p.Kind == FnValue || p.Kind == FnIter {
			if !exists {
				pos = i
				exists = true
			}
			num++
		}
	}
	return pos, num, exists
}

// Iters returns the indices of iterator parameters.
func (u *Fn) Iters() []int {
	var ret []int
	for i, p := range u.Param {
		if p.Kind == FnIter {
			ret = append(ret, i)
		}
	}
	return ret
}

// Values returns the indices of plain value parameters.
func (u *Fn) Values() []int {
	var ret []int
	for i, p := range u.Param {
		if p.Kind == FnValue {
			ret = append(ret, i)
		}
	}
	return ret
}

// Error returns (index, true) iff the function returns an error.
func (u *Fn) Error() (pos int, exists bool) {
	for i, r := range u.Ret {
		if r.Kind == RetError {
			return i, true
		}
	}
	return -1, false
}

// Returns returns the indices of plain value returns.
func (u *Fn) Returns() []int {
	var ret []int
	for i, r := range u.Ret {
		if r.Kind == RetValue {
			ret = append(ret, i)
		}
	}
	return ret
}

func (u *Fn) String() string {
	return u.Name + " " + u.Fn.Type().String()
}

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
	boolType    = reflect.TypeOf(false)
)

// IsEmit returns true iff the supplied type matches an emitter: a func with
// one or two inputs and no outputs.
func IsEmit(t reflect.Type) bool {
	if t.Kind() != reflect.Func || t.NumOut() != 0 {
		return false
	}
	if t.NumIn() < 1 || t.NumIn() > 2 {
		return false
	}
	for i := 0; i < t.NumIn(); i++ {
		if t.In(i).Kind() == reflect.Func {
			return false
		}
	}
	return true
}

// IsIter returns true iff the supplied type matches an iterator: a func with
// one or two pointer inputs returning bool.
func IsIter(t reflect.Type) bool {
	if t.Kind() != reflect.Func || t.NumOut() != 1 || t.Out(0) != boolType {
		return false
	}
	if t.NumIn() < 1 || t.NumIn() > 2 {
		return false
	}
	for i := 0; i < t.NumIn(); i++ {
		if t.In(i).Kind() != reflect.Ptr {
			return false
		}
	}
	return true
}

// New returns a Fn from a user function, if valid. Closures and dynamically
// created functions are considered valid here, since pipelines execute
// in-process.
func New(fn reflect.Value, name string) (*Fn, error) {
	if fn.Kind() != reflect.Func {
		return nil, errors.Errorf("not a function: %v", fn.Kind())
	}
	t := fn.Type()

	var param []FnParam
	for i := 0; i < t.NumIn(); i++ {
		p := t.In(i)

		kind := FnIllegal
		switch {
		case p == contextType:
			kind = FnContext
		case IsEmit(p):
			kind = FnEmit
		case IsIter(p):
			kind = FnIter
		default:
			kind = FnValue
		}
		param = append(param, FnParam{Kind: kind, T: p})
	}

	var ret []ReturnParam
	for i := 0; i < t.NumOut(); i++ {
		r := t.Out(i)

		kind := RetValue
		if r == errorType {
			kind = RetError
		}
		ret = append(ret, ReturnParam{Kind: kind, T: r})
	}

	u := &Fn{Fn: fn, Name: name, Param: param, Ret: ret}
	if err := validateOrder(u); err != nil {
		return nil, err
	}
	return u, nil
}

// The order of present parameters and return values must be as follows:
//
//	func(FnContext?, (FnValue|FnIter)*, FnEmit*) (RetValue*, RetError?)
//
// where ? indicates 0 or 1, and * indicates any number.
func validateOrder(u *Fn) error {
	seenEmit := false
	for i, p := range u.Param {
		switch p.Kind {
		case FnContext:
			if i != 0 {
				return errors.Errorf("%v: context.Context must be the first parameter", u.Name)
			}
		case FnValue, FnIter:
			if seenEmit {
				return errors.Errorf("%v: input parameters must precede emitters", u.Name)
			}
		case FnEmit:
			seenEmit = true
		default:
			return errors.Errorf("%v: illegal parameter %v at index %v", u.Name, p.T, i)
		}
	}

	for i, r := range u.Ret {
		if r.Kind == RetError && i != len(u.Ret)-1 {
			return errors.Errorf("%v: error must be the final return value", u.Name)
		}
	}
	if _, num, ok := u.Emits(); ok && num > 0 && len(u.Returns()) > 0 {
		return errors.Errorf("%v: cannot mix emitters and value returns", u.Name)
	}
	return nil
}
