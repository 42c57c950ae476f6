package graph

import (
	"reflect"
	"runtime"

	"github.com/eddyline/eddy/pkg/eddy/core/funcx"
	"github.com/eddyline/eddy/pkg/eddy/internal/errors"
)

// Fn holds either a function or struct receiver.
type Fn struct {
	// Fn holds the function, if present. If Fn is nil, Recv must be
	// non-nil.
	Fn *funcx.Fn
	// Recv hold the struct receiver, if present. If Recv is nil, Fn
	// must be non-nil.
	Recv any

	// methods holds the public methods (or the function) by their name.
	methods map[string]*funcx.Fn
}

// Lifecycle method names of struct DoFns, in invocation order.
const (
	setupName          = "Setup"
	startBundleName    = "StartBundle"
	processElementName = "ProcessElement"
	finishBundleName   = "FinishBundle"
	teardownName       = "Teardown"
)

// NewFn pre-processes a function or struct for graph construction.
func NewFn(fn any) (*Fn, error) {
	if fn == nil {
		return nil, errors.New("nil function or struct")
	}
	val := reflect.ValueOf(fn)
	switch val.Kind() {
	case reflect.Func:
		f, err := funcx.New(val, functionName(val))
		if err != nil {
			return nil, err
		}
		return &Fn{Fn: f, methods: map[string]*funcx.Fn{processElementName: f}}, nil

	case reflect.Ptr, reflect.Struct:
		if val.Kind() == reflect.Ptr && val.Elem().Kind() != reflect.Struct {
			return nil, errors.Errorf("value %v must be a struct or pointer to struct", fn)
		}
		methods := make(map[string]*funcx.Fn)
		t := val.Type()
		for _, name := range []string{setupName, startBundleName, processElementName, finishBundleName, teardownName} {
			m, ok := t.MethodByName(name)
			if !ok {
				continue
			}
			f, err := funcx.New(val.Method(m.Index), t.String()+"."+name)
			if err != nil {
				return nil, errors.WithContextf(err, "method %v of %v", name, t)
			}
			methods[name] = f
		}
		if _, ok := methods[processElementName]; !ok {
			return nil, errors.Errorf("struct %v does not implement ProcessElement", t)
		}
		return &Fn{Recv: fn, methods: methods}, nil

	default:
		return nil, errors.Errorf("value %v must be a function or (ptr to) struct", fn)
	}
}

// ProcessElement returns the ProcessElement method (or the function itself).
func (f *Fn) ProcessElement() *funcx.Fn {
	return f.methods[processElementName]
}

// Setup returns the Setup method, if present.
func (f *Fn) Setup() (*funcx.Fn, bool) {
	m, ok := f.methods[setupName]
	return m, ok
}

// StartBundle returns the StartBundle method, if present.
func (f *Fn) StartBundle() (*funcx.Fn, bool) {
	m, ok := f.methods[startBundleName]
	return m, ok
}

// FinishBundle returns the FinishBundle method, if present.
func (f *Fn) FinishBundle() (*funcx.Fn, bool) {
	m, ok := f.methods[finishBundleName]
	return m, ok
}

// Teardown returns the Teardown method, if present.
func (f *Fn) Teardown() (*funcx.Fn, bool) {
	m, ok := f.methods[teardownName]
	return m, ok
}

// IsStruct returns true iff the Fn is a struct DoFn. Struct DoFns may carry
// bundle state and are not processed in parallel bundles.
func (f *Fn) IsStruct() bool {
	return f.Recv != nil
}

// Name returns a human-readable name for the Fn.
func (f *Fn) Name() string {
	if f.Fn != nil {
		return f.Fn.Name
	}
	t := reflect.TypeOf(f.Recv)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

func (f *Fn) String() string {
	return f.Name()
}

// DoFn represents a DoFn.
type DoFn Fn

// NewDoFn constructs a DoFn from the given value, if valid.
func NewDoFn(fn any) (*DoFn, error) {
	ret, err := NewFn(fn)
	if err != nil {
		return nil, errors.WithContext(err, "constructing DoFn")
	}
	return (*DoFn)(ret), nil
}

// ProcessElement returns the ProcessElement fn.
func (f *DoFn) ProcessElement() *funcx.Fn { return (*Fn)(f).ProcessElement() }

// Setup returns the Setup method, if present.
func (f *DoFn) Setup() (*funcx.Fn, bool) { return (*Fn)(f).Setup() }

// StartBundle returns the StartBundle method, if present.
func (f *DoFn) StartBundle() (*funcx.Fn, bool) { return (*Fn)(f).StartBundle() }

// FinishBundle returns the FinishBundle method, if present.
func (f *DoFn) FinishBundle() (*funcx.Fn, bool) { return (*Fn)(f).FinishBundle() }

// Teardown returns the Teardown method, if present.
func (f *DoFn) Teardown() (*funcx.Fn, bool) { return (*Fn)(f).Teardown() }

// IsStruct returns true iff the DoFn is backed by a struct.
func (f *DoFn) IsStruct() bool { return (*Fn)(f).IsStruct() }

// Name returns a human-readable name.
func (f *DoFn) Name() string { return (*Fn)(f).Name() }

func (f *DoFn) String() string { return f.Name() }

// CombineFn represents a binary merge function, of the form
//
//	func(a, b V) V
//
// with an optional leading context and optional trailing error. The merge
// function must be associative and commutative: the runner folds it over the
// values of each key in unspecified order.
type CombineFn struct {
	Merge *funcx.Fn
}

// NewCombineFn constructs a CombineFn from the given function, if valid.
func NewCombineFn(fn any) (*CombineFn, error) {
	val := reflect.ValueOf(fn)
	if val.Kind() != reflect.Func {
		return nil, errors.Errorf("combinefn %v must be a function", fn)
	}
	f, err := funcx.New(val, functionName(val))
	if err != nil {
		return nil, errors.WithContext(err, "constructing CombineFn")
	}
	if len(f.Values()) != 2 {
		return nil, errors.Errorf("combinefn %v must take two value parameters", f)
	}
	if len(f.Returns()) != 1 {
		return nil, errors.Errorf("combinefn %v must return a single value", f)
	}
	return &CombineFn{Merge: f}, nil
}

// Name returns a human-readable name.
func (f *CombineFn) Name() string {
	return f.Merge.Name
}

func (f *CombineFn) String() string { return f.Name() }

func functionName(val reflect.Value) string {
	if fn := runtime.FuncForPC(val.Pointer()); fn != nil {
		return fn.Name()
	}
	return val.Type().String()
}
