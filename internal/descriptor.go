package internal

import (
	"fmt"
	"reflect"
	"runtime"
	"strconv"
	"strings"
	"unicode"
)

// injectTag names the struct tag carrying injection metadata on deps struct
// fields: `inject:"name"`, `inject:"name,optional"`, `inject:",default=20"`.
const injectTag = "inject"

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// ParamSpec describes one injectable parameter of a callable, derived from a
// field of its deps struct.
type ParamSpec struct {
	// Default is the declared fallback value. Only valid when HasDefault.
	Default reflect.Value

	// Type is the field type the resolved value must be assignable to.
	Type reflect.Type

	// Name is the resolution name: the inject tag name, or the snake_cased
	// field name when the tag is absent.
	Name string

	// Index is the field index within the deps struct.
	Index int

	// Explicit reports whether Name came from an inject tag rather than
	// the field name.
	Explicit bool

	// HasDefault reports whether the parameter may be left unresolved.
	HasDefault bool
}

// Callable is an inspected injectable function. Accepted shapes:
//
//	func() R
//	func() (R, error)
//	func(deps S) R
//	func(deps S) (R, error)
//
// where S is a plain struct whose exported fields are the parameters.
type Callable struct {
	fn     reflect.Value
	deps   reflect.Type
	name   string
	params []ParamSpec
	hasErr bool
}

// NewCallable inspects fn and extracts its parameter descriptors.
// Returns a SignatureError if fn does not fit an accepted shape.
func NewCallable(fn any) (*Callable, error) {
	if fn == nil {
		return nil, &SignatureError{Func: "<nil>", Reason: "nil function"}
	}

	v := reflect.ValueOf(fn)
	name := funcName(v)
	if v.Kind() != reflect.Func {
		return nil, &SignatureError{Func: name, Reason: "not a function"}
	}

	t := v.Type()
	if t.IsVariadic() {
		return nil, &SignatureError{Func: name, Reason: "variadic functions are not injectable"}
	}

	switch t.NumOut() {
	case 1:
		if t.Out(0) == errorType {
			return nil, &SignatureError{Func: name, Reason: "must return a value, not only an error"}
		}
	case 2:
		if t.Out(1) != errorType {
			return nil, &SignatureError{Func: name, Reason: "second return value must be error"}
		}
	default:
		return nil, &SignatureError{Func: name, Reason: "must return one value or (value, error)"}
	}

	c := &Callable{
		fn:     v,
		name:   name,
		hasErr: t.NumOut() == 2,
	}

	switch t.NumIn() {
	case 0:
		return c, nil
	case 1:
		// fallthrough to deps struct inspection below
	default:
		return nil, &SignatureError{Func: name, Reason: "takes more than one parameter; declare a single deps struct"}
	}

	deps := t.In(0)
	if deps.Kind() != reflect.Struct {
		return nil, &SignatureError{Func: name, Reason: "parameter must be a struct"}
	}

	c.deps = deps
	c.params = make([]ParamSpec, 0, deps.NumField())
	for i := range deps.NumField() {
		f := deps.Field(i)
		if !f.IsExported() {
			return nil, &SignatureError{
				Func:   name,
				Reason: fmt.Sprintf("deps field %s is unexported and cannot be set", f.Name),
			}
		}

		p, err := newParamSpec(f, i)
		if err != nil {
			return nil, &SignatureError{Func: name, Reason: err.Error()}
		}
		c.params = append(c.params, p)
	}

	return c, nil
}

func newParamSpec(f reflect.StructField, index int) (ParamSpec, error) {
	p := ParamSpec{
		Type:  f.Type,
		Index: index,
	}

	tag := f.Tag.Get(injectTag)
	parts := strings.Split(tag, ",")
	if parts[0] != "" {
		p.Name = parts[0]
		p.Explicit = true
	} else {
		p.Name = snakeCase(f.Name)
	}

	for _, flag := range parts[1:] {
		switch {
		case flag == "optional":
			p.HasDefault = true
			p.Default = reflect.Zero(f.Type)
		case strings.HasPrefix(flag, "default="):
			def, err := parseDefault(strings.TrimPrefix(flag, "default="), f.Type)
			if err != nil {
				return p, fmt.Errorf("field %s: %w", f.Name, err)
			}
			p.HasDefault = true
			p.Default = def
		case flag == "":
			// trailing comma, ignore
		default:
			return p, fmt.Errorf("field %s: unknown inject flag %q", f.Name, flag)
		}
	}

	return p, nil
}

// bind returns a copy of c that invokes fn instead of the originally
// inspected function. fn must have the identical function type.
func (c *Callable) bind(fn reflect.Value) *Callable {
	out := *c
	out.fn = fn
	return &out
}

// Name returns the callable's function name for diagnostics.
func (c *Callable) Name() string { return c.name }

// Params returns the parameter descriptors in field order.
func (c *Callable) Params() []ParamSpec { return c.params }

// ReturnType returns the type of the callable's first return value.
func (c *Callable) ReturnType() reflect.Type { return c.fn.Type().Out(0) }

// Invoke builds the deps struct from resolved values and calls the function.
// Parameters missing from resolved (or resolved to NoValue) receive their
// declared default, or stay zero.
func (c *Callable) Invoke(resolved map[string]any) (any, error) {
	var in []reflect.Value
	if c.deps != nil {
		deps := reflect.New(c.deps).Elem()
		for _, p := range c.params {
			v, ok := resolved[p.Name]
			if !ok || v == NoValue {
				if p.HasDefault && p.Default.IsValid() {
					deps.Field(p.Index).Set(p.Default)
				}
				continue
			}
			if v == nil {
				continue
			}
			rv := reflect.ValueOf(v)
			if !rv.Type().AssignableTo(p.Type) {
				return nil, fmt.Errorf("%w: %q resolved to %s, field wants %s",
					ErrIncompatibleValue, p.Name, rv.Type(), p.Type)
			}
			deps.Field(p.Index).Set(rv)
		}
		in = []reflect.Value{deps}
	}

	out := c.fn.Call(in)
	if c.hasErr {
		if err, _ := out[1].Interface().(error); err != nil {
			return nil, err
		}
	}
	return out[0].Interface(), nil
}

func funcName(v reflect.Value) string {
	if v.Kind() != reflect.Func {
		return v.Type().String()
	}
	if f := runtime.FuncForPC(v.Pointer()); f != nil {
		return f.Name()
	}
	return v.Type().String()
}

// parseDefault converts a tag literal to the field type. Supported kinds:
// strings, integers, floats, and bools.
func parseDefault(lit string, t reflect.Type) (reflect.Value, error) {
	out := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.String:
		out.SetString(lit)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(lit, 10, t.Bits())
		if err != nil {
			return out, fmt.Errorf("cannot parse default %q as %s", lit, t)
		}
		out.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(lit, 10, t.Bits())
		if err != nil {
			return out, fmt.Errorf("cannot parse default %q as %s", lit, t)
		}
		out.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(lit, t.Bits())
		if err != nil {
			return out, fmt.Errorf("cannot parse default %q as %s", lit, t)
		}
		out.SetFloat(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(lit)
		if err != nil {
			return out, fmt.Errorf("cannot parse default %q as %s", lit, t)
		}
		out.SetBool(b)
	default:
		return out, fmt.Errorf("default literals are not supported for %s fields", t)
	}
	return out, nil
}

// snakeCase converts an exported Go field name to its resolution name:
// SiteName -> site_name, UserID -> user_id, HTMLBody -> html_body.
func snakeCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && !unicode.IsUpper(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if i > 0 && (prevLower || nextLower) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
