package trace

import (
	"errors"
	"reflect"
)

// Kinder lets an error advertise the kind name recorded in traces.
type Kinder interface {
	Kind() string
}

// ErrorKind returns the kind recorded for a failed call: the Kind()
// of the first Kinder in err's chain, else err's concrete type name
// with pointer stars and package path trimmed.
func ErrorKind(err error) string {
	var k Kinder
	if errors.As(err, &k) {
		return k.Kind()
	}
	return typeName(reflect.TypeOf(err))
}

// PanicKind returns the kind recorded for a panicking call.
func PanicKind(p any) string {
	if err, ok := p.(error); ok {
		return ErrorKind(err)
	}
	return typeName(reflect.TypeOf(p))
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if name := t.Name(); name != "" {
		return name
	}
	return t.String()
}
