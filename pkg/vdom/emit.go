package vdom

import (
	"fmt"
	"reflect"

	"github.com/vango-dev/reconcile/internal/errors"
)

// Emit calls the handler the parent passed for event ("change" looks up the
// "onChange" prop) with args. A missing handler reports R003.
func (i *Instance) Emit(event string, args ...any) {
	key := handlerKey(event)
	h, ok := i.props.Peek(key)
	if !ok || h == nil {
		i.report(errors.New("R003").WithDetail(key))
		return
	}
	if err := callHandler(h, args); err != nil {
		i.report(errors.New("R009").WithDetailf("%s: %v", key, err))
	}
}

// callHandler invokes h with args. The common handler shapes are called
// directly; anything else goes through reflection.
func callHandler(h any, args []any) error {
	switch fn := h.(type) {
	case func():
		fn()
		return nil
	case func(...any):
		fn(args...)
		return nil
	case func(any):
		var arg any
		if len(args) > 0 {
			arg = args[0]
		}
		fn(arg)
		return nil
	case func(string):
		if len(args) == 1 {
			if s, ok := args[0].(string); ok {
				fn(s)
				return nil
			}
		}
	case func(int):
		if len(args) == 1 {
			if n, ok := args[0].(int); ok {
				fn(n)
				return nil
			}
		}
	}

	v := reflect.ValueOf(h)
	if v.Kind() != reflect.Func {
		return fmt.Errorf("handler is %T, not a function", h)
	}
	t := v.Type()
	if t.IsVariadic() || t.NumIn() != len(args) {
		return fmt.Errorf("handler %s cannot take %d argument(s)", t, len(args))
	}
	in := make([]reflect.Value, len(args))
	for k, a := range args {
		want := t.In(k)
		if a == nil {
			switch want.Kind() {
			case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
				in[k] = reflect.Zero(want)
				continue
			}
			return fmt.Errorf("argument %d is nil, handler wants %s", k, want)
		}
		av := reflect.ValueOf(a)
		if !av.Type().AssignableTo(want) {
			return fmt.Errorf("argument %d is %s, handler wants %s", k, av.Type(), want)
		}
		in[k] = av
	}
	v.Call(in)
	return nil
}
