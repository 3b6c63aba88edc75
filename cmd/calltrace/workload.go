package main

import (
	"context"
	"fmt"

	"calltrace"
	"calltrace/internal/trace"
)

// account is the demo's instrumented object.
type account struct {
	balance int
}

type insufficientFundsError struct {
	requested int
	balance   int
}

func (e *insufficientFundsError) Error() string {
	return fmt.Sprintf("cannot withdraw %d: balance is %d", e.requested, e.balance)
}

// Kind names the error in recorded traces.
func (e *insufficientFundsError) Kind() string { return "InsufficientFunds" }

// demoWorkload wires the canned instrumented calls: a recursive free
// function and an account object whose last withdrawal fails.
type demoWorkload struct {
	tracer *calltrace.Tracer
	fib    *calltrace.TracedFunc
	proxy  *calltrace.Proxy
	funcs  map[string]*calltrace.Func
}

// newDemoWorkload builds the workload against the tracer carried by
// ctx, falling back to the process default when none is attached.
func newDemoWorkload(ctx context.Context) *demoWorkload {
	tr := trace.FromContext(ctx)
	if tr == nil {
		tr = calltrace.Default()
	}
	w := &demoWorkload{tracer: tr}

	fib := &calltrace.Func{Name: "fib"}
	w.fib = calltrace.TraceWith(tr, fib)
	fib.Fn = func(_ any, args []any, _ []calltrace.KV) (any, error) {
		n, ok := args[0].(int)
		if !ok {
			return nil, fmt.Errorf("fib wants an int, got %T", args[0])
		}
		if n < 2 {
			return n, nil
		}
		a, err := w.fib.Call([]any{n - 1})
		if err != nil {
			return nil, err
		}
		b, err := w.fib.Call([]any{n - 2})
		if err != nil {
			return nil, err
		}
		return a.(int) + b.(int), nil
	}

	deposit := &calltrace.Func{
		Name: "deposit",
		Fn: func(owner any, args []any, _ []calltrace.KV) (any, error) {
			acct := owner.(*account)
			acct.balance += args[0].(int)
			return acct.balance, nil
		},
	}
	withdraw := &calltrace.Func{
		Name: "withdraw",
		Fn: func(owner any, args []any, _ []calltrace.KV) (any, error) {
			acct := owner.(*account)
			amount := args[0].(int)
			if amount > acct.balance {
				return nil, &insufficientFundsError{requested: amount, balance: acct.balance}
			}
			acct.balance -= amount
			return acct.balance, nil
		},
	}
	w.proxy = calltrace.InstrumentWith(tr, &account{}, deposit, withdraw)

	w.funcs = map[string]*calltrace.Func{
		"fib":      fib,
		"deposit":  deposit,
		"withdraw": withdraw,
	}
	return w
}

// run executes the canned scenario. The failing withdrawal is part of
// the script; its error ends up in the tree, not in the return value.
func (w *demoWorkload) run(fibN int) error {
	if _, err := w.fib.Call([]any{fibN}); err != nil {
		return err
	}
	if _, err := w.proxy.Call("deposit", []any{100}, calltrace.KV{Key: "currency", Value: "EUR"}); err != nil {
		return err
	}
	if _, err := w.proxy.Call("withdraw", []any{30}); err != nil {
		return err
	}
	if _, err := w.proxy.Call("withdraw", []any{1000}); err == nil {
		return fmt.Errorf("expected the final withdrawal to fail")
	}
	return nil
}
