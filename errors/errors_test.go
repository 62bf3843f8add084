package errors

import (
	"fmt"
	"testing"
)

func TestIs(t *testing.T) {
	cases := map[string]struct {
		kind *Error
		err  error
		want bool
	}{
		"nil kind matches nil error": {
			kind: nil,
			err:  nil,
			want: true,
		},
		"nil kind does not match an error": {
			kind: nil,
			err:  ErrNotFound,
			want: false,
		},
		"kind matches itself": {
			kind: ErrNotFound,
			err:  ErrNotFound,
			want: true,
		},
		"kind matches a wrapped instance": {
			kind: ErrNotFound,
			err:  Wrap(ErrNotFound, "gone"),
			want: true,
		},
		"kind matches a deeply wrapped instance": {
			kind: ErrNotFound,
			err:  Wrap(Wrap(ErrNotFound, "gone"), "cannot load"),
			want: true,
		},
		"kind does not match another kind": {
			kind: ErrNotFound,
			err:  Wrap(ErrState, "gone"),
			want: false,
		},
		"kind does not match a stdlib error": {
			kind: ErrNotFound,
			err:  fmt.Errorf("not found"),
			want: false,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.kind.Is(tc.err); got != tc.want {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestWrapNil(t *testing.T) {
	if err := Wrap(nil, "no problem"); err != nil {
		t.Fatalf("wrapping nil must return nil, got %+v", err)
	}
}

func TestWrappedABCICode(t *testing.T) {
	err := Wrap(Wrap(ErrUnauthorized, "sign first"), "cannot apply")
	type coder interface {
		ABCICode() uint32
	}
	c, ok := err.(coder)
	if !ok {
		t.Fatal("wrapped error does not expose a code")
	}
	if got, want := c.ABCICode(), ErrUnauthorized.ABCICode(); got != want {
		t.Fatalf("want code %d, got %d", want, got)
	}
}

func TestWrapPreservesMessage(t *testing.T) {
	err := Wrap(ErrAmount, "too little")
	const want = "too little: invalid amount"
	if got := err.Error(); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestRegisterPanicsOnReuse(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("reusing an error code must panic")
		}
	}()
	Register(2, "conflicting")
}
