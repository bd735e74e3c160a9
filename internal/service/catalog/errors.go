package catalog

import (
	"context"
	"errors"
	"fmt"
	"net"

	"modelhub/internal/core"
)

type ErrorKind string

const (
	KindUnknownProvider         ErrorKind = "unknown_provider"
	KindVendorUnavailable       ErrorKind = "vendor_unavailable"
	KindVendorTimeout           ErrorKind = "vendor_timeout"
	KindVendorMalformedResponse ErrorKind = "vendor_malformed_response"
)

// ErrUnknownProvider 唯一會直接回給呼叫端的錯誤
var ErrUnknownProvider = errors.New("unknown provider")

type Error struct {
	Kind     ErrorKind
	Provider core.ProviderName
	Err      error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Provider, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target == ErrUnknownProvider && e.Kind == KindUnknownProvider
}

func unknownProvider(p core.ProviderName) *Error {
	return &Error{Kind: KindUnknownProvider, Provider: p}
}

func Unavailable(p core.ProviderName, err error) *Error {
	return &Error{Kind: KindVendorUnavailable, Provider: p, Err: err}
}

func Timeout(p core.ProviderName, err error) *Error {
	return &Error{Kind: KindVendorTimeout, Provider: p, Err: err}
}

func Malformed(p core.ProviderName, err error) *Error {
	return &Error{Kind: KindVendorMalformedResponse, Provider: p, Err: err}
}

// classify 把 VendorClient / Normalizer 的任意錯誤歸到三種 vendor 錯誤之一
func classify(p core.ProviderName, err error) *Error {
	var ce *Error
	if errors.As(err, &ce) {
		if ce.Provider == "" {
			ce.Provider = p
		}
		return ce
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout(p, err)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return Timeout(p, err)
	}
	return Unavailable(p, err)
}
