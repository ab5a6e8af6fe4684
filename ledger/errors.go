// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"errors"
	"fmt"
)

// Code classifies ledger failures.
type Code int

const (
	CodeUnknownAsset Code = iota + 1
	CodeAssetExists
	CodeUnknownEscrow
	CodeAssetMismatch
	CodeUnauthorized
	CodeInsufficientFunds
	CodeOverflow
)

var codeNames = map[Code]string{
	CodeUnknownAsset:      "unknown asset",
	CodeAssetExists:       "asset exists",
	CodeUnknownEscrow:     "unknown escrow",
	CodeAssetMismatch:     "asset mismatch",
	CodeUnauthorized:      "unauthorized",
	CodeInsufficientFunds: "insufficient funds",
	CodeOverflow:          "balance overflow",
}

func (c Code) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return fmt.Sprintf("code(%d)", int(c))
}

// Error is a failure reported by the ledger. Callers pass it through unchanged.
type Error struct {
	Code   Code
	detail string
}

func newError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, detail: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.detail == "" {
		return "ledger: " + e.Code.String()
	}
	return "ledger: " + e.Code.String() + ": " + e.detail
}

// Is matches ledger errors by code, so errors.Is(err, &Error{Code: CodeUnauthorized}) works.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// IsLedgerErr checks whether err is caused by the ledger.
func IsLedgerErr(err error) bool {
	var e *Error
	return errors.As(err, &e)
}

// CodeOf returns the code of a ledger error, or 0.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}
