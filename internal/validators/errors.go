// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrMissingLocalID   = errors.New("client id is required")
	ErrMissingStudentID = errors.New("student id is required")
	ErrNegativeScore    = errors.New("score cannot be negative")
	ErrInvalidPeriod    = errors.New("period is out of range")
	ErrMissingTimeOut   = errors.New("time out is required")
)
