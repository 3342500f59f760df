// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-teacher-desk/models"
)

const (
	FieldLocalID   = "client_id"
	FieldStudentID = "student_id"
	FieldScore     = "score"
	FieldPeriod    = "period"
	FieldTimeOut   = "time_out"
)

// maxPeriod is the highest class period a district schedule uses.
const maxPeriod = 12

type RecordValidator struct {
}

// NewRecordValidator returns a Validator for outbound sync wire records.
func NewRecordValidator() Validator {
	return &RecordValidator{}
}

func (v *RecordValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.GradeRecord:
		return v.validateGrade(ctx, value, fields...)
	case *models.GradeRecord:
		return v.validateGrade(ctx, *value, fields...)

	case models.AttendanceRecord:
		return v.validateAttendance(ctx, value, fields...)
	case *models.AttendanceRecord:
		return v.validateAttendance(ctx, *value, fields...)

	case models.HallPassRecord:
		return v.validateHallPass(ctx, value, fields...)
	case *models.HallPassRecord:
		return v.validateHallPass(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *RecordValidator) validateGrade(_ context.Context, r models.GradeRecord, fields ...string) error {
	for _, field := range scope(fields, FieldLocalID, FieldStudentID, FieldScore) {
		switch field {
		case FieldLocalID:
			if r.LocalID == "" {
				return ErrMissingLocalID
			}
		case FieldStudentID:
			if r.StudentID == "" {
				return ErrMissingStudentID
			}
		case FieldScore:
			if r.Score < 0 {
				return fmt.Errorf("%w: %f", ErrNegativeScore, r.Score)
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func (v *RecordValidator) validateAttendance(_ context.Context, r models.AttendanceRecord, fields ...string) error {
	for _, field := range scope(fields, FieldLocalID, FieldStudentID, FieldPeriod) {
		switch field {
		case FieldLocalID:
			if r.LocalID == "" {
				return ErrMissingLocalID
			}
		case FieldStudentID:
			if r.StudentID == "" {
				return ErrMissingStudentID
			}
		case FieldPeriod:
			if r.Period < 0 || r.Period > maxPeriod {
				return fmt.Errorf("%w: %d", ErrInvalidPeriod, r.Period)
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func (v *RecordValidator) validateHallPass(_ context.Context, r models.HallPassRecord, fields ...string) error {
	for _, field := range scope(fields, FieldLocalID, FieldStudentID, FieldTimeOut) {
		switch field {
		case FieldLocalID:
			if r.LocalID == "" {
				return ErrMissingLocalID
			}
		case FieldStudentID:
			if r.StudentID == "" {
				return ErrMissingStudentID
			}
		case FieldTimeOut:
			if r.TimeOut.IsZero() {
				return ErrMissingTimeOut
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

// scope returns the requested fields, or every known field when the caller
// names none.
func scope(requested []string, all ...string) []string {
	if len(requested) == 0 {
		return all
	}
	return requested
}
