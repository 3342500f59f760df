// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"time"

	"github.com/MKhiriev/go-teacher-desk/models"
)

// The SIS speaks its own hall-pass vocabulary. Both directions are
// table-driven and total: every input maps to exactly one output, unknown
// values fall back to an explicit default instead of erroring, because a
// vocabulary mismatch must never block a sync pass.

var statusToSIS = map[models.HallPassStatus]string{
	models.PassActive:    "IN_PROGRESS",
	models.PassReturned:  "COMPLETED",
	models.PassExpired:   "TIMED_OUT",
	models.PassCancelled: "VOIDED",
}

var statusFromSIS = map[string]models.HallPassStatus{
	"IN_PROGRESS": models.PassActive,
	"COMPLETED":   models.PassReturned,
	"TIMED_OUT":   models.PassExpired,
	"VOIDED":      models.PassCancelled,
}

var destinationToSIS = map[models.PassDestination]string{
	models.DestRestroom:  "RESTROOM",
	models.DestNurse:     "HEALTH_OFFICE",
	models.DestOffice:    "MAIN_OFFICE",
	models.DestLibrary:   "MEDIA_CENTER",
	models.DestCounselor: "COUNSELING",
	models.DestOther:     "OTHER",
}

var destinationFromSIS = map[string]models.PassDestination{
	"RESTROOM":      models.DestRestroom,
	"HEALTH_OFFICE": models.DestNurse,
	"MAIN_OFFICE":   models.DestOffice,
	"MEDIA_CENTER":  models.DestLibrary,
	"COUNSELING":    models.DestCounselor,
	"OTHER":         models.DestOther,
}

func passStatusToSIS(s models.HallPassStatus) string {
	if v, ok := statusToSIS[s]; ok {
		return v
	}
	return "IN_PROGRESS"
}

func passStatusFromSIS(s string) models.HallPassStatus {
	if v, ok := statusFromSIS[s]; ok {
		return v
	}
	return models.PassActive
}

func destToSIS(d models.PassDestination) string {
	if v, ok := destinationToSIS[d]; ok {
		return v
	}
	return "OTHER"
}

func destFromSIS(d string) models.PassDestination {
	if v, ok := destinationFromSIS[d]; ok {
		return v
	}
	return models.DestOther
}

// hallPassRecord converts a local pass to its wire form.
func hallPassRecord(p models.HallPass) models.HallPassRecord {
	return models.HallPassRecord{
		SISID:       p.SISID,
		LocalID:     p.ID,
		StudentID:   p.StudentID,
		Destination: destToSIS(p.Destination),
		Status:      passStatusToSIS(p.Status),
		TimeOut:     p.TimeOut,
		TimeIn:      p.TimeIn,
		Duration:    p.DurationMinutes,
		Notes:       p.Notes,
	}
}

// applyHallPassRecord overwrites the local pass's mutable fields from the
// SIS snapshot, translating vocabulary. The local id is kept.
func applyHallPassRecord(p *models.HallPass, r models.HallPassRecord) {
	if r.SISID != "" {
		p.SISID = r.SISID
	}
	p.Destination = destFromSIS(r.Destination)
	p.Status = passStatusFromSIS(r.Status)
	if !r.TimeOut.IsZero() {
		p.TimeOut = r.TimeOut
	}
	p.TimeIn = r.TimeIn
	p.DurationMinutes = r.Duration
	if r.Notes != "" {
		p.Notes = r.Notes
	}
	if r.UpdatedAt != nil {
		p.LastModified = *r.UpdatedAt
	}
}

// passDuration recomputes the pass length in whole minutes, rounding up so a
// 30-second trip still counts as one minute.
func passDuration(out time.Time, in *time.Time) int {
	if out.IsZero() || in == nil || in.IsZero() {
		return 0
	}
	d := in.Sub(out)
	if d <= 0 {
		return 0
	}
	return int((d + time.Minute - 1) / time.Minute)
}
