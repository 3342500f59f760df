package models

// Entity ↔ wire-record conversions. Hall passes are converted in the
// conflict resolver instead, because their status and destination values
// need the SIS vocabulary tables.

func (s Student) Record() StudentRecord {
	return StudentRecord{
		SISID:        s.SISID,
		LocalID:      s.ID,
		FirstName:    s.FirstName,
		LastName:     s.LastName,
		GradeYear:    s.GradeYear,
		Email:        s.Email,
		Active:       s.Active,
		LastModified: s.LastModified,
	}
}

// Apply copies the remote fields onto the local student, keeping the local
// id. Used on pull after the last-write-wins check has passed.
func (s *Student) Apply(r StudentRecord) {
	s.SISID = r.SISID
	s.FirstName = r.FirstName
	s.LastName = r.LastName
	s.GradeYear = r.GradeYear
	s.Email = r.Email
	s.Active = r.Active
	s.LastModified = r.LastModified
}

func (c AssignmentCategory) Record() AssignmentCategoryRecord {
	return AssignmentCategoryRecord{
		SISID:        c.SISID,
		LocalID:      c.ID,
		Name:         c.Name,
		Weight:       c.Weight,
		LastModified: c.LastModified,
	}
}

func (c *AssignmentCategory) Apply(r AssignmentCategoryRecord) {
	c.SISID = r.SISID
	c.Name = r.Name
	c.Weight = r.Weight
	c.LastModified = r.LastModified
}

func (a Assignment) Record() AssignmentRecord {
	return AssignmentRecord{
		SISID:        a.SISID,
		LocalID:      a.ID,
		CategoryID:   a.CategoryID,
		Title:        a.Title,
		Description:  a.Description,
		MaxPoints:    a.MaxPoints,
		DueDate:      a.DueDate,
		LastModified: a.LastModified,
	}
}

func (a *Assignment) Apply(r AssignmentRecord) {
	a.SISID = r.SISID
	a.CategoryID = r.CategoryID
	a.Title = r.Title
	a.Description = r.Description
	a.MaxPoints = r.MaxPoints
	a.DueDate = r.DueDate
	a.LastModified = r.LastModified
}

func (g Grade) Record() GradeRecord {
	return GradeRecord{
		SISID:        g.SISID,
		LocalID:      g.ID,
		StudentID:    g.StudentID,
		AssignmentID: g.AssignmentID,
		Score:        g.Score,
		Comment:      g.Comment,
		GradedAt:     g.GradedAt,
		LastModified: g.LastModified,
	}
}

func (a Attendance) Record() AttendanceRecord {
	return AttendanceRecord{
		SISID:        a.SISID,
		LocalID:      a.ID,
		StudentID:    a.StudentID,
		Date:         a.Date,
		Period:       a.Period,
		Status:       string(a.Status),
		Note:         a.Note,
		LastModified: a.LastModified,
	}
}

func (c Club) Record() ClubRecord {
	return ClubRecord{
		SISID:        c.SISID,
		LocalID:      c.ID,
		Name:         c.Name,
		Description:  c.Description,
		MeetingDay:   c.MeetingDay,
		LastModified: c.LastModified,
	}
}
