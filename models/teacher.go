package models

// Teacher is the authenticated subject of the client session. It is filled
// from the login response and never pushed back to the SIS.
type Teacher struct {
	// TeacherID is the SIS identifier extracted from the access token's
	// "sub" claim.
	TeacherID string `json:"teacher_id"`

	// DisplayName is the human-readable name shown in the client.
	DisplayName string `json:"display_name"`

	// Email is the school email the teacher logs in with.
	Email string `json:"email"`
}
