// solosync/types.go
package solosync

// Session is a planned practice session published by a coach.
type Session struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Duration    int    `json:"duration_minutes,omitempty"`
}

// SessionLogSubmission is the payload for recording a completed session.
type SessionLogSubmission struct {
	Session          int    `json:"session"`
	CompletedDate    string `json:"completed_date"`
	DurationMinutes  int    `json:"duration_minutes"`
	PhysicalRating   int    `json:"physical_rating,omitempty"`
	DifficultyRating int    `json:"difficulty_rating,omitempty"`
	Notes            string `json:"notes,omitempty"`
}

// SessionLog is a recorded session as stored by the server.
type SessionLog struct {
	ID int `json:"id"`
	SessionLogSubmission
}

// loginRequest is the wire payload for the token obtain endpoint.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse is the token pair returned on a successful login.
type loginResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}
