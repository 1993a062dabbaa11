package models

// Learner is a profile eligible for course assignment.
type Learner struct {
	ID        string  `db:"id" json:"id"`
	FullName  *string `db:"full_name" json:"full_name,omitempty"`
	Email     string  `db:"email" json:"email"`
	AvatarURL *string `db:"avatar_url" json:"avatar_url,omitempty"`
}

// GetID returns the profile identity.
func (l Learner) GetID() string { return l.ID }
