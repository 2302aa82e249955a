package models

import "time"

// Student is a learner account created by staff. Identity fields live on the linked person.
type Student struct {
	ID        string    `db:"id" json:"id"`
	PersonID  string    `db:"person_id" json:"person_id"`
	FiliereID *int64    `db:"filiere_id" json:"filiere_id,omitempty"`
	VagueID   *string   `db:"vague_id" json:"vague_id,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// StudentRecord is a student joined with its person, program and cohort.
type StudentRecord struct {
	Student
	FirstName   string  `db:"first_name" json:"first_name"`
	LastName    string  `db:"last_name" json:"last_name"`
	Email       string  `db:"email" json:"email"`
	FiliereName *string `db:"filiere_name" json:"filiere_name,omitempty"`
	VagueName   *string `db:"vague_name" json:"vague_name,omitempty"`
}

// FullName returns "First Last".
func (r StudentRecord) FullName() string {
	switch {
	case r.FirstName == "":
		return r.LastName
	case r.LastName == "":
		return r.FirstName
	}
	return r.FirstName + " " + r.LastName
}

// Identity returns the attributes used to match enrollment records.
func (r StudentRecord) Identity() StudentIdentity {
	return StudentIdentity{StudentID: r.ID, Email: r.Email, FirstName: r.FirstName, LastName: r.LastName}
}

// StudentIdentity carries what the payment aggregator matches on.
type StudentIdentity struct {
	StudentID string
	Email     string
	FirstName string
	LastName  string
}

// StudentFilter encapsulates allowed search parameters for listing students.
type StudentFilter struct {
	FiliereID *int64
	VagueID   string
	Search    string
	Page      int
	PageSize  int
}
