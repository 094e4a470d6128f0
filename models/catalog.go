package models

// Specialty is a medical department grouping doctors. Reference data,
// fetched once per wizard session.
type Specialty struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Doctor is fetched per selected specialty and never cached across specialties.
type Doctor struct {
	ID          string `json:"id"`
	FullName    string `json:"fullName"`
	SpecialtyID string `json:"specialtyId"`
	Office      string `json:"office"`
}
