package models

const (
	RegistrationTypeIndividual = "individual"
	RegistrationTypeTeam       = "team"
)

type Registration struct {
	ID               string `json:"id"`
	EventID          string `json:"event_id"`
	RegistrationType string `json:"registration_type"` // individual, team
	TeamName         string `json:"team_name,omitempty"`
}

// RegistrationStatus distinguishes "no registration record exists for this
// event" (HasRecord false) from "a record exists but this user is not a
// member" (HasRecord true, IsRegistered false).
type RegistrationStatus struct {
	HasRecord      bool   `json:"has_record"`
	IsRegistered   bool   `json:"is_registered"`
	RegistrationID string `json:"registration_id,omitempty"`
	TeamName       string `json:"team_name,omitempty"`
}

type Registrant struct {
	ProfileID      string `json:"profile_id"`
	Name           string `json:"name"`
	Institution    string `json:"institution"`
	Department     string `json:"department"`
	RegistrationNo string `json:"registration_no"`
	TeamName       string `json:"team_name,omitempty"`
}
