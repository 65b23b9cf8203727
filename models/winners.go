package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Winners is the decoded winner list of a past event. Stored data arrives in
// one of two shapes: a flat list of names, or an object splitting individual
// and team winners. Both decode into this one variant; read sites never
// re-interpret the raw value.
type Winners struct {
	Flat       []string `json:"flat,omitempty"`
	Individual []string `json:"individual_winners,omitempty"`
	Team       []string `json:"team_winners,omitempty"`
}

type splitWinners struct {
	Individual []string `json:"individual_winners"`
	Team       []string `json:"team_winners"`
}

// DecodeWinners decodes the stored winner value. Accepts a flat JSON list,
// a split object, or either of those wrapped in a JSON-encoded string.
func DecodeWinners(raw []byte) (Winners, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Winners{}, nil
	}

	var encoded string
	if err := json.Unmarshal(trimmed, &encoded); err == nil {
		if strings.TrimSpace(encoded) == "" {
			return Winners{}, nil
		}
		return DecodeWinners([]byte(encoded))
	}

	var flat []string
	if err := json.Unmarshal(trimmed, &flat); err == nil {
		return Winners{Flat: flat}, nil
	}

	var split splitWinners
	if err := json.Unmarshal(trimmed, &split); err != nil {
		return Winners{}, err
	}
	return Winners{Individual: split.Individual, Team: split.Team}, nil
}

func (w Winners) IsEmpty() bool {
	return len(w.Flat) == 0 && len(w.Individual) == 0 && len(w.Team) == 0
}

// HasTeam reports whether a team name appears in the flat list or the team
// winners sub-list.
func (w Winners) HasTeam(teamName string) bool {
	if teamName == "" {
		return false
	}
	return contains(w.Flat, teamName) || contains(w.Team, teamName)
}

// HasIndividual reports whether a display name appears in the flat list or
// the individual winners sub-list.
func (w Winners) HasIndividual(name string) bool {
	if name == "" {
		return false
	}
	return contains(w.Flat, name) || contains(w.Individual, name)
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
