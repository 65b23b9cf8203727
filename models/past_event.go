package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

type PastEventRecord struct {
	EventID      string          `json:"event_id"`
	IsPastEvent  bool            `json:"is_past_event"`
	Photos       []string        `json:"photos"`
	Winners      Winners         `json:"winners"`
	EventDetails string          `json:"event_details"`
	Feedback     []FeedbackEntry `json:"feedback"`
}

type FeedbackEntry struct {
	ParticipantID string `json:"participant_id"`
	Feedback      string `json:"feedback"`
	SubmittedAt   string `json:"submitted_at"`
}

const (
	WonAsIndividual = "individual"
	WonAsTeam       = "team"
)

type WonEvent struct {
	EventID  string `json:"event_id"`
	Title    string `json:"title"`
	WonAs    string `json:"won_as"` // individual, team
	TeamName string `json:"team_name,omitempty"`
}

// decodeFlexible handles values stored either as a structured JSON value or
// as a JSON string holding encoded JSON (legacy rows carry both forms).
func decodeFlexible(raw []byte, dst any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	var encoded string
	if err := json.Unmarshal(trimmed, &encoded); err == nil {
		if strings.TrimSpace(encoded) == "" {
			return nil
		}
		return json.Unmarshal([]byte(encoded), dst)
	}
	return json.Unmarshal(trimmed, dst)
}

func DecodePhotos(raw []byte) ([]string, error) {
	var photos []string
	if err := decodeFlexible(raw, &photos); err != nil {
		return nil, err
	}
	return photos, nil
}

func DecodeFeedback(raw []byte) ([]FeedbackEntry, error) {
	var feedback []FeedbackEntry
	if err := decodeFlexible(raw, &feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

// MergeFeedback returns the feedback list with the entry for its participant
// either overwritten in place or appended. One entry per participant; a later
// submission replaces the earlier one.
func MergeFeedback(feedback []FeedbackEntry, entry FeedbackEntry) []FeedbackEntry {
	for i := range feedback {
		if feedback[i].ParticipantID == entry.ParticipantID {
			feedback[i] = entry
			return feedback
		}
	}
	return append(feedback, entry)
}
