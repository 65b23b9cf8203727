package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePhotos(t *testing.T) {
	photos, err := DecodePhotos([]byte(`["a.jpg","b.jpg"]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, photos)

	// string-encoded form
	photos, err = DecodePhotos([]byte(`"[\"a.jpg\"]"`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg"}, photos)

	photos, err = DecodePhotos([]byte(`null`))
	require.NoError(t, err)
	assert.Empty(t, photos)

	_, err = DecodePhotos([]byte(`{"not":"a list"}`))
	assert.Error(t, err)
}

func TestDecodeFeedback(t *testing.T) {
	feedback, err := DecodeFeedback([]byte(`[{"participant_id":"p1","feedback":"great","submitted_at":"2025-08-01 10:00:00.000Z"}]`))
	require.NoError(t, err)
	require.Len(t, feedback, 1)
	assert.Equal(t, "p1", feedback[0].ParticipantID)
	assert.Equal(t, "great", feedback[0].Feedback)

	feedback, err = DecodeFeedback([]byte(``))
	require.NoError(t, err)
	assert.Empty(t, feedback)
}

func TestMergeFeedback_AppendsNewParticipant(t *testing.T) {
	feedback := []FeedbackEntry{{ParticipantID: "p1", Feedback: "first"}}

	merged := MergeFeedback(feedback, FeedbackEntry{ParticipantID: "p2", Feedback: "second"})

	require.Len(t, merged, 2)
	assert.Equal(t, "p2", merged[1].ParticipantID)
}

func TestMergeFeedback_OverwritesSameParticipant(t *testing.T) {
	feedback := []FeedbackEntry{
		{ParticipantID: "p1", Feedback: "first impression"},
		{ParticipantID: "p2", Feedback: "fine"},
	}

	merged := MergeFeedback(feedback, FeedbackEntry{ParticipantID: "p1", Feedback: "changed my mind"})

	require.Len(t, merged, 2)
	assert.Equal(t, "changed my mind", merged[0].Feedback)
	assert.Equal(t, "fine", merged[1].Feedback)
}

func TestMergeFeedback_EmptyList(t *testing.T) {
	merged := MergeFeedback(nil, FeedbackEntry{ParticipantID: "p1", Feedback: "hello"})

	require.Len(t, merged, 1)
	assert.Equal(t, "p1", merged[0].ParticipantID)
}
