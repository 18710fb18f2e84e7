package aggregates

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testStart = int64(1661299200) // 2022-08-24 00:00 KST
	testEnd   = int64(1661558400) // three days later
)

func newTestJourney(t *testing.T) Journey {
	t.Helper()
	j, err := NewJourney("trip", testStart, testEnd, "theme/seaside", []TagSpec{
		{Topic: "topic1", Orientation: OrientationLike},
	}, "u1")
	require.NoError(t, err)
	return j
}

func seasidePlace() PlaceSpec {
	return PlaceSpec{
		Name:      "Hyeopjae",
		Address:   "Jeju, Hallim-eup",
		Category:  CategoryOcean,
		Longitude: 126.2396,
		Latitude:  33.3940,
		Link:      "https://map.example.com/hyeopjae",
	}
}

func TestNewJourney(t *testing.T) {
	j := newTestJourney(t)

	assert.NotEmpty(t, j.ID)
	assert.Equal(t, []string{"u1"}, j.Participants)
	require.Len(t, j.Tags, 1)
	assert.Equal(t, "topic1", j.Tags[0].Topic)
	assert.Equal(t, OrientationLike, j.Tags[0].Orientation)
	assert.Equal(t, []string{"u1"}, j.Tags[0].Voters)
	assert.Empty(t, j.Pikmis)
	require.Len(t, j.Pikis, 3)
	for _, day := range j.Pikis {
		assert.Empty(t, day)
	}
}

func TestNewJourneyValidation(t *testing.T) {
	tests := []struct {
		name    string
		alter   func(name *string, start, end *int64, tags *[]TagSpec)
		wantErr error
	}{
		{
			"name too long",
			func(name *string, _, _ *int64, _ *[]TagSpec) { *name = "elevenchars" },
			ErrValidation,
		},
		{
			"ends before start",
			func(_ *string, start, end *int64, _ *[]TagSpec) { *end = *start - 1 },
			ErrValidation,
		},
		{
			"longer than a year",
			func(_ *string, start, end *int64, _ *[]TagSpec) {
				*end = *start + int64(MaxJourneyDays+1)*SecondsPerDay
			},
			ErrValidation,
		},
		{
			"bad tag orientation",
			func(_ *string, _, _ *int64, tags *[]TagSpec) {
				*tags = []TagSpec{{Topic: "food", Orientation: "meh"}}
			},
			ErrValidation,
		},
		{
			"tag topic too long",
			func(_ *string, _, _ *int64, tags *[]TagSpec) {
				*tags = []TagSpec{{Topic: "toolong", Orientation: OrientationLike}}
			},
			ErrValidation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name := "trip"
			start, end := testStart, testEnd
			tags := []TagSpec{{Topic: "topic1", Orientation: OrientationLike}}
			tt.alter(&name, &start, &end, &tags)

			_, err := NewJourney(name, start, end, "theme", tags, "u1")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewJourneyMaxLengthItinerary(t *testing.T) {
	j, err := NewJourney("longtrip", testStart, testStart+int64(MaxJourneyDays)*SecondsPerDay, "theme", nil, "u1")
	require.NoError(t, err)
	assert.Len(t, j.Pikis, MaxJourneyDays)
}

func TestAddParticipant(t *testing.T) {
	j := newTestJourney(t)

	j, err := j.AddParticipant("u2")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2"}, j.Participants)

	_, err = j.AddParticipant("u2")
	assert.ErrorIs(t, err, ErrAlreadyMember)
}

func TestAddParticipantCap(t *testing.T) {
	j := newTestJourney(t)

	var err error
	for i := 2; i <= MaxParticipants; i++ {
		j, err = j.AddParticipant(fmt.Sprintf("u%d", i))
		require.NoError(t, err)
	}
	require.Len(t, j.Participants, MaxParticipants)

	_, err = j.AddParticipant("u9")
	assert.ErrorIs(t, err, ErrLimitExceeded)
	assert.Len(t, j.Participants, MaxParticipants)
}

func TestRemoveParticipantCascades(t *testing.T) {
	j := newTestJourney(t)
	j, err := j.AddParticipant("u2")
	require.NoError(t, err)

	// u2 votes on a tag of their own plus the shared one, and likes a pikmi.
	j, err = j.SetTags([]TagSpec{
		{Topic: "topic1", Orientation: OrientationLike},
		{Topic: "quiet", Orientation: OrientationDislike},
	}, "u2")
	require.NoError(t, err)

	j, pikmiID, err := j.AddPikmi(seasidePlace(), "u1")
	require.NoError(t, err)
	j, err = j.LikePikmi(pikmiID, "u2")
	require.NoError(t, err)

	j, err = j.RemoveParticipant("u2")
	require.NoError(t, err)

	assert.Equal(t, []string{"u1"}, j.Participants)
	// topic1 still has u1's vote; u2's solo tag is gone entirely.
	require.Len(t, j.Tags, 1)
	assert.Equal(t, "topic1", j.Tags[0].Topic)
	assert.Equal(t, []string{"u1"}, j.Tags[0].Voters)
	assert.Empty(t, j.FindPikmi(pikmiID).LikedBy)
}

func TestRemoveParticipantNotMember(t *testing.T) {
	j := newTestJourney(t)
	_, err := j.RemoveParticipant("stranger")
	assert.ErrorIs(t, err, ErrNotMember)
}

func TestRemoveParticipantKeepsScheduledPlaces(t *testing.T) {
	j := newTestJourney(t)
	j, err := j.AddParticipant("u2")
	require.NoError(t, err)
	j, _, err = j.ScheduleDay(0, []PlaceSpec{seasidePlace()}, "u2")
	require.NoError(t, err)

	j, err = j.RemoveParticipant("u2")
	require.NoError(t, err)
	assert.Len(t, j.Pikis[0], 1)
}

func TestSetTagsMergesDuplicates(t *testing.T) {
	j := newTestJourney(t)
	j, err := j.AddParticipant("u2")
	require.NoError(t, err)

	// u2 re-submits topic1/like: the row must merge, not duplicate.
	j, err = j.SetTags([]TagSpec{{Topic: "topic1", Orientation: OrientationLike}}, "u2")
	require.NoError(t, err)

	require.Len(t, j.Tags, 1)
	assert.ElementsMatch(t, []string{"u1", "u2"}, j.Tags[0].Voters)
}

func TestSetTagsReplacesWholesale(t *testing.T) {
	j := newTestJourney(t)

	j, err := j.SetTags([]TagSpec{{Topic: "food", Orientation: OrientationLike}}, "u1")
	require.NoError(t, err)

	require.Len(t, j.Tags, 1)
	assert.Equal(t, "food", j.Tags[0].Topic)
}

func TestSetTagsCapAfterMerge(t *testing.T) {
	j := newTestJourney(t)

	specs := make([]TagSpec, MaxTags+1)
	for i := range specs {
		specs[i] = TagSpec{Topic: fmt.Sprintf("t%d", i), Orientation: OrientationLike}
	}
	_, err := j.SetTags(specs, "u1")
	assert.ErrorIs(t, err, ErrLimitExceeded)

	_, err = j.SetTags(specs[:MaxTags], "u1")
	assert.NoError(t, err)
}

func TestAddPikmi(t *testing.T) {
	j := newTestJourney(t)

	j, id, err := j.AddPikmi(seasidePlace(), "u1")
	require.NoError(t, err)
	require.NotEmpty(t, id)
	require.Len(t, j.Pikmis, 1)
	assert.Empty(t, j.Pikmis[0].LikedBy)

	_, _, err = j.AddPikmi(seasidePlace(), "stranger")
	assert.ErrorIs(t, err, ErrNotMember)
}

func TestAddPikmiValidation(t *testing.T) {
	j := newTestJourney(t)

	bad := seasidePlace()
	bad.Category = "VOLCANO"
	_, _, err := j.AddPikmi(bad, "u1")
	assert.ErrorIs(t, err, ErrValidation)

	bad = seasidePlace()
	bad.Longitude = 139.69 // outside the service area
	_, _, err = j.AddPikmi(bad, "u1")
	assert.ErrorIs(t, err, ErrValidation)

	bad = seasidePlace()
	bad.Name = ""
	_, _, err = j.AddPikmi(bad, "u1")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAddPikmiCap(t *testing.T) {
	j := newTestJourney(t)

	var err error
	for i := 0; i < MaxPikmis; i++ {
		j, _, err = j.AddPikmi(seasidePlace(), "u1")
		require.NoError(t, err)
	}
	_, _, err = j.AddPikmi(seasidePlace(), "u1")
	assert.ErrorIs(t, err, ErrLimitExceeded)
	assert.Len(t, j.Pikmis, MaxPikmis)
}

func TestLikePikmiIdempotenceGuard(t *testing.T) {
	j := newTestJourney(t)
	j, id, err := j.AddPikmi(seasidePlace(), "u1")
	require.NoError(t, err)

	j, err = j.LikePikmi(id, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, j.FindPikmi(id).LikedBy)

	_, err = j.LikePikmi(id, "u1")
	assert.ErrorIs(t, err, ErrAlreadyLiked)
	// The failed call must not have touched the original.
	assert.Equal(t, []string{"u1"}, j.FindPikmi(id).LikedBy)
}

func TestUnlikePikmi(t *testing.T) {
	j := newTestJourney(t)
	j, id, err := j.AddPikmi(seasidePlace(), "u1")
	require.NoError(t, err)

	_, err = j.UnlikePikmi(id, "u1")
	assert.ErrorIs(t, err, ErrNotLiked)

	j, err = j.LikePikmi(id, "u1")
	require.NoError(t, err)
	j, err = j.UnlikePikmi(id, "u1")
	require.NoError(t, err)
	assert.Empty(t, j.FindPikmi(id).LikedBy)
}

func TestLikePikmiNotFound(t *testing.T) {
	j := newTestJourney(t)
	_, err := j.LikePikmi("missing", "u1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestScheduleDay(t *testing.T) {
	j := newTestJourney(t)

	j, ids, err := j.ScheduleDay(1, []PlaceSpec{seasidePlace()}, "u1")
	require.NoError(t, err)
	require.Len(t, ids, 1)
	require.Len(t, j.Pikis[1], 1)
	assert.Equal(t, ids[0], j.Pikis[1][0].ID)
	assert.Empty(t, j.Pikis[0])
	assert.Empty(t, j.Pikis[2])
}

func TestScheduleDayReplacesBucket(t *testing.T) {
	j := newTestJourney(t)
	j, ids, err := j.ScheduleDay(0, []PlaceSpec{seasidePlace(), seasidePlace()}, "u1")
	require.NoError(t, err)
	require.Len(t, ids, 2)

	// Rescheduling keeps the place whose id is re-supplied and drops the rest.
	kept := seasidePlace()
	kept.ID = ids[0]
	j, ids2, err := j.ScheduleDay(0, []PlaceSpec{kept}, "u1")
	require.NoError(t, err)
	require.Len(t, j.Pikis[0], 1)
	assert.Equal(t, ids[0], ids2[0])
}

func TestScheduleDayErrors(t *testing.T) {
	j := newTestJourney(t)

	_, _, err := j.ScheduleDay(-1, nil, "u1")
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = j.ScheduleDay(3, nil, "u1")
	assert.ErrorIs(t, err, ErrValidation)

	specs := make([]PlaceSpec, MaxPikisPerDay+1)
	for i := range specs {
		specs[i] = seasidePlace()
	}
	_, _, err = j.ScheduleDay(0, specs, "u1")
	assert.ErrorIs(t, err, ErrLimitExceeded)

	_, _, err = j.ScheduleDay(0, []PlaceSpec{seasidePlace()}, "stranger")
	assert.ErrorIs(t, err, ErrNotMember)
}

func TestScheduleDayDuplicateIDs(t *testing.T) {
	j := newTestJourney(t)
	j, ids, err := j.ScheduleDay(0, []PlaceSpec{seasidePlace()}, "u1")
	require.NoError(t, err)

	dup := seasidePlace()
	dup.ID = ids[0]
	_, _, err = j.ScheduleDay(0, []PlaceSpec{dup, dup}, "u1")
	assert.ErrorIs(t, err, ErrDuplicateItem)
}

func TestTransitionsDoNotMutateReceiver(t *testing.T) {
	j := newTestJourney(t)
	j, id, err := j.AddPikmi(seasidePlace(), "u1")
	require.NoError(t, err)

	before := j

	_, err = before.AddParticipant("u2")
	require.NoError(t, err)
	_, err = before.LikePikmi(id, "u1")
	require.NoError(t, err)
	_, _, err = before.ScheduleDay(0, []PlaceSpec{seasidePlace()}, "u1")
	require.NoError(t, err)

	assert.Equal(t, []string{"u1"}, j.Participants)
	assert.Empty(t, j.FindPikmi(id).LikedBy)
	assert.Empty(t, j.Pikis[0])
}
