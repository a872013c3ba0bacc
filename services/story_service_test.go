package services

import (
	"testing"
	"time"

	"quizlearn-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoryChapterScheduling(t *testing.T) {
	db := newTestDB(t)
	svc := NewStoryService(db)
	svc.now = func() time.Time { return day1 }

	story, err := svc.CreateStory("The Water Cycle", "A drop's journey.")
	require.NoError(t, err)
	assert.Equal(t, "the-water-cycle", story.Slug)

	require.NoError(t, svc.AddChapter(story.ID, &models.StoryChapter{
		Number: 1, Title: "Evaporation", Body: "...",
	}))

	future := day1.Add(48 * time.Hour)
	scheduled := models.StoryChapter{Number: 2, Title: "Condensation", Body: "...", PublishAt: &future}
	require.NoError(t, svc.AddChapter(story.ID, &scheduled))
	assert.Equal(t, "scheduled", scheduled.Status)

	got, err := svc.GetStory(story.Slug)
	require.NoError(t, err)
	require.Len(t, got.Chapters, 1, "scheduled chapters stay hidden")
	assert.Equal(t, 1, got.Chapters[0].Number)

	// Time passes; the minute job flips the chapter live.
	svc.now = func() time.Time { return future.Add(time.Minute) }
	svc.PublishDueChapters()

	got, err = svc.GetStory(story.Slug)
	require.NoError(t, err)
	assert.Len(t, got.Chapters, 2)
}

func TestAddChapterUnknownStory(t *testing.T) {
	db := newTestDB(t)
	svc := NewStoryService(db)

	err := svc.AddChapter(42, &models.StoryChapter{Number: 1, Body: "..."})
	assert.ErrorIs(t, err, ErrStoryNotFound)
}
