package bookreviews_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iguene/Bibliovirtuelle/lending/features/query/bookreviews"
	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
)

func Test_ProjectBookReviews(t *testing.T) {
	// arrange
	bookID := uuid.NewString()
	at := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	history := core.DomainEvents{
		core.BuildBookReviewed("r-1", bookID, uuid.NewString(), 5, "great", at),
		core.BuildBookReviewed("r-2", bookID, uuid.NewString(), 4, "", at.Add(time.Hour)),
		core.BuildBookReviewed("r-3", bookID, uuid.NewString(), 4, "fine", at.Add(2*time.Hour)),
	}

	// act
	result := bookreviews.ProjectBookReviews(history, 3)

	// assert
	require.Len(t, result.Reviews, 3)
	assert.Equal(t, "r-3", result.Reviews[0].ID)
	assert.Equal(t, "r-1", result.Reviews[2].ID)
	assert.Equal(t, "great", result.Reviews[2].Comment)
	assert.Equal(t, 3, result.Count)
	assert.Equal(t, "4.33", result.AverageRating.StringFixed(2))
	assert.Equal(t, uint(3), result.GetSequenceNumber())
}

func Test_ProjectBookReviews_Empty(t *testing.T) {
	// act
	result := bookreviews.ProjectBookReviews(nil, 0)

	// assert
	assert.Empty(t, result.Reviews)
	assert.Equal(t, 0, result.Count)
	assert.True(t, result.AverageRating.IsZero())
}
