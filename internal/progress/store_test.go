package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instarecipe/internal/models"
)

func TestStore_EnsureCreatesOnce(t *testing.T) {
	s := NewStore()

	rec := s.Ensure("https://www.instagram.com/p/abc/", "koch", 1700000000)
	require.NotNil(t, rec)
	assert.Equal(t, "koch", rec.Username)
	assert.Equal(t, 1, s.Len())

	rec.Caption = "already fetched"
	again := s.Ensure("https://www.instagram.com/p/abc/", "other", 0)
	assert.Same(t, rec, again)
	assert.Equal(t, "already fetched", again.Caption)
	assert.Equal(t, 1, s.Len())
}

func TestStore_GetPut(t *testing.T) {
	s := NewStore()
	_, ok := s.Get("missing")
	assert.False(t, ok)

	s.Put(&models.PostRecord{URL: "u1"})
	rec, ok := s.Get("u1")
	require.True(t, ok)
	assert.Equal(t, "u1", rec.URL)
}

func TestStore_Processed(t *testing.T) {
	now := time.Now()
	s := NewStore()
	s.Put(&models.PostRecord{URL: "u1"})

	done := &models.PostRecord{URL: "u2"}
	recipe := &models.Recipe{
		Title:       "T",
		Ingredients: []models.IngredientGroup{{Items: []models.Ingredient{{Name: "Salz"}}}},
	}
	done.Result("m1").Promote(models.NewResultSnapshot(recipe, 1.0, now), now)
	s.Put(done)

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 1, s.Processed())
}

func TestStore_SnapshotIsCopy(t *testing.T) {
	s := NewStore()
	s.Put(&models.PostRecord{URL: "u1"})

	snap := s.Snapshot()
	delete(snap, "u1")
	assert.Equal(t, 1, s.Len())
}

func TestStore_ReplaceNil(t *testing.T) {
	s := NewStore()
	s.Put(&models.PostRecord{URL: "u1"})
	s.Replace(nil)
	assert.Equal(t, 0, s.Len())
}
