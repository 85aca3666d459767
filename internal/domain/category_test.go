package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategories(t *testing.T) {
	categories, err := NewCategories([]DictionaryEntry{
		{ID: 1, Name: "Body"},
		{ID: 2, Name: "Percent"},
		{ID: 3, Name: "Issuance"},
		{ID: 4, Name: "Collection"},
		{ID: 7, Name: "Marketing"},
	})
	require.NoError(t, err)

	assert.Equal(t, Category{ID: 3, Name: "Issuance", Kind: CategoryIssuance}, categories.Issuance)
	assert.Equal(t, Category{ID: 4, Name: "Collection", Kind: CategoryCollection}, categories.Collection)
	assert.Equal(t, "Body", categories.BodyPayment.Name)
	assert.Equal(t, CategoryBodyPayment, categories.BodyPayment.Kind)
	assert.Equal(t, "Percent", categories.PercentPayment.Name)
}

func TestNewCategories_MissingTargets(t *testing.T) {
	_, err := NewCategories([]DictionaryEntry{{ID: 3, Name: "Issuance"}})
	assert.ErrorContains(t, err, "collection")

	_, err = NewCategories([]DictionaryEntry{{ID: 4, Name: "Collection"}})
	assert.ErrorContains(t, err, "issuance")
}

func TestDefaultCategories(t *testing.T) {
	categories := DefaultCategories()

	assert.Equal(t, int64(3), categories.Issuance.ID)
	assert.Equal(t, int64(4), categories.Collection.ID)
	assert.Equal(t, int64(1), categories.BodyPayment.ID)
	assert.Equal(t, int64(2), categories.PercentPayment.ID)
	assert.Equal(t, "issuance", categories.Issuance.Kind.String())
	assert.Equal(t, "other", CategoryOther.String())
}
