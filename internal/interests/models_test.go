// internal/interests/models_test.go

package interests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionValidate(t *testing.T) {
	taxonomy := DefaultTaxonomy()

	tests := []struct {
		name      string
		selection Selection
		wantErr   error
	}{
		{
			name:      "empty selection is valid",
			selection: Selection{},
		},
		{
			name: "valid selection",
			selection: Selection{
				{TagID: "movies", Category: CategoryEntertainment, Importance: 5},
				{TagID: "hiking", Category: CategorySports, Importance: 1},
			},
		},
		{
			name: "duplicate tag",
			selection: Selection{
				{TagID: "movies", Category: CategoryEntertainment, Importance: 3},
				{TagID: "movies", Category: CategoryEntertainment, Importance: 4},
			},
			wantErr: ErrDuplicateTag,
		},
		{
			name: "importance too low",
			selection: Selection{
				{TagID: "movies", Category: CategoryEntertainment, Importance: 0},
			},
			wantErr: ErrImportanceOutOfRange,
		},
		{
			name: "importance too high",
			selection: Selection{
				{TagID: "movies", Category: CategoryEntertainment, Importance: 6},
			},
			wantErr: ErrImportanceOutOfRange,
		},
		{
			name: "unknown category",
			selection: Selection{
				{TagID: "movies", Category: Category("gardening"), Importance: 3},
			},
			wantErr: ErrUnknownCategory,
		},
		{
			name: "unknown tag",
			selection: Selection{
				{TagID: "skydiving", Category: CategorySports, Importance: 3},
			},
			wantErr: ErrUnknownTag,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.selection.Validate(taxonomy)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestSelectionValidateNilTaxonomy(t *testing.T) {
	// Without a taxonomy only structural checks apply
	sel := Selection{{TagID: "anything", Category: CategoryFood, Importance: 3}}
	assert.NoError(t, sel.Validate(nil))
}

func TestSelectionAccessors(t *testing.T) {
	sel := Selection{
		{TagID: "movies", Category: CategoryEntertainment, Importance: 5},
		{TagID: "coffee", Category: CategoryFood, Importance: 2},
		{TagID: "music", Category: CategoryEntertainment, Importance: 3},
	}

	assert.Equal(t, []string{"movies", "coffee", "music"}, sel.IDs())
	assert.True(t, sel.IDSet()["coffee"])
	assert.False(t, sel.IDSet()["beach"])

	ent := sel.ByCategory(CategoryEntertainment)
	require.Len(t, ent, 2)
	assert.Equal(t, "movies", ent[0].TagID)
	assert.Equal(t, "music", ent[1].TagID)

	assert.Equal(t, 2, sel.Importance("coffee"))
	assert.Equal(t, 0, sel.Importance("beach"))
}

func TestDefaultTaxonomy(t *testing.T) {
	taxonomy := DefaultTaxonomy()

	for _, cat := range Categories() {
		assert.Lenf(t, taxonomy[cat], 6, "category %s", cat)
		for _, tag := range taxonomy[cat] {
			assert.Equal(t, cat, tag.Category)
			assert.NotEmpty(t, tag.ID)
			assert.NotEmpty(t, tag.DisplayName)
			assert.NotEmpty(t, tag.Icon)
		}
	}

	assert.True(t, taxonomy.Contains("movies"))
	assert.True(t, taxonomy.Contains("shopping"))
	assert.False(t, taxonomy.Contains("skydiving"))
}

func TestCategoryValid(t *testing.T) {
	for _, cat := range Categories() {
		assert.True(t, cat.Valid())
	}
	assert.False(t, Category("gardening").Valid())
	assert.False(t, Category("").Valid())
}
