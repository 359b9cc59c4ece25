package service_test

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo/internal/repository"
)

func TestAddTag_TwiceKeepsOneLink(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	itemID := f.item(t, f.list(t, "Chores"), "Buy milk")
	tagID := f.tag(t, "shopping")

	require.NoError(t, f.itemTags.AddTag(ctx, itemID, tagID))
	require.NoError(t, f.itemTags.AddTag(ctx, itemID, tagID))

	assert.Equal(t, []int64{tagID}, f.tagIDs(t, itemID))
}

func TestAddTag_UnknownItemOrTag(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	itemID := f.item(t, f.list(t, "Chores"), "Buy milk")
	tagID := f.tag(t, "shopping")

	err := f.itemTags.AddTag(ctx, 999, tagID)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
	assert.Contains(t, err.Error(), "TodoItem")

	err = f.itemTags.AddTag(ctx, itemID, 999)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
	assert.Contains(t, err.Error(), "Tag")
}

func TestAddTag_DeletedItemIsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	itemID := f.item(t, f.list(t, "Chores"), "Buy milk")
	tagID := f.tag(t, "shopping")
	require.NoError(t, f.deletes.DeleteItem(ctx, itemID))

	err := f.itemTags.AddTag(ctx, itemID, tagID)

	assert.True(t, errors.Is(err, repository.ErrNotFound))
	assert.Empty(t, f.tagIDs(t, itemID))
}

func TestRemoveTag_MissingLinkIsNoop(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	itemID := f.item(t, f.list(t, "Chores"), "Buy milk")
	a, b := f.tag(t, "a"), f.tag(t, "b")
	require.NoError(t, f.itemTags.AddTag(ctx, itemID, a))

	require.NoError(t, f.itemTags.RemoveTag(ctx, itemID, b))
	require.NoError(t, f.itemTags.RemoveTag(ctx, 12345, a))
	assert.Equal(t, []int64{a}, f.tagIDs(t, itemID))

	require.NoError(t, f.itemTags.RemoveTag(ctx, itemID, a))
	assert.Empty(t, f.tagIDs(t, itemID))
}

func TestReplaceTags_ResultEqualsRequestedSet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	itemID := f.item(t, f.list(t, "Chores"), "Buy milk")
	a, b, c := f.tag(t, "a"), f.tag(t, "b"), f.tag(t, "c")
	require.NoError(t, f.itemTags.ReplaceTags(ctx, itemID, []int64{a, b}))

	require.NoError(t, f.itemTags.ReplaceTags(ctx, itemID, []int64{c, b, c}))
	assert.Equal(t, []int64{b, c}, f.tagIDs(t, itemID))

	require.NoError(t, f.itemTags.ReplaceTags(ctx, itemID, nil))
	assert.Empty(t, f.tagIDs(t, itemID))
}

func TestReplaceTags_UnknownTagLeavesLinksUnchanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	itemID := f.item(t, f.list(t, "Chores"), "Buy milk")
	a := f.tag(t, "a")
	require.NoError(t, f.itemTags.ReplaceTags(ctx, itemID, []int64{a}))

	err := f.itemTags.ReplaceTags(ctx, itemID, []int64{a, 999, 998})

	var notFound *repository.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "Tag", notFound.Entity)
	assert.Equal(t, []int64{998, 999}, notFound.Keys)
	assert.Equal(t, []int64{a}, f.tagIDs(t, itemID))
}

func TestReplaceTags_UnknownItem(t *testing.T) {
	f := newFixture(t)
	a := f.tag(t, "a")

	err := f.itemTags.ReplaceTags(context.Background(), 999, []int64{a})

	assert.True(t, errors.Is(err, repository.ErrNotFound))
}
