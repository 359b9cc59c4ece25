package service_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo/internal/model"
	"todo/internal/service"
)

func titles(page service.PaginatedList[service.TodoItemDTO]) []string {
	out := make([]string, len(page.Items))
	for i, item := range page.Items {
		out[i] = item.Title.String
	}
	return out
}

func (f *fixture) page(t *testing.T, q service.ItemQuery) service.PaginatedList[service.TodoItemDTO] {
	t.Helper()
	page, err := f.queries.GetItemsWithPagination(context.Background(), q)
	require.NoError(t, err)
	return page
}

func TestGetItems_TagFilterHidesDeletedUnlessAsked(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	listID := f.list(t, "Chores")
	milk := f.item(t, listID, "Buy milk")
	bread := f.item(t, listID, "Buy bread")
	f.item(t, listID, "Walk dog")
	shopping := f.tag(t, "shopping")
	require.NoError(t, f.itemTags.AddTag(ctx, milk, shopping))
	require.NoError(t, f.itemTags.AddTag(ctx, bread, shopping))
	require.NoError(t, f.deletes.DeleteItem(ctx, milk))

	visible := f.page(t, service.ItemQuery{ListID: listID, TagIDs: []int64{shopping}})
	assert.Equal(t, []string{"Buy bread"}, titles(visible))
	assert.Equal(t, int64(1), visible.TotalCount)

	all := f.page(t, service.ItemQuery{ListID: listID, TagIDs: []int64{shopping}, Visibility: model.IncludeDeleted})
	assert.Equal(t, []string{"Buy bread", "Buy milk"}, titles(all))
	assert.True(t, all.Items[1].IsDeleted)
}

func TestGetItems_EmptyFiltersMatchPlainListing(t *testing.T) {
	f := newFixture(t)
	listID := f.list(t, "Chores")
	f.item(t, listID, "b")
	f.item(t, listID, "a")
	f.item(t, f.list(t, "Other"), "c")

	plain := f.page(t, service.ItemQuery{ListID: listID})
	filtered := f.page(t, service.ItemQuery{ListID: listID, TagIDs: []int64{}, SearchTerm: "   "})

	assert.Equal(t, plain, filtered)
	assert.Equal(t, []string{"a", "b"}, titles(plain))
}

func TestGetItems_AnyTagMatches(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	listID := f.list(t, "Chores")
	home, work := f.tag(t, "home"), f.tag(t, "work")
	both := f.item(t, listID, "both")
	onlyHome := f.item(t, listID, "home only")
	onlyWork := f.item(t, listID, "work only")
	f.item(t, listID, "untagged")
	require.NoError(t, f.itemTags.ReplaceTags(ctx, both, []int64{home, work}))
	require.NoError(t, f.itemTags.ReplaceTags(ctx, onlyHome, []int64{home}))
	require.NoError(t, f.itemTags.ReplaceTags(ctx, onlyWork, []int64{work}))

	page := f.page(t, service.ItemQuery{ListID: listID, TagIDs: []int64{home, work}})

	assert.Equal(t, []string{"both", "home only", "work only"}, titles(page))
	assert.Len(t, page.Items[0].Tags, 2, "an item matching twice is listed once with all its tags")

	none := f.page(t, service.ItemQuery{ListID: listID, TagIDs: []int64{999}})
	assert.Empty(t, none.Items)
}

func TestGetItems_SearchIgnoresCaseAndReachesNotesAndTags(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	listID := f.list(t, "Chores")
	f.item(t, listID, "Buy MILK")
	noted := f.item(t, listID, "Groceries")
	tagged := f.item(t, listID, "Cheese")
	f.item(t, listID, "Walk dog")
	require.NoError(t, f.todos.UpdateItemDetail(ctx, noted, service.ItemDetail{
		ListID: listID,
		Note:   nullString("oat milk please"),
	}))
	require.NoError(t, f.itemTags.AddTag(ctx, tagged, f.tag(t, "Milk products")))

	page := f.page(t, service.ItemQuery{ListID: listID, SearchTerm: "  mIlK "})

	assert.Equal(t, []string{"Buy MILK", "Cheese", "Groceries"}, titles(page))
}

func TestGetItems_SearchFoldsNonASCII(t *testing.T) {
	f := newFixture(t)
	listID := f.list(t, "Rentrée")
	f.item(t, listID, "ÉCOLE supplies")
	tagged := f.item(t, listID, "Uniform")
	f.item(t, listID, "Ecology book")
	require.NoError(t, f.itemTags.AddTag(context.Background(), tagged, f.tag(t, "ÜBER wichtig")))

	assert.Equal(t, []string{"ÉCOLE supplies"}, titles(f.page(t, service.ItemQuery{ListID: listID, SearchTerm: "école"})))
	assert.Equal(t, []string{"Uniform"}, titles(f.page(t, service.ItemQuery{ListID: listID, SearchTerm: "über"})))
}

func TestGetItems_SearchTreatsWildcardsLiterally(t *testing.T) {
	f := newFixture(t)
	listID := f.list(t, "Chores")
	f.item(t, listID, "100% done")
	f.item(t, listID, "1000 steps")
	f.item(t, listID, "snake_case")
	f.item(t, listID, "snakeXcase")

	assert.Equal(t, []string{"100% done"}, titles(f.page(t, service.ItemQuery{ListID: listID, SearchTerm: "0%"})))
	assert.Equal(t, []string{"snake_case"}, titles(f.page(t, service.ItemQuery{ListID: listID, SearchTerm: "e_c"})))
}

func TestGetItems_Paging(t *testing.T) {
	f := newFixture(t)
	listID := f.list(t, "Chores")
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		f.item(t, listID, title)
	}

	second := f.page(t, service.ItemQuery{ListID: listID, PageNumber: 2, PageSize: 2})
	assert.Equal(t, []string{"c", "d"}, titles(second))
	assert.Equal(t, 3, second.TotalPages)
	assert.Equal(t, int64(5), second.TotalCount)
	assert.True(t, second.HasPreviousPage)
	assert.True(t, second.HasNextPage)

	last := f.page(t, service.ItemQuery{ListID: listID, PageNumber: 3, PageSize: 2})
	assert.Equal(t, []string{"e"}, titles(last))
	assert.False(t, last.HasNextPage)

	beyond := f.page(t, service.ItemQuery{ListID: listID, PageNumber: 40, PageSize: 2})
	assert.Empty(t, beyond.Items)
	assert.Equal(t, int64(5), beyond.TotalCount)

	defaults := f.page(t, service.ItemQuery{ListID: listID, PageNumber: -1, PageSize: 0})
	assert.Equal(t, service.DefaultPageNumber, defaults.PageNumber)
	assert.Len(t, defaults.Items, 5)
	assert.Equal(t, 1, defaults.TotalPages)

	whole := f.page(t, service.ItemQuery{ListID: listID, PageSize: math.MaxInt})
	assert.Len(t, whole.Items, 5)
	assert.Equal(t, 1, whole.TotalPages)
	assert.False(t, whole.HasNextPage)
}

func TestNewPaginatedList_HugePageSize(t *testing.T) {
	page := service.NewPaginatedList([]string{"a", "b", "c"}, 3, 1, math.MaxInt)

	assert.Equal(t, 1, page.TotalPages)
	assert.False(t, page.HasNextPage)
	assert.False(t, page.HasPreviousPage)
}

func TestGetItems_UnknownListIsEmpty(t *testing.T) {
	f := newFixture(t)

	page := f.page(t, service.ItemQuery{ListID: 999})

	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.TotalPages)
	assert.False(t, page.HasNextPage)
}
