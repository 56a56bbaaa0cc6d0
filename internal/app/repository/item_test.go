package repository

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderClause(t *testing.T) {
	tests := []struct {
		sort Sort
		want string
	}{
		{SortNone, "id asc"},
		{SortAlpha, "title asc, id asc"},
		{SortPrice, "price asc, id asc"},
		{Sort(""), "id asc"},
	}

	for _, tt := range tests {
		t.Run(string(tt.sort), func(t *testing.T) {
			assert.Equal(t, tt.want, orderClause(tt.sort))
		})
	}
}

var itemColumns = []string{"id", "title", "description", "price", "image_key"}

func TestListItemsSearchAndPage(t *testing.T) {
	repo, mock := newMockRepository(t)

	search := regexp.QuoteMeta(`WHERE title ILIKE $1 OR description ILIKE $2`)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "items" `) + search).
		WithArgs("%lamp%", "%lamp%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(6))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "items" `) + search +
		regexp.QuoteMeta(` ORDER BY price asc, id asc LIMIT `) + `.+` + regexp.QuoteMeta(` OFFSET `)).
		WillReturnRows(sqlmock.NewRows(itemColumns).
			AddRow(4, "Lamp", "desk lamp", "12.00", nil))

	items, total, err := repo.ListItems(t.Context(), ItemQuery{Search: " lamp ", Sort: SortPrice, Offset: 5, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(6), total)
	require.Len(t, items, 1)
	assert.Equal(t, "Lamp", items[0].Title)
	assert.Nil(t, items[0].ImageKey)
}

func TestListItemsWithoutSearch(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "items"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "items" ORDER BY title asc, id asc LIMIT`)).
		WillReturnRows(sqlmock.NewRows(itemColumns))

	items, total, err := repo.ListItems(t.Context(), ItemQuery{Sort: SortAlpha, Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)
}
