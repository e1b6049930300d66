package news

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/newsdhq/newsd/internal/database"
)

type newsRepository struct {
	db database.Database
}

func NewRepository(db database.Database) Repository {
	return &newsRepository{db: db}
}

func (r newsRepository) List(ctx context.Context) ([]Item, error) {
	builder := r.db.
		Builder().
		Select("news_item_id", "title", "body", "date", "category").
		From("news_item").
		OrderBy("news_item_id ASC")

	rows, errQuery := r.db.QueryBuilder(ctx, builder)
	if errQuery != nil {
		return nil, database.DBErr(errQuery)
	}

	defer rows.Close()

	//goland:noinspection GoPreferNilSlice
	items := []Item{}

	for rows.Next() {
		var item Item
		if errScan := rows.Scan(&item.ItemID, &item.Title, &item.Body,
			&item.Date.Time, &item.Category); errScan != nil {
			return nil, database.DBErr(errScan)
		}

		items = append(items, item)
	}

	return items, nil
}

func (r newsRepository) GetByID(ctx context.Context, itemID int, item *Item) error {
	row, errRow := r.db.QueryRowBuilder(ctx, r.db.
		Builder().
		Select("news_item_id", "title", "body", "date", "category").
		From("news_item").
		Where(sq.Eq{"news_item_id": itemID}))
	if errRow != nil {
		return database.DBErr(errRow)
	}

	if errQuery := row.Scan(&item.ItemID, &item.Title, &item.Body,
		&item.Date.Time, &item.Category); errQuery != nil {
		return database.DBErr(errQuery)
	}

	return nil
}

func (r newsRepository) Insert(ctx context.Context, item *Item) error {
	return database.DBErr(r.db.ExecInsertBuilderWithReturnValue(ctx, r.db.
		Builder().
		Insert("news_item").
		Columns("title", "body", "date", "category").
		Values(item.Title, item.Body, item.Date.Time, item.Category).
		Suffix("RETURNING news_item_id"), &item.ItemID))
}

func (r newsRepository) Replace(ctx context.Context, item Item) error {
	return database.DBErr(r.db.ExecUpdateBuilder(ctx, r.db.
		Builder().
		Update("news_item").
		Set("title", item.Title).
		Set("body", item.Body).
		Set("date", item.Date.Time).
		Set("category", item.Category).
		Where(sq.Eq{"news_item_id": item.ItemID})))
}

func (r newsRepository) Delete(ctx context.Context, itemID int) error {
	return database.DBErr(r.db.ExecDeleteBuilder(ctx, r.db.
		Builder().
		Delete("news_item").
		Where(sq.Eq{"news_item_id": itemID})))
}
