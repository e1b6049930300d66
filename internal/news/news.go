// Package news manages the news item resource. The store is the single owner of
// the authoritative record set, values passed through here are transient copies
// scoped to one request.
package news

import (
	"context"
	"errors"
	"log/slog"
	"unicode/utf8"

	"github.com/newsdhq/newsd/internal/metrics"
)

const (
	maxTitleLen    = 255
	maxCategoryLen = 100
)

var (
	ErrTitleLength    = errors.New("title must be between 1 and 255 characters")
	ErrBodyEmpty      = errors.New("body must not be empty")
	ErrDateMissing    = errors.New("date must be set")
	ErrCategoryLength = errors.New("category must be between 1 and 100 characters")
)

// Item is a single news item. ItemID is assigned by the store on creation and
// immutable afterwards, the remaining fields are always present and non-empty.
type Item struct {
	ItemID   int    `json:"id"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	Date     Date   `json:"date"`
	Category string `json:"category"`
}

// Validate enforces the field constraints shared by create and replace. Items
// failing validation never reach the repository.
func (item Item) Validate() error {
	if n := utf8.RuneCountInString(item.Title); n < 1 || n > maxTitleLen {
		return ErrTitleLength
	}

	if item.Body == "" {
		return ErrBodyEmpty
	}

	if item.Date.IsZero() {
		return ErrDateMissing
	}

	if n := utf8.RuneCountInString(item.Category); n < 1 || n > maxCategoryLen {
		return ErrCategoryLength
	}

	return nil
}

// IsValidationErr reports whether err is one of the item field constraint errors.
func IsValidationErr(err error) bool {
	return errors.Is(err, ErrTitleLength) ||
		errors.Is(err, ErrBodyEmpty) ||
		errors.Is(err, ErrDateMissing) ||
		errors.Is(err, ErrCategoryLength)
}

type Repository interface {
	List(ctx context.Context) ([]Item, error)
	GetByID(ctx context.Context, itemID int, item *Item) error
	Insert(ctx context.Context, item *Item) error
	Replace(ctx context.Context, item Item) error
	Delete(ctx context.Context, itemID int) error
}

type News struct {
	repository Repository
	metrics    metrics.Metrics
}

func NewNews(repository Repository, collector metrics.Metrics) News {
	return News{repository: repository, metrics: collector}
}

// List returns every stored item ordered by ascending id.
func (u News) List(ctx context.Context) ([]Item, error) {
	return u.repository.List(ctx)
}

func (u News) GetByID(ctx context.Context, itemID int, item *Item) error {
	return u.repository.GetByID(ctx, itemID, item)
}

// Create validates and inserts the item, the store assigns ItemID.
func (u News) Create(ctx context.Context, item *Item) error {
	if errValidate := item.Validate(); errValidate != nil {
		return errValidate
	}

	if errInsert := u.repository.Insert(ctx, item); errInsert != nil {
		return errInsert
	}

	u.metrics.ItemCreated.Inc()

	return nil
}

// Replace atomically overwrites all non-id fields of an existing item.
func (u News) Replace(ctx context.Context, item Item) error {
	if errValidate := item.Validate(); errValidate != nil {
		return errValidate
	}

	if errReplace := u.repository.Replace(ctx, item); errReplace != nil {
		return errReplace
	}

	u.metrics.ItemReplaced.Inc()

	return nil
}

func (u News) Delete(ctx context.Context, itemID int) error {
	if errDelete := u.repository.Delete(ctx, itemID); errDelete != nil {
		return errDelete
	}

	u.metrics.ItemDeleted.Inc()

	slog.Info("Deleted news item", slog.Int("news_item_id", itemID))

	return nil
}
