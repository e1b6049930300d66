package news

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newsdhq/newsd/internal/database"
	"github.com/newsdhq/newsd/internal/httphelper"
)

type newsHandler struct {
	News
}

// NewNewsHandler registers the item routes. The two read routes are public, the
// three mutating routes sit behind the shared-secret middleware so the key is
// checked before any payload binding or store access.
func NewNewsHandler(engine *gin.Engine, news News, auth httphelper.Authenticator) {
	handler := newsHandler{News: news}

	engine.GET("/items", handler.onGetItems())
	engine.GET("/items/:news_item_id", handler.onGetItem())

	authed := engine.Group("/")
	{
		mutate := authed.Use(auth.Middleware())
		mutate.POST("/items", handler.onPostItem())
		mutate.PUT("/items/:news_item_id", handler.onPutItem())
		mutate.DELETE("/items/:news_item_id", handler.onDeleteItem())
	}
}

// EditRequest is the inbound payload for create and replace. The id is never
// accepted from the caller.
type EditRequest struct {
	Title    string `json:"title" binding:"required,min=1,max=255"`
	Body     string `json:"body" binding:"required"`
	Date     string `json:"date" binding:"required,datetime=2006-01-02"`
	Category string `json:"category" binding:"required,min=1,max=100"`
}

func (h newsHandler) onGetItems() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		items, errItems := h.List(ctx)
		if errItems != nil {
			httphelper.SetError(ctx, httphelper.NewAPIError(http.StatusInternalServerError,
				errors.Join(errItems, httphelper.ErrInternal)))

			return
		}

		ctx.JSON(http.StatusOK, items)
	}
}

func (h newsHandler) onGetItem() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		itemID, idFound := httphelper.GetIntParam(ctx, "news_item_id")
		if !idFound {
			return
		}

		var item Item
		if errGet := h.GetByID(ctx, itemID, &item); errGet != nil {
			if errors.Is(errGet, database.ErrNoResult) {
				httphelper.SetError(ctx, httphelper.NewAPIError(http.StatusNotFound, httphelper.ErrNotFound))

				return
			}

			httphelper.SetError(ctx, httphelper.NewAPIError(http.StatusInternalServerError,
				errors.Join(errGet, httphelper.ErrInternal)))

			return
		}

		ctx.JSON(http.StatusOK, item)
	}
}

func (h newsHandler) onPostItem() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		req, bound := httphelper.BindJSON[EditRequest](ctx)
		if !bound {
			return
		}

		date, errDate := ParseDate(req.Date)
		if errDate != nil {
			httphelper.SetError(ctx, httphelper.NewAPIError(http.StatusUnprocessableEntity, errDate))

			return
		}

		item := Item{
			Title:    req.Title,
			Body:     req.Body,
			Date:     date,
			Category: req.Category,
		}

		if errCreate := h.Create(ctx, &item); errCreate != nil {
			h.setSaveError(ctx, errCreate)

			return
		}

		ctx.JSON(http.StatusCreated, item)
	}
}

func (h newsHandler) onPutItem() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		itemID, idFound := httphelper.GetIntParam(ctx, "news_item_id")
		if !idFound {
			return
		}

		req, bound := httphelper.BindJSON[EditRequest](ctx)
		if !bound {
			return
		}

		date, errDate := ParseDate(req.Date)
		if errDate != nil {
			httphelper.SetError(ctx, httphelper.NewAPIError(http.StatusUnprocessableEntity, errDate))

			return
		}

		item := Item{
			ItemID:   itemID,
			Title:    req.Title,
			Body:     req.Body,
			Date:     date,
			Category: req.Category,
		}

		if errReplace := h.Replace(ctx, item); errReplace != nil {
			h.setSaveError(ctx, errReplace)

			return
		}

		ctx.JSON(http.StatusOK, item)
	}
}

func (h newsHandler) onDeleteItem() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		itemID, idFound := httphelper.GetIntParam(ctx, "news_item_id")
		if !idFound {
			return
		}

		if errDelete := h.Delete(ctx, itemID); errDelete != nil {
			if errors.Is(errDelete, database.ErrNoResult) {
				httphelper.SetError(ctx, httphelper.NewAPIError(http.StatusNotFound, httphelper.ErrNotFound))

				return
			}

			httphelper.SetError(ctx, httphelper.NewAPIError(http.StatusInternalServerError,
				errors.Join(errDelete, httphelper.ErrInternal)))

			return
		}

		ctx.Status(http.StatusNoContent)
	}
}

func (h newsHandler) setSaveError(ctx *gin.Context, err error) {
	switch {
	case IsValidationErr(err):
		httphelper.SetError(ctx, httphelper.NewAPIError(http.StatusUnprocessableEntity, err))
	case errors.Is(err, database.ErrNoResult):
		httphelper.SetError(ctx, httphelper.NewAPIError(http.StatusNotFound, httphelper.ErrNotFound))
	default:
		httphelper.SetError(ctx, httphelper.NewAPIError(http.StatusInternalServerError,
			errors.Join(err, httphelper.ErrInternal)))
	}
}
