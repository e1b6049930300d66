package tests

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newsdhq/newsd/internal/auth"
	"github.com/newsdhq/newsd/internal/database"
	"github.com/newsdhq/newsd/internal/httphelper"
	"github.com/newsdhq/newsd/internal/log"
	"github.com/newsdhq/newsd/internal/metrics"
	"github.com/newsdhq/newsd/internal/news"
	"github.com/newsdhq/newsd/pkg/stringutil"
)

// APIKey is the shared secret used by the fixture router.
var APIKey = stringutil.SecureRandomString(24) //nolint:gochecknoglobals

type Fixture struct {
	container *postgresContainer
	Database  database.Database
	News      news.News
	Auth      *auth.Authentication
	DSN       string
	Close     func()
}

func NewFixture() *Fixture {
	testCtx, cancel := context.WithTimeout(context.Background(), time.Minute*2)
	defer cancel()

	testDB, errStore := newDB(testCtx)
	if errStore != nil {
		panic(errStore)
	}

	databaseConn := database.New(testDB.dsn, true, false)
	if err := databaseConn.Connect(testCtx); err != nil {
		panic(err)
	}

	return &Fixture{
		container: testDB,
		Database:  databaseConn,
		News:      news.NewNews(news.NewRepository(databaseConn), metrics.New()),
		Auth:      auth.NewAuthentication(APIKey),
		DSN:       testDB.dsn,
		Close: func() {
			termCtx, termCancel := context.WithTimeout(context.Background(), time.Second*30)
			defer termCancel()

			if errTerm := testDB.Terminate(termCtx); errTerm != nil {
				panic(fmt.Sprintf("Failed to terminate test container: %v", errTerm))
			}
		},
	}
}

// CreateRouter builds a router with the item routes mounted, matching the
// middleware stack used by the serve command minus the optional extras.
func (f *Fixture) CreateRouter() *gin.Engine {
	router := httphelper.CreateRouter(httphelper.RouterOpts{LogLevel: log.Error, Mode: gin.TestMode})

	news.NewNewsHandler(router, f.News, f.Auth)

	return router
}

// Reset empties the news table between tests.
func (f *Fixture) Reset(ctx context.Context) {
	if err := f.Database.TruncateTable(ctx, "news_item"); err != nil {
		panic(err)
	}
}
