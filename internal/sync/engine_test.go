package sync

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/crohrer/booksync/internal/config"
	"github.com/crohrer/booksync/internal/logger"
	"github.com/crohrer/booksync/internal/mock"
	"github.com/crohrer/booksync/internal/remote"
	"github.com/crohrer/booksync/internal/store"
	"github.com/crohrer/booksync/migrations"
	"github.com/crohrer/booksync/models"
)

func newEngine(t *testing.T) (*Engine, *store.Store, *mock.MockRemoteStore) {
	t.Helper()

	conn, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, migrations.Migrate(conn))

	local := store.NewStore(store.NewDB(conn, logger.Nop()), logger.Nop())

	ctrl := gomock.NewController(t)
	rs := mock.NewMockRemoteStore(ctrl)

	cfg := config.Sync{Interval: time.Hour, FullRefreshAfter: 30 * 24 * time.Hour}
	return New(local, rs, cfg, logger.Nop()), local, rs
}

func TestEngineOpsBeforeStart(t *testing.T) {
	e, _, _ := newEngine(t)

	ctx := context.Background()
	assert.ErrorIs(t, e.SyncNow(ctx), ErrNoStore)
	assert.ErrorIs(t, e.CatchUp(ctx), ErrNoStore)
	assert.ErrorIs(t, e.FullRefresh(ctx), ErrNoStore)
}

func TestEngineStartStop(t *testing.T) {
	e, _, rs := newEngine(t)

	events := make(chan models.ChangeEvent)
	rs.EXPECT().Subscribe(gomock.Any()).Return((<-chan models.ChangeEvent)(events), nil).AnyTimes()
	rs.EXPECT().Unsubscribe().Return(nil)

	ctx := context.Background()
	e.Start(ctx)
	e.Start(ctx) // idempotent

	e.Stop()
	e.Stop() // idempotent
}

// Stop must leave the backend usable: a sign-out followed by a sign-in
// restarts the engine on the same remote handle, so Stop may drop the
// subscription but never Close the backend.
func TestEngineRestartKeepsBackendOpen(t *testing.T) {
	e, _, rs := newEngine(t)

	events := make(chan models.ChangeEvent)
	rs.EXPECT().Subscribe(gomock.Any()).Return((<-chan models.ChangeEvent)(events), nil).AnyTimes()
	rs.EXPECT().Unsubscribe().Return(nil).Times(2)

	ctx := context.Background()
	e.Start(ctx)
	e.Stop()
	e.Start(ctx)
	e.Stop()
}

func TestEngineLocalEditTriggersUpload(t *testing.T) {
	e, local, rs := newEngine(t)

	events := make(chan models.ChangeEvent)
	rs.EXPECT().Subscribe(gomock.Any()).Return((<-chan models.ChangeEvent)(events), nil).AnyTimes()
	rs.EXPECT().Unsubscribe().Return(nil)

	uploaded := make(chan struct{}, 1)
	rs.EXPECT().ProbeUpdatedAt(gomock.Any(), models.TableAutor, gomock.Any()).
		Return(time.Time{}, remote.ErrNotFound).MinTimes(1)
	rs.EXPECT().UpsertAuthors(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, []models.AuthorRemote) error {
			select {
			case uploaded <- struct{}{}:
			default:
			}
			return nil
		}).MinTimes(1)

	ctx := context.Background()
	e.Start(ctx)
	defer e.Stop()

	_, err := local.SaveAuthor(ctx, models.Author{Name: "Wedekind"})
	require.NoError(t, err)

	select {
	case <-uploaded:
	case <-time.After(3 * time.Second):
		t.Fatal("local edit did not trigger an upload pass")
	}
}
