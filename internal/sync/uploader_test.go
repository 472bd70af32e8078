// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Christoph Rohrer

package sync

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/crohrer/booksync/internal/logger"
	"github.com/crohrer/booksync/internal/mock"
	"github.com/crohrer/booksync/internal/remote"
	"github.com/crohrer/booksync/models"
)

func newUploaderMocks(t *testing.T) (*Uploader, *mock.MockLocalStore, *mock.MockRemoteStore, *Coordinator) {
	t.Helper()

	ctrl := gomock.NewController(t)
	local := mock.NewMockLocalStore(ctrl)
	rs := mock.NewMockRemoteStore(ctrl)
	coord := &Coordinator{}

	return NewUploader(local, rs, coord, logger.Nop()), local, rs, coord
}

func TestUploadPendingSkipsWhenGuardHeld(t *testing.T) {
	u, _, _, coord := newUploaderMocks(t)

	release, ok := coord.BeginUpload()
	require.True(t, ok)
	defer release()

	// no expectations set: any store access would fail the test
	assert.NoError(t, u.UploadPending(context.Background()))
}

func TestUploadPendingCleanStoreMakesNoRemoteCalls(t *testing.T) {
	u, local, _, _ := newUploaderMocks(t)
	ctx := context.Background()

	local.EXPECT().DirtyAuthors(gomock.Any()).Return(nil, nil)
	local.EXPECT().DirtyBooks(gomock.Any()).Return(nil, nil)

	assert.NoError(t, u.UploadPending(ctx))
}

func TestUploadPendingPushesNewRecord(t *testing.T) {
	u, local, rs, _ := newUploaderMocks(t)
	ctx := context.Background()

	at := time.Date(2026, time.April, 2, 9, 0, 0, 0, time.UTC)
	author := models.Author{ID: "a-1", UpdatedAt: at, Name: "Rilke"}

	local.EXPECT().DirtyAuthors(gomock.Any()).Return([]models.Author{author}, nil)
	local.EXPECT().DirtyBooks(gomock.Any()).Return(nil, nil)

	rs.EXPECT().ProbeUpdatedAt(gomock.Any(), models.TableAutor, "a-1").
		Return(time.Time{}, remote.ErrNotFound)
	rs.EXPECT().UpsertAuthors(gomock.Any(), []models.AuthorRemote{models.NewAuthorRemote(author)}).
		Return(nil)
	local.EXPECT().MarkSynced(gomock.Any(), models.RecordRef{Table: models.TableAutor, ID: "a-1"}, at).
		Return(nil)

	assert.NoError(t, u.UploadPending(ctx))
}

func TestUploadPendingSkipsWhenRemoteIsNewer(t *testing.T) {
	u, local, rs, _ := newUploaderMocks(t)
	ctx := context.Background()

	at := time.Date(2026, time.April, 2, 9, 0, 0, 0, time.UTC)
	book := models.Book{ID: "b-1", UpdatedAt: at, Title: "Malte"}

	local.EXPECT().DirtyAuthors(gomock.Any()).Return(nil, nil)
	local.EXPECT().DirtyBooks(gomock.Any()).Return([]models.Book{book}, nil)

	rs.EXPECT().ProbeUpdatedAt(gomock.Any(), models.TableBuch, "b-1").
		Return(at.Add(time.Minute), nil)

	// no upsert, no acknowledgment: the record stays dirty
	assert.NoError(t, u.UploadPending(ctx))
}

func TestUploadPendingPushesOnEqualTimestamps(t *testing.T) {
	u, local, rs, _ := newUploaderMocks(t)
	ctx := context.Background()

	at := time.Date(2026, time.April, 2, 9, 0, 0, 0, time.UTC)
	book := models.Book{ID: "b-2", UpdatedAt: at, Title: "Duineser Elegien"}

	local.EXPECT().DirtyAuthors(gomock.Any()).Return(nil, nil)
	local.EXPECT().DirtyBooks(gomock.Any()).Return([]models.Book{book}, nil)

	rs.EXPECT().ProbeUpdatedAt(gomock.Any(), models.TableBuch, "b-2").Return(at, nil)
	rs.EXPECT().UpsertBooks(gomock.Any(), []models.BookRemote{models.NewBookRemote(book)}).Return(nil)
	local.EXPECT().MarkSynced(gomock.Any(), models.RecordRef{Table: models.TableBuch, ID: "b-2"}, at).Return(nil)

	assert.NoError(t, u.UploadPending(ctx))
}

func TestUploadPendingContinuesAfterRecordFailure(t *testing.T) {
	u, local, rs, _ := newUploaderMocks(t)
	ctx := context.Background()

	at := time.Date(2026, time.April, 2, 9, 0, 0, 0, time.UTC)
	first := models.Author{ID: "a-1", UpdatedAt: at, Name: "Trakl"}
	second := models.Author{ID: "a-2", UpdatedAt: at, Name: "Benn"}

	local.EXPECT().DirtyAuthors(gomock.Any()).Return([]models.Author{first, second}, nil)
	local.EXPECT().DirtyBooks(gomock.Any()).Return(nil, nil)

	rs.EXPECT().ProbeUpdatedAt(gomock.Any(), models.TableAutor, "a-1").
		Return(time.Time{}, remote.ErrNotFound)
	rs.EXPECT().UpsertAuthors(gomock.Any(), gomock.Any()).Return(assert.AnError)

	rs.EXPECT().ProbeUpdatedAt(gomock.Any(), models.TableAutor, "a-2").
		Return(time.Time{}, remote.ErrNotFound)
	rs.EXPECT().UpsertAuthors(gomock.Any(), []models.AuthorRemote{models.NewAuthorRemote(second)}).
		Return(nil)
	local.EXPECT().MarkSynced(gomock.Any(), models.RecordRef{Table: models.TableAutor, ID: "a-2"}, at).
		Return(nil)

	err := u.UploadPending(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2")
}

func TestUploadPendingAuthorsBeforeBooks(t *testing.T) {
	u, local, rs, _ := newUploaderMocks(t)
	ctx := context.Background()

	at := time.Date(2026, time.April, 2, 9, 0, 0, 0, time.UTC)
	author := models.Author{ID: "a-1", UpdatedAt: at, Name: "Musil"}
	book := models.Book{ID: "b-1", UpdatedAt: at, Title: "Törleß", AuthorID: &author.ID}

	local.EXPECT().DirtyAuthors(gomock.Any()).Return([]models.Author{author}, nil)
	local.EXPECT().DirtyBooks(gomock.Any()).Return([]models.Book{book}, nil)

	pushAuthor := rs.EXPECT().ProbeUpdatedAt(gomock.Any(), models.TableAutor, "a-1").
		Return(time.Time{}, remote.ErrNotFound)
	upsertAuthor := rs.EXPECT().UpsertAuthors(gomock.Any(), gomock.Any()).Return(nil).After(pushAuthor)
	ackAuthor := local.EXPECT().MarkSynced(gomock.Any(), models.RecordRef{Table: models.TableAutor, ID: "a-1"}, at).
		Return(nil).After(upsertAuthor)

	probeBook := rs.EXPECT().ProbeUpdatedAt(gomock.Any(), models.TableBuch, "b-1").
		Return(time.Time{}, remote.ErrNotFound).After(ackAuthor)
	upsertBook := rs.EXPECT().UpsertBooks(gomock.Any(), gomock.Any()).Return(nil).After(probeBook)
	local.EXPECT().MarkSynced(gomock.Any(), models.RecordRef{Table: models.TableBuch, ID: "b-1"}, at).
		Return(nil).After(upsertBook)

	assert.NoError(t, u.UploadPending(ctx))
}
