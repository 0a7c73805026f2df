package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/campus-link/api-go/apperrors"
	"github.com/campus-link/api-go/models"
	"github.com/campus-link/api-go/testutil"
)

type fakePublisher struct {
	err       error
	published []*models.Notificacion
}

func (p *fakePublisher) Publish(n *models.Notificacion) error {
	p.published = append(p.published, n)
	return p.err
}

func TestNotificationService_StoreAndRead(t *testing.T) {
	db := testutil.NewDB(t)
	clock := testutil.NewClock()
	pub := &fakePublisher{}
	svc := NewNotificationService(db, pub, nil, clock.Now)
	ctx := context.Background()

	svc.Notify(ctx, "U1", models.NotifOfertaAyuda, "F1", "first")
	clock.Advance(time.Second)
	svc.Notify(ctx, "U1", models.NotifFavorFinalizado, "F1", "second")
	svc.Notify(ctx, "U2", models.NotifOfertaAyuda, "F2", "other user")
	svc.Notify(ctx, "", models.NotifOfertaAyuda, "F2", "nobody")

	require.Len(t, pub.published, 3)
	assert.Equal(t, "U1", pub.published[0].UsuarioID)

	list, err := svc.ListForUser(ctx, "U1", false)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Mensaje)

	count, err := svc.UnreadCount(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, svc.MarkRead(ctx, "U1", list[0].ID))
	err = svc.MarkRead(ctx, "U2", list[1].ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotificationNotFound), "cannot read someone else's notification")

	unread, err := svc.ListForUser(ctx, "U1", true)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, "first", unread[0].Mensaje)

	n, err := svc.MarkAllRead(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	count, err = svc.UnreadCount(ctx, "U1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNotificationService_PublishFailureIsLogged(t *testing.T) {
	db := testutil.NewDB(t)
	core, logs := observer.New(zap.WarnLevel)
	svc := NewNotificationService(db, &fakePublisher{err: errors.New("nats down")}, zap.New(core), nil)

	svc.Notify(context.Background(), "U1", models.NotifOfertaAyuda, "F1", "hello")

	count, err := svc.UnreadCount(context.Background(), "U1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "stored even though publishing failed")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "notification not published", logs.All()[0].Message)
}

func TestNotificationService_StoreFailureDoesNotFailTransition(t *testing.T) {
	db := testutil.NewDB(t)
	clock := testutil.NewClock()
	core, logs := observer.New(zap.WarnLevel)
	testutil.CreateUser(t, db, "U1", "300")
	testutil.CreateUser(t, db, "U2", "301")

	notifications := NewNotificationService(db, nil, zap.New(core), clock.Now)
	favors := NewFavorService(db, notifications, nil, clock.Now)
	ctx := context.Background()

	f, err := favors.Create(ctx, "U1", newFavorInput())
	require.NoError(t, err)
	require.NoError(t, db.Migrator().DropTable(&models.Notificacion{}))

	got, err := favors.OfferHelp(ctx, f.ID, "U2")
	require.NoError(t, err)
	assert.Len(t, got.Ayudantes, 1)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "notification not stored", logs.All()[0].Message)
}
