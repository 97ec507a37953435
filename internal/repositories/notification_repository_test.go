package repositories_test

import (
	"testing"
	"time"

	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationRepository_ScopedToOwner(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewNotificationRepository()

	alice := testutil.CreateUser(t, db, "alice@test.com", models.UserRoleJobseeker)
	bob := testutil.CreateUser(t, db, "bob@test.com", models.UserRoleJobseeker)

	n := &models.Notification{UserID: alice.ID, Type: models.NotificationTypeApplicationStatus, Title: "t"}
	require.NoError(t, repo.Create(db, n))

	// чужое уведомление не трогается
	affected, err := repo.MarkAsRead(db, n.ID, bob.ID)
	require.NoError(t, err)
	assert.Zero(t, affected)

	deleted, err := repo.Delete(db, n.ID, bob.ID)
	require.NoError(t, err)
	assert.Zero(t, deleted)

	unread, err := repo.CountUnread(db, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, unread)

	affected, err = repo.MarkAsRead(db, n.ID, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	unread, err = repo.CountUnread(db, alice.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func TestNotificationRepository_ListNewestFirst(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewNotificationRepository()
	user := testutil.CreateUser(t, db, "alice@test.com", models.UserRoleJobseeker)

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		n := &models.Notification{UserID: user.ID, Type: models.NotificationTypeApplicationStatus, Title: "t", Read: i%2 == 0}
		n.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(db, n))
	}

	list, err := repo.ListByUser(db, user.ID, nil, 3)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.True(t, list[0].CreatedAt.After(list[1].CreatedAt))
	assert.True(t, list[1].CreatedAt.After(list[2].CreatedAt))

	unreadOnly := false
	list, err = repo.ListByUser(db, user.ID, &unreadOnly, 100)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	affected, err := repo.MarkAllAsRead(db, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, affected)
}
