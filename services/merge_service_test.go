package services

import (
	"sort"
	"testing"

	"github.com/UmaKase/umakase-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeTempUser(t *testing.T) {
	db := newTestDB(t)
	foodIDs := seedFoods(t, db, "natto", "tofu", "miso", "rice", "soba")
	f := func(i int) string { return foodIDs[i] }

	// guest with foods {0,1}, also member of bob's shared room
	tmpID, tmpPass, err := CreateTempUser([]string{f(0), f(1)})
	require.NoError(t, err)

	bob := registerProfile(t, "bobby-kun", []string{f(1), f(4)})
	shared, err := CreateRoom(bob.ID, "share-house", []string{tmpID}, nil, false)
	require.NoError(t, err)
	require.Len(t, shared.Members, 2)

	// the new permanent account the guest is folded into
	alice := registerProfile(t, "alice-chan", []string{f(1), f(2)})

	merged, err := MergeTempUser(alice.ID, tmpID, tmpPass)
	require.NoError(t, err)

	// guest foods landed in alice's default room, duplicates skipped
	aliceRoom := defaultRoomOf(t, db, alice.ID)
	want := []string{f(0), f(1), f(2)}
	sort.Strings(want)
	assert.Equal(t, want, roomFoodIDs(t, db, aliceRoom.ID))

	// alice replaced the guest in the shared room
	var members []models.RoomMember
	require.NoError(t, db.Where("room_id = ?", shared.ID).Find(&members).Error)
	memberIDs := make([]string, 0, len(members))
	for _, m := range members {
		memberIDs = append(memberIDs, m.ProfileID)
	}
	assert.Len(t, memberIDs, 2)
	assert.Contains(t, memberIDs, alice.ID)
	assert.Contains(t, memberIDs, bob.ID)

	// shared room re-reconciled over alice+bob: intersection is f1
	assert.Equal(t, []string{f(1)}, roomFoodIDs(t, db, shared.ID))

	// merged profile comes back with its room list
	assert.Equal(t, alice.ID, merged.ID)
	assert.NotEmpty(t, merged.Rooms)
	assert.Equal(t, aliceRoom.ID, merged.Rooms[0].RoomID)
}

func TestMergeTempUserWrongPassword(t *testing.T) {
	db := newTestDB(t)
	foodIDs := seedFoods(t, db, "natto", "tofu")

	tmpID, _, err := CreateTempUser(foodIDs)
	require.NoError(t, err)

	alice := registerProfile(t, "alice-chan", nil)

	_, err = MergeTempUser(alice.ID, tmpID, "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// nothing was copied
	aliceRoom := defaultRoomOf(t, db, alice.ID)
	assert.Empty(t, roomFoodIDs(t, db, aliceRoom.ID))
}

func TestMergeTempUserMissingDefaultRoom(t *testing.T) {
	db := newTestDB(t)

	tmpID, tmpPass, err := CreateTempUser(nil)
	require.NoError(t, err)

	// simulate a guest whose default room was never created
	var tmpUser models.User
	require.NoError(t, db.Where("tmp_id = ?", tmpID).First(&tmpUser).Error)
	var tmpProfile models.Profile
	require.NoError(t, db.Where("user_id = ?", tmpUser.ID).First(&tmpProfile).Error)
	require.NoError(t, db.Where("creator_id = ?", tmpProfile.ID).Delete(&models.Room{}).Error)

	alice := registerProfile(t, "alice-chan", nil)

	_, err = MergeTempUser(alice.ID, tmpID, tmpPass)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}
