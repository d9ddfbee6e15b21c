package services

import (
	"sort"
	"testing"

	"github.com/UmaKase/umakase-backend/config"
	"github.com/UmaKase/umakase-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func member(id string, foodIDs ...string) memberFoods {
	return memberFoods{Profile: models.Profile{ID: id}, FoodIDs: foodIDs}
}

func TestSharedFoodIDs(t *testing.T) {
	t.Run("no members", func(t *testing.T) {
		assert.Empty(t, SharedFoodIDs(nil))
	})

	t.Run("single member keeps full set", func(t *testing.T) {
		got := SharedFoodIDs([]memberFoods{member("a", "f1", "f2", "f3")})
		assert.Equal(t, []string{"f1", "f2", "f3"}, got)
	})

	t.Run("two members intersect", func(t *testing.T) {
		got := SharedFoodIDs([]memberFoods{
			member("alice", "f1", "f2", "f3"),
			member("bob", "f2", "f3", "f4"),
		})
		assert.Equal(t, []string{"f2", "f3"}, got)
	})

	t.Run("member with no foods empties the result", func(t *testing.T) {
		got := SharedFoodIDs([]memberFoods{
			member("alice", "f1", "f2", "f3"),
			member("bob", "f2", "f3", "f4"),
			member("carol"),
		})
		assert.Empty(t, got)
	})

	t.Run("output order is first-seen", func(t *testing.T) {
		got := SharedFoodIDs([]memberFoods{
			member("alice", "f3", "f1", "f2"),
			member("bob", "f2", "f3"),
		})
		assert.Equal(t, []string{"f3", "f2"}, got)
	})
}

func TestApplySharedFoodsIdempotent(t *testing.T) {
	db := newTestDB(t)
	foodIDs := seedFoods(t, db, "natto", "tofu")

	room := models.Room{Name: "kitchen"}
	require.NoError(t, db.Create(&room).Error)

	require.NoError(t, ApplySharedFoods(db, room.ID, foodIDs))
	require.NoError(t, ApplySharedFoods(db, room.ID, foodIDs))

	want := append([]string(nil), foodIDs...)
	sort.Strings(want)
	assert.Equal(t, want, roomFoodIDs(t, db, room.ID))
}

func TestCreateRoomDefaultSeedsExactFoods(t *testing.T) {
	db := newTestDB(t)
	foodIDs := seedFoods(t, db, "natto", "tofu", "miso")
	alice := registerProfile(t, "alice-chan", nil)

	room, err := CreateRoom(alice.ID, "pantry", nil, foodIDs[:2], true)
	require.NoError(t, err)

	want := append([]string(nil), foodIDs[:2]...)
	sort.Strings(want)
	assert.Equal(t, want, roomFoodIDs(t, db, room.ID))
	assert.Len(t, room.Members, 1)
}

func TestCreateRoomSharedUsesIntersection(t *testing.T) {
	db := newTestDB(t)
	foodIDs := seedFoods(t, db, "natto", "tofu", "miso", "rice")
	alice := registerProfile(t, "alice-chan", foodIDs[:3])             // f0 f1 f2
	registerProfile(t, "bobby-kun", []string{foodIDs[1], foodIDs[2], foodIDs[3]}) // f1 f2 f3

	// caller-supplied foods must be ignored for shared rooms
	room, err := CreateRoom(alice.ID, "share-house", []string{"bobby-kun"}, []string{foodIDs[0]}, false)
	require.NoError(t, err)

	want := []string{foodIDs[1], foodIDs[2]}
	sort.Strings(want)
	assert.Equal(t, want, roomFoodIDs(t, db, room.ID))
	assert.Len(t, room.Members, 2)
}

func TestCreateRoomSkipsUnknownUsernames(t *testing.T) {
	newTestDB(t)
	alice := registerProfile(t, "alice-chan", nil)
	registerProfile(t, "bobby-kun", nil)

	room, err := CreateRoom(alice.ID, "share-house", []string{"bobby-kun", "nobody-here"}, nil, false)
	require.NoError(t, err)
	assert.Len(t, room.Members, 2)
}

func TestCreateRoomQuota(t *testing.T) {
	db := newTestDB(t)
	alice := registerProfile(t, "alice-chan", nil) // default room is the first

	_, err := CreateRoom(alice.ID, "second", nil, nil, false)
	require.NoError(t, err)
	_, err = CreateRoom(alice.ID, "third", nil, nil, false)
	require.NoError(t, err)

	_, err = CreateRoom(alice.ID, "fourth", nil, nil, false)
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	var count int64
	require.NoError(t, db.Model(&models.Room{}).Where("creator_id = ?", alice.ID).Count(&count).Error)
	assert.EqualValues(t, config.RoomCreateLimit, count)
}

func TestHandleRoomEventAddMember(t *testing.T) {
	db := newTestDB(t)
	foodIDs := seedFoods(t, db, "natto", "tofu", "miso", "rice")
	alice := registerProfile(t, "alice-chan", foodIDs[:3])
	registerProfile(t, "bobby-kun", []string{foodIDs[1], foodIDs[2], foodIDs[3]})
	registerProfile(t, "carol-san", []string{foodIDs[2]})

	room, err := CreateRoom(alice.ID, "share-house", []string{"bobby-kun"}, nil, false)
	require.NoError(t, err)

	updated, err := HandleRoomEvent(RoomEventAddMember, room.ID, []string{"carol-san"}, nil)
	require.NoError(t, err)

	assert.Len(t, updated.Members, 3)
	assert.Equal(t, []string{foodIDs[2]}, roomFoodIDs(t, db, room.ID))
}

func TestHandleRoomEventRemoveMember(t *testing.T) {
	db := newTestDB(t)
	foodIDs := seedFoods(t, db, "natto", "tofu", "miso", "rice")
	alice := registerProfile(t, "alice-chan", foodIDs[:3])
	registerProfile(t, "bobby-kun", []string{foodIDs[1], foodIDs[2], foodIDs[3]})

	room, err := CreateRoom(alice.ID, "share-house", []string{"bobby-kun"}, nil, false)
	require.NoError(t, err)

	updated, err := HandleRoomEvent(RoomEventRemoveMember, room.ID, nil, []string{"bobby-kun"})
	require.NoError(t, err)

	assert.Len(t, updated.Members, 1)
	want := append([]string(nil), foodIDs[:3]...)
	sort.Strings(want)
	assert.Equal(t, want, roomFoodIDs(t, db, room.ID))
}

func TestHandleRoomEventRemoveLastMember(t *testing.T) {
	db := newTestDB(t)
	foodIDs := seedFoods(t, db, "natto", "tofu")
	alice := registerProfile(t, "alice-chan", foodIDs)
	registerProfile(t, "bobby-kun", foodIDs)

	room, err := CreateRoom(alice.ID, "share-house", []string{"bobby-kun"}, nil, false)
	require.NoError(t, err)

	updated, err := HandleRoomEvent(RoomEventRemoveMember, room.ID, nil, []string{"alice-chan", "bobby-kun"})
	require.NoError(t, err)

	assert.Empty(t, updated.Members)
	assert.Empty(t, roomFoodIDs(t, db, room.ID))
}

func TestHandleRoomEventErrors(t *testing.T) {
	newTestDB(t)
	alice := registerProfile(t, "alice-chan", nil)
	room, err := CreateRoom(alice.ID, "share-house", nil, nil, false)
	require.NoError(t, err)

	_, err = HandleRoomEvent("rename-room", room.ID, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidEvent)

	_, err = HandleRoomEvent(RoomEventAddMember, room.ID, nil, nil)
	assert.ErrorIs(t, err, ErrMissingEventField)

	_, err = HandleRoomEvent(RoomEventRemoveMember, room.ID, nil, nil)
	assert.ErrorIs(t, err, ErrMissingEventField)

	_, err = HandleRoomEvent(RoomEventAddMember, "no-such-room", []string{"alice-chan"}, nil)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestHandleRoomEventUpdateFoodIsNoOp(t *testing.T) {
	newTestDB(t)

	room, err := HandleRoomEvent(RoomEventUpdateFood, "whatever", nil, nil)
	assert.NoError(t, err)
	assert.Nil(t, room)
}

func TestAddFoodsToRoomSkipsDuplicates(t *testing.T) {
	db := newTestDB(t)
	foodIDs := seedFoods(t, db, "natto", "tofu")
	alice := registerProfile(t, "alice-chan", foodIDs[:1])
	room := defaultRoomOf(t, db, alice.ID)

	updated, err := AddFoodsToRoom(room.ID, []string{foodIDs[0], foodIDs[1], foodIDs[1]})
	require.NoError(t, err)

	assert.Len(t, updated.Foods, 2)

	_, err = AddFoodsToRoom("no-such-room", foodIDs)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestAddFoodsToRoomRejectsUnknownFood(t *testing.T) {
	db := newTestDB(t)
	foodIDs := seedFoods(t, db, "natto")
	alice := registerProfile(t, "alice-chan", foodIDs)
	room := defaultRoomOf(t, db, alice.ID)

	_, err := AddFoodsToRoom(room.ID, []string{foodIDs[0], "no-such-food"})
	assert.ErrorIs(t, err, ErrFoodNotFound)

	// the whole call fails, so no orphan rows are left behind
	assert.Equal(t, foodIDs, roomFoodIDs(t, db, room.ID))
}

func TestBumpRoomVersionConflict(t *testing.T) {
	db := newTestDB(t)
	foodIDs := seedFoods(t, db, "natto")
	alice := registerProfile(t, "alice-chan", foodIDs)
	room := defaultRoomOf(t, db, alice.ID)

	// another writer advances the room before our swap lands
	stale := room
	require.NoError(t, db.Model(&models.Room{}).Where("id = ?", room.ID).
		Update("version", room.Version+1).Error)

	err := bumpRoomVersion(db, &stale)
	assert.ErrorIs(t, err, ErrRoomConflict)

	// re-reading picks up the new version and the swap goes through
	var fresh models.Room
	require.NoError(t, db.Where("id = ?", room.ID).First(&fresh).Error)
	require.NoError(t, bumpRoomVersion(db, &fresh))
	assert.Equal(t, room.Version+2, fresh.Version)
}
