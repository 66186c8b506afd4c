package database

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/questboard/server/internal/models"
)

func intptr(n int) *int { return &n }

func TestSubscribeIdempotent(t *testing.T) {
	d := setupTestDB(t)
	dm := createTestUser(t, d, "dm")
	alice := createTestUser(t, d, "alice")
	game := createTestGame(t, d, &models.Game{Name: "Open Table", DMID: dm.ID, IsAlwaysAvailable: true})

	first, err := d.Subscribe(game.ID, alice.ID)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	second, err := d.Subscribe(game.ID, alice.ID)
	if err != nil {
		t.Fatalf("Subscribe(again) error = %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("repeat join returned a different subscription: %s vs %s", first.ID, second.ID)
	}

	count, err := d.CountSubscriptions(game.ID)
	if err != nil {
		t.Fatalf("CountSubscriptions() error = %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

// TestSubscribeCapacity exercises the worked example: with maxPlayers=1
// the first distinct subscriber fits, the second is rejected, and the
// first joining again still succeeds.
func TestSubscribeCapacity(t *testing.T) {
	d := setupTestDB(t)
	dm := createTestUser(t, d, "dm")
	x := createTestUser(t, d, "x")
	y := createTestUser(t, d, "y")
	game := createTestGame(t, d, &models.Game{
		Name:              "Tiny Table",
		DMID:              dm.ID,
		IsAlwaysAvailable: true,
		MaxPlayers:        intptr(1),
	})

	first, err := d.Subscribe(game.ID, x.ID)
	if err != nil {
		t.Fatalf("Subscribe(x) error = %v", err)
	}

	if _, err := d.Subscribe(game.ID, y.ID); !errors.Is(err, ErrGameFull) {
		t.Fatalf("Subscribe(y) error = %v, want ErrGameFull", err)
	}

	again, err := d.Subscribe(game.ID, x.ID)
	if err != nil {
		t.Fatalf("Subscribe(x again) error = %v", err)
	}
	if again.ID != first.ID {
		t.Errorf("existing subscriber should get the same subscription back")
	}
}

// TestSubscribeConcurrentJoins hammers a one-seat game from several
// goroutines at once. However the joins interleave, at most one
// subscription may end up committed: the capacity check locks the game
// row, so racing joins serialize instead of both counting zero players.
// An in-memory sqlite database is per-connection, so this test uses a
// file-backed one that all pooled connections share.
func TestSubscribeConcurrentJoins(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "capacity.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	d := NewDatabase(db)

	dm := createTestUser(t, d, "dm")
	game := createTestGame(t, d, &models.Game{
		Name:              "One Seat",
		DMID:              dm.ID,
		IsAlwaysAvailable: true,
		MaxPlayers:        intptr(1),
	})

	players := []*models.User{
		createTestUser(t, d, "p1"),
		createTestUser(t, d, "p2"),
		createTestUser(t, d, "p3"),
		createTestUser(t, d, "p4"),
	}

	errs := make([]error, len(players))
	var wg sync.WaitGroup
	for i, p := range players {
		wg.Add(1)
		go func(i int, userID uuid.UUID) {
			defer wg.Done()
			_, errs[i] = d.Subscribe(game.ID, userID)
		}(i, p.ID)
	}
	wg.Wait()

	count, err := d.CountSubscriptions(game.ID)
	if err != nil {
		t.Fatalf("CountSubscriptions() error = %v", err)
	}
	if count > 1 {
		t.Errorf("committed subscriptions = %d, want at most 1", count)
	}

	joined := 0
	for _, err := range errs {
		if err == nil {
			joined++
		}
	}
	if int64(joined) != count {
		t.Errorf("successful joins = %d, committed rows = %d", joined, count)
	}
}

func TestSubscribeUnknownGame(t *testing.T) {
	d := setupTestDB(t)
	alice := createTestUser(t, d, "alice")

	if _, err := d.Subscribe(uuid.New(), alice.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("Subscribe(unknown) error = %v, want ErrRecordNotFound", err)
	}
}

func TestUnsubscribeIdempotent(t *testing.T) {
	d := setupTestDB(t)
	dm := createTestUser(t, d, "dm")
	alice := createTestUser(t, d, "alice")
	game := createTestGame(t, d, &models.Game{Name: "Open Table", DMID: dm.ID, IsAlwaysAvailable: true})

	// Leaving before ever joining still succeeds.
	if err := d.Unsubscribe(game.ID, alice.ID); err != nil {
		t.Fatalf("Unsubscribe(no sub) error = %v", err)
	}

	if _, err := d.Subscribe(game.ID, alice.ID); err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	if err := d.Unsubscribe(game.ID, alice.ID); err != nil {
		t.Fatalf("Unsubscribe() error = %v", err)
	}

	count, err := d.CountSubscriptions(game.ID)
	if err != nil {
		t.Fatalf("CountSubscriptions() error = %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}

	// Capacity freed: someone else can join now.
	bob := createTestUser(t, d, "bob")
	if _, err := d.Subscribe(game.ID, bob.ID); err != nil {
		t.Fatalf("Subscribe(bob) error = %v", err)
	}
}
