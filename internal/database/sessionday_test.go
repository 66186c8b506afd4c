package database

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/questboard/server/internal/models"
)

func TestSessionDayLifecycle(t *testing.T) {
	d := setupTestDB(t)
	dm := createTestUser(t, d, "dm")
	game := createTestGame(t, d, &models.Game{Name: "Campaign", DMID: dm.ID, IsAlwaysAvailable: true})

	day := &models.GameSessionDay{GameID: game.ID, Date: "2024-03-15"}
	if err := d.CreateSessionDay(day); err != nil {
		t.Fatalf("CreateSessionDay() error = %v", err)
	}
	if day.IsConfirmed {
		t.Error("new session day should start unconfirmed")
	}

	confirmed, err := d.UpdateSessionDay(day.ID, map[string]interface{}{"is_confirmed": true})
	if err != nil {
		t.Fatalf("UpdateSessionDay() error = %v", err)
	}
	if !confirmed.IsConfirmed {
		t.Error("session day should be confirmed after update")
	}

	if err := d.DeleteSessionDay(day.ID); err != nil {
		t.Fatalf("DeleteSessionDay() error = %v", err)
	}

	if _, err := d.GetSessionDayWithGame(day.ID.String()); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("fetch after delete error = %v, want ErrRecordNotFound", err)
	}
}

func TestListSessionDaysOrdered(t *testing.T) {
	d := setupTestDB(t)
	dm := createTestUser(t, d, "dm")
	game := createTestGame(t, d, &models.Game{Name: "Campaign", DMID: dm.ID, IsAlwaysAvailable: true})

	for _, date := range []string{"2024-03-20", "2024-03-05", "2024-03-12"} {
		if err := d.CreateSessionDay(&models.GameSessionDay{GameID: game.ID, Date: date}); err != nil {
			t.Fatalf("CreateSessionDay(%s) error = %v", date, err)
		}
	}

	days, err := d.ListSessionDays(game.ID)
	if err != nil {
		t.Fatalf("ListSessionDays() error = %v", err)
	}
	if len(days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(days))
	}
	want := []string{"2024-03-05", "2024-03-12", "2024-03-20"}
	for i, date := range want {
		if days[i].Date != date {
			t.Errorf("days[%d] = %s, want %s", i, days[i].Date, date)
		}
	}
}

// TestGetSessionDayWithGame verifies the owning game comes along so
// handlers can compare its DM against the acting identity.
func TestGetSessionDayWithGame(t *testing.T) {
	d := setupTestDB(t)
	dm := createTestUser(t, d, "dm")
	game := createTestGame(t, d, &models.Game{Name: "Campaign", DMID: dm.ID, IsAlwaysAvailable: true})

	day := &models.GameSessionDay{GameID: game.ID, Date: "2024-03-15"}
	if err := d.CreateSessionDay(day); err != nil {
		t.Fatalf("CreateSessionDay() error = %v", err)
	}

	loaded, err := d.GetSessionDayWithGame(day.ID.String())
	if err != nil {
		t.Fatalf("GetSessionDayWithGame() error = %v", err)
	}
	if loaded.Game.DMID != dm.ID {
		t.Errorf("loaded game DM = %s, want %s", loaded.Game.DMID, dm.ID)
	}
}
