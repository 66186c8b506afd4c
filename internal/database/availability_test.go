package database

import (
	"testing"
)

func boolptr(b bool) *bool { return &b }

// TestSetAvailabilityTriState walks a single day through the tri-state
// lifecycle: create, update, delete, and delete-again as a no-op.
func TestSetAvailabilityTriState(t *testing.T) {
	d := setupTestDB(t)
	user := createTestUser(t, d, "alice")

	action, err := d.SetAvailability(user.ID, "2024-03-01", boolptr(true))
	if err != nil {
		t.Fatalf("SetAvailability(create) error = %v", err)
	}
	if action != ActionCreated {
		t.Errorf("action = %s, want %s", action, ActionCreated)
	}

	action, err = d.SetAvailability(user.ID, "2024-03-01", boolptr(false))
	if err != nil {
		t.Fatalf("SetAvailability(update) error = %v", err)
	}
	if action != ActionUpdated {
		t.Errorf("action = %s, want %s", action, ActionUpdated)
	}

	action, err = d.SetAvailability(user.ID, "2024-03-01", nil)
	if err != nil {
		t.Fatalf("SetAvailability(delete) error = %v", err)
	}
	if action != ActionDeleted {
		t.Errorf("action = %s, want %s", action, ActionDeleted)
	}

	// Clearing a day that has no record is a no-op, not an error.
	action, err = d.SetAvailability(user.ID, "2024-03-01", nil)
	if err != nil {
		t.Fatalf("SetAvailability(noop) error = %v", err)
	}
	if action != ActionNoop {
		t.Errorf("action = %s, want %s", action, ActionNoop)
	}
}

func TestApplyAvailabilityLedger(t *testing.T) {
	d := setupTestDB(t)
	user := createTestUser(t, d, "alice")

	if _, err := d.SetAvailability(user.ID, "2024-03-02", boolptr(true)); err != nil {
		t.Fatalf("seed error = %v", err)
	}

	dates := []string{"2024-03-01", "2024-03-02", "2024-03-03", "2024-03-04"}
	changes := map[string]*bool{
		"2024-03-01": boolptr(true),
		"2024-03-02": boolptr(false),
		"2024-03-03": nil,
		"2024-03-09": boolptr(true), // outside the range, must be ignored
	}

	results := d.ApplyAvailability(user.ID, dates, changes)

	if len(results) != 3 {
		t.Fatalf("expected 3 ledger entries, got %d", len(results))
	}
	want := map[string]AvailabilityAction{
		"2024-03-01": ActionCreated,
		"2024-03-02": ActionUpdated,
		"2024-03-03": ActionNoop,
	}
	for i, date := range []string{"2024-03-01", "2024-03-02", "2024-03-03"} {
		if results[i].Date != date {
			t.Errorf("entry %d date = %s, want %s", i, results[i].Date, date)
		}
		if results[i].Action != want[date] {
			t.Errorf("entry %s action = %s, want %s", date, results[i].Action, want[date])
		}
	}
}

// TestApplyAvailabilityIsolatesFailures makes one date in the middle of
// a batch fail at the database and checks that its siblings still go
// through: the failing date is ledgered as "error" with the cause, the
// dates around it commit normally.
func TestApplyAvailabilityIsolatesFailures(t *testing.T) {
	d := setupTestDB(t)
	user := createTestUser(t, d, "alice")

	if _, err := d.SetAvailability(user.ID, "2024-03-03", boolptr(true)); err != nil {
		t.Fatalf("seed error = %v", err)
	}

	// Reject any insert for the middle date.
	err := d.db.Exec(`CREATE TRIGGER reject_march_second
		BEFORE INSERT ON availabilities
		WHEN NEW.date = '2024-03-02'
		BEGIN SELECT RAISE(ABORT, 'insert rejected'); END`).Error
	if err != nil {
		t.Fatalf("failed to install trigger: %v", err)
	}

	dates := []string{"2024-03-01", "2024-03-02", "2024-03-03"}
	results := d.ApplyAvailability(user.ID, dates, map[string]*bool{
		"2024-03-01": boolptr(true),
		"2024-03-02": boolptr(true),
		"2024-03-03": boolptr(false),
	})

	if len(results) != 3 {
		t.Fatalf("expected 3 ledger entries, got %d", len(results))
	}
	if results[0].Action != ActionCreated {
		t.Errorf("2024-03-01 action = %s, want %s", results[0].Action, ActionCreated)
	}
	if results[1].Action != ActionError {
		t.Errorf("2024-03-02 action = %s, want %s", results[1].Action, ActionError)
	}
	if results[1].Error == "" {
		t.Errorf("2024-03-02 should carry the failure cause")
	}
	if results[2].Action != ActionUpdated {
		t.Errorf("2024-03-03 action = %s, want %s", results[2].Action, ActionUpdated)
	}

	// The siblings really committed and the failing date really did not.
	rows, err := d.ListAvailabilityForDates(dates)
	if err != nil {
		t.Fatalf("ListAvailabilityForDates() error = %v", err)
	}
	byDate := make(map[string]bool)
	for _, a := range rows {
		byDate[a.Date] = a.IsAvailable
	}
	if v, ok := byDate["2024-03-01"]; !ok || !v {
		t.Errorf("2024-03-01 = %v,%v, want true", v, ok)
	}
	if _, ok := byDate["2024-03-02"]; ok {
		t.Errorf("2024-03-02 should not have been written")
	}
	if v, ok := byDate["2024-03-03"]; !ok || v {
		t.Errorf("2024-03-03 = %v,%v, want false", v, ok)
	}
}

// TestAvailabilityReadBack mirrors the worked example: saving answers for
// two of three days yields exactly those two entries on read.
func TestAvailabilityReadBack(t *testing.T) {
	d := setupTestDB(t)
	user := createTestUser(t, d, "alice")

	dates := []string{"2024-03-01", "2024-03-02", "2024-03-03"}
	d.ApplyAvailability(user.ID, dates, map[string]*bool{
		"2024-03-01": boolptr(true),
		"2024-03-02": boolptr(false),
	})

	users, err := d.ListUsersWithAvailability(dates)
	if err != nil {
		t.Fatalf("ListUsersWithAvailability() error = %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}
	if len(users[0].Availabilities) != 2 {
		t.Fatalf("expected 2 availability rows, got %d", len(users[0].Availabilities))
	}

	byDate := make(map[string]bool)
	for _, a := range users[0].Availabilities {
		byDate[a.Date] = a.IsAvailable
	}
	if v, ok := byDate["2024-03-01"]; !ok || !v {
		t.Errorf("2024-03-01 = %v,%v, want true", v, ok)
	}
	if v, ok := byDate["2024-03-02"]; !ok || v {
		t.Errorf("2024-03-02 = %v,%v, want false", v, ok)
	}
	if _, ok := byDate["2024-03-03"]; ok {
		t.Errorf("2024-03-03 should be absent (undecided)")
	}
}

func TestClearAvailability(t *testing.T) {
	d := setupTestDB(t)
	alice := createTestUser(t, d, "alice")
	bob := createTestUser(t, d, "bob")

	dates := []string{"2024-03-01", "2024-03-02"}
	d.ApplyAvailability(alice.ID, dates, map[string]*bool{
		"2024-03-01": boolptr(true),
		"2024-03-02": boolptr(true),
	})
	d.ApplyAvailability(bob.ID, dates, map[string]*bool{
		"2024-03-01": boolptr(true),
	})

	deleted, err := d.ClearAvailability(alice.ID, dates)
	if err != nil {
		t.Fatalf("ClearAvailability() error = %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}

	// Only alice's rows are gone.
	rows, err := d.ListAvailabilityForDates(dates)
	if err != nil {
		t.Fatalf("ListAvailabilityForDates() error = %v", err)
	}
	if len(rows) != 1 || rows[0].UserID != bob.ID {
		t.Errorf("expected only bob's row to remain, got %d rows", len(rows))
	}
}

func TestDateRangeSettingsUpsert(t *testing.T) {
	d := setupTestDB(t)
	user := createTestUser(t, d, "alice")

	settings, err := d.GetDateRangeSettings(user.ID)
	if err != nil {
		t.Fatalf("GetDateRangeSettings() error = %v", err)
	}
	if settings != nil {
		t.Fatalf("expected no settings yet, got %+v", settings)
	}

	if err := d.UpsertDateRangeSettings(user.ID, "2024-03-01", "2024-03-31"); err != nil {
		t.Fatalf("UpsertDateRangeSettings() error = %v", err)
	}
	if err := d.UpsertDateRangeSettings(user.ID, "2024-04-01", "2024-04-30"); err != nil {
		t.Fatalf("UpsertDateRangeSettings(second) error = %v", err)
	}

	settings, err = d.GetDateRangeSettings(user.ID)
	if err != nil {
		t.Fatalf("GetDateRangeSettings() error = %v", err)
	}
	if settings == nil {
		t.Fatal("expected settings after upsert")
	}
	if settings.StartDate != "2024-04-01" || settings.EndDate != "2024-04-30" {
		t.Errorf("settings = %s..%s, want second upsert to win", settings.StartDate, settings.EndDate)
	}
}
