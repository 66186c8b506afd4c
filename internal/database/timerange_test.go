package database

import "testing"

func TestUpsertTimeRange(t *testing.T) {
	d := setupTestDB(t)
	user := createTestUser(t, d, "alice")

	tr, err := d.UpsertTimeRange(user.ID, 3, "18:00", "22:00")
	if err != nil {
		t.Fatalf("UpsertTimeRange() error = %v", err)
	}
	if tr.DayOfWeek != 3 || tr.StartTime != "18:00" || tr.EndTime != "22:00" {
		t.Errorf("unexpected time range: %+v", tr)
	}

	// Same weekday again replaces, never duplicates.
	tr, err = d.UpsertTimeRange(user.ID, 3, "19:00", "23:00")
	if err != nil {
		t.Fatalf("UpsertTimeRange(second) error = %v", err)
	}
	if tr.StartTime != "19:00" || tr.EndTime != "23:00" {
		t.Errorf("second upsert should win: %+v", tr)
	}

	ranges, err := d.ListTimeRanges(user.ID)
	if err != nil {
		t.Fatalf("ListTimeRanges() error = %v", err)
	}
	if len(ranges) != 1 {
		t.Fatalf("expected 1 range, got %d", len(ranges))
	}
}

func TestListTimeRangesOrdered(t *testing.T) {
	d := setupTestDB(t)
	user := createTestUser(t, d, "alice")

	for _, dow := range []int{5, 0, 2} {
		if _, err := d.UpsertTimeRange(user.ID, dow, "18:00", "22:00"); err != nil {
			t.Fatalf("UpsertTimeRange(%d) error = %v", dow, err)
		}
	}

	ranges, err := d.ListTimeRanges(user.ID)
	if err != nil {
		t.Fatalf("ListTimeRanges() error = %v", err)
	}
	want := []int{0, 2, 5}
	if len(ranges) != len(want) {
		t.Fatalf("expected %d ranges, got %d", len(want), len(ranges))
	}
	for i, dow := range want {
		if ranges[i].DayOfWeek != dow {
			t.Errorf("ranges[%d].DayOfWeek = %d, want %d", i, ranges[i].DayOfWeek, dow)
		}
	}
}

func TestDeleteTimeRange(t *testing.T) {
	d := setupTestDB(t)
	user := createTestUser(t, d, "alice")

	deleted, err := d.DeleteTimeRange(user.ID, 4)
	if err != nil {
		t.Fatalf("DeleteTimeRange(missing) error = %v", err)
	}
	if deleted {
		t.Error("deleting a missing range should report false")
	}

	if _, err := d.UpsertTimeRange(user.ID, 4, "18:00", "22:00"); err != nil {
		t.Fatalf("UpsertTimeRange() error = %v", err)
	}

	deleted, err = d.DeleteTimeRange(user.ID, 4)
	if err != nil {
		t.Fatalf("DeleteTimeRange() error = %v", err)
	}
	if !deleted {
		t.Error("deleting an existing range should report true")
	}
}
