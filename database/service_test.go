package database

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jknair0/beforeeach"

	"campustrace/models"
)

var (
	db      *sql.DB
	mock    sqlmock.Sqlmock
	service *Service
)

func setUp() {
	db, mock, _ = sqlmock.New()
	service = NewService(db)
}

func tearDown() {
	db.Close()
}

var it = beforeeach.Create(setUp, tearDown)

var itemCols = []string{"id", "user_id", "kind", "title", "description", "category",
	"image_url", "image_hash", "date_occurred", "latitude", "longitude", "reward",
	"qr_token", "status", "created_at"}

func itemRow(rows *sqlmock.Rows, id, userID string, kind models.ItemKind, title string) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(id, userID, kind, title, "some description", "Phone",
		"", "", now, 28.6139, 77.209, "0.00", "", models.StatusOpen, now)
}

func TestUpsertMatch(t *testing.T) {
	it(func() {
		mock.ExpectExec("INSERT INTO matches (.+) ON DUPLICATE KEY UPDATE score = VALUES\\(score\\)").
			WithArgs(sqlmock.AnyArg(), "lost-1", "found-1", 0.8).
			WillReturnResult(sqlmock.NewResult(1, 1))
		now := time.Now()
		mock.ExpectQuery("SELECT id, lost_item_id, found_item_id, score, created_at, updated_at FROM matches").
			WithArgs("lost-1", "found-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "lost_item_id", "found_item_id",
				"score", "created_at", "updated_at"}).
				AddRow("match-1", "lost-1", "found-1", 0.8, now, now))

		match, err := service.UpsertMatch(context.Background(), "lost-1", "found-1", 0.8)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if match.LostItemID != "lost-1" || match.FoundItemID != "found-1" || match.Score != 0.8 {
			t.Errorf("unexpected match: %+v", match)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})
}

func TestUpsertMatchRewritesScore(t *testing.T) {
	it(func() {
		// Re-running the same pair issues the same single upsert statement;
		// no read-then-write, no second insert.
		mock.ExpectExec("INSERT INTO matches (.+) ON DUPLICATE KEY UPDATE").
			WithArgs(sqlmock.AnyArg(), "lost-1", "found-1", 0.91).
			WillReturnResult(sqlmock.NewResult(0, 2))
		now := time.Now()
		mock.ExpectQuery("SELECT id, lost_item_id, found_item_id, score, created_at, updated_at FROM matches").
			WithArgs("lost-1", "found-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "lost_item_id", "found_item_id",
				"score", "created_at", "updated_at"}).
				AddRow("match-1", "lost-1", "found-1", 0.91, now, now))

		match, err := service.UpsertMatch(context.Background(), "lost-1", "found-1", 0.91)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if match.ID != "match-1" || match.Score != 0.91 {
			t.Errorf("expected the existing row re-scored, got %+v", match)
		}
	})
}

func TestFindOpenItemsByKind(t *testing.T) {
	it(func() {
		rows := sqlmock.NewRows(itemCols)
		itemRow(rows, "found-1", "bob", models.KindFound, "iPhone black found")
		itemRow(rows, "found-2", "carol", models.KindFound, "Black phone")
		mock.ExpectQuery("SELECT (.+) FROM items WHERE kind = (.+) AND status = (.+) LIMIT (.+)").
			WithArgs(models.KindFound, models.StatusOpen, 80).
			WillReturnRows(rows)

		items, err := service.FindOpenItemsByKind(context.Background(), models.KindFound, 80)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(items) != 2 {
			t.Fatalf("expected 2 items, got %d", len(items))
		}
		if items[0].ID != "found-1" || items[0].Kind != models.KindFound {
			t.Errorf("unexpected first item: %+v", items[0])
		}
	})
}

func TestNotify(t *testing.T) {
	it(func() {
		mock.ExpectExec("INSERT INTO notifications").
			WithArgs(sqlmock.AnyArg(), "alice", "Potential Match Found", "We found a potential match for Black iPhone 13").
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := service.Notify(context.Background(), "alice", "Potential Match Found",
			"We found a potential match for Black iPhone 13")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})
}

func TestMarkNotificationReadNotFound(t *testing.T) {
	it(func() {
		mock.ExpectExec("UPDATE notifications SET is_read = TRUE").
			WithArgs("missing", "alice").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := service.MarkNotificationRead(context.Background(), "alice", "missing")
		if err != ErrNotFound {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestHasRecentDuplicate(t *testing.T) {
	it(func() {
		mock.ExpectQuery("SELECT 1 FROM items").
			WithArgs("alice", "Black iPhone 13", "Phone", models.KindLost, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

		duplicate, err := service.HasRecentDuplicate(context.Background(),
			"alice", "Black iPhone 13", "Phone", models.KindLost, 5*time.Minute)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !duplicate {
			t.Error("expected duplicate to be detected")
		}
	})
}

func TestHasRecentDuplicateNone(t *testing.T) {
	it(func() {
		mock.ExpectQuery("SELECT 1 FROM items").
			WithArgs("alice", "Black iPhone 13", "Phone", models.KindLost, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"1"}))

		duplicate, err := service.HasRecentDuplicate(context.Background(),
			"alice", "Black iPhone 13", "Phone", models.KindLost, 5*time.Minute)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if duplicate {
			t.Error("expected no duplicate")
		}
	})
}

func TestArchiveStaleItems(t *testing.T) {
	it(func() {
		mock.ExpectExec("UPDATE items SET status = (.+) WHERE status = (.+) AND created_at < (.+)").
			WithArgs(models.StatusArchived, models.StatusOpen, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 3))

		archived, err := service.ArchiveStaleItems(context.Background(), time.Now().Add(-30*24*time.Hour))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if archived != 3 {
			t.Errorf("expected 3 archived items, got %d", archived)
		}
	})
}

func TestSetItemStatus(t *testing.T) {
	it(func() {
		mock.ExpectExec("UPDATE items SET status = (.+) WHERE id = (.+)").
			WithArgs(models.StatusReturned, "item-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := service.SetItemStatus(context.Background(), "item-1", models.StatusReturned); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
