package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fixmate/repair-backend/internal/config"
	"github.com/fixmate/repair-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.TelegramLink{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func linkUser(t *testing.T, db *gorm.DB, chatID string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	link := models.TelegramLink{ID: uuid.New(), UserID: userID, ChatID: chatID}
	if err := db.Create(&link).Error; err != nil {
		t.Fatalf("create link: %v", err)
	}
	return userID
}

func newNotifier(db *gorm.DB, apiURL, token string) *TelegramNotifier {
	return NewTelegramNotifier(db, &config.Config{
		TelegramAPIURL:   apiURL,
		TelegramBotToken: token,
		TelegramTimeout:  5 * time.Second,
	})
}

func TestNotifyDeliversMessage(t *testing.T) {
	db := newTestDB(t)
	userID := linkUser(t, db, "12345")

	var gotPath string
	var gotBody sendMessageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer srv.Close()

	n := newNotifier(db, srv.URL, "TOKEN")
	if err := n.Notify(context.Background(), userID, "status changed"); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if gotPath != "/botTOKEN/sendMessage" {
		t.Errorf("path = %q, want /botTOKEN/sendMessage", gotPath)
	}
	if gotBody.ChatID != "12345" {
		t.Errorf("chat_id = %q, want 12345", gotBody.ChatID)
	}
	if gotBody.Text != "status changed" {
		t.Errorf("text = %q", gotBody.Text)
	}
}

func TestNotifyUnlinkedUser(t *testing.T) {
	db := newTestDB(t)

	n := newNotifier(db, "http://unused.invalid", "TOKEN")
	err := n.Notify(context.Background(), uuid.New(), "hello")
	if err != ErrNotLinked {
		t.Fatalf("err = %v, want ErrNotLinked", err)
	}
}

func TestNotifyWithoutToken(t *testing.T) {
	db := newTestDB(t)
	userID := linkUser(t, db, "12345")

	n := newNotifier(db, "http://unused.invalid", "")
	if err := n.Notify(context.Background(), userID, "hello"); err != ErrNotConfigured {
		t.Fatalf("err = %v, want ErrNotConfigured", err)
	}
}

func TestNotifyRejectedByAPI(t *testing.T) {
	db := newTestDB(t)
	userID := linkUser(t, db, "12345")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"ok":false,"description":"Bad Request: chat not found"}`)
	}))
	defer srv.Close()

	n := newNotifier(db, srv.URL, "TOKEN")
	err := n.Notify(context.Background(), userID, "hello")
	if err == nil {
		t.Fatal("expected error for ok:false response")
	}
	if !strings.Contains(err.Error(), "chat not found") {
		t.Errorf("err = %v, want description surfaced", err)
	}
}
