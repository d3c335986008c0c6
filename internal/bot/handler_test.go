package bot

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"catatan/internal/currency"
	"catatan/internal/ledger"
	"catatan/internal/mirror"
	"catatan/internal/services"
	"catatan/internal/sheets/memory"
)

type fakeSender struct {
	messages []string
	chatIDs  []int64
}

func (f *fakeSender) SendMessage(chatID int64, text string) error {
	f.chatIDs = append(f.chatIDs, chatID)
	f.messages = append(f.messages, text)
	return nil
}

func (f *fakeSender) last(t *testing.T) string {
	t.Helper()
	if len(f.messages) == 0 {
		t.Fatal("expected a reply, got none")
	}
	return f.messages[len(f.messages)-1]
}

func newHandler(t *testing.T, withMirror bool) (*Handler, *fakeSender) {
	t.Helper()

	store, err := ledger.Open(filepath.Join(t.TempDir(), "expenses.json"))
	if err != nil {
		t.Fatalf("opening ledger: %v", err)
	}

	m := mirror.Absent()
	sheetURL := ""
	if withMirror {
		m, err = mirror.Connect(context.Background(), memory.New(), "https://docs.google.com/spreadsheets/d/test")
		if err != nil {
			t.Fatalf("connecting mirror: %v", err)
		}
		sheetURL = "https://docs.google.com/spreadsheets/d/test"
	}

	money, err := currency.NewFormatter("IDR", "id")
	if err != nil {
		t.Fatalf("building formatter: %v", err)
	}

	sender := &fakeSender{}
	h := NewHandler(
		services.NewExpenseService(store, m),
		services.NewSummaryService(store, m),
		money,
		sender,
		sheetURL,
	)
	return h, sender
}

func send(t *testing.T, h *Handler, text string) {
	t.Helper()
	in := Inbound{ChatID: 42, UserID: "7", DisplayName: "budi", Text: text}
	if err := h.Handle(context.Background(), in); err != nil {
		t.Fatalf("Handle(%q): %v", text, err)
	}
}

func TestStartAndHelpReplies(t *testing.T) {
	h, sender := newHandler(t, true)

	send(t, h, "/start")
	if !strings.Contains(sender.last(t), "Selamat datang") {
		t.Errorf("unexpected /start reply: %q", sender.last(t))
	}

	send(t, h, "/help")
	if !strings.Contains(sender.last(t), "Bantuan") {
		t.Errorf("unexpected /help reply: %q", sender.last(t))
	}
}

func TestUnknownCommandIsIgnored(t *testing.T) {
	h, sender := newHandler(t, true)

	send(t, h, "/backup")
	if len(sender.messages) != 0 {
		t.Errorf("expected no reply to unknown command, got %q", sender.messages)
	}
}

func TestCommandWithBotSuffix(t *testing.T) {
	h, sender := newHandler(t, true)

	send(t, h, "/help@catatan_bot")
	if !strings.Contains(sender.last(t), "Bantuan") {
		t.Errorf("expected /help reply, got %q", sender.last(t))
	}
}

func TestInvalidExpenseFormat(t *testing.T) {
	h, sender := newHandler(t, true)

	for _, text := range []string{"makan siang", "50000", "-5 kopi", "0 kopi"} {
		sender.messages = nil
		send(t, h, text)
		if !strings.Contains(sender.last(t), "Format tidak valid") {
			t.Errorf("Handle(%q): expected format error, got %q", text, sender.last(t))
		}
	}
}

func TestExpenseConfirmation(t *testing.T) {
	h, sender := newHandler(t, true)

	send(t, h, "50000 makan siang")

	reply := sender.last(t)
	if !strings.Contains(reply, "Pengeluaran berhasil dicatat") {
		t.Fatalf("expected confirmation, got %q", reply)
	}
	if !strings.Contains(reply, "makan siang") {
		t.Errorf("expected description in reply: %q", reply)
	}
	if !strings.Contains(reply, "Google Sheets") {
		t.Errorf("expected sheets status in reply: %q", reply)
	}
	if sender.chatIDs[0] != 42 {
		t.Errorf("expected reply to chat 42, got %d", sender.chatIDs[0])
	}
}

func TestExpenseConfirmationWithoutMirror(t *testing.T) {
	h, sender := newHandler(t, false)

	send(t, h, "50000 makan siang")

	reply := sender.last(t)
	if !strings.Contains(reply, "penyimpanan lokal") {
		t.Errorf("expected local storage status, got %q", reply)
	}
}

func TestTodayEmpty(t *testing.T) {
	h, sender := newHandler(t, true)

	send(t, h, "/hari")
	if sender.last(t) != msgNoExpensesToday {
		t.Errorf("expected empty-day reply, got %q", sender.last(t))
	}
}

func TestTodayListsExpenses(t *testing.T) {
	h, sender := newHandler(t, true)

	send(t, h, "50000 makan siang")
	send(t, h, "25000 kopi")
	send(t, h, "/hari")

	reply := sender.last(t)
	if !strings.Contains(reply, "Pengeluaran Hari Ini") {
		t.Fatalf("expected today header, got %q", reply)
	}
	if !strings.Contains(reply, "makan siang") || !strings.Contains(reply, "kopi") {
		t.Errorf("expected both entries listed: %q", reply)
	}
	if !strings.Contains(reply, "Data dari Google Sheets") {
		t.Errorf("expected mirror source footer: %q", reply)
	}
}

func TestWeekEmptyAndGrouped(t *testing.T) {
	h, sender := newHandler(t, false)

	send(t, h, "/minggu")
	if sender.last(t) != msgNoExpensesWeek {
		t.Fatalf("expected empty-week reply, got %q", sender.last(t))
	}

	send(t, h, "10000 parkir")
	send(t, h, "/minggu")

	reply := sender.last(t)
	if !strings.Contains(reply, "Pengeluaran Minggu Ini") {
		t.Fatalf("expected week header, got %q", reply)
	}
	if !strings.Contains(reply, "parkir") {
		t.Errorf("expected entry listed: %q", reply)
	}
	if !strings.Contains(reply, "Data dari penyimpanan lokal") {
		t.Errorf("expected local source footer: %q", reply)
	}
}

func TestExportWithoutMirror(t *testing.T) {
	h, sender := newHandler(t, false)

	send(t, h, "/export")
	if sender.last(t) != msgMirrorDown {
		t.Errorf("expected mirror-down reply, got %q", sender.last(t))
	}
}

func TestExportFlow(t *testing.T) {
	h, sender := newHandler(t, true)

	send(t, h, "/export")
	if sender.last(t) != msgExportEmpty {
		t.Fatalf("expected nothing-to-export reply, got %q", sender.last(t))
	}

	send(t, h, "50000 makan siang")
	sender.messages = nil

	send(t, h, "/export")
	if len(sender.messages) != 2 {
		t.Fatalf("expected progress plus result, got %q", sender.messages)
	}
	if sender.messages[0] != msgExporting {
		t.Errorf("expected progress message first, got %q", sender.messages[0])
	}
	if sender.messages[1] != msgExportDone {
		t.Errorf("expected success message, got %q", sender.messages[1])
	}
}

func TestSheetsLink(t *testing.T) {
	h, sender := newHandler(t, true)

	send(t, h, "/sheets")
	if !strings.Contains(sender.last(t), "docs\\.google\\.com") {
		t.Errorf("expected escaped sheet link, got %q", sender.last(t))
	}

	h, sender = newHandler(t, false)
	send(t, h, "/sheets")
	if sender.last(t) != msgSheetsMissing {
		t.Errorf("expected unconfigured reply, got %q", sender.last(t))
	}
}
