package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"catatan/internal/core"
	"catatan/internal/currency"
	"catatan/internal/services"
)

// Handler routes inbound chat messages to the expense and summary
// services and renders MarkdownV2 replies.
type Handler struct {
	expenses  *services.ExpenseService
	summaries *services.SummaryService
	money     *currency.Formatter
	sender    Sender
	sheetURL  string
}

func NewHandler(expenses *services.ExpenseService, summaries *services.SummaryService, money *currency.Formatter, sender Sender, sheetURL string) *Handler {
	return &Handler{
		expenses:  expenses,
		summaries: summaries,
		money:     money,
		sender:    sender,
		sheetURL:  sheetURL,
	}
}

// Handle processes one message. Commands start with "/"; anything else
// is treated as an expense entry. Unknown commands are ignored.
func (h *Handler) Handle(ctx context.Context, in Inbound) error {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil
	}

	if strings.HasPrefix(text, "/") {
		cmd := strings.Fields(text)[0]
		cmd = strings.TrimPrefix(cmd, "/")
		// Group chats suffix commands with the bot name.
		if at := strings.Index(cmd, "@"); at >= 0 {
			cmd = cmd[:at]
		}
		return h.handleCommand(ctx, in, cmd)
	}

	return h.handleExpense(ctx, in, text)
}

func (h *Handler) handleCommand(ctx context.Context, in Inbound, cmd string) error {
	switch cmd {
	case "start":
		return h.sender.SendMessage(in.ChatID, welcomeMessage)
	case "help":
		return h.sender.SendMessage(in.ChatID, helpMessage)
	case "hari":
		return h.handleToday(ctx, in)
	case "minggu":
		return h.handleWeek(ctx, in)
	case "export":
		return h.handleExport(ctx, in)
	case "sheets":
		return h.handleSheets(in)
	default:
		slog.DebugContext(ctx, "Ignoring unknown command", "command", cmd)
		return nil
	}
}

func (h *Handler) handleExpense(ctx context.Context, in Inbound, text string) error {
	parts := strings.Fields(text)
	amount, err := core.ParseAmount(parts[0])
	if err != nil || len(parts) < 2 {
		return h.sender.SendMessage(in.ChatID, msgInvalidFormat)
	}
	description := strings.Join(parts[1:], " ")

	result, err := h.expenses.AddExpense(ctx, in.UserID, in.DisplayName, amount, description)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to record expense", "user_id", in.UserID, "error", err)
		return h.sender.SendMessage(in.ChatID, msgSaveFailed)
	}

	statusIcon, statusText := "💾", "penyimpanan lokal"
	if result.MirrorSaved {
		statusIcon, statusText = "📊", "Google Sheets"
	}

	reply := fmt.Sprintf(
		"✅ Pengeluaran berhasil dicatat\\!\n\n"+
			"💰 %s \\- %s\n"+
			"📊 Total hari ini: %s\n"+
			"%s Disimpan ke %s",
		Escape(h.money.Format(amount)),
		Escape(description),
		Escape(h.money.Format(result.DayTotal)),
		statusIcon,
		Escape(statusText),
	)
	return h.sender.SendMessage(in.ChatID, reply)
}

func (h *Handler) handleToday(ctx context.Context, in Inbound) error {
	report, err := h.summaries.TodaySummary(ctx, in.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to build today summary", "user_id", in.UserID, "error", err)
		return h.sender.SendMessage(in.ChatID, msgQueryFailed)
	}
	if len(report.Items) == 0 {
		return h.sender.SendMessage(in.ChatID, msgNoExpensesToday)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📅 *Pengeluaran Hari Ini \\(%s\\)*\n\n", Escape(report.Date))
	for i, item := range report.Items {
		fmt.Fprintf(&b, "%d\\. %s \\- %s \\(%s\\)\n",
			i+1,
			Escape(h.money.Format(item.Amount)),
			Escape(item.Description),
			Escape(item.Time),
		)
	}
	fmt.Fprintf(&b, "\n💰 *Total: %s*", Escape(h.money.Format(report.Total)))
	b.WriteString(sourceFooter(report.Source))

	return h.sender.SendMessage(in.ChatID, b.String())
}

func (h *Handler) handleWeek(ctx context.Context, in Inbound) error {
	report, err := h.summaries.WeekSummary(ctx, in.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to build week summary", "user_id", in.UserID, "error", err)
		return h.sender.SendMessage(in.ChatID, msgQueryFailed)
	}
	if len(report.Days) == 0 {
		return h.sender.SendMessage(in.ChatID, msgNoExpensesWeek)
	}

	var b strings.Builder
	b.WriteString("📅 *Pengeluaran Minggu Ini*\n\n")
	for _, day := range report.Days {
		fmt.Fprintf(&b, "*%s* \\- %s\n", Escape(day.Date), Escape(h.money.Format(day.Total)))
		for _, item := range day.Items {
			fmt.Fprintf(&b, "  • %s \\- %s\n",
				Escape(h.money.Format(item.Amount)),
				Escape(item.Description),
			)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "💰 *Total Minggu: %s*", Escape(h.money.Format(report.Total)))
	b.WriteString(sourceFooter(report.Source))

	return h.sender.SendMessage(in.ChatID, b.String())
}

func (h *Handler) handleExport(ctx context.Context, in Inbound) error {
	if !h.expenses.MirrorAvailable() {
		return h.sender.SendMessage(in.ChatID, msgMirrorDown)
	}

	if err := h.sender.SendMessage(in.ChatID, msgExporting); err != nil {
		return err
	}

	exported, err := h.expenses.ExportAll(ctx, in.UserID)
	switch {
	case err != nil:
		slog.ErrorContext(ctx, "Export failed", "user_id", in.UserID, "error", err)
		return h.sender.SendMessage(in.ChatID, msgExportFailed)
	case !exported:
		return h.sender.SendMessage(in.ChatID, msgExportEmpty)
	default:
		return h.sender.SendMessage(in.ChatID, msgExportDone)
	}
}

func (h *Handler) handleSheets(in Inbound) error {
	if h.sheetURL == "" {
		return h.sender.SendMessage(in.ChatID, msgSheetsMissing)
	}

	reply := fmt.Sprintf(
		"📊 *Google Sheets Anda:*\n\n%s\n\n"+
			"*Sheets yang tersedia:*\n"+
			"• Expenses \\- Detail semua pengeluaran\n"+
			"• Daily Summary \\- Ringkasan harian",
		Escape(h.sheetURL),
	)
	return h.sender.SendMessage(in.ChatID, reply)
}

func sourceFooter(src services.Source) string {
	if src == services.SourceMirror {
		return footerMirror
	}
	return footerLocal
}
