package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"restopos/internal/models"
	"restopos/internal/repositories"
	"restopos/pkg/printer"

	"go.uber.org/zap"
)

// PrinterStatus describes the configured receipt printer.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// PrinterService formats receipts and sends them to the printer.
type PrinterService struct {
	printer     printer.Printer
	receipts    repositories.ReceiptRepository
	settings    SettingsProvider
	printerType string
	width       int
	loc         *time.Location
	logger      *zap.Logger
}

// NewPrinterService creates a new PrinterService.
func NewPrinterService(p printer.Printer, receipts repositories.ReceiptRepository, settings SettingsProvider, printerType string, width int, loc *time.Location, logger *zap.Logger) *PrinterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}
	return &PrinterService{
		printer:     p,
		receipts:    receipts,
		settings:    settings,
		printerType: printerType,
		width:       width,
		loc:         loc,
		logger:      logger,
	}
}

// Status reports whether a printer is configured and reachable.
func (s *PrinterService) Status() PrinterStatus {
	return PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// PrintReceipt prints a stored receipt.
func (s *PrinterService) PrintReceipt(ctx context.Context, id string) error {
	receipt, err := s.receipts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return err
	}
	if err := s.printer.Print(FormatReceipt(*receipt, settings, s.width, s.loc)); err != nil {
		return fmt.Errorf("failed to print receipt %s: %w", id, err)
	}
	s.logger.Info("receipt printed", zap.String("receipt_id", id))
	return nil
}

// HandleReceiptEvent prints the receipt announced by a receipt.created
// message.
func (s *PrinterService) HandleReceiptEvent(ctx context.Context, body []byte) error {
	var event ReceiptCreatedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("failed to decode receipt event: %w", err)
	}
	if event.ReceiptID == "" {
		return fmt.Errorf("receipt event without receipt id")
	}
	return s.PrintReceipt(ctx, event.ReceiptID)
}

// FormatReceipt renders a receipt as ESC/POS bytes.
func FormatReceipt(r models.Receipt, settings models.Settings, width int, loc *time.Location) []byte {
	doc := printer.NewDocument(width)

	doc.SetAlign(printer.AlignCenter)
	if settings.StoreName != "" {
		doc.SetBold(true).SetFontSize(printer.FontDouble).Text(settings.StoreName)
		doc.SetFontSize(printer.FontNormal).SetBold(false)
	}
	if settings.StoreAddress != "" {
		doc.Text(settings.StoreAddress)
	}
	if settings.StorePhone != "" {
		doc.Text(settings.StorePhone)
	}

	doc.SetAlign(printer.AlignLeft).Separator('-')
	doc.KeyValue("Receipt", shortID(r.ID))
	doc.KeyValue("Date", r.Date.In(loc).Format("2006-01-02 15:04"))
	doc.Separator('-')

	for _, l := range r.Items {
		doc.ItemLine(l.Quantity, l.Name, l.LineTotal().StringFixed(2))
	}
	doc.Separator('-')

	doc.KeyValue("Subtotal", r.Subtotal.StringFixed(2))
	if !r.Tax.IsZero() {
		doc.KeyValue(fmt.Sprintf("Tax (%s%%)", settings.TaxRate.String()), r.Tax.StringFixed(2))
	}
	doc.SetBold(true).KeyValue("TOTAL", r.Total.StringFixed(2)).SetBold(false)
	doc.Separator('-')

	if len(r.SplitDetails) > 0 {
		for _, d := range r.SplitDetails {
			doc.KeyValue(d.Method, d.Amount.StringFixed(2))
		}
	} else {
		doc.KeyValue(r.PaymentMethod, r.Tendered.StringFixed(2))
	}
	if !r.Change.IsZero() {
		doc.KeyValue("Change", r.Change.StringFixed(2))
	}

	doc.SetAlign(printer.AlignCenter).FeedLines(1).Text("Thank you!")
	doc.FeedLines(3).Cut()
	return doc.Bytes()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
