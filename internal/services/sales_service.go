package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"restopos/internal/effects"
	"restopos/internal/models"
	"restopos/internal/order"
	"restopos/internal/payment"
	"restopos/internal/repositories"
	"restopos/pkg/rabbitmq"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ItemLookup resolves catalog items for the order.
type ItemLookup interface {
	GetItem(ctx context.Context, id string) (*models.Item, error)
}

// SettingsProvider supplies the current store settings.
type SettingsProvider interface {
	Get(ctx context.Context) (models.Settings, error)
}

// MethodProvider supplies the enabled payment method names in display order.
type MethodProvider interface {
	Methods(ctx context.Context) ([]string, error)
}

// EventPublisher publishes a message on a queue.
type EventPublisher interface {
	Publish(queue string, body []byte) error
}

// ReceiptCreatedEvent is published after a receipt has been stored.
type ReceiptCreatedEvent struct {
	ReceiptID     string          `json:"receipt_id"`
	Date          time.Time       `json:"date"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
}

// OrderView is the current order with its totals.
type OrderView struct {
	Lines             []models.OrderLineItem `json:"lines"`
	Subtotal          decimal.Decimal        `json:"subtotal"`
	Tax               decimal.Decimal        `json:"tax"`
	Total             decimal.Decimal        `json:"total"`
	EditingTicketID   string                 `json:"editing_ticket_id,omitempty"`
	EditingTicketName string                 `json:"editing_ticket_name,omitempty"`
}

// SplitView is the reconciliation of a split payment against the order total.
type SplitView struct {
	Rows         []models.SplitPaymentDetail `json:"rows"`
	Total        decimal.Decimal             `json:"total"`
	TotalEntered decimal.Decimal             `json:"total_entered"`
	Remaining    decimal.Decimal             `json:"remaining"`
	Valid        bool                        `json:"valid"`
}

// SalesDeps are the collaborators of a SalesService. Publisher may be nil.
type SalesDeps struct {
	Items     ItemLookup
	Tickets   repositories.TicketRepository
	Receipts  repositories.ReceiptRepository
	Settings  SettingsProvider
	Methods   MethodProvider
	Queue     *effects.Queue
	Publisher EventPublisher
	Logger    *zap.Logger
}

// SalesService is the sales session of the terminal: the order in progress,
// the saved tickets and checkout. State changes apply in memory first and
// their persistence runs on the effect queue.
type SalesService struct {
	mu      sync.Mutex
	order   *order.Order
	tickets []models.SavedTicket // oldest first
	editing string               // ticket being edited, if any

	deps   SalesDeps
	engine *payment.Engine
	newID  order.IDFunc
	now    func() time.Time
}

// NewSalesService creates a session with an empty order and no tickets. Call
// Restore to load the saved tickets.
func NewSalesService(deps SalesDeps) *SalesService {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &SalesService{
		order:  order.New(),
		deps:   deps,
		engine: payment.NewEngine(),
		newID:  uuid.NewString,
		now:    time.Now,
	}
}

// Restore loads the saved tickets from the repository.
func (s *SalesService) Restore(ctx context.Context) error {
	tickets, err := s.deps.Tickets.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore tickets: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickets = tickets
	s.deps.Logger.Info("tickets restored", zap.Int("count", len(tickets)))
	return nil
}

// Order returns the current order and its totals.
func (s *SalesService) Order(ctx context.Context) (OrderView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view(ctx)
}

// AddItem adds one unit of a catalog item.
func (s *SalesService) AddItem(ctx context.Context, itemID string) (OrderView, error) {
	item, err := s.deps.Items.GetItem(ctx, itemID)
	if err != nil {
		return OrderView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.order.Add(*item)
	return s.view(ctx)
}

// DecrementLine removes one unit from a line, deleting it at zero.
func (s *SalesService) DecrementLine(ctx context.Context, lineID string) (OrderView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.order.Remove(lineID) {
		return OrderView{}, order.ErrLineNotFound
	}
	return s.view(ctx)
}

// DeleteLine removes a line whatever its quantity.
func (s *SalesService) DeleteLine(ctx context.Context, lineID string) (OrderView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.order.Delete(lineID) {
		return OrderView{}, order.ErrLineNotFound
	}
	return s.view(ctx)
}

// SetQuantity sets a line's quantity; zero or less deletes the line.
func (s *SalesService) SetQuantity(ctx context.Context, lineID string, quantity int) (OrderView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.order.UpdateQuantity(lineID, quantity) {
		return OrderView{}, order.ErrLineNotFound
	}
	return s.view(ctx)
}

// ClearOrder empties the order and stops editing any ticket. The ticket
// itself stays saved.
func (s *SalesService) ClearOrder(ctx context.Context) (OrderView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order.Clear()
	s.editing = ""
	return s.view(ctx)
}

// Tickets returns the saved tickets, oldest first.
func (s *SalesService) Tickets() []models.SavedTicket {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.SavedTicket{}, s.tickets...)
}

// SaveTicket stores the order as a ticket and clears it. When a ticket is
// being edited it is overwritten in place; an empty name keeps its name.
func (s *SalesService) SaveTicket(ctx context.Context, name string) (models.SavedTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.order.IsEmpty() {
		return models.SavedTicket{}, payment.ErrEmptyOrder
	}
	name = strings.TrimSpace(name)
	now := s.now()

	if i := s.ticketIndex(s.editing); i >= 0 {
		t := s.tickets[i]
		t.Items = s.order.Lines()
		if name != "" {
			t.Name = name
		}
		t.UpdatedAt = now
		s.tickets[i] = t
		s.persistTicket("ticket.update", t, false)
		s.order.Clear()
		s.editing = ""
		return t, nil
	}

	if name == "" {
		name = fmt.Sprintf("Ticket %d", len(s.tickets)+1)
	}
	t := s.order.Snapshot(name, now)
	s.tickets = append(s.tickets, t)
	s.persistTicket("ticket.create", t, true)
	s.order.Clear()
	s.editing = ""
	return t, nil
}

// LoadTicket replaces the order with a ticket's lines and marks the ticket as
// being edited. The ticket stays saved until the order is charged.
func (s *SalesService) LoadTicket(ctx context.Context, id string) (OrderView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.ticketIndex(id)
	if i < 0 {
		return OrderView{}, fmt.Errorf("%w: %s", ErrTicketNotFound, id)
	}
	s.order.Load(s.tickets[i].Items)
	s.editing = id
	return s.view(ctx)
}

// RenameTicket changes a ticket's name.
func (s *SalesService) RenameTicket(ctx context.Context, id, name string) (models.SavedTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.ticketIndex(id)
	if i < 0 {
		return models.SavedTicket{}, fmt.Errorf("%w: %s", ErrTicketNotFound, id)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return models.SavedTicket{}, ErrNameRequired
	}
	s.tickets[i].Name = name
	s.tickets[i].UpdatedAt = s.now()
	s.persistTicket("ticket.rename", s.tickets[i], false)
	return s.tickets[i], nil
}

// DeleteTicket removes a saved ticket. An order loaded from it is kept as a
// new, unsaved order.
func (s *SalesService) DeleteTicket(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.ticketIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrTicketNotFound, id)
	}
	s.removeTicketAt(i)
	if s.editing == id {
		s.editing = ""
	}
	return nil
}

// MergeTickets combines tickets into a new one named name, in the order the
// ids are given, and removes the sources. When a source is being edited, the
// merged ticket is loaded in its place.
func (s *SalesService) MergeTickets(ctx context.Context, name string, ids []string) (models.SavedTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	unique := make([]string, 0, len(ids))
	seen := map[string]bool{}
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	if len(unique) < 2 {
		return models.SavedTicket{}, ErrMergeNeedsTwo
	}

	sources := make([]models.SavedTicket, 0, len(unique))
	for _, id := range unique {
		i := s.ticketIndex(id)
		if i < 0 {
			return models.SavedTicket{}, fmt.Errorf("%w: %s", ErrTicketNotFound, id)
		}
		sources = append(sources, s.tickets[i])
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = sources[0].Name
	}
	merged := order.Merge(s.newID, name, s.now(), sources...)
	editingMerged := false
	for _, id := range unique {
		s.removeTicketAt(s.ticketIndex(id))
		if s.editing == id {
			editingMerged = true
		}
	}
	s.tickets = append(s.tickets, merged)
	s.persistTicket("ticket.merge", merged, true)

	// The order follows its ticket into the merge.
	if editingMerged {
		s.order.Load(merged.Items)
		s.editing = merged.ID
	}
	return merged, nil
}

// SplitPreview reconciles rows against the order total.
func (s *SalesService) SplitPreview(ctx context.Context, rows []models.SplitPaymentDetail) (SplitView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total, err := s.total(ctx)
	if err != nil {
		return SplitView{}, err
	}
	return splitView(total, rows), nil
}

// AddRemaining appends a row for the amount still owed, using the first
// enabled method not already in rows.
func (s *SalesService) AddRemaining(ctx context.Context, rows []models.SplitPaymentDetail) (SplitView, error) {
	methods, err := s.deps.Methods.Methods(ctx)
	if err != nil {
		return SplitView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	total, err := s.total(ctx)
	if err != nil {
		return SplitView{}, err
	}
	return splitView(total, payment.AddRemaining(total, rows, methods)), nil
}

// CheckoutCash charges the order in cash. Change is tendered minus total and
// may be negative.
func (s *SalesService) CheckoutCash(ctx context.Context, tendered decimal.Decimal) (models.Receipt, error) {
	return s.checkout(ctx, payment.Checkout{Kind: payment.Cash, Method: payment.FallbackMethod, Tendered: tendered})
}

// CheckoutExact charges the exact total to a non-cash method.
func (s *SalesService) CheckoutExact(ctx context.Context, method string) (models.Receipt, error) {
	return s.checkout(ctx, payment.Checkout{Kind: payment.Exact, Method: strings.TrimSpace(method)})
}

// CheckoutSplit charges the order across several methods.
func (s *SalesService) CheckoutSplit(ctx context.Context, rows []models.SplitPaymentDetail) (models.Receipt, error) {
	return s.checkout(ctx, payment.Checkout{Kind: payment.Split, Rows: rows})
}

func (s *SalesService) checkout(ctx context.Context, c payment.Checkout) (models.Receipt, error) {
	settings, err := s.deps.Settings.Get(ctx)
	if err != nil {
		return models.Receipt{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c.Lines = s.order.Lines()
	c.TaxEnabled = settings.TaxEnabled
	c.TaxRate = settings.TaxRate
	c.TicketID = s.editing

	receipt, err := s.engine.Finalize(c)
	if err != nil {
		return models.Receipt{}, err
	}

	if i := s.ticketIndex(s.editing); i >= 0 {
		s.removeTicketAt(i)
	}
	s.order.Clear()
	s.editing = ""

	s.persistReceipt(receipt)
	s.deps.Logger.Info("order charged",
		zap.String("receipt_id", receipt.ID),
		zap.String("payment_method", receipt.PaymentMethod),
		zap.String("total", receipt.Total.StringFixed(2)))
	return receipt, nil
}

func (s *SalesService) persistReceipt(receipt models.Receipt) {
	s.deps.Queue.Enqueue("receipt.create", func(ctx context.Context) error {
		r := receipt
		if err := s.deps.Receipts.Create(ctx, &r); err != nil {
			return err
		}
		if s.deps.Publisher == nil {
			return nil
		}
		body, err := json.Marshal(ReceiptCreatedEvent{
			ReceiptID:     receipt.ID,
			Date:          receipt.Date,
			Total:         receipt.Total,
			PaymentMethod: receipt.PaymentMethod,
		})
		if err != nil {
			return fmt.Errorf("failed to encode receipt event: %w", err)
		}
		if err := s.deps.Publisher.Publish(rabbitmq.ReceiptQueue, body); err != nil {
			return fmt.Errorf("receipt %s stored but not announced: %w", receipt.ID, err)
		}
		return nil
	})
}

func (s *SalesService) persistTicket(effect string, t models.SavedTicket, create bool) {
	s.deps.Queue.Enqueue(effect, func(ctx context.Context) error {
		ticket := t
		if create {
			return s.deps.Tickets.Create(ctx, &ticket)
		}
		return s.deps.Tickets.Update(ctx, &ticket)
	})
}

// removeTicketAt drops a ticket from memory and enqueues its deletion.
func (s *SalesService) removeTicketAt(i int) {
	id := s.tickets[i].ID
	s.tickets = append(s.tickets[:i], s.tickets[i+1:]...)
	s.deps.Queue.Enqueue("ticket.delete", func(ctx context.Context) error {
		return s.deps.Tickets.Delete(ctx, id)
	})
}

func (s *SalesService) ticketIndex(id string) int {
	if id == "" {
		return -1
	}
	for i, t := range s.tickets {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *SalesService) total(ctx context.Context) (decimal.Decimal, error) {
	settings, err := s.deps.Settings.Get(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return order.ComputeTotals(s.order.Lines(), settings.TaxEnabled, settings.TaxRate).Total, nil
}

// view must be called with mu held.
func (s *SalesService) view(ctx context.Context) (OrderView, error) {
	settings, err := s.deps.Settings.Get(ctx)
	if err != nil {
		return OrderView{}, err
	}
	lines := s.order.Lines()
	totals := order.ComputeTotals(lines, settings.TaxEnabled, settings.TaxRate)
	v := OrderView{
		Lines:           lines,
		Subtotal:        totals.Subtotal,
		Tax:             totals.Tax,
		Total:           totals.Total,
		EditingTicketID: s.editing,
	}
	if i := s.ticketIndex(s.editing); i >= 0 {
		v.EditingTicketName = s.tickets[i].Name
	}
	return v, nil
}

func splitView(total decimal.Decimal, rows []models.SplitPaymentDetail) SplitView {
	if rows == nil {
		rows = []models.SplitPaymentDetail{}
	}
	rec := payment.Reconcile(total, rows)
	return SplitView{
		Rows:         rows,
		Total:        total,
		TotalEntered: rec.TotalEntered,
		Remaining:    rec.Remaining,
		Valid:        rec.Valid,
	}
}
