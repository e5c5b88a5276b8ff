package coworking

import (
	"errors"
	"strings"
	"time"

	"coworking-pos/internal/domain/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCustomer   = errors.New("customer name is required")
	ErrInvalidRate       = errors.New("hourly rate must be positive")
	ErrAlreadyClosed     = errors.New("coworking session is already closed")
	ErrEndBeforeStart    = errors.New("session cannot end before it starts")
	ErrInvalidStatus     = errors.New("invalid coworking session status")
	minutesPerHour       = decimal.NewFromInt(60)
	MaxCustomerNameRunes = 120
)

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

func NewStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusOpen, StatusClosed:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

type Session struct {
	id           uuid.UUID
	customerName string
	startedAt    time.Time
	endedAt      *time.Time
	hourlyRate   decimal.Decimal
	total        decimal.Decimal
	method       *payment.Method
	status       Status
	createdBy    uuid.UUID
}

func StartSession(customerName string, hourlyRate decimal.Decimal, createdBy uuid.UUID, now time.Time) (*Session, error) {
	name := strings.TrimSpace(customerName)
	if name == "" || len([]rune(name)) > MaxCustomerNameRunes {
		return nil, ErrInvalidCustomer
	}
	if !hourlyRate.IsPositive() {
		return nil, ErrInvalidRate
	}
	return &Session{
		id:           uuid.New(),
		customerName: name,
		startedAt:    now,
		hourlyRate:   hourlyRate,
		total:        decimal.Zero,
		status:       StatusOpen,
		createdBy:    createdBy,
	}, nil
}

func ReconstructSession(
	id uuid.UUID,
	customerName string,
	startedAt time.Time,
	endedAt *time.Time,
	hourlyRate, total decimal.Decimal,
	method *payment.Method,
	status Status,
	createdBy uuid.UUID,
) *Session {
	return &Session{
		id:           id,
		customerName: customerName,
		startedAt:    startedAt,
		endedAt:      endedAt,
		hourlyRate:   hourlyRate,
		total:        total,
		method:       method,
		status:       status,
		createdBy:    createdBy,
	}
}

// Close bills started minutes at the hourly rate, rounded to cents.
func (s *Session) Close(now time.Time, method payment.Method) error {
	if s.status == StatusClosed {
		return ErrAlreadyClosed
	}
	if !method.IsValid() {
		return payment.ErrInvalidMethod
	}
	if now.Before(s.startedAt) {
		return ErrEndBeforeStart
	}

	s.total = ChargeFor(now.Sub(s.startedAt), s.hourlyRate)
	end := now
	s.endedAt = &end
	s.method = &method
	s.status = StatusClosed
	return nil
}

// ChargeFor rounds the duration up to whole minutes.
func ChargeFor(d time.Duration, hourlyRate decimal.Decimal) decimal.Decimal {
	minutes := int64(d / time.Minute)
	if d%time.Minute != 0 {
		minutes++
	}
	return hourlyRate.Mul(decimal.NewFromInt(minutes)).Div(minutesPerHour).Round(2)
}

func (s *Session) ID() uuid.UUID               { return s.id }
func (s *Session) CustomerName() string        { return s.customerName }
func (s *Session) StartedAt() time.Time        { return s.startedAt }
func (s *Session) EndedAt() *time.Time         { return s.endedAt }
func (s *Session) HourlyRate() decimal.Decimal { return s.hourlyRate }
func (s *Session) Total() decimal.Decimal      { return s.total }
func (s *Session) Method() *payment.Method     { return s.method }
func (s *Session) Status() Status              { return s.status }
func (s *Session) CreatedBy() uuid.UUID        { return s.createdBy }
