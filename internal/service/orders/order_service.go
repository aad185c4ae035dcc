package orders

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/Domenick1991/lessonbooking/internal/domain"
	"github.com/Domenick1991/lessonbooking/internal/kafka"
	"github.com/Domenick1991/lessonbooking/internal/repository"
	"github.com/google/uuid"
)

var (
	ErrMissingFields    = errors.New("Missing required fields.")
	ErrInvalidFirstName = errors.New("Invalid first name.")
	ErrInvalidLastName  = errors.New("Invalid last name.")
	ErrInvalidPhone     = errors.New("Invalid phone number.")
	ErrAddressRequired  = errors.New("Address is required for home delivery.")
	ErrInvalidZip       = errors.New("Invalid ZIP code.")
	ErrInvalidQuantity  = errors.New("Invalid lesson quantity.")
)

var (
	nameRe  = regexp.MustCompile(`^[A-Za-z]+$`)
	phoneRe = regexp.MustCompile(`^[0-9]{7,15}$`)
	zipRe   = regexp.MustCompile(`^\d{5}$`)
)

type OrderUseCase interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
}

type Cache interface {
	InvalidateLessons(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type OrderService struct {
	orders             repository.OrderRepository
	cache              Cache
	producer           Producer
	orderTopic         string
	notificationsTopic string
}

// PlaceOrderInput is the client-submitted order. Zip is declared as any
// because clients send it both as a string and as a bare number; it is
// coerced to a string before validation.
type PlaceOrderInput struct {
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	Phone     string          `json:"phone"`
	Method    string          `json:"method"`
	Address   string          `json:"address"`
	Zip       any             `json:"zip"`
	Lessons   []LineItemInput `json:"lessons"`
}

type LineItemInput struct {
	LessonID int64 `json:"lessonId"`
	Quantity int   `json:"quantity"`
}

type OrderServiceOption func(*OrderService)

func WithNotificationsTopic(topic string) OrderServiceOption {
	return func(s *OrderService) {
		s.notificationsTopic = topic
	}
}

func NewOrderService(
	orders repository.OrderRepository,
	cache Cache,
	producer Producer,
	orderTopic string,
	opts ...OrderServiceOption,
) *OrderService {
	service := &OrderService{
		orders:     orders,
		cache:      cache,
		producer:   producer,
		orderTopic: orderTopic,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// PlaceOrder validates the submitted order and reserves space for every line
// item. The reservation is all-or-nothing: on any capacity or lookup failure
// no lesson keeps a decrement and no order is written.
func (s *OrderService) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*domain.Order, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	items := make([]domain.LineItem, 0, len(input.Lessons))
	for _, l := range input.Lessons {
		items = append(items, domain.LineItem{LessonID: l.LessonID, Quantity: l.Quantity})
	}

	order := &domain.Order{
		ID:        uuid.NewString(),
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Phone:     input.Phone,
		Method:    input.Method,
		Address:   strings.TrimSpace(input.Address),
		Zip:       zipString(input.Zip),
		Items:     items,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateLessons(ctx)
	}
	if err := s.publish(ctx, "order_created", order); err != nil {
		log.Printf("WARNING: failed to publish order_created event for order %s: %v", order.ID, err)
	}
	return order, nil
}

func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}

// validate applies the checks in a fixed order; the first failure wins.
func validate(input PlaceOrderInput) error {
	if input.FirstName == "" || input.LastName == "" || input.Phone == "" || input.Method == "" || len(input.Lessons) == 0 {
		return ErrMissingFields
	}
	if !nameRe.MatchString(strings.TrimSpace(input.FirstName)) {
		return ErrInvalidFirstName
	}
	if !nameRe.MatchString(strings.TrimSpace(input.LastName)) {
		return ErrInvalidLastName
	}
	if !phoneRe.MatchString(input.Phone) {
		return ErrInvalidPhone
	}
	if input.Method == domain.MethodHomeDelivery {
		if strings.TrimSpace(input.Address) == "" {
			return ErrAddressRequired
		}
		if !zipRe.MatchString(zipString(input.Zip)) {
			return ErrInvalidZip
		}
	}
	for _, l := range input.Lessons {
		if l.Quantity <= 0 {
			return ErrInvalidQuantity
		}
	}
	return nil
}

func zipString(v any) string {
	switch z := v.(type) {
	case nil:
		return ""
	case string:
		return z
	case float64:
		return strconv.FormatFloat(z, 'f', -1, 64)
	default:
		return ""
	}
}

// IsClientError reports whether err should surface as a 400 rather than a
// generic server error.
func IsClientError(err error) bool {
	for _, target := range []error{
		ErrMissingFields,
		ErrInvalidFirstName,
		ErrInvalidLastName,
		ErrInvalidPhone,
		ErrAddressRequired,
		ErrInvalidZip,
		ErrInvalidQuantity,
		repository.ErrLessonNotFound,
		repository.ErrInsufficientSpace,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (s *OrderService) publish(ctx context.Context, eventType string, order *domain.Order) error {
	if s.producer == nil || s.orderTopic == "" {
		return nil
	}
	lessons := make([]kafka.OrderEventItem, 0, len(order.Items))
	for _, item := range order.Items {
		lessons = append(lessons, kafka.OrderEventItem{
			LessonID:   item.LessonID,
			LessonName: item.LessonName,
			Quantity:   item.Quantity,
		})
	}
	event := kafka.OrderEvent{
		Type:      eventType,
		OrderID:   order.ID,
		FirstName: order.FirstName,
		LastName:  order.LastName,
		Phone:     order.Phone,
		Method:    order.Method,
		Lessons:   lessons,
		CreatedAt: order.CreatedAt,
	}
	if err := s.producer.Publish(ctx, s.orderTopic, order.ID, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, order.ID, event)
	}
	return nil
}

var _ OrderUseCase = (*OrderService)(nil)
