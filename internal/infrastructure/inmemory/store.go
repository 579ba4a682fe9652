package inmemory

import (
	"context"
	"sync"
	"time"

	"github.com/osei-labs/marketplace-payment-service/internal/domain"
)

// Store is an in-memory implementation of the payment and order
// repositories. Reconcile calls serialize per reference, mirroring the
// row-level locking of the postgres repository.
type Store struct {
	mu       sync.Mutex
	payments map[string]*domain.Payment // keyed by reference
	orders   map[string]*domain.Order   // keyed by order id
	refLocks map[string]*sync.Mutex
}

func NewStore() *Store {
	return &Store{
		payments: make(map[string]*domain.Payment),
		orders:   make(map[string]*domain.Order),
		refLocks: make(map[string]*sync.Mutex),
	}
}

func (s *Store) SeedOrder(order *domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *order
	s.orders[order.ID] = &copied
}

func (s *Store) GetOrderByID(_ context.Context, orderID string) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (s *Store) CreatePayment(_ context.Context, payment *domain.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.payments[payment.Reference]; ok {
		return domain.ErrPaymentExists
	}
	for _, p := range s.payments {
		if p.OrderID == payment.OrderID {
			return domain.ErrPaymentExists
		}
	}
	copied := clonePayment(payment)
	s.payments[payment.Reference] = copied
	return nil
}

func (s *Store) GetPaymentByReference(_ context.Context, reference string) (*domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	payment, ok := s.payments[reference]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	return clonePayment(payment), nil
}

func (s *Store) GetPaymentByOrderID(_ context.Context, orderID string) (*domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.payments {
		if p.OrderID == orderID {
			return clonePayment(p), nil
		}
	}
	return nil, domain.ErrPaymentNotFound
}

func (s *Store) ReconcileTx(_ context.Context, reference string, apply domain.ReconcileFunc) error {
	refLock := s.lockFor(reference)
	refLock.Lock()
	defer refLock.Unlock()

	s.mu.Lock()
	stored, ok := s.payments[reference]
	if !ok {
		s.mu.Unlock()
		return domain.ErrPaymentNotFound
	}
	order, ok := s.orders[stored.OrderID]
	if !ok {
		s.mu.Unlock()
		return domain.ErrOrderNotFound
	}
	payment := clonePayment(stored)
	orderCopy := *order
	s.mu.Unlock()

	dirty, err := apply(payment, &orderCopy)
	if err != nil {
		return err
	}
	if !dirty {
		return nil
	}

	s.mu.Lock()
	payment.UpdatedAt = time.Now()
	orderCopy.UpdatedAt = payment.UpdatedAt
	s.payments[reference] = payment
	s.orders[orderCopy.ID] = &orderCopy
	s.mu.Unlock()
	return nil
}

func (s *Store) RegisterRetry(_ context.Context, reference string, now time.Time, maxAttempts int, cooldown time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	payment, ok := s.payments[reference]
	if !ok {
		return false, nil
	}
	if payment.RetryCount >= maxAttempts {
		return false, nil
	}
	if payment.LastRetryAt != nil && payment.LastRetryAt.After(now.Add(-cooldown)) {
		return false, nil
	}
	payment.RetryCount++
	retryAt := now
	payment.LastRetryAt = &retryAt
	return true, nil
}

func (s *Store) lockFor(reference string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.refLocks[reference]
	if !ok {
		lock = &sync.Mutex{}
		s.refLocks[reference] = lock
	}
	return lock
}

func clonePayment(p *domain.Payment) *domain.Payment {
	copied := *p
	if p.Metadata != nil {
		copied.Metadata = make(map[string]any, len(p.Metadata))
		for k, v := range p.Metadata {
			copied.Metadata[k] = v
		}
	}
	if p.LastRetryAt != nil {
		retryAt := *p.LastRetryAt
		copied.LastRetryAt = &retryAt
	}
	return &copied
}
