package service

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/DragonEmporer001/fiverr-clone/internal/domain"
	"github.com/DragonEmporer001/fiverr-clone/internal/policy"
)

const msgConversationNotFound = "No such conversation found!"

// CreateConversation opens a conversation between the requester and "to".
// There is no existence check first: a second create for the same pair fails
// in the store.
func (s *Service) CreateConversation(ctx context.Context, r domain.Requester, to string) (*domain.Conversation, error) {
	if err := s.authorize(ctx, policy.Input{Action: policy.ActionCreate, Requester: r, To: to}); err != nil {
		return nil, err
	}

	conversation := domain.NewConversation(r, to, s.now())
	if err := s.store.CreateConversation(ctx, conversation); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}

	s.publish(ctx, domain.EventTypeConversationCreated, conversation)
	return conversation, nil
}

// ListConversations returns the conversations on the requester's side: as
// seller when acting as one, as buyer otherwise.
func (s *Service) ListConversations(ctx context.Context, r domain.Requester) ([]domain.Conversation, error) {
	var (
		conversations []domain.Conversation
		err           error
	)
	if r.IsSeller {
		conversations, err = s.store.ListConversationsBySeller(ctx, r.UserID)
	} else {
		conversations, err = s.store.ListConversationsByBuyer(ctx, r.UserID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	if conversations == nil {
		conversations = []domain.Conversation{}
	}
	return conversations, nil
}

// GetConversation returns one conversation the requester takes part in.
func (s *Service) GetConversation(ctx context.Context, r domain.Requester, conversationID string) (*domain.Conversation, error) {
	conversation, err := s.store.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	if conversation == nil {
		return nil, domain.NotFound(msgConversationNotFound)
	}

	if err := s.authorize(ctx, policy.Input{Action: policy.ActionRead, Requester: r, Conversation: conversation}); err != nil {
		return nil, err
	}
	return conversation, nil
}

// UpdateConversation marks the requester's side read and the other side
// unread, on the conversation with exactly this id.
func (s *Service) UpdateConversation(ctx context.Context, r domain.Requester, conversationID string) (*domain.Conversation, error) {
	current, err := s.store.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	if current == nil {
		return nil, domain.NotFound(msgConversationNotFound)
	}
	if err := s.authorize(ctx, policy.Input{Action: policy.ActionUpdate, Requester: r, Conversation: current}); err != nil {
		return nil, err
	}

	readBySeller, readByBuyer := domain.ReadFlags(r)
	updated, err := s.store.UpdateConversationRead(ctx, conversationID, readBySeller, readByBuyer, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to update conversation: %w", err)
	}
	if updated == nil {
		return nil, domain.NotFound(msgConversationNotFound)
	}

	s.publish(ctx, domain.EventTypeConversationRead, updated)
	return updated, nil
}

func (s *Service) authorize(ctx context.Context, in policy.Input) error {
	if s.policyEngine == nil {
		return nil
	}
	decision, err := s.policyEngine.Evaluate(ctx, in)
	if err != nil {
		return err
	}
	if !decision.Allow {
		return domain.NewError(http.StatusForbidden, decision.Reason)
	}
	return nil
}

func (s *Service) publish(ctx context.Context, eventType domain.EventType, c *domain.Conversation) {
	if s.notifier == nil {
		return
	}
	event := domain.Event{
		Type:         eventType,
		EventID:      "evt_" + uuid.New().String()[:8],
		Ts:           s.now().UnixMilli(),
		Conversation: c,
	}
	if err := s.notifier.Notify(ctx, []string{c.SellerID, c.BuyerID}, event); err != nil {
		log.Printf("WARN: failed to notify %s for %s: %v", eventType, c.ID, err)
	}
}
