package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rentify-backend-go/internal/kv"
	"rentify-backend-go/internal/models"
)

type messageService struct {
	store   kv.Store
	indexes *indexStore
	logger  *zap.Logger
}

// NewMessageService creates a MessageService. Appends to a thread's
// message list serialize on the canonical conversation key.
func NewMessageService(store kv.Store, locks *KeyLock, logger *zap.Logger) MessageService {
	return &messageService{
		store:   store,
		indexes: &indexStore{store: store, locks: locks},
		logger:  logger,
	}
}

func (s *messageService) Send(ctx context.Context, senderID string, req models.SendMessageRequest) (*models.Message, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}
	if req.ReceiverID == "" {
		return nil, fmt.Errorf("%w: receiverId is required", ErrValidation)
	}
	if req.ReceiverID == senderID {
		return nil, fmt.Errorf("%w: cannot message yourself", ErrValidation)
	}
	if _, err := getRecord[models.User](ctx, s.store, kv.UserKey(req.ReceiverID)); err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: receiver %q", ErrNotFound, req.ReceiverID)
		}
		return nil, fmt.Errorf("get receiver %q: %w", req.ReceiverID, err)
	}

	message := &models.Message{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
		Timestamp:  time.Now().UTC(),
	}

	if err := putRecord(ctx, s.store, kv.MessageKey(message.ID), message); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	// Send order is the append order on the canonical thread key.
	if err := s.indexes.append(ctx, kv.ConversationKey(senderID, req.ReceiverID), message.ID); err != nil {
		return nil, fmt.Errorf("index message: %w", err)
	}
	if err := s.indexes.appendUnique(ctx, kv.ConversationsKey(senderID), req.ReceiverID); err != nil {
		return nil, fmt.Errorf("index sender conversation: %w", err)
	}
	if err := s.indexes.appendUnique(ctx, kv.ConversationsKey(req.ReceiverID), senderID); err != nil {
		return nil, fmt.Errorf("index receiver conversation: %w", err)
	}

	s.logger.Debug("message sent",
		zap.String("messageId", message.ID),
		zap.String("senderId", senderID),
		zap.String("receiverId", req.ReceiverID))
	return message, nil
}

func (s *messageService) ListBetween(ctx context.Context, userA, userB string) ([]*models.Message, error) {
	ids, err := s.indexes.ids(ctx, kv.ConversationKey(userA, userB))
	if err != nil {
		return nil, fmt.Errorf("read conversation index: %w", err)
	}
	messages := make([]*models.Message, 0, len(ids))
	for _, id := range ids {
		message, err := getRecord[models.Message](ctx, s.store, kv.MessageKey(id))
		if errors.Is(err, kv.ErrKeyNotFound) || errors.Is(err, kv.ErrCorruptRecord) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolve message %q: %w", id, err)
		}
		messages = append(messages, message)
	}
	return messages, nil
}

func (s *messageService) ListConversations(ctx context.Context, uid string) ([]*models.Conversation, error) {
	partners, err := s.indexes.ids(ctx, kv.ConversationsKey(uid))
	if err != nil {
		return nil, fmt.Errorf("read partner index: %w", err)
	}

	conversations := make([]*models.Conversation, 0, len(partners))
	for _, partnerID := range partners {
		partner, err := getRecord[models.User](ctx, s.store, kv.UserKey(partnerID))
		if errors.Is(err, kv.ErrKeyNotFound) || errors.Is(err, kv.ErrCorruptRecord) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolve partner %q: %w", partnerID, err)
		}

		conversation := &models.Conversation{
			UserID:     partner.ID,
			UserName:   partner.Name,
			UserAvatar: partner.Avatar,
		}

		ids, err := s.indexes.ids(ctx, kv.ConversationKey(uid, partnerID))
		if err != nil {
			return nil, fmt.Errorf("read conversation index: %w", err)
		}
		// Walk back from the tail until a message resolves; orphaned
		// ids at the end must not blank the preview.
		for i := len(ids) - 1; i >= 0; i-- {
			last, err := getRecord[models.Message](ctx, s.store, kv.MessageKey(ids[i]))
			if errors.Is(err, kv.ErrKeyNotFound) || errors.Is(err, kv.ErrCorruptRecord) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("resolve message %q: %w", ids[i], err)
			}
			conversation.LastMessage = last.Content
			conversation.LastMessageTime = last.Timestamp
			break
		}

		conversations = append(conversations, conversation)
	}

	sort.SliceStable(conversations, func(i, j int) bool {
		return conversations[i].LastMessageTime.After(conversations[j].LastMessageTime)
	})
	return conversations, nil
}
