package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"chatterbox/server/internal/apperr"
	"chatterbox/server/internal/models"
	"chatterbox/server/internal/store"
)

const maxMessageLength = 2000

// MessageService gates message access on channel membership and authors
// new messages.
type MessageService struct {
	store    store.Store
	channels *ChannelService
}

func NewMessageService(s store.Store, channels *ChannelService) *MessageService {
	return &MessageService{store: s, channels: channels}
}

// ListForChannel returns the channel's full message history, oldest first,
// with senders resolved. Members only.
func (s *MessageService) ListForChannel(ctx context.Context, channelID, requesterID string) ([]models.MessageResponse, error) {
	channel, err := s.channels.getChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}

	if !lo.Contains(channel.MemberIDs, requesterID) {
		return nil, apperr.NotAMember("You must be a member of this channel to view messages")
	}

	messages, err := s.store.ListChannelMessages(ctx, channel.ID)
	if err != nil {
		return nil, err
	}

	senderIDs := lo.Uniq(lo.Map(messages, func(m models.Message, _ int) string {
		return m.SenderID
	}))
	senders, err := s.store.GetUsersByIDs(ctx, senderIDs)
	if err != nil {
		return nil, err
	}
	byID := lo.SliceToMap(senders, func(u models.User) (string, models.User) {
		return u.ID, u
	})

	resolved := make([]models.MessageResponse, 0, len(messages))
	for _, message := range messages {
		resp := models.MessageResponse{
			ID:        message.ID,
			Content:   message.Content,
			ChannelID: message.ChannelID,
			CreatedAt: message.CreatedAt,
		}
		if sender, ok := byID[message.SenderID]; ok {
			resp.Sender = sender.ToResponse()
		}
		resolved = append(resolved, resp)
	}
	return resolved, nil
}

// Send creates a message in the channel on behalf of the sender.
// Members only; content is trimmed and must be 1–2000 characters.
func (s *MessageService) Send(ctx context.Context, channelID, senderID, content string) (*models.MessageResponse, error) {
	// Id shape is checked before content so a malformed id reports as such.
	if _, err := uuid.Parse(channelID); err != nil {
		return nil, apperr.InvalidID("channel")
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.Validation("Message content is required")
	}
	if utf8.RuneCountInString(content) > maxMessageLength {
		return nil, apperr.Validation("Message must be less than 2000 characters")
	}

	channel, err := s.channels.getChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}

	if !lo.Contains(channel.MemberIDs, senderID) {
		return nil, apperr.NotAMember("You must be a member of this channel to send messages")
	}

	message, err := s.store.CreateMessage(ctx, &models.Message{
		Content:   content,
		SenderID:  senderID,
		ChannelID: channel.ID,
	})
	if err != nil {
		return nil, err
	}

	sender, err := s.store.GetUserByID(ctx, senderID)
	if err != nil {
		return nil, err
	}

	return &models.MessageResponse{
		ID:        message.ID,
		Content:   message.Content,
		Sender:    sender.ToResponse(),
		ChannelID: message.ChannelID,
		CreatedAt: message.CreatedAt,
	}, nil
}
