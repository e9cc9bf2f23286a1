package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"chatterbox/server/internal/apperr"
	"chatterbox/server/internal/models"
	"chatterbox/server/internal/store"
)

// ChannelService enforces the membership and channel-lifecycle rules:
// bidirectional membership bookkeeping, creator authority and
// duplicate-name translation. Every multi-record mutation runs inside a
// single store transaction so both sides of the membership relation move
// together.
type ChannelService struct {
	store store.Store
}

func NewChannelService(s store.Store) *ChannelService {
	return &ChannelService{store: s}
}

// Create creates a channel with the creator as its sole member and records
// the channel in the creator's joined list.
func (s *ChannelService) Create(ctx context.Context, name, description, creatorID string) (*models.ChannelResponse, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)

	if name == "" {
		return nil, apperr.Validation("Channel name is required")
	}
	if utf8.RuneCountInString(name) < 2 {
		return nil, apperr.Validation("Channel name must be at least 2 characters")
	}
	if utf8.RuneCountInString(name) > 50 {
		return nil, apperr.Validation("Channel name must be less than 50 characters")
	}
	if utf8.RuneCountInString(description) > 500 {
		return nil, apperr.Validation("Description must be less than 500 characters")
	}

	var created *models.Channel
	err := s.store.Transact(ctx, func(tx store.Store) error {
		channel, err := tx.CreateChannel(ctx, &models.Channel{
			Name:        name,
			Description: description,
			CreatedBy:   creatorID,
			MemberIDs:   []string{creatorID},
		})
		if err != nil {
			return err
		}
		if err := tx.AddJoinedChannel(ctx, creatorID, channel.ID); err != nil {
			return err
		}
		created = channel
		return nil
	})
	if err != nil {
		var dup *store.DuplicateError
		if errors.As(err, &dup) {
			return nil, apperr.Duplicate("A channel with this name already exists")
		}
		return nil, err
	}

	return s.resolve(ctx, created)
}

// List returns every channel. Channel discovery is public; channel content
// is not.
func (s *ChannelService) List(ctx context.Context) ([]models.ChannelResponse, error) {
	channels, err := s.store.ListChannels(ctx)
	if err != nil {
		return nil, err
	}

	resolved := make([]models.ChannelResponse, 0, len(channels))
	for i := range channels {
		resp, err := s.resolve(ctx, &channels[i])
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, *resp)
	}
	return resolved, nil
}

// Get returns a single channel with members and creator resolved.
func (s *ChannelService) Get(ctx context.Context, channelID string) (*models.ChannelResponse, error) {
	channel, err := s.getChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, channel)
}

// Join adds the user to the channel's member set and the channel to the
// user's joined list.
func (s *ChannelService) Join(ctx context.Context, channelID, userID string) (*models.ChannelResponse, error) {
	channel, err := s.getChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}

	if lo.Contains(channel.MemberIDs, userID) {
		return nil, apperr.AlreadyMember()
	}

	err = s.store.Transact(ctx, func(tx store.Store) error {
		if err := tx.AddChannelMember(ctx, channel.ID, userID); err != nil {
			return err
		}
		return tx.AddJoinedChannel(ctx, userID, channel.ID)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, channel.ID)
}

// Leave removes the user from both sides of the membership relation.
// When the creator leaves, ownership transfers to the earliest remaining
// member; a creator who is the only member disbands the channel, in which
// case Leave returns a nil channel.
func (s *ChannelService) Leave(ctx context.Context, channelID, userID string) (*models.ChannelResponse, error) {
	channel, err := s.getChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}

	if !lo.Contains(channel.MemberIDs, userID) {
		return nil, apperr.NotAMember("You are not a member of this channel")
	}

	if channel.CreatedBy == userID {
		remaining := lo.Without(channel.MemberIDs, userID)
		if len(remaining) == 0 {
			if err := s.deleteCascade(ctx, channel); err != nil {
				return nil, err
			}
			return nil, nil
		}

		err = s.store.Transact(ctx, func(tx store.Store) error {
			if err := tx.SetChannelCreator(ctx, channel.ID, remaining[0]); err != nil {
				return err
			}
			if err := tx.RemoveChannelMember(ctx, channel.ID, userID); err != nil {
				return err
			}
			return tx.RemoveJoinedChannel(ctx, userID, channel.ID)
		})
		if err != nil {
			return nil, err
		}
		return s.Get(ctx, channel.ID)
	}

	err = s.store.Transact(ctx, func(tx store.Store) error {
		if err := tx.RemoveChannelMember(ctx, channel.ID, userID); err != nil {
			return err
		}
		return tx.RemoveJoinedChannel(ctx, userID, channel.ID)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, channel.ID)
}

// Delete removes a channel, its messages and every back-reference from its
// members' joined lists. Creator only; all-or-nothing.
func (s *ChannelService) Delete(ctx context.Context, channelID, requesterID string) error {
	channel, err := s.getChannel(ctx, channelID)
	if err != nil {
		return err
	}

	if channel.CreatedBy != requesterID {
		return apperr.NotAuthorized("Only the creator can delete this channel")
	}

	return s.deleteCascade(ctx, channel)
}

func (s *ChannelService) deleteCascade(ctx context.Context, channel *models.Channel) error {
	return s.store.Transact(ctx, func(tx store.Store) error {
		for _, memberID := range channel.MemberIDs {
			if err := tx.RemoveJoinedChannel(ctx, memberID, channel.ID); err != nil {
				return err
			}
		}
		if err := tx.DeleteChannelMessages(ctx, channel.ID); err != nil {
			return err
		}
		return tx.DeleteChannel(ctx, channel.ID)
	})
}

// getChannel validates the id shape and fetches the channel.
func (s *ChannelService) getChannel(ctx context.Context, channelID string) (*models.Channel, error) {
	if _, err := uuid.Parse(channelID); err != nil {
		return nil, apperr.InvalidID("channel")
	}

	channel, err := s.store.GetChannelByID(ctx, channelID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("Channel")
		}
		return nil, err
	}
	return channel, nil
}

// resolve expands member and creator ids into display identities, keeping
// member order (join order). Members are plain ids everywhere inside the
// core; this is the only place references get expanded.
func (s *ChannelService) resolve(ctx context.Context, channel *models.Channel) (*models.ChannelResponse, error) {
	users, err := s.store.GetUsersByIDs(ctx, channel.MemberIDs)
	if err != nil {
		return nil, err
	}

	byID := lo.SliceToMap(users, func(u models.User) (string, models.User) {
		return u.ID, u
	})

	members := make([]models.UserResponse, 0, len(channel.MemberIDs))
	for _, id := range channel.MemberIDs {
		if user, ok := byID[id]; ok {
			members = append(members, user.ToResponse())
		}
	}

	resp := &models.ChannelResponse{
		ID:          channel.ID,
		Name:        channel.Name,
		Description: channel.Description,
		Members:     members,
		CreatedAt:   channel.CreatedAt,
	}
	if creator, ok := byID[channel.CreatedBy]; ok {
		resp.CreatedBy = creator.ToResponse()
	}
	return resp, nil
}
