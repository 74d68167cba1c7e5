package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/pageza/sousie/backend/internal/menu"
	"github.com/pageza/sousie/backend/internal/models"
	"github.com/pageza/sousie/backend/internal/prompts"
	"github.com/pageza/sousie/backend/internal/provider"
)

var (
	ErrProvider    = errors.New("language model request failed")
	ErrEmptyThread = errors.New("conversation has no messages")
)

// Turn is the outcome of one exchange with the model. Menu is nil when the
// reply carried nothing usable.
type Turn struct {
	ConversationID uuid.UUID
	Reply          string
	Menu           *menu.Menu
}

// TurnInput describes one exchange. A nil ConversationID starts a new
// conversation.
type TurnInput struct {
	UserID         uuid.UUID
	ConversationID uuid.UUID
	Template       prompts.Template
	System         string
	Messages       []provider.Message
	// Cuisine is only recorded in the recipe log.
	Cuisine string
}

// ChatService runs conversation turns: it relays the thread to the model,
// derives a menu from the reply, caches it and records the turn.
type ChatService struct {
	client  provider.ChatClient
	menus   MenuStore
	db      *gorm.DB
	archive *ReplyArchive
	log     logrus.FieldLogger
	now     func() time.Time
}

// NewChatService wires the chat pipeline. archive may be nil.
func NewChatService(client provider.ChatClient, menus MenuStore, db *gorm.DB, archive *ReplyArchive, log logrus.FieldLogger) *ChatService {
	return &ChatService{
		client:  client,
		menus:   menus,
		db:      db,
		archive: archive,
		log:     log,
		now:     time.Now,
	}
}

// Chat relays a conversational thread. TemplateSurprise appends the
// surprise request as the final user turn.
func (s *ChatService) Chat(ctx context.Context, userID, conversationID uuid.UUID, msgs []provider.Message, tpl prompts.Template) (*Turn, error) {
	thread := append([]provider.Message(nil), msgs...)
	if tpl == prompts.TemplateSurprise {
		thread = append(thread, provider.Message{Role: provider.RoleUser, Content: prompts.Surprise()})
	}
	if len(thread) == 0 {
		return nil, ErrEmptyThread
	}
	return s.Send(ctx, TurnInput{
		UserID:         userID,
		ConversationID: conversationID,
		Template:       tpl,
		System:         prompts.ChatSystem(),
		Messages:       thread,
	})
}

// GenerateMenu asks for a full menu built from the given ingredients. quick
// selects the one-main, two-sides prompt.
func (s *ChatService) GenerateMenu(ctx context.Context, userID uuid.UUID, ingredients, cuisine string, quick bool) (*Turn, error) {
	tpl, prompt := prompts.TemplateGenerate, prompts.GenerateMenu(ingredients)
	if quick {
		tpl, prompt = prompts.TemplateQuick, prompts.Quick(ingredients)
	}
	return s.Send(ctx, TurnInput{
		UserID:   userID,
		Template: tpl,
		Messages: []provider.Message{{Role: provider.RoleUser, Content: prompts.WithCuisine(prompt, cuisine)}},
		Cuisine:  cuisine,
	})
}

// Send runs one turn. Only a failed model call fails the turn; a reply
// without a menu is a normal outcome and clears the conversation's menu.
func (s *ChatService) Send(ctx context.Context, in TurnInput) (*Turn, error) {
	if len(in.Messages) == 0 {
		return nil, ErrEmptyThread
	}
	if in.ConversationID == uuid.Nil {
		in.ConversationID = uuid.New()
	}
	if in.Template == "" {
		in.Template = prompts.TemplateChat
	}

	log := s.log.WithFields(logrus.Fields{
		"user_id":         in.UserID,
		"conversation_id": in.ConversationID,
		"template":        in.Template,
	})

	reply, err := s.client.Complete(ctx, provider.Request{
		System:      in.System,
		Messages:    in.Messages,
		Temperature: 0.7,
		MaxTokens:   4096,
	})
	if err != nil {
		log.WithError(err).Error("LLM call failed")
		return nil, fmt.Errorf("%w: %w", ErrProvider, err)
	}

	m, parseErr := menu.Parse(reply, in.Template.Delimiters())
	switch {
	case parseErr == nil:
		log.WithFields(logrus.Fields{
			"mains": len(m.Mains),
			"sides": len(m.Sides),
		}).Debug("Menu derived from reply")
	case errors.Is(parseErr, menu.ErrNoPayload):
		log.Debug("Reply carried no menu")
	default:
		log.WithError(parseErr).Warn("Menu payload rejected")
	}

	if m != nil {
		err = s.menus.Save(ctx, in.UserID, in.ConversationID, m)
	} else {
		err = s.menus.Delete(ctx, in.UserID, in.ConversationID)
	}
	if err != nil {
		log.WithError(err).Warn("Failed to update cached menu")
	}

	s.record(ctx, log, in, reply, m, parseErr)

	return &Turn{
		ConversationID: in.ConversationID,
		Reply:          reply,
		Menu:           m,
	}, nil
}

// record writes the turn's logs concurrently. Failures are logged only.
func (s *ChatService) record(ctx context.Context, log logrus.FieldLogger, in TurnInput, reply string, m *menu.Menu, parseErr error) {
	at := s.now()
	var g errgroup.Group

	g.Go(func() error {
		thread, err := json.Marshal(in.Messages)
		if err != nil {
			return fmt.Errorf("failed to marshal thread: %w", err)
		}
		entry := &models.ChatLog{
			UserID:         in.UserID,
			ConversationID: in.ConversationID,
			Template:       string(in.Template),
			Thread:         string(thread),
			Reply:          reply,
			MenuFound:      m != nil,
		}
		if parseErr != nil {
			entry.ParseError = parseErr.Error()
		}
		if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
			return fmt.Errorf("failed to write chat log: %w", err)
		}
		return nil
	})

	if m != nil {
		g.Go(func() error {
			data, err := json.Marshal(m)
			if err != nil {
				return fmt.Errorf("failed to marshal menu: %w", err)
			}
			prompt := lastUserMessage(in.Messages)
			entry := &models.RecipeLog{
				UserID:         in.UserID,
				ConversationID: in.ConversationID,
				Prompt:         prompt,
				Cuisine:        in.Cuisine,
				Menu:           string(data),
				Embedding:      EmbedPrompt(prompt),
			}
			if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
				return fmt.Errorf("failed to write recipe log: %w", err)
			}
			return nil
		})
	}

	if s.archive != nil {
		g.Go(func() error {
			_, err := s.archive.Store(ctx, in.UserID, in.ConversationID, reply, at)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		log.WithError(err).Warn("Failed to record chat turn")
	}
}

// Menu returns the conversation's cached menu
func (s *ChatService) Menu(ctx context.Context, userID, conversationID uuid.UUID) (*menu.Menu, error) {
	return s.menus.Get(ctx, userID, conversationID)
}

// Reset forgets the conversation's menu
func (s *ChatService) Reset(ctx context.Context, userID, conversationID uuid.UUID) error {
	return s.menus.Delete(ctx, userID, conversationID)
}

func lastUserMessage(msgs []provider.Message) string {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == provider.RoleUser {
			return msgs[i].Content
		}
	}
	return ""
}
