package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/verbaly/cefr-coach/domain"
	"github.com/verbaly/cefr-coach/utils/log"
)

// FallbackReply masks a completion that succeeded at the transport level but
// carried no text.
const FallbackReply = "I couldn't generate a response."

// cannedReplies short-circuits a handful of common openers so a bare
// greeting never costs an upstream call. Keys are lowercased and trimmed;
// matching is exact.
var cannedReplies = map[string]string{
	"hello": "Hi! I'm Mia, your English interviewer. Ready when you are - tell me a little about yourself.",
	"hi":    "Hi! I'm Mia, your English interviewer. Ready when you are - tell me a little about yourself.",
	"hey":   "Hey! I'm Mia, your English interviewer. Shall we start? Tell me a little about yourself.",
	"help":  "I'll ask you a few questions, from easy to harder, and estimate your CEFR level (A1-C2). Just answer naturally. Say hello when you're ready!",
	"start": "Great, let's begin! First, an easy one: what is your name, and where are you from?",
}

type ChatService struct {
	completer domain.Completer
}

func NewChatService(completer domain.Completer) *ChatService {
	return &ChatService{completer: completer}
}

// Respond runs one interview turn. The latest utterance is checked against
// the canned-reply table first; everything else is prefixed with the
// variant's system prompt and proxied to the completion provider.
func (s *ChatService) Respond(ctx context.Context, variant domain.Variant, history []domain.ChatMessage, message string) (string, error) {
	latest := latestUtterance(history, message)
	if strings.TrimSpace(latest) == "" {
		return "", domain.ErrNoInput
	}

	if reply, ok := cannedReplies[normalize(latest)]; ok {
		log.WithCtx(ctx).Debug("canned reply served", zap.String("trigger", normalize(latest)))
		return reply, nil
	}

	reply, err := s.completer.Complete(ctx, assemble(variant, history, message))
	if err != nil {
		return "", err
	}
	if reply == "" {
		log.WithCtx(ctx).Warn("completion carried no text, substituting fallback")
		return FallbackReply, nil
	}
	return reply, nil
}

// latestUtterance picks the text to react to: the last history entry when a
// history is supplied, the single message otherwise.
func latestUtterance(history []domain.ChatMessage, message string) string {
	if len(history) > 0 {
		return history[len(history)-1].Content
	}
	return message
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// assemble builds the turn sequence for the provider: the system prompt
// first, then the whole client-supplied history, or a single user turn when
// only a message was given.
func assemble(variant domain.Variant, history []domain.ChatMessage, message string) []domain.ChatMessage {
	turns := make([]domain.ChatMessage, 0, len(history)+2)
	turns = append(turns, domain.ChatMessage{
		Role:    domain.SystemRole,
		Content: buildSystemPrompt(variant),
	})
	if len(history) > 0 {
		turns = append(turns, history...)
	} else {
		turns = append(turns, domain.ChatMessage{
			Role:    domain.UserRole,
			Content: message,
		})
	}
	return turns
}
