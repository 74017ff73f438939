package booking

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"salon-bot/internal/llm"
	"salon-bot/internal/nlp"
	"salon-bot/internal/observability"
	"salon-bot/internal/session"
	"salon-bot/internal/storage"
)

const defaultReplayWindow = 50

// Engine is the single booking-intent engine shared by both delivery
// channels. Transports translate their inbound event into
// (userID, displayName, text) and format the returned reply; everything
// else happens here.
type Engine struct {
	store   *session.Store
	llm     llm.Client
	catalog *Catalog
	exec    *Executor
	fuzzy   *nlp.Fuzzy

	recorder     storage.Recorder
	metrics      *observability.Metrics
	replayWindow int
	now          func() time.Time
}

func NewEngine(store *session.Store, llmClient llm.Client, catalog *Catalog, fz *nlp.Fuzzy) *Engine {
	return &Engine{
		store:        store,
		llm:          llmClient,
		catalog:      catalog,
		exec:         NewExecutor(catalog, store),
		fuzzy:        fz,
		replayWindow: defaultReplayWindow,
		now:          time.Now,
	}
}

func (e *Engine) SetRecorder(r storage.Recorder)      { e.recorder = r }
func (e *Engine) SetMetrics(m *observability.Metrics) { e.metrics = m }
func (e *Engine) SetReplayWindow(n int)               { e.replayWindow = n }
func (e *Engine) Executor() *Executor                 { return e.exec }

// Handle processes one inbound message and returns the reply text. Every
// error surfaces as a user-facing reply; nothing escapes the handler.
func (e *Engine) Handle(ctx context.Context, userID, displayName, text string) string {
	e.store.AppendUser(userID, text)

	reply, path := e.dispatch(ctx, userID, displayName, text)

	e.store.AppendAssistant(userID, reply)
	e.countMessage(path)
	e.record(userID, text, reply, path)
	return reply
}

func (e *Engine) dispatch(ctx context.Context, userID, displayName, text string) (reply, path string) {
	if isPhoneNumber(text) {
		e.store.SetPhone(userID, text)
		return phoneSavedReply(text), "phone"
	}

	if !nlp.IsBooking(text) {
		return e.chat(ctx, userID, text), "chat"
	}

	log.Printf("booking detected for %s: %q", userID, text)

	in := ExtractIntent(text, e.now(), e.fuzzy)
	in = OverlayHistory(in, e.store.History(userID), e.replayWindow, e.now(), e.fuzzy)

	if in.Complete() {
		return e.executeDirect(ctx, userID, displayName, in), "booking_direct"
	}
	return e.bookingViaLLM(ctx, userID, displayName, text), "booking_llm"
}

// executeDirect books a fully extracted intent without involving the LLM.
func (e *Engine) executeDirect(ctx context.Context, userID, displayName string, in Intent) string {
	phone, ok := e.store.Phone(userID)
	if !ok {
		return phoneRequestReply
	}

	if _, err := e.exec.Execute(ctx, userID, in, phone, displayName); err != nil {
		return e.executionFailure(in, err)
	}
	e.countBooking("created")
	return bookingCreatedReply(in)
}

// bookingViaLLM hands the incomplete dialogue to the LLM, which either
// asks a clarifying question or emits a ЗАПИСЬ directive that is parsed
// back into a second, LLM-derived intent.
func (e *Engine) bookingViaLLM(ctx context.Context, userID, displayName, text string) string {
	history := e.store.HistoryText(userID, e.replayWindow)
	apiData := e.catalog.Describe(ctx)
	prompt := renderBookingPrompt(history, apiData, text)

	answer, err := e.generate(ctx, "booking", prompt)
	if err != nil {
		log.Printf("llm booking call failed for %s: %v", userID, err)
		return llmErrorReply
	}

	if !HasDirective(answer) {
		return answer
	}

	in, ok := ParseDirective(answer)
	if !ok {
		// Malformed directive: fail closed, no partial recovery.
		return clarifyReply
	}

	phone, hasPhone := e.store.Phone(userID)
	if !hasPhone {
		return phoneRequestReply
	}

	if _, err := e.exec.Execute(ctx, userID, in, phone, displayName); err != nil {
		return answer + "\n\n" + e.executionFailure(in, err)
	}
	e.countBooking("created")
	return "🎉 *Запись успешно создана в системе!* 🎉\n\n" +
		strings.Replace(answer, directiveMarker, "📅 *Создана запись:*", 1)
}

func (e *Engine) chat(ctx context.Context, userID, text string) string {
	prompt := renderChatPrompt(e.store.HistoryText(userID, 0), text)
	answer, err := e.generate(ctx, "chat", prompt)
	if err != nil {
		log.Printf("llm chat call failed for %s: %v", userID, err)
		return llmErrorReply
	}
	return answer
}

func (e *Engine) generate(ctx context.Context, mode, prompt string) (string, error) {
	resp, err := e.llm.Generate(ctx, []llm.Message{{Role: "user", Content: prompt}})
	if err != nil {
		e.countLLM(mode, "error")
		return "", err
	}
	e.countLLM(mode, "ok")
	log.Printf("llm response [model=%s, tokens: prompt=%d, completion=%d, total=%d]",
		resp.Model, resp.PromptTokens, resp.CompletionTokens, resp.TotalTokens)
	return resp.Content, nil
}

// executionFailure converts an executor error into the user-facing reply.
// Conflict-like platform errors are detected by substring, a deliberately
// loose heuristic.
func (e *Engine) executionFailure(in Intent, err error) string {
	log.Printf("booking execution failed: %v", err)
	if errors.Is(err, ErrMissingPhone) {
		return phoneRequestReply
	}
	if isConflict(err) {
		e.countBooking("conflict")
		return conflictReply(in)
	}
	e.countBooking("error")
	if e.metrics != nil {
		e.metrics.PlatformErrors.Inc()
	}
	return bookingErrorReply(err)
}

func isConflict(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "недоступно") || strings.Contains(msg, "conflict")
}

// isPhoneNumber accepts a leading "+" and a minimum length, nothing more.
func isPhoneNumber(text string) bool {
	return strings.HasPrefix(text, "+") && utf8.RuneCountInString(text) >= 10
}

func (e *Engine) countMessage(path string) {
	if e.metrics != nil {
		e.metrics.Messages.WithLabelValues(path).Inc()
	}
}

func (e *Engine) countBooking(outcome string) {
	if e.metrics != nil {
		e.metrics.Bookings.WithLabelValues(outcome).Inc()
	}
}

func (e *Engine) countLLM(mode, outcome string) {
	if e.metrics != nil {
		e.metrics.LLMRequests.WithLabelValues(mode, outcome).Inc()
	}
}

func (e *Engine) record(userID, text, reply, path string) {
	if e.recorder == nil {
		return
	}
	ev := storage.Event{
		Time:   e.now(),
		UserID: userID,
		Text:   text,
		Reply:  reply,
		Path:   path,
	}
	if err := e.recorder.AppendInteraction(ev); err != nil {
		log.Printf("failed to record interaction: %v", err)
	}
}
