// Package workflow runs one conversational turn at a time: it threads a
// session through the ordered steps collecting_basics → collecting_details
// → finalizing → complete, calling out to the language model for replies
// and to the submission endpoint at finalization.
package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/hireloop/jobagent/config"
	"github.com/hireloop/jobagent/domain"
	"github.com/hireloop/jobagent/extract"
	"github.com/hireloop/jobagent/llm"
	"github.com/hireloop/jobagent/store"
	"github.com/hireloop/jobagent/submit"
)

// FallbackReply is returned when the language model fails or times out.
// The turn still completes and the session is still persisted.
const FallbackReply = "Sorry, I had trouble generating a reply just now. " +
	"Everything you told me has been saved, so please go on or try again."

// AlreadyCompleteReply is returned for turns on a completed session.
const AlreadyCompleteReply = "This job post is already complete. " +
	"Start a new session to create another one."

// Service executes conversational turns.
type Service struct {
	store     *store.Store
	llm       llm.LanguageModel
	submitter submit.Submitter
	cfg       *config.Config
}

// New creates a workflow service.
func New(st *store.Store, lm llm.LanguageModel, sub submit.Submitter, cfg *config.Config) *Service {
	return &Service{
		store:     st,
		llm:       lm,
		submitter: sub,
		cfg:       cfg,
	}
}

// StartSession creates a fresh session for the owner. A caller-supplied
// sessionID must be unique; domain.ErrDuplicateSession is returned on
// collision.
func (s *Service) StartSession(ctx context.Context, ownerID, ownerName, sessionID string) (*domain.Session, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("owner_id is required")
	}
	return s.store.Create(ctx, ownerID, ownerName, sessionID)
}

// Turn runs one request/response cycle on the session. Only
// domain.ErrSessionNotFound and storage write failures surface as errors;
// collaborator failures degrade into the reply text.
func (s *Service) Turn(ctx context.Context, sessionID, utterance string) (*domain.TurnResult, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// Completed sessions short-circuit; starting a new session is the
	// prescribed recovery.
	if session.IsComplete || session.CurrentStep.Terminal() {
		return turnResult(session, AlreadyCompleteReply), nil
	}

	session.AppendUser(utterance)

	partial := extract.Extract(utterance, &session.Record)
	session.Record = extract.Merge(session.Record, partial)

	reply := s.generateReply(ctx, session, utterance)

	switch session.CurrentStep {
	case domain.StepCollectingBasics:
		if session.Record.Populated(domain.FieldTitle) {
			session.CurrentStep = domain.StepCollectingDetails
		}
	case domain.StepCollectingDetails:
		if s.readyToFinalize(session, utterance) {
			session.CurrentStep = domain.StepFinalizing
			reply = s.finalize(ctx, session)
		}
	case domain.StepFinalizing:
		// A crash between finalizing and complete can leave a session
		// resting here; finish the job on the next turn.
		reply = s.finalize(ctx, session)
	}

	session.AppendAssistant(reply)

	if err := s.store.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to persist turn: %w", err)
	}
	return turnResult(session, reply), nil
}

// generateReply calls the language model with a bounded timeout and falls
// back to a fixed reply on any failure.
func (s *Service) generateReply(ctx context.Context, session *domain.Session, utterance string) string {
	llmCtx, cancel := context.WithTimeout(ctx, s.cfg.LLMTimeout)
	defer cancel()

	history := session.RecentHistory(s.cfg.HistoryWindow)
	reply, err := s.llm.Generate(llmCtx, s.systemPrompt(session), utterance, history)
	if err != nil {
		log.Printf("WARN: language model call failed for %s: %v", session.SessionID, err)
		return FallbackReply
	}
	return reply
}

// readyToFinalize evaluates the collecting_details → finalizing predicate:
// completion intent with the minimum fields present, or a completeness
// score at or above the configured threshold.
func (s *Service) readyToFinalize(session *domain.Session, utterance string) bool {
	if extract.MatchesCompletionIntent(utterance, s.cfg.CompletionPhrases) && s.minimumFieldsPresent(session) {
		return true
	}
	score := extract.CompletenessScore(&session.Record, s.cfg.FieldWeights)
	return score >= s.cfg.CompletenessThreshold
}

func (s *Service) minimumFieldsPresent(session *domain.Session) bool {
	return session.Record.Populated(domain.FieldTitle) &&
		session.Record.Populated(domain.FieldDescription)
}

// finalize submits the record and moves the session to complete. The
// transition happens whether or not submission succeeds; a failure is
// reported in the reply text, never as a turn error.
func (s *Service) finalize(ctx context.Context, session *domain.Session) string {
	submitCtx, cancel := context.WithTimeout(ctx, s.cfg.SubmitTimeout)
	defer cancel()

	result, err := s.submitter.Submit(submitCtx, &session.Record, session.OwnerID)
	if err != nil {
		log.Printf("WARN: submission failed for %s: %v", session.SessionID, err)
		result = &submit.Result{Success: false, Error: err.Error()}
	}

	session.CurrentStep = domain.StepComplete
	session.IsComplete = true

	if result.Success {
		reply := fmt.Sprintf("Your job post %q has been published.", session.Record.Title)
		if result.ReferenceID != "" {
			reply += fmt.Sprintf(" Reference: %s.", result.ReferenceID)
		}
		return reply
	}
	return fmt.Sprintf("Your job post %q is finished, but publishing it did not succeed (%s). "+
		"The draft has been saved; please retry the submission from the dashboard.",
		session.Record.Title, result.Error)
}

// systemPrompt renders the step, owner and current draft into the system
// prompt. Prompt wording is deliberately minimal; surrounding code owns
// prompt engineering.
func (s *Service) systemPrompt(session *domain.Session) string {
	var b strings.Builder
	b.WriteString("You are a recruiting assistant helping ")
	if session.OwnerName != "" {
		b.WriteString(session.OwnerName)
	} else {
		b.WriteString("a company")
	}
	b.WriteString(" create a job post through conversation.\n")
	fmt.Fprintf(&b, "Current step: %s.\n", session.CurrentStep)

	if draft, err := json.Marshal(session.Record); err == nil {
		fmt.Fprintf(&b, "Draft so far: %s\n", draft)
	}
	b.WriteString("Ask for the most important missing detail, one question at a time.")
	return b.String()
}

func turnResult(session *domain.Session, reply string) *domain.TurnResult {
	return &domain.TurnResult{
		Reply:       reply,
		SessionID:   session.SessionID,
		CurrentStep: session.CurrentStep,
		IsComplete:  session.IsComplete,
		Record:      session.Record,
	}
}
