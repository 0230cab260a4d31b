package hermes

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/augur/internal/mode"
	"github.com/MikeSquared-Agency/augur/internal/signals"
)

const (
	SubjectEntrySubmitted  = "augur.entry.submitted"
	SubjectModeDecided     = "augur.mode.decided"
	SubjectModeChanged     = "augur.mode.changed"
	SubjectAgentRegistered = "augur.agent.registered"

	// QueueGroup spreads entry events across replicas.
	QueueGroup = "augur"
)

// EntryEvent is a diary entry waiting for a mode decision.
type EntryEvent struct {
	EntryID      string `json:"entry_id"`
	OwnerUUID    string `json:"owner_uuid"`
	Text         string `json:"text"`
	PreviousMode string `json:"previous_mode,omitempty"`
}

// Owner parses the owner id.
func (e EntryEvent) Owner() (uuid.UUID, error) {
	id, err := uuid.Parse(e.OwnerUUID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse owner uuid %q: %w", e.OwnerUUID, err)
	}
	return id, nil
}

// Previous returns the caller-supplied previous mode and whether it was a
// known label.
func (e EntryEvent) Previous() (mode.Mode, bool) {
	if e.PreviousMode == "" {
		return mode.None, false
	}
	return mode.Parse(e.PreviousMode)
}

// DecisionEvent is published for every decided entry.
type DecisionEvent struct {
	DecisionID   string         `json:"decision_id,omitempty"`
	EntryID      string         `json:"entry_id"`
	OwnerUUID    string         `json:"owner_uuid"`
	Mode         mode.Mode      `json:"mode"`
	PreviousMode mode.Mode      `json:"previous_mode,omitempty"`
	Changed      bool           `json:"changed"`
	Signals      signals.Vector `json:"signals"`
	Scores       mode.Scores    `json:"scores"`
	SignalSource string         `json:"signal_source"`
	DecidedAt    time.Time      `json:"decided_at"`
}

// ModeChangedEvent is published when the decided mode differs from the
// previous one.
type ModeChangedEvent struct {
	OwnerUUID string    `json:"owner_uuid"`
	EntryID   string    `json:"entry_id"`
	From      mode.Mode `json:"from"`
	To        mode.Mode `json:"to"`
	ChangedAt time.Time `json:"changed_at"`
}

// AgentRegistration announces the service on startup.
type AgentRegistration struct {
	AgentID      string   `json:"agent_id"`
	Name         string   `json:"name"`
	Role         string   `json:"role"`
	Capabilities []string `json:"capabilities"`
	Modes        []string `json:"modes"`
	Weights      string   `json:"weights"`
	SignalSource string   `json:"signal_source"`
}
