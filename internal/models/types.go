package models

import (
	"time"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Direction says which side of the exchange a guardrail applies to.
type Direction string

const (
	DirectionInput  Direction = "input"
	DirectionOutput Direction = "output"
)

type Category string

const (
	CategoryTopic       Category = "topic"
	CategoryReadingTime Category = "reading_time"
	CategoryDarkWeb     Category = "darkweb"
)

type Severity string

const (
	SeverityInformational Severity = "informational"
	SeverityBlocking      Severity = "blocking"
)

// SourceAgent tags a reply that reached the user unmodified. Blocked
// replies carry "guardrail:<category>" instead.
const SourceAgent = "agent"

func GuardrailSource(category Category) string {
	return "guardrail:" + string(category)
}

type Message struct {
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Violation records one failed validator check.
type Violation struct {
	Validator string   `json:"validator"`
	Category  Category `json:"category"`
	Detail    string   `json:"detail"`
	Severity  Severity `json:"severity"`
}

// Outcome is the aggregated result of running every applicable validator
// against a single text. Violations holds every triggered check in
// evaluation order, not just the first one.
type Outcome struct {
	Direction  Direction   `json:"direction"`
	Text       string      `json:"text"`
	Passed     bool        `json:"passed"`
	Violations []Violation `json:"violations,omitempty"`
}

// FirstBlocking returns the first blocking violation in evaluation order,
// or nil when none block. It decides which substitution message is shown.
func (o Outcome) FirstBlocking() *Violation {
	for i := range o.Violations {
		if o.Violations[i].Severity == SeverityBlocking {
			return &o.Violations[i]
		}
	}
	return nil
}

type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

type ChatResponse struct {
	Reply     string `json:"reply"`
	Source    string `json:"source"`
	Monitored bool   `json:"monitored"`
	SessionID string `json:"session_id"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// Exchange is the audit record handed to the monitoring sink after each
// completed chat round trip.
type Exchange struct {
	SessionID string    `json:"session_id"`
	UserText  string    `json:"user_text"`
	ReplyText string    `json:"reply_text"`
	Monitored bool      `json:"monitored"`
	Outcomes  []Outcome `json:"outcomes"`
	CreatedAt time.Time `json:"created_at"`
}
