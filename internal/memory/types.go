package memory

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Gate classifies why a memory was kept.
type Gate string

const (
	GateBehavioral Gate = "behavioral"
	GateRelational Gate = "relational"
	GateEpistemic  Gate = "epistemic"
	GatePromissory Gate = "promissory"
)

// ParseGate parses a gate name case-insensitively.
func ParseGate(s string) (Gate, error) {
	switch strings.ToLower(s) {
	case "behavioral":
		return GateBehavioral, nil
	case "relational":
		return GateRelational, nil
	case "epistemic":
		return GateEpistemic, nil
	case "promissory":
		return GatePromissory, nil
	default:
		return "", fmt.Errorf("invalid gate %q. use: behavioral, relational, epistemic, promissory", s)
	}
}

func (g Gate) String() string { return string(g) }

// Category returns the long-term storage category for a gate.
func (g Gate) Category() string {
	switch g {
	case GateRelational:
		return "people"
	case GateEpistemic:
		return "learnings"
	case GateBehavioral:
		return "decisions"
	case GatePromissory:
		return "commitments"
	default:
		return "learnings"
	}
}

// DecayClass is the coarse liveness tier of a memory.
type DecayClass string

const (
	DecaySlow     DecayClass = "slow"
	DecayModerate DecayClass = "moderate"
	DecayFast     DecayClass = "fast"
	DecayNever    DecayClass = "never"
)

// DecayClassForGate derives the decay class from a write gate.
func DecayClassForGate(g Gate) DecayClass {
	switch g {
	case GatePromissory:
		return DecayNever
	case GateRelational:
		return DecaySlow
	case GateEpistemic:
		return DecayModerate
	default:
		return DecayFast
	}
}

// HalfLifeDays returns the half-life in days, or ok=false for never-decaying
// memories.
func (d DecayClass) HalfLifeDays() (float64, bool) {
	switch d {
	case DecaySlow:
		return 180, true
	case DecayModerate:
		return 90, true
	case DecayFast:
		return 30, true
	default:
		return 0, false
	}
}

// ParseDecayClass parses a decay class name, defaulting to moderate on
// unknown input so stale index rows stay readable.
func ParseDecayClass(s string) DecayClass {
	switch strings.ToLower(s) {
	case "slow":
		return DecaySlow
	case "moderate":
		return DecayModerate
	case "fast":
		return DecayFast
	case "never":
		return DecayNever
	default:
		return DecayModerate
	}
}

// Memory is the central entity, stored canonically as a markdown file and
// mirrored into the lexical, vector, and graph indices.
type Memory struct {
	ID           string     `yaml:"id" json:"id"`
	Created      time.Time  `yaml:"created" json:"created"`
	Gate         Gate       `yaml:"gate" json:"gate"`
	Person       string     `yaml:"person,omitempty" json:"person,omitempty"`
	Project      string     `yaml:"project,omitempty" json:"project,omitempty"`
	Confidence   float64    `yaml:"confidence" json:"confidence"`
	LastAccessed time.Time  `yaml:"last_accessed" json:"last_accessed"`
	AccessCount  int        `yaml:"access_count" json:"access_count"`
	DecayClass   DecayClass `yaml:"decay_class" json:"decay_class"`
	Content      string     `yaml:"content" json:"content"`
}

// New constructs a memory at its initial state: confidence 0.9, a single
// access, and a decay class derived from the gate.
func New(content string, gate Gate, person, project string, now time.Time) *Memory {
	return &Memory{
		ID:           NewID(now),
		Created:      now,
		Gate:         gate,
		Person:       person,
		Project:      project,
		Confidence:   0.9,
		LastAccessed: now,
		AccessCount:  1,
		DecayClass:   DecayClassForGate(gate),
		Content:      content,
	}
}

// NewID allocates a memory id: mem_<yyyymmdd_hhmmss>_<4-char random>.
func NewID(now time.Time) string {
	return fmt.Sprintf("mem_%s_%s",
		now.UTC().Format("20060102_150405"),
		uuid.New().String()[:4])
}

// JournalEntry is one append-only record in a per-day journal file.
type JournalEntry struct {
	Timestamp time.Time
	Gate      Gate
	Content   string
	Person    string
	Project   string
}

// IdentityCard is the small document that primes the agent at session start.
// Person and Project are carried for forward compatibility with per-person
// cards but are not populated today.
type IdentityCard struct {
	Person      string
	Project     string
	Content     string
	LastUpdated time.Time
}

// Extracted is one candidate memory pulled from a transcript by the
// summarizer.
type Extracted struct {
	Gate    string `json:"gate"`
	Content string `json:"content"`
	Person  string `json:"person,omitempty"`
	Project string `json:"project,omitempty"`
}
