package engine

import (
	"errors"

	"go.uber.org/zap"

	"github.com/meitohealth/duty-roster/pkg/core/model"
)

// Validation failures detected before any trial runs
var (
	ErrNoSlotType = errors.New("no target slot type selected")
	ErrNoMembers  = errors.New("no members match the member rule")
	ErrNoDates    = errors.New("no dates match the date rule")
)

// Engine runs constrained assignment over an immutable snapshot. All
// methods are safe to call repeatedly; the engine never mutates the
// snapshot it was given.
type Engine struct {
	snap   *model.Snapshot
	logger *zap.Logger
}

// New creates an engine over the given snapshot. A nil logger disables
// diagnostics.
func New(snap *model.Snapshot, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{snap: snap, logger: logger}
}

// Snapshot returns the snapshot the engine runs over
func (e *Engine) Snapshot() *model.Snapshot {
	return e.snap
}

// ResolveMembers applies a member rule against the snapshot. An explicit id
// list wins over the attribute filter; with neither set, every member is a
// target.
func (e *Engine) ResolveMembers(rule model.MemberRule) []*model.Member {
	if len(rule.IDs) > 0 {
		members := make([]*model.Member, 0, len(rule.IDs))
		for _, id := range rule.IDs {
			if m := e.snap.Member(id); m != nil {
				members = append(members, m)
			}
		}
		return members
	}

	if rule.Filter != nil {
		var members []*model.Member
		for _, m := range e.snap.Members {
			if rule.Filter.Matches(m) {
				members = append(members, m)
			}
		}
		return members
	}

	return append([]*model.Member(nil), e.snap.Members...)
}

// validateRun checks a run configuration before any trial starts
func (e *Engine) validateRun(cfg *model.RunConfig, members []*model.Member, dates []string) error {
	if cfg.SlotTypeID == "" || e.snap.SlotType(cfg.SlotTypeID) == nil {
		return ErrNoSlotType
	}
	if len(members) == 0 {
		return ErrNoMembers
	}
	if len(dates) == 0 {
		return ErrNoDates
	}
	return nil
}
