// CLAUDE:SUMMARY Session aggregate: raw inputs, clean-name set, match assignments, debounced term, save/load.
package match

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// SessionModel holds one user's reconciliation state: the imported raw
// inputs, the clean-name reference set, and the confirmed assignments.
// All mutations execute as a single synchronous step under the session
// mutex; readers never observe partially applied state.
type SessionModel struct {
	mu          sync.Mutex
	rawInputs   []RawInput
	cleanNames  []string
	cleanSet    map[string]struct{}
	matches     map[int]string
	lastUpdated time.Time

	store Store
	key   Key

	debounce      *Debouncer
	effectiveTerm string
}

// NewSessionModel creates an empty session persisting through store under
// key. A nil store disables Save/Load.
func NewSessionModel(store Store, key Key) *SessionModel {
	return &SessionModel{
		cleanSet: make(map[string]struct{}),
		matches:  make(map[int]string),
		store:    store,
		key:      key,
		debounce: NewDebouncer(DefaultDebounceWindow),
	}
}

// ImportRaw replaces the raw-input collection wholesale. Ids are assigned
// dense and zero-based from line order. The matches mapping is deliberately
// NOT cleared: ids from a previous import keep their assignments, which can
// silently misattribute after a re-import. Known behavior, kept as is.
func (m *SessionModel) ImportRaw(lines []string) int {
	inputs := make([]RawInput, len(lines))
	for i, line := range lines {
		inputs[i] = RawInput{ID: i, Text: line}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.rawInputs = inputs
	m.touch()
	return len(inputs)
}

// AddCleanNames appends names to the reference set. Names are trimmed,
// blank names skipped, duplicates silently suppressed. Returns the number
// actually added. Clean names are never deleted or mutated afterwards.
func (m *SessionModel) AddCleanNames(names []string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	added := 0
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := m.cleanSet[name]; dup {
			continue
		}
		m.cleanSet[name] = struct{}{}
		m.cleanNames = append(m.cleanNames, name)
		added++
	}
	if added > 0 {
		m.touch()
	}
	return added
}

// AssignOne records matches[rawID] = cleanName, overwriting any previous
// assignment. A blank clean name is rejected with ErrInvalidArgument. No
// existence check is made against the clean-name set, and an unknown rawID
// is a plain insert, not an error.
func (m *SessionModel) AssignOne(rawID int, cleanName string) error {
	if strings.TrimSpace(cleanName) == "" {
		return fmt.Errorf("%w: blank clean name", ErrInvalidArgument)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matches[rawID] = cleanName
	m.touch()
	return nil
}

// AssignBulk assigns cleanName to every id in rawIDs. The caller passes the
// exact target set (typically the currently visible filtered ids); nothing
// is recomputed here.
func (m *SessionModel) AssignBulk(rawIDs []int, cleanName string) error {
	if strings.TrimSpace(cleanName) == "" {
		return fmt.Errorf("%w: blank clean name", ErrInvalidArgument)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range rawIDs {
		m.matches[id] = cleanName
	}
	if len(rawIDs) > 0 {
		m.touch()
	}
	return nil
}

// Matched returns the assignment for rawID, if any.
func (m *SessionModel) Matched(rawID int) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	name, ok := m.matches[rawID]
	return name, ok
}

// CompletionRatio reports matched/total for this session.
func (m *SessionModel) CompletionRatio() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return CompletionRatio(len(m.rawInputs), len(m.matches))
}

// CompletionRatio is matched/total, 0 when total is 0.
func CompletionRatio(rawTotal, matched int) float64 {
	if rawTotal == 0 {
		return 0
	}
	return float64(matched) / float64(rawTotal)
}

// RawInputs returns a copy of the raw-input collection in import order.
func (m *SessionModel) RawInputs() []RawInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]RawInput, len(m.rawInputs))
	copy(out, m.rawInputs)
	return out
}

// CleanNames returns a copy of the clean-name set in insertion order.
func (m *SessionModel) CleanNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.cleanNames))
	copy(out, m.cleanNames)
	return out
}

// Matches returns a copy of the assignment mapping.
func (m *SessionModel) Matches() map[int]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[int]string, len(m.matches))
	for id, name := range m.matches {
		out[id] = name
	}
	return out
}

// LastUpdated reports the time of the last mutation or loaded snapshot.
func (m *SessionModel) LastUpdated() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastUpdated
}

// Filter runs the stateless filter engine over this session's raw inputs.
func (m *SessionModel) Filter(term string, threshold float64) []FilterResult {
	return Filter(m.RawInputs(), term, threshold)
}

// Suggest ranks this session's clean names for the term.
func (m *SessionModel) Suggest(term string, limit int, minScore float64) []string {
	return Suggest(m.CleanNames(), term, limit, minScore)
}

// SetTerm schedules term as the pending search term. The term becomes
// effective only after the debounce window passes with no further SetTerm
// call; every call cancels the previously pending one.
func (m *SessionModel) SetTerm(term string) {
	m.debounce.Schedule(func() {
		m.mu.Lock()
		m.effectiveTerm = term
		m.mu.Unlock()
	})
}

// EffectiveTerm is the last term whose debounce timer ran to completion.
func (m *SessionModel) EffectiveTerm() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.effectiveTerm
}

// Snapshot captures the full session state for persistence.
func (m *SessionModel) Snapshot() *Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := &Snapshot{
		RawInputs:   make([]RawInput, len(m.rawInputs)),
		CleanNames:  make([]string, len(m.cleanNames)),
		Matches:     make(map[int]string, len(m.matches)),
		LastUpdated: m.lastUpdated,
	}
	copy(snap.RawInputs, m.rawInputs)
	copy(snap.CleanNames, m.cleanNames)
	for id, name := range m.matches {
		snap.Matches[id] = name
	}
	return snap
}

// Save writes the current snapshot through the store. Concurrent saves are
// not serialized; the store observes the last write.
func (m *SessionModel) Save(ctx context.Context) error {
	if m.store == nil {
		return fmt.Errorf("save: no store configured")
	}
	snap := m.Snapshot()
	if err := m.store.Save(ctx, m.key, snap); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load fetches the stored snapshot and merges it in: only fields present in
// the record overwrite the in-memory collections, absent fields leave local
// state untouched. ErrNotFound passes through unwrapped-checkable.
func (m *SessionModel) Load(ctx context.Context) error {
	if m.store == nil {
		return fmt.Errorf("load: no store configured")
	}
	snap, err := m.store.Load(ctx, m.key)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if snap.RawInputs != nil {
		m.rawInputs = snap.RawInputs
	}
	if snap.CleanNames != nil {
		m.cleanNames = snap.CleanNames
		m.cleanSet = make(map[string]struct{}, len(snap.CleanNames))
		for _, name := range snap.CleanNames {
			m.cleanSet[name] = struct{}{}
		}
	}
	if snap.Matches != nil {
		m.matches = snap.Matches
	}
	if !snap.LastUpdated.IsZero() {
		m.lastUpdated = snap.LastUpdated
	}
	return nil
}

// touch is called under m.mu.
func (m *SessionModel) touch() {
	m.lastUpdated = time.Now().UTC()
}
