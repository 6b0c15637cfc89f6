// internal/domain/schedule/state.go
package schedule

// NotifiedFlag is the value of the Notified column of the previous schedule.
type NotifiedFlag string

const (
	NotifiedYes NotifiedFlag = "Y"
	NotifiedNo  NotifiedFlag = "N"
)

// ParseNotifiedFlag maps a raw cell to a flag. Anything other than "Y" is N.
func ParseNotifiedFlag(raw string) NotifiedFlag {
	if raw == string(NotifiedYes) {
		return NotifiedYes
	}
	return NotifiedNo
}

// NotificationState is one row of the previous schedule: the last paid date the
// system has acted on and whether that billing cycle was already notified.
type NotificationState struct {
	Name             string
	PreviousPaidDate string
	Notified         NotifiedFlag
}

// IsNotified reports whether a notification was already sent for PreviousPaidDate.
func (s NotificationState) IsNotified() bool {
	return s.Notified == NotifiedYes
}

// StateTable holds notification states keyed by customer name while keeping
// the order rows are written back in.
type StateTable struct {
	order []string
	rows  map[string]*NotificationState
}

// NewStateTable builds a table from persisted rows. When a name appears more
// than once only the first row is kept; the skipped names are returned.
func NewStateTable(states []NotificationState) (*StateTable, []string) {
	t := &StateTable{
		order: make([]string, 0, len(states)),
		rows:  make(map[string]*NotificationState, len(states)),
	}
	var duplicates []string
	for _, s := range states {
		if _, ok := t.rows[s.Name]; ok {
			duplicates = append(duplicates, s.Name)
			continue
		}
		t.Put(s)
	}
	return t, duplicates
}

// Len returns the number of customers in the table.
func (t *StateTable) Len() int {
	return len(t.order)
}

// Get returns a copy of the state stored for name.
func (t *StateTable) Get(name string) (NotificationState, bool) {
	s, ok := t.rows[name]
	if !ok {
		return NotificationState{}, false
	}
	return *s, true
}

// Put inserts a new row at the end of the table or replaces an existing row in place.
func (t *StateTable) Put(s NotificationState) {
	if existing, ok := t.rows[s.Name]; ok {
		*existing = s
		return
	}
	row := s
	t.rows[s.Name] = &row
	t.order = append(t.order, s.Name)
}

// MarkNotified sets Notified to Y for name. It returns false if name is unknown.
func (t *StateTable) MarkNotified(name string) bool {
	s, ok := t.rows[name]
	if !ok {
		return false
	}
	s.Notified = NotifiedYes
	return true
}

// Rows returns the table contents in write-back order.
func (t *StateTable) Rows() []NotificationState {
	out := make([]NotificationState, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, *t.rows[name])
	}
	return out
}

// Clone returns an independent copy of the table.
func (t *StateTable) Clone() *StateTable {
	c, _ := NewStateTable(t.Rows())
	return c
}
