package stoplist

// Manager holds the stopword list shared by the tokenizer and the
// vectorizers, with a recorded reason per entry.
type Manager struct {
	stops map[string]Reason
}

// Reason explains why a token is a stopword.
type Reason struct {
	HighDF bool    // appears in nearly every record
	Manual bool    // curated entry from the stoplist file
	DF     float64 // observed document frequency, if known
}

// NewManager creates a stoplist manager seeded with curated entries.
func NewManager(initialStops []string) *Manager {
	stops := make(map[string]Reason, len(initialStops))
	for _, s := range initialStops {
		stops[s] = Reason{Manual: true}
	}
	return &Manager{stops: stops}
}

// IsStop checks if a token is a stopword.
func (m *Manager) IsStop(token string) bool {
	_, ok := m.stops[token]
	return ok
}

// Add adds a token to the stoplist with a reason.
func (m *Manager) Add(token string, reason Reason) {
	m.stops[token] = reason
}

// Remove removes a token from the stoplist.
func (m *Manager) Remove(token string) {
	delete(m.stops, token)
}

// All returns all stopwords.
func (m *Manager) All() []string {
	result := make([]string, 0, len(m.stops))
	for s := range m.stops {
		result = append(result, s)
	}
	return result
}

// ReasonFor returns the recorded reason for a stopword.
func (m *Manager) ReasonFor(token string) (Reason, bool) {
	r, ok := m.stops[token]
	return r, ok
}
