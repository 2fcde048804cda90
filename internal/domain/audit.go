package domain

// AuditEntry is one state-changing event in a room's history. The log is
// for debugging and replay only and is never sent to clients.
type AuditEntry struct {
	Seq    int
	Kind   string
	Actor  string
	Detail map[string]any
}

// auditCap bounds the in-memory log for long-lived rooms.
const auditCap = 4096

// AuditLog is an append-only ring of state-changing events.
type AuditLog struct {
	entries []AuditEntry
	seq     int
}

// Record appends an entry, evicting the oldest when the ring is full.
func (l *AuditLog) Record(kind, actor string, detail map[string]any) {
	l.seq++
	entry := AuditEntry{Seq: l.seq, Kind: kind, Actor: actor, Detail: detail}
	if len(l.entries) >= auditCap {
		copy(l.entries, l.entries[1:])
		l.entries[len(l.entries)-1] = entry
		return
	}
	l.entries = append(l.entries, entry)
}

// Entries returns a copy of the retained log in order.
func (l *AuditLog) Entries() []AuditEntry {
	out := make([]AuditEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of retained entries.
func (l *AuditLog) Len() int {
	return len(l.entries)
}
