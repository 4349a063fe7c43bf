package process

import "time"

type CreatedEvent struct {
	Process   *Process
	Timestamp time.Time
}

type ArchivedEvent struct {
	Process   *Process
	Timestamp time.Time
}

func NewCreatedEvent(p *Process) *CreatedEvent {
	return &CreatedEvent{Process: p, Timestamp: time.Now()}
}

func NewArchivedEvent(p *Process) *ArchivedEvent {
	return &ArchivedEvent{Process: p, Timestamp: time.Now()}
}
