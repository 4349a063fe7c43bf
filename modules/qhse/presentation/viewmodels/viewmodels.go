package viewmodels

import (
	"time"

	"github.com/google/uuid"

	"github.com/qoveo/platform/modules/qhse/domain/entities/action"
	"github.com/qoveo/platform/modules/qhse/domain/entities/process"
)

type Process struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	PilotID     string `json:"pilotId,omitempty"`
	IsActive    bool   `json:"isActive"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

type Action struct {
	ID         string `json:"id"`
	ProcessID  string `json:"processId"`
	Title      string `json:"title"`
	Status     string `json:"status"`
	AssigneeID string `json:"assigneeId,omitempty"`
	DueDate    string `json:"dueDate,omitempty"`
	IsActive   bool   `json:"isActive"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

func uuidOrEmpty(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}

func NewProcess(p *process.Process) *Process {
	return &Process{
		ID:          p.ID().String(),
		Name:        p.Name(),
		Description: p.Description(),
		PilotID:     uuidOrEmpty(p.PilotID()),
		IsActive:    p.IsActive(),
		CreatedAt:   p.CreatedAt().Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt().Format(time.RFC3339),
	}
}

func NewProcessList(items []*process.Process) []*Process {
	out := make([]*Process, 0, len(items))
	for _, p := range items {
		out = append(out, NewProcess(p))
	}
	return out
}

func NewAction(a *action.Action) *Action {
	vm := &Action{
		ID:         a.ID().String(),
		ProcessID:  a.ProcessID().String(),
		Title:      a.Title(),
		Status:     string(a.Status()),
		AssigneeID: uuidOrEmpty(a.AssigneeID()),
		IsActive:   a.IsActive(),
		CreatedAt:  a.CreatedAt().Format(time.RFC3339),
		UpdatedAt:  a.UpdatedAt().Format(time.RFC3339),
	}
	if a.DueDate() != nil {
		vm.DueDate = a.DueDate().Format("2006-01-02")
	}
	return vm
}

func NewActionList(items []*action.Action) []*Action {
	out := make([]*Action, 0, len(items))
	for _, a := range items {
		out = append(out, NewAction(a))
	}
	return out
}
