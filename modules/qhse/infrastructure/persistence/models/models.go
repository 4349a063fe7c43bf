package models

import (
	"database/sql"
	"time"
)

type Process struct {
	ID          string
	TenantID    string
	IsActive    bool
	Name        string
	Description sql.NullString
	PilotID     sql.NullString
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Action struct {
	ID         string
	TenantID   string
	IsActive   bool
	ProcessID  string
	Title      string
	Status     string
	AssigneeID sql.NullString
	DueDate    sql.NullTime
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
