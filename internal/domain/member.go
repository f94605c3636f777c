package domain

import "time"

// CalendarSyncStatus state of a member's third-party calendar connection
type CalendarSyncStatus string

const (
	SyncNotConnected CalendarSyncStatus = "NOT_CONNECTED"
	SyncPendingSetup CalendarSyncStatus = "PENDING_SETUP"
	SyncSynced       CalendarSyncStatus = "SYNCED"
	SyncFailed       CalendarSyncStatus = "SYNC_FAILED"
)

// IsConnected returns true if calendar data can be fetched for the member
func (s CalendarSyncStatus) IsConnected() bool {
	return s == SyncSynced || s == SyncFailed
}

// Member is a cleaner
type Member struct {
	ID                 int64
	DisplayName        string
	TeamID             *int64
	CalendarID         *string // third-party calendar identifier
	CalendarSyncStatus CalendarSyncStatus
	LastSynced         *time.Time
}

// Team groups cleaners under a leader
type Team struct {
	ID        int64
	Name      string
	LeaderID  int64
	MemberIDs []int64
}

// HasMember returns true if the member belongs to the team
func (t *Team) HasMember(memberID int64) bool {
	for _, id := range t.MemberIDs {
		if id == memberID {
			return true
		}
	}
	return false
}

// IsLeader returns true if the user leads the team
func (t *Team) IsLeader(userID int64) bool {
	return t.LeaderID == userID
}

// ActorRole role of the user performing an action
type ActorRole string

const (
	RoleCleaner ActorRole = "cleaner"
	RoleOwner   ActorRole = "owner"
	RoleAdmin   ActorRole = "admin"
)

// Actor is the authenticated user performing an operation
type Actor struct {
	UserID int64
	Role   ActorRole
}

// IsAdmin returns true for platform admins
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
