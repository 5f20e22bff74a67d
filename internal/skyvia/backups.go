package skyvia

import (
	"context"
	"fmt"
	"time"
)

type Backup struct {
	ID        int64     `json:"id" validate:"required"`
	Name      string    `json:"name"`
	Created   time.Time `json:"created"`
	Modified  time.Time `json:"modified"`
	Scheduled bool      `json:"scheduled"`
}

type BackupSnapshot struct {
	SnapshotID    int64      `json:"snapshotId" validate:"required"`
	QueueTime     *time.Time `json:"queueTime"`
	StartTime     *time.Time `json:"startTime"`
	EndTime       *time.Time `json:"endTime"`
	State         string     `json:"state" validate:"required"`
	RunBySchedule bool       `json:"runBySchedule"`
}

type BackupSnapshotDetails struct {
	BackupSnapshot
	Result string `json:"result"`
}

// BackupActiveRun is the state of a snapshot run currently executing.
type BackupActiveRun struct {
	RunID    int64     `json:"runId" validate:"required"`
	Date     time.Time `json:"date"`
	Duration int64     `json:"duration"`
	State    string    `json:"state"`
}

type BackupSchedule struct {
	Active bool `json:"active"`
}

func (c *Client) ListBackups(ctx context.Context, workspaceID int64, page PageParams) (Page[Backup], error) {
	query, err := pageQuery(page)
	if err != nil {
		return Page[Backup]{}, err
	}
	return fetchPage[Backup](ctx, c,
		fmt.Sprintf("list backups in workspace %d", workspaceID),
		fmt.Sprintf("/v1/workspaces/%d/backups", workspaceID), query)
}

func (c *Client) GetBackup(ctx context.Context, workspaceID, backupID int64) (Backup, error) {
	return fetchRecord[Backup](ctx, c,
		fmt.Sprintf("get backup %d", backupID),
		fmt.Sprintf("/v1/workspaces/%d/backups/%d", workspaceID, backupID))
}

func (c *Client) ListBackupSnapshots(ctx context.Context, workspaceID, backupID int64, query LogQuery) (Page[BackupSnapshot], error) {
	values, err := query.values("startTime", "snapshotId")
	if err != nil {
		return Page[BackupSnapshot]{}, err
	}
	return fetchPage[BackupSnapshot](ctx, c,
		fmt.Sprintf("list snapshots of backup %d", backupID),
		fmt.Sprintf("/v1/workspaces/%d/backups/%d/snapshots", workspaceID, backupID), values)
}

// RunBackup queues a new snapshot run and returns its initial state.
func (c *Client) RunBackup(ctx context.Context, workspaceID, backupID int64) (BackupActiveRun, error) {
	return postRecord[BackupActiveRun](ctx, c,
		fmt.Sprintf("run backup %d", backupID),
		fmt.Sprintf("/v1/workspaces/%d/backups/%d/snapshots", workspaceID, backupID))
}

func (c *Client) GetBackupSnapshot(ctx context.Context, workspaceID, backupID, snapshotID int64) (BackupSnapshotDetails, error) {
	return fetchRecord[BackupSnapshotDetails](ctx, c,
		fmt.Sprintf("get snapshot %d of backup %d", snapshotID, backupID),
		fmt.Sprintf("/v1/workspaces/%d/backups/%d/snapshots/%d", workspaceID, backupID, snapshotID))
}

// GetActiveBackupRun returns nil when no snapshot run is in progress.
func (c *Client) GetActiveBackupRun(ctx context.Context, workspaceID, backupID int64) (*BackupActiveRun, error) {
	return fetchOptional(ctx, c,
		fmt.Sprintf("get active run of backup %d", backupID),
		fmt.Sprintf("/v1/workspaces/%d/backups/%d/snapshots/active", workspaceID, backupID),
		func(r BackupActiveRun) bool { return r.RunID != 0 })
}

func (c *Client) GetBackupSchedule(ctx context.Context, workspaceID, backupID int64) (BackupSchedule, error) {
	return fetchRecord[BackupSchedule](ctx, c,
		fmt.Sprintf("get schedule of backup %d", backupID),
		fmt.Sprintf("/v1/workspaces/%d/backups/%d/schedule", workspaceID, backupID))
}

func (c *Client) EnableBackupSchedule(ctx context.Context, workspaceID, backupID int64) (BackupSchedule, error) {
	return postRecord[BackupSchedule](ctx, c,
		fmt.Sprintf("enable schedule of backup %d", backupID),
		fmt.Sprintf("/v1/workspaces/%d/backups/%d/schedule/enable", workspaceID, backupID))
}

func (c *Client) DisableBackupSchedule(ctx context.Context, workspaceID, backupID int64) (BackupSchedule, error) {
	return postRecord[BackupSchedule](ctx, c,
		fmt.Sprintf("disable schedule of backup %d", backupID),
		fmt.Sprintf("/v1/workspaces/%d/backups/%d/schedule/disable", workspaceID, backupID))
}
