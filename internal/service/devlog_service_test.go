package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberworks/studio-portal/internal/domain"
)

func TestDevLogUpdateFoldsPriorContentIntoRevisions(t *testing.T) {
	repo := newFakeDevLogRepo(&domain.DevLog{
		ID:       "d1",
		Title:    "Week 1",
		Content:  "original body",
		Category: "Engineering",
	})
	auditor := &recordingAuditor{}
	svc := NewDevLogService(repo, auditor)

	err := svc.Update(context.Background(), "editor-1", "d1", "Week 1 (edited)", "new body", "Engineering")
	require.NoError(t, err)

	log := repo.byID["d1"]
	assert.Equal(t, "new body", log.Content)
	require.Len(t, log.Revisions, 1)
	assert.Equal(t, "original body", log.Revisions[0].Content)
	assert.Equal(t, "editor-1", log.Revisions[0].UpdatedBy)

	require.Len(t, auditor.calls, 1)
	assert.Equal(t, domain.AuditEditDevLog, auditor.calls[0].action)
	assert.Equal(t, "Week 1 (edited)", auditor.calls[0].details["newTitle"])
	assert.Equal(t, "d1", auditor.calls[0].targetID)
}

func TestDevLogRevisionsStayCapped(t *testing.T) {
	repo := newFakeDevLogRepo(&domain.DevLog{ID: "d1", Title: "t", Content: "v0", Category: "c"})
	svc := NewDevLogService(repo, &recordingAuditor{})

	for i := 0; i < domain.DevLogRevisionCap+3; i++ {
		require.NoError(t, svc.Update(context.Background(), "editor-1", "d1", "t", "next", "c"))
	}

	log := repo.byID["d1"]
	assert.Len(t, log.Revisions, domain.DevLogRevisionCap)
}

func TestDevLogUpdateUnknownEntrySkipsAudit(t *testing.T) {
	auditor := &recordingAuditor{}
	svc := NewDevLogService(newFakeDevLogRepo(), auditor)

	err := svc.Update(context.Background(), "editor-1", "missing", "t", "c", "cat")
	assert.Equal(t, "NOT_FOUND", errorCode(t, err))
	assert.Empty(t, auditor.calls)
}

func TestDevLogArchiveAudits(t *testing.T) {
	repo := newFakeDevLogRepo(&domain.DevLog{ID: "d1", Title: "t", Content: "c", Category: "cat"})
	auditor := &recordingAuditor{}
	svc := NewDevLogService(repo, auditor)

	err := svc.Archive(context.Background(), "editor-1", "d1")
	require.NoError(t, err)

	assert.True(t, repo.byID["d1"].Archived)
	require.Len(t, auditor.calls, 1)
	assert.Equal(t, domain.AuditArchiveDevLog, auditor.calls[0].action)
}

func TestDevLogListSkipsArchived(t *testing.T) {
	repo := newFakeDevLogRepo(
		&domain.DevLog{ID: "d1", Title: "live", Content: "c", Category: "cat"},
		&domain.DevLog{ID: "d2", Title: "gone", Content: "c", Category: "cat", Archived: true},
	)
	svc := NewDevLogService(repo, &recordingAuditor{})

	logs, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "live", logs[0].Title)
}

func TestDevLogCreateValidation(t *testing.T) {
	svc := NewDevLogService(newFakeDevLogRepo(), &recordingAuditor{})

	_, err := svc.Create(context.Background(), "", "body", "cat")
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, err))
}
