package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"workspace-be/internal/dto"
	"workspace-be/internal/model"
	"workspace-be/internal/pkg/logger"
	"workspace-be/internal/repository/unitofwork"
	"workspace-be/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory SQLite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open("sqlite:file:"+uuid.NewString()+"?mode=memory&cache=shared&_foreign_keys=1", gormlogger.Silent)
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

type notification struct {
	Type string
	Data map[string]interface{}
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []notification
}

func (n *recordingNotifier) Notify(_ context.Context, eventType string, data map[string]interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, notification{Type: eventType, Data: data})
}

func (n *recordingNotifier) types() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.events))
	for i, e := range n.events {
		out[i] = e.Type
	}
	return out
}

type fixture struct {
	db       *gorm.DB
	factory  unitofwork.RepositoryFactory
	notifier *recordingNotifier
}

func newFixture(t *testing.T) *fixture {
	db := newTestDB(t)
	return &fixture{db: db, factory: unitofwork.NewRepositoryFactory(db), notifier: &recordingNotifier{}}
}

func (f *fixture) workspace(t *testing.T, name string) uuid.UUID {
	t.Helper()
	svc := NewWorkspaceService(f.factory, nil, nil, f.notifier, logger.NewNop())
	ws, err := svc.Create(context.Background(), &dto.CreateWorkspaceRequest{Name: name})
	require.NoError(t, err)
	return ws.Id
}

func rawJSON(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}
