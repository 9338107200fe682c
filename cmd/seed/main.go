package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"workspace-be/internal/dto"
	"workspace-be/internal/pkg/logger"
	"workspace-be/internal/repository/unitofwork"
	"workspace-be/internal/service"
	"workspace-be/pkg/database"

	"github.com/joho/godotenv"
)

// Seeds one demo workspace with a table, a page and a calendar.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	db, err := database.NewGormDBFromDSN(os.Getenv("DB_CONNECTION_STRING"))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(db)
	notifier := service.NewChangeNotifier(nil, nil, logger.NewNop())

	workspaces := service.NewWorkspaceService(uowFactory, nil, nil, notifier, logger.NewNop())
	tables := service.NewTableService(uowFactory, notifier)
	pages := service.NewPageService(uowFactory, notifier)
	calendars := service.NewCalendarService(uowFactory, notifier)

	ws, err := workspaces.Create(ctx, &dto.CreateWorkspaceRequest{Name: "Demo"})
	must(err)
	log.Printf("Workspace %s", ws.Id)

	table, err := tables.Create(ctx, &dto.CreateTableRequest{WorkspaceId: ws.Id, Name: "Contacts"})
	must(err)
	name, err := tables.AddColumn(ctx, &dto.AddColumnRequest{TableId: table.Id, Name: "Name"})
	must(err)
	age, err := tables.AddColumn(ctx, &dto.AddColumnRequest{TableId: table.Id, Name: "Age", Type: "number", OrderIndex: intPtr(1)})
	must(err)
	for _, c := range []struct {
		name string
		age  int
	}{{"Ann", 30}, {"Bo", 41}} {
		_, err := tables.AddRow(ctx, &dto.AddRowRequest{TableId: table.Id, Cells: dto.CellValues{
			name.Id: raw(c.name),
			age.Id:  raw(c.age),
		}})
		must(err)
	}

	page, err := pages.Create(ctx, &dto.CreatePageRequest{WorkspaceId: ws.Id, Title: "Welcome"})
	must(err)
	for _, b := range []dto.AddBlockRequest{
		{Type: "heading", Data: raw(map[string]interface{}{"level": 1, "content": "Welcome"})},
		{Type: "text", Data: raw(map[string]string{"content": "This workspace was seeded."}), OrderIndex: intPtr(1)},
		{Type: "list", Data: raw(map[string][]string{"items": {"Tables", "Docs", "Calendars"}}), OrderIndex: intPtr(2)},
	} {
		b.PageId = page.Id
		_, err := pages.AddBlock(ctx, &b)
		must(err)
	}

	cal, err := calendars.Create(ctx, &dto.CreateCalendarRequest{WorkspaceId: ws.Id, Name: "Team"})
	must(err)
	start := time.Now().UTC().Truncate(time.Hour).Add(24 * time.Hour)
	_, err = calendars.AddEvent(ctx, &dto.AddEventRequest{
		CalendarId: cal.Id,
		Title:      "Kickoff",
		StartTs:    start,
		EndTs:      start.Add(time.Hour),
	})
	must(err)

	log.Println("✅ Seed completed")
}

func raw(v interface{}) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}

func intPtr(n int) *int { return &n }

func must(err error) {
	if err != nil {
		log.Fatalf("Seed failed: %v", err)
	}
}
