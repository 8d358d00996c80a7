package recipes

import (
	"time"

	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db"
)

type Detail struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Format  string `json:"format"`
	Content string `json:"content"`
}

func ComposeDetail(r db.Recipe) Detail {
	return Detail{ID: r.ID, Name: r.Name, Format: r.Format, Content: r.Content}
}

type Spec struct {
	Name    string `json:"name"`
	Format  string `json:"format"`
	Content string `json:"content"`
}

func (spec Spec) Recipe() db.Recipe {
	return db.Recipe{Name: spec.Name, Format: spec.Format, Content: spec.Content}
}

type RunDetail struct {
	ID             string     `json:"id"`
	TrayID         string     `json:"tray"`
	RecipeID       string     `json:"recipe"`
	StartTimestamp time.Time  `json:"start_timestamp"`
	EndTimestamp   *time.Time `json:"end_timestamp"`
}

func ComposeRunDetail(run db.RecipeRun) RunDetail {
	return RunDetail{
		ID: run.ID, TrayID: run.TrayID, RecipeID: run.RecipeID,
		StartTimestamp: run.StartTimestamp, EndTimestamp: run.EndTimestamp,
	}
}

type RunSpec struct {
	TrayID   string `json:"tray"`
	RecipeID string `json:"recipe"`
}
