package domain

import "context"

type ExportFormat string

const (
	ExportXLSX ExportFormat = "xlsx"
	ExportCSV  ExportFormat = "csv"
)

// ExportFile is a rendered standings download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type ExportUsecase interface {
	ExportStandings(ctx context.Context, format string) (*ExportFile, error)
}

type HealthUsecase interface {
	Check(ctx context.Context) (map[string]string, bool)
}
