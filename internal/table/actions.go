package table

import (
	"go.uber.org/zap"

	"mentordeck/internal/events"
	"mentordeck/internal/logging"
	"mentordeck/internal/platform"
)

// Exporter performs the two table export actions through injected
// platform operations. Failures are contained here: the action logs and
// skips the confirming event, and the table remains fully usable. No
// error ever propagates to the hosting application.
type Exporter struct {
	Clipboard platform.Clipboard
	Saver     platform.FileSaver
	Bus       *events.Bus
	Log       *zap.Logger
}

// Copy writes the table's tab-separated serialization to the clipboard
// and emits table_copy on success. Returns whether the copy landed.
func (e Exporter) Copy(m Model) bool {
	log := logging.OrNop(e.Log)
	if e.Clipboard == nil {
		log.Debug("table copy skipped: no clipboard available", zap.String("table", m.ID))
		return false
	}
	if err := e.Clipboard.WriteText(m.CopyText()); err != nil {
		log.Warn("table copy failed", zap.String("table", m.ID), zap.Error(err))
		return false
	}
	e.Bus.Emit(events.Event{Kind: events.KindTableCopy, TableID: m.ID})
	return true
}

// ExportCSV saves the table as table-<id>.csv and emits
// table_export_csv on success. Returns the written path when it landed.
func (e Exporter) ExportCSV(m Model) (string, bool) {
	log := logging.OrNop(e.Log)
	if e.Saver == nil {
		log.Debug("table export skipped: no file saver available", zap.String("table", m.ID))
		return "", false
	}
	path, err := e.Saver.Save(m.CSVFileName(), m.CSV())
	if err != nil {
		log.Warn("table export failed", zap.String("table", m.ID), zap.Error(err))
		return "", false
	}
	e.Bus.Emit(events.Event{Kind: events.KindTableExportCSV, TableID: m.ID, Path: path})
	return path, true
}
