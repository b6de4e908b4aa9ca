package table

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentordeck/internal/events"
)

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) WriteText(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

type fakeSaver struct {
	name string
	data []byte
	err  error
}

func (s *fakeSaver) Save(name string, data []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.name = name
	s.data = data
	return "/exports/" + name, nil
}

func TestExporter_CopyEmitsEvent(t *testing.T) {
	clip := &fakeClipboard{}
	bus := events.NewBus(4)
	m := New("", []string{"H1", "H2"}, [][]string{{"a", "b"}})

	ok := Exporter{Clipboard: clip, Bus: bus}.Copy(m)
	require.True(t, ok)
	assert.Equal(t, "H1\tH2\na\tb", clip.text)

	got := bus.Drain()
	require.Len(t, got, 1)
	assert.Equal(t, events.KindTableCopy, got[0].Kind)
	assert.Equal(t, m.ID, got[0].TableID)
}

func TestExporter_CopyFailureIsContained(t *testing.T) {
	clip := &fakeClipboard{err: errors.New("denied")}
	bus := events.NewBus(4)
	m := New("", []string{"H"}, nil)

	var ok bool
	require.NotPanics(t, func() {
		ok = Exporter{Clipboard: clip, Bus: bus}.Copy(m)
	})
	assert.False(t, ok)
	assert.Empty(t, bus.Drain(), "no confirming event on failure")
}

func TestExporter_ExportCSVEmitsEvent(t *testing.T) {
	saver := &fakeSaver{}
	bus := events.NewBus(4)
	m := New("", []string{"A"}, [][]string{{"1"}})

	path, ok := Exporter{Saver: saver, Bus: bus}.ExportCSV(m)
	require.True(t, ok)
	assert.Equal(t, "/exports/table-"+m.ID+".csv", path)
	assert.Equal(t, "A\n1\n", string(saver.data))

	got := bus.Drain()
	require.Len(t, got, 1)
	assert.Equal(t, events.KindTableExportCSV, got[0].Kind)
	assert.Equal(t, m.ID, got[0].TableID)
	assert.Equal(t, path, got[0].Path)
}

func TestExporter_ExportFailureIsContained(t *testing.T) {
	saver := &fakeSaver{err: errors.New("disk full")}
	bus := events.NewBus(4)
	m := New("", []string{"A"}, nil)

	_, ok := Exporter{Saver: saver, Bus: bus}.ExportCSV(m)
	assert.False(t, ok)
	assert.Empty(t, bus.Drain())
}

func TestExporter_MissingPlatformOpsAreNonFatal(t *testing.T) {
	m := New("", []string{"A"}, nil)
	e := Exporter{}

	assert.False(t, e.Copy(m))
	_, ok := e.ExportCSV(m)
	assert.False(t, ok)
}
