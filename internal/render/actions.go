package render

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"mentordeck/internal/events"
	"mentordeck/internal/logging"
	"mentordeck/internal/schema"
)

// ActionDispatcher turns declared follow-up suggestions into numbered
// controls and reports activations outward. It never interprets the
// payload: whether a payload means "export that table" or "ask this as
// a new question" is entirely the hosting application's business.
type ActionDispatcher struct {
	Bus *events.Bus
	Log *zap.Logger
}

// Controls renders one numbered control per suggested action, or ""
// when there are none.
func (d ActionDispatcher) Controls(actions []schema.SuggestedAction, st Styles) string {
	if len(actions) == 0 {
		return ""
	}
	parts := make([]string, 0, len(actions))
	for i, action := range actions {
		key := st.ActionKey.Render("[" + strconv.Itoa(i+1) + "]")
		parts = append(parts, key+" "+st.ActionLabel.Render(action.Label))
	}
	return strings.Join(parts, "  ")
}

// Activate emits suggested_action_clicked for the control at index
// (zero-based). Out-of-range activations are ignored.
func (d ActionDispatcher) Activate(actions []schema.SuggestedAction, index int) bool {
	if index < 0 || index >= len(actions) {
		return false
	}
	action := actions[index]
	logging.OrNop(d.Log).Debug("suggested action activated",
		zap.String("label", action.Label))
	d.Bus.Emit(events.Event{
		Kind:    events.KindSuggestedAction,
		Label:   action.Label,
		Payload: action.Payload,
	})
	return true
}
