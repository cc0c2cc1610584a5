package pg

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treasuryd/internal/models"
)

// The notify trigger builds these payloads in SQL; the decoded shape
// must line up with models.PriceEvent.
func TestNotifyPayloadShape(t *testing.T) {
	upsert := `{"eventType":"UPDATE","new":{"name":"LTC","price":91.25,"growth":-0.4}}`
	var event models.PriceEvent
	require.NoError(t, json.Unmarshal([]byte(upsert), &event))
	assert.Equal(t, models.EventUpdate, event.EventType)
	require.NotNil(t, event.New)
	assert.Equal(t, "LTC", event.New.Name)
	assert.Equal(t, 91.25, event.New.Price)
	assert.Nil(t, event.Old)

	del := `{"eventType":"DELETE","old":{"name":"LTC"}}`
	event = models.PriceEvent{}
	require.NoError(t, json.Unmarshal([]byte(del), &event))
	assert.Equal(t, models.EventDelete, event.EventType)
	require.NotNil(t, event.Old)
	assert.Equal(t, "LTC", event.Old.Name)
	assert.Nil(t, event.New)
}
