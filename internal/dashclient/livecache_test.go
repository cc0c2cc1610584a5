package dashclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treasuryd/internal/models"
)

func names(prices []models.AssetPrice) []string {
	out := make([]string, len(prices))
	for i, p := range prices {
		out[i] = p.Name
	}
	return out
}

func TestLiveMergeCache_InsertThenDelete(t *testing.T) {
	cache := NewLiveMergeCache()

	cache.Apply(models.PriceEvent{
		EventType: models.EventInsert,
		New:       &models.AssetPrice{Name: "LTC", Price: 90},
	})
	require.Equal(t, 1, cache.Len())

	cache.Apply(models.PriceEvent{
		EventType: models.EventDelete,
		Old:       &models.PriceEventKey{Name: "LTC"},
	})
	assert.Equal(t, 0, cache.Len())
	assert.Empty(t, cache.Snapshot())
}

func TestLiveMergeCache_UpdateKeepsPosition(t *testing.T) {
	cache := NewLiveMergeCache()
	cache.Seed([]models.AssetPrice{
		{Name: "BTC", Price: 60000},
		{Name: "LTC", Price: 90},
		{Name: "ETH", Price: 3000},
	})

	cache.Apply(models.PriceEvent{
		EventType: models.EventUpdate,
		New:       &models.AssetPrice{Name: "LTC", Price: 95, Growth: 5.5},
	})

	snap := cache.Snapshot()
	require.Equal(t, []string{"BTC", "LTC", "ETH"}, names(snap))
	assert.Equal(t, 95.0, snap[1].Price)
	assert.Equal(t, 5.5, snap[1].Growth)
}

func TestLiveMergeCache_InsertAppends(t *testing.T) {
	cache := NewLiveMergeCache()
	cache.Seed([]models.AssetPrice{{Name: "BTC"}, {Name: "LTC"}})

	cache.Apply(models.PriceEvent{
		EventType: models.EventInsert,
		New:       &models.AssetPrice{Name: "DOGE", Price: 0.2},
	})

	assert.Equal(t, []string{"BTC", "LTC", "DOGE"}, names(cache.Snapshot()))
}

func TestLiveMergeCache_SeedDeduplicatesByName(t *testing.T) {
	cache := NewLiveMergeCache()
	seed := []models.AssetPrice{
		{Name: "LTC", Price: 90},
		{Name: "BTC", Price: 60000},
		{Name: "LTC", Price: 91},
	}

	cache.Seed(seed)
	cache.Seed(seed)

	snap := cache.Snapshot()
	require.Equal(t, []string{"LTC", "BTC"}, names(snap))
	// Later duplicate overwrites the earlier value.
	assert.Equal(t, 91.0, snap[0].Price)
}

func TestLiveMergeCache_SeedReplacesWholesale(t *testing.T) {
	cache := NewLiveMergeCache()
	cache.Seed([]models.AssetPrice{{Name: "BTC"}, {Name: "LTC"}})
	cache.Seed([]models.AssetPrice{{Name: "ETH"}})

	assert.Equal(t, []string{"ETH"}, names(cache.Snapshot()))
}

func TestLiveMergeCache_IgnoresMalformedEvents(t *testing.T) {
	cache := NewLiveMergeCache()
	cache.Seed([]models.AssetPrice{{Name: "LTC", Price: 90}})

	cache.Apply(models.PriceEvent{EventType: "TRUNCATE"})
	cache.Apply(models.PriceEvent{EventType: models.EventInsert})
	cache.Apply(models.PriceEvent{EventType: models.EventDelete})
	cache.Apply(models.PriceEvent{EventType: models.EventDelete, Old: &models.PriceEventKey{Name: "missing"}})

	snap := cache.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, 90.0, snap[0].Price)
}
