package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchCommoditiesSimulatedWithoutKey(t *testing.T) {
	for _, key := range []string{"", "YOUR_GOV_API_KEY"} {
		client := NewGovMarketClient(key)
		records, source, err := client.FetchCommodities()
		require.NoError(t, err)
		assert.Equal(t, "Mandi Simulation Engine (Live Mode)", source)
		require.Len(t, records, 5)
		assert.Equal(t, "Rice", records[0].Commodity)
		assert.NotEmpty(t, records[0].ModalPrice)
	}
}

func TestFetchCommoditiesRealFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "real-key", r.URL.Query().Get("api-key"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))

		json.NewEncoder(w).Encode(map[string]any{
			"records": []CommodityRecord{
				{Commodity: "Onion", ModalPrice: "33", ArrivalDate: "30/08/2026"},
			},
		})
	}))
	defer srv.Close()

	client := NewGovMarketClient("real-key")
	client.BaseURL = srv.URL

	records, source, err := client.FetchCommodities()
	require.NoError(t, err)
	assert.Equal(t, "Data.gov.in (Real-time)", source)
	require.Len(t, records, 1)
	assert.Equal(t, "Onion", records[0].Commodity)
}

func TestFetchCommoditiesUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewGovMarketClient("bad-key")
	client.BaseURL = srv.URL

	_, _, err := client.FetchCommodities()
	assert.Error(t, err)
}
